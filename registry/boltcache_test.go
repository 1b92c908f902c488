package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covenantsorg/libcovenant-go/params"
)

func openTestCache(t *testing.T) *CovenantCache {
	t.Helper()
	c, err := OpenCovenantCache(filepath.Join(t.TempDir(), "cache", "covenants.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCovenantCachePutGet(t *testing.T) {
	c := openTestCache(t)

	entry := &CacheEntry{
		Type:    TypeRecurring,
		Address: "1BitcoinEaterAddressDontSendf59kuE",
		Params: params.List{
			params.BytesParam(make([]byte, 20)),
			params.Uint64Param(100000000),
			params.Uint64Param(86400),
		},
	}
	require.NoError(t, c.Put("cov-1", entry))

	got, err := c.Get("cov-1")
	require.NoError(t, err)
	assert.Equal(t, entry, got)
}

func TestCovenantCacheGetMissing(t *testing.T) {
	c := openTestCache(t)

	_, err := c.Get("absent")
	assert.ErrorIs(t, err, ErrNotCached)
}

func TestCovenantCacheDeleteAndList(t *testing.T) {
	c := openTestCache(t)

	require.NoError(t, c.Put("a", &CacheEntry{Type: TypeVault, Address: "addr-a"}))
	require.NoError(t, c.Put("b", &CacheEntry{Type: TypeAirdrop, Address: "addr-b"}))

	all, err := c.List()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, c.Delete("a"))
	require.NoError(t, c.Delete("a")) // deleting a missing id is fine

	all, err = c.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "addr-b", all["b"].Address)

	_, err = c.Get("a")
	assert.ErrorIs(t, err, ErrNotCached)
}

func TestCovenantCachePutValidation(t *testing.T) {
	c := openTestCache(t)

	assert.ErrorIs(t, c.Put("x", nil), ErrNilParam)
	assert.ErrorIs(t, c.Put("", &CacheEntry{}), ErrNilParam)
}
