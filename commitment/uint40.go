package commitment

// uint40LE reads a little-endian 40-bit unsigned integer.
func uint40LE(b []byte) uint64 {
	_ = b[4]
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 |
		uint64(b[3])<<24 | uint64(b[4])<<32
}

// putUint40LE writes the low 40 bits of v little-endian.
func putUint40LE(b []byte, v uint64) {
	_ = b[4]
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	b[4] = byte(v >> 32)
}
