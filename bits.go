package hpgeom

// Interleaves the low 32 bits of v with zeros: bit i moves to bit 2i.
func spreadBits(v int64) int64 {
	x := uint64(v) & 0x00000000ffffffff
	x = (x | (x << 16)) & 0x0000ffff0000ffff
	x = (x | (x << 8)) & 0x00ff00ff00ff00ff
	x = (x | (x << 4)) & 0x0f0f0f0f0f0f0f0f
	x = (x | (x << 2)) & 0x3333333333333333
	x = (x | (x << 1)) & 0x5555555555555555
	return int64(x)
}

// Inverse of spreadBits: gathers the even bits of v.
func compressBits(v int64) int64 {
	x := uint64(v) & 0x5555555555555555
	x = (x | (x >> 1)) & 0x3333333333333333
	x = (x | (x >> 2)) & 0x0f0f0f0f0f0f0f0f
	x = (x | (x >> 4)) & 0x00ff00ff00ff00ff
	x = (x | (x >> 8)) & 0x0000ffff0000ffff
	x = (x | (x >> 16)) & 0x00000000ffffffff
	return int64(x)
}
