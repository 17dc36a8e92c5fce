package internal

// Align rounds offset up to a multiple of size, which must be a power of two.
func Align(offset uint32, size uint32) uint32 {
	return (offset + size - 1) &^ (size - 1)
}
