package pool

// RoundUp returns the smallest multiple of Align that is >= b.
func RoundUp(b int) int {
	return (b + Align - 1) &^ (Align - 1)
}

// FreelistIndex returns the size-class index holding a block of size
// RoundUp(b). The caller must ensure 1 <= b <= MaxBytes.
func FreelistIndex(b int) int {
	return (b+Align-1)/Align - 1
}
