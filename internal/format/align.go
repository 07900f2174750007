package format

// AlignInput returns n aligned up to InputAlignment.
//
//	AlignInput(0)  = 0
//	AlignInput(1)  = 8
//	AlignInput(9)  = 16
func AlignInput(n int) int {
	return (n + InputAlignment - 1) &^ (InputAlignment - 1)
}
