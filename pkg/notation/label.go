package notation

// LabelForIndex returns the node label for the node at position i:
// A..Z for 0..25, then AA, AB, ... in spreadsheet-column order.
// It panics if i is negative.
func LabelForIndex(i int) string {
	if i < 0 {
		panic("notation: negative label index")
	}
	var buf [16]byte
	pos := len(buf)
	for n := i; ; n = n/26 - 1 {
		pos--
		buf[pos] = byte('A' + n%26)
		if n < 26 {
			break
		}
	}
	return string(buf[pos:])
}
