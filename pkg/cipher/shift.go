package cipher

const alphabetSize = 26

// ShiftEncode rotates every ASCII letter of text by shift positions within its case.
// Other characters are left as they are.
func ShiftEncode(text string, shift int) string {
	shift %= alphabetSize
	if shift < 0 {
		shift += alphabetSize
	}

	out := []byte(text)
	for i, c := range out {
		switch {
		case c >= 'a' && c <= 'z':
			out[i] = 'a' + (c-'a'+byte(shift))%alphabetSize
		case c >= 'A' && c <= 'Z':
			out[i] = 'A' + (c-'A'+byte(shift))%alphabetSize
		}
	}

	return string(out)
}

// ShiftDecode undoes ShiftEncode.
func ShiftDecode(text string, shift int) string {
	return ShiftEncode(text, -shift)
}
