package dom

import "unicode/utf8"

// Character data offsets in the public API are UTF-16 code units, matching
// the string contract scripts see. A supplementary-plane character occupies
// two units (a surrogate pair) even though Go stores it as one rune.

// utf16Length returns the length of s in UTF-16 code units.
func utf16Length(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// utf16ToByteOffset converts a UTF-16 code-unit offset into a byte offset
// into s. Returns -1 if the offset is out of bounds or falls between the
// halves of a surrogate pair.
func utf16ToByteOffset(s string, offset int) int {
	if offset < 0 {
		return -1
	}
	units := 0
	for i := 0; i < len(s); {
		if units == offset {
			return i
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r >= 0x10000 {
			units += 2
			if units == offset+1 {
				// Offset splits a surrogate pair.
				return -1
			}
		} else {
			units++
		}
		i += size
	}
	if units == offset {
		return len(s)
	}
	return -1
}

// utf16Substring returns count UTF-16 code units of s starting at start,
// clamping a long count to the end of the string.
func utf16Substring(s string, start, count int) string {
	if count <= 0 {
		return ""
	}
	if start < 0 {
		start = 0
	}
	sb := utf16ToByteOffset(s, start)
	if sb < 0 {
		return ""
	}
	eb := utf16ToByteOffset(s, start+count)
	if eb < 0 {
		eb = len(s)
	}
	return s[sb:eb]
}

// utf16SliceTo returns the prefix of s up to a UTF-16 offset.
func utf16SliceTo(s string, end int) string {
	if end <= 0 {
		return ""
	}
	eb := utf16ToByteOffset(s, end)
	if eb < 0 {
		return s
	}
	return s[:eb]
}

// utf16SliceFrom returns the suffix of s starting at a UTF-16 offset.
func utf16SliceFrom(s string, start int) string {
	sb := utf16ToByteOffset(s, start)
	if sb < 0 {
		return ""
	}
	return s[sb:]
}
