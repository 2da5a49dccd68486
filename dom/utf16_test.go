package dom

import "testing"

func TestUTF16Length(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"héllo", 5},
		{"\U0001F600", 2},
		{"a\U0001F600b", 4},
	}
	for _, tc := range cases {
		if got := utf16Length(tc.in); got != tc.want {
			t.Errorf("utf16Length(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestUTF16ToByteOffset(t *testing.T) {
	s := "a\U0001F600b"
	cases := []struct {
		offset int
		want   int
	}{
		{0, 0},
		{1, 1},
		{2, -1}, // inside the surrogate pair
		{3, 5},
		{4, 6},
		{5, -1},
		{-1, -1},
	}
	for _, tc := range cases {
		if got := utf16ToByteOffset(s, tc.offset); got != tc.want {
			t.Errorf("utf16ToByteOffset(%q, %d) = %d, want %d", s, tc.offset, got, tc.want)
		}
	}
}

func TestUTF16Slicing(t *testing.T) {
	s := "a\U0001F600b"
	if got := utf16Substring(s, 1, 2); got != "\U0001F600" {
		t.Errorf("utf16Substring = %q", got)
	}
	if got := utf16SliceTo(s, 1); got != "a" {
		t.Errorf("utf16SliceTo = %q", got)
	}
	if got := utf16SliceFrom(s, 3); got != "b" {
		t.Errorf("utf16SliceFrom = %q", got)
	}
}
