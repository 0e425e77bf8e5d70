package dynlib

import "strings"

// CString returns a NUL terminated copy of s in Go memory.
// Anything after an embedded NUL is not visible to native code.
func CString(s string) *byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return &b[0]
}

// GoStringN copies at most len(b) bytes of a fixed size char array, stopping
// at the first NUL.
func GoStringN(b []byte) string {
	if i := strings.IndexByte(string(b), 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}
