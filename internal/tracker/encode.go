package tracker

import "strings"

const upperHex = "0123456789ABCDEF"

// PercentEncode escapes every byte as %XX, including unreserved characters,
// so binary hashes and IDs reach the tracker byte for byte.
func PercentEncode(data []byte) string {
	var b strings.Builder
	b.Grow(len(data) * 3)
	for _, c := range data {
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}
	return b.String()
}
