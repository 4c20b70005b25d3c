package bencode

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// ErrInvalidValue reports a value that is not one of the four bencode terms,
// such as a nil element inside a list.
var ErrInvalidValue = errors.New("invalid bencode value")

// Encode returns the canonical encoding of v: dictionary keys sorted by
// byte value and integers in minimal decimal form. There is no other mode.
func Encode(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v Value) error {
	switch v := v.(type) {
	case String:
		encodeString(buf, v)
	case Integer:
		encodeInt(buf, v)
	case List:
		return encodeList(buf, v)
	case Dict:
		return encodeDict(buf, v)
	default:
		return fmt.Errorf("%w: %T", ErrInvalidValue, v)
	}
	return nil
}

func encodeInt(buf *bytes.Buffer, i Integer) {
	buf.WriteByte('i')
	buf.WriteString(strconv.FormatInt(int64(i), 10))
	buf.WriteByte('e')
}

// encodeString writes the byte length, not a character count.
func encodeString(buf *bytes.Buffer, s []byte) {
	buf.WriteString(strconv.Itoa(len(s)))
	buf.WriteByte(':')
	buf.Write(s)
}

func encodeList(buf *bytes.Buffer, list List) error {
	buf.WriteByte('l')
	for i, item := range list {
		if err := encodeValue(buf, item); err != nil {
			return fmt.Errorf("list item %d: %w", i, err)
		}
	}
	buf.WriteByte('e')
	return nil
}

func encodeDict(buf *bytes.Buffer, dict Dict) error {
	buf.WriteByte('d')

	// Go string comparison is byte-wise, which is the order bencode requires.
	keys := make([]string, 0, len(dict))
	for k := range dict {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		encodeString(buf, []byte(key))
		if err := encodeValue(buf, dict[key]); err != nil {
			return fmt.Errorf("dictionary key %q: %w", key, err)
		}
	}

	buf.WriteByte('e')
	return nil
}
