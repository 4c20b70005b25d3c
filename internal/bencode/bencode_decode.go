package bencode

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrMalformedEncoding reports input that violates the bencode grammar.
	ErrMalformedEncoding = errors.New("malformed bencode")
	// ErrTrailingData reports bytes left over after a complete top-level term.
	ErrTrailingData = errors.New("trailing data after bencode term")
)

// maxDepth bounds list and dictionary nesting so hostile input fails with
// ErrMalformedEncoding instead of exhausting the stack.
const maxDepth = 512

// Decoder walks a byte slice with a cursor. Byte strings are sliced out of
// the input without any text conversion.
type Decoder struct {
	data  []byte
	pos   int
	depth int
}

func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Decode decodes exactly one term and fails with ErrTrailingData if any
// input remains after it.
func Decode(data []byte) (Value, error) {
	v, rest, err := DecodePrefix(data)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d bytes at offset %d", ErrTrailingData, len(rest), len(data)-len(rest))
	}
	return v, nil
}

// DecodePrefix decodes one term from the front of data and returns the
// unconsumed remainder.
func DecodePrefix(data []byte) (Value, []byte, error) {
	d := NewDecoder(data)
	v, err := d.Decode()
	if err != nil {
		return nil, nil, err
	}
	return v, d.Remaining(), nil
}

// Remaining returns the input not yet consumed.
func (d *Decoder) Remaining() []byte {
	return d.data[d.pos:]
}

// Decode decodes the term at the cursor, dispatching on its first byte.
func (d *Decoder) Decode() (Value, error) {
	if d.pos >= len(d.data) {
		return nil, d.errorf("unexpected end of input")
	}
	switch c := d.data[d.pos]; {
	case c == 'i':
		return d.decodeInt()
	case c == 'l':
		return d.decodeList()
	case c == 'd':
		return d.decodeDict()
	case isDigit(c):
		return d.decodeString()
	default:
		return nil, d.errorf("unexpected byte %q", c)
	}
}

// decodeInt decodes i<digits>e.
func (d *Decoder) decodeInt() (Integer, error) {
	d.pos++ // skip 'i'
	start := d.pos
	for d.pos < len(d.data) && d.data[d.pos] != 'e' {
		d.pos++
	}
	if d.pos >= len(d.data) {
		return 0, d.errorAt(start-1, "unterminated integer")
	}
	digits := d.data[start:d.pos]
	d.pos++ // skip 'e'

	neg := len(digits) > 0 && digits[0] == '-'
	mag := digits
	if neg {
		mag = digits[1:]
	}
	switch {
	case len(mag) == 0:
		return 0, d.errorAt(start, "empty integer")
	case !allDigits(mag):
		return 0, d.errorAt(start, "invalid integer %q", digits)
	case len(mag) > 1 && mag[0] == '0':
		return 0, d.errorAt(start, "integer %q has leading zeros", digits)
	case neg && mag[0] == '0':
		return 0, d.errorAt(start, "negative zero")
	}

	n, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		return 0, d.errorAt(start, "integer %q out of range", digits)
	}
	return Integer(n), nil
}

// decodeString decodes <len>:<bytes>.
func (d *Decoder) decodeString() (String, error) {
	start := d.pos
	for d.pos < len(d.data) && isDigit(d.data[d.pos]) {
		d.pos++
	}
	if d.pos >= len(d.data) || d.data[d.pos] != ':' {
		return nil, d.errorAt(start, "byte string length not followed by ':'")
	}
	lengthDigits := d.data[start:d.pos]
	if len(lengthDigits) > 1 && lengthDigits[0] == '0' {
		return nil, d.errorAt(start, "byte string length %q has leading zeros", lengthDigits)
	}
	length, err := strconv.Atoi(string(lengthDigits))
	if err != nil {
		return nil, d.errorAt(start, "byte string length %q out of range", lengthDigits)
	}
	d.pos++ // skip ':'

	if length > len(d.data)-d.pos {
		return nil, d.errorAt(start, "byte string length %d exceeds remaining %d bytes", length, len(d.data)-d.pos)
	}
	s := String(d.data[d.pos : d.pos+length : d.pos+length])
	d.pos += length
	return s, nil
}

// decodeList decodes l<term>*e.
func (d *Decoder) decodeList() (List, error) {
	start := d.pos
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()
	d.pos++ // skip 'l'

	list := List{}
	for d.pos < len(d.data) && d.data[d.pos] != 'e' {
		item, err := d.Decode()
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	if d.pos >= len(d.data) {
		return nil, d.errorAt(start, "unterminated list")
	}
	d.pos++ // skip 'e'
	return list, nil
}

// decodeDict decodes d(<string><term>)*e. A repeated key keeps the last value.
func (d *Decoder) decodeDict() (Dict, error) {
	start := d.pos
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()
	d.pos++ // skip 'd'

	dict := Dict{}
	for d.pos < len(d.data) && d.data[d.pos] != 'e' {
		if !isDigit(d.data[d.pos]) {
			return nil, d.errorf("dictionary key is not a byte string")
		}
		key, err := d.decodeString()
		if err != nil {
			return nil, err
		}
		value, err := d.Decode()
		if err != nil {
			return nil, err
		}
		dict[string(key)] = value
	}
	if d.pos >= len(d.data) {
		return nil, d.errorAt(start, "unterminated dictionary")
	}
	d.pos++ // skip 'e'
	return dict, nil
}

func (d *Decoder) enter() error {
	if d.depth >= maxDepth {
		return d.errorf("nesting deeper than %d levels", maxDepth)
	}
	d.depth++
	return nil
}

func (d *Decoder) leave() {
	d.depth--
}

func (d *Decoder) errorf(format string, args ...any) error {
	return d.errorAt(d.pos, format, args...)
}

func (d *Decoder) errorAt(pos int, format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrMalformedEncoding, pos, fmt.Sprintf(format, args...))
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func allDigits(b []byte) bool {
	for _, c := range b {
		if !isDigit(c) {
			return false
		}
	}
	return true
}
