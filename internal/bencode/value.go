package bencode

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"unicode/utf8"
)

// Kind identifies which of the four bencode terms a Value holds.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindList
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "byte string"
	case KindInteger:
		return "integer"
	case KindList:
		return "list"
	case KindDict:
		return "dictionary"
	default:
		return "unknown"
	}
}

// Value is a decoded bencode term. The only implementations are String,
// Integer, List and Dict.
type Value interface {
	Kind() Kind
	isValue()
}

// String is a bencode byte string. It holds raw bytes, not text.
type String []byte

// Integer is a bencode integer.
type Integer int64

// List is an ordered sequence of values.
type List []Value

// Dict maps byte-string keys to values. Keys are Go strings used as
// immutable byte sequences; they are never interpreted as UTF-8.
type Dict map[string]Value

func (String) Kind() Kind  { return KindString }
func (Integer) Kind() Kind { return KindInteger }
func (List) Kind() Kind    { return KindList }
func (Dict) Kind() Kind    { return KindDict }

func (String) isValue()  {}
func (Integer) isValue() {}
func (List) isValue()    {}
func (Dict) isValue()    {}

// hexPrefix marks byte strings rendered as hex in JSON output. Strings that
// already start with it are hex encoded too, so every rendering is unique.
const hexPrefix = "hex:"

// jsonText renders raw bytes as the text of a JSON string.
func jsonText(b []byte) string {
	if utf8.Valid(b) && !bytes.HasPrefix(b, []byte(hexPrefix)) {
		return string(b)
	}
	return hexPrefix + hex.EncodeToString(b)
}

// MarshalJSON renders valid UTF-8 as a JSON string and anything else, or
// anything starting with "hex:", as "hex:" followed by the lowercase hex of
// the raw bytes.
func (s String) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonText(s))
}

// MarshalJSON renders keys with the same policy as String values, in byte
// order.
func (d Dict) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(jsonText([]byte(k)))
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(d[k])
		if err != nil {
			return nil, fmt.Errorf("dictionary key %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// GetString returns the byte string stored under key.
func (d Dict) GetString(key string) (String, bool) {
	s, ok := d[key].(String)
	return s, ok
}

// GetInteger returns the integer stored under key.
func (d Dict) GetInteger(key string) (Integer, bool) {
	i, ok := d[key].(Integer)
	return i, ok
}

// GetList returns the list stored under key.
func (d Dict) GetList(key string) (List, bool) {
	l, ok := d[key].(List)
	return l, ok
}

// GetDict returns the dictionary stored under key.
func (d Dict) GetDict(key string) (Dict, bool) {
	sub, ok := d[key].(Dict)
	return sub, ok
}
