package bencode_test

import (
	"encoding/json"
	"testing"

	"torrentmeta/internal/bencode"
)

func TestMarshalJSON(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"4:spam", `"spam"`},
		{"i52e", `52`},
		{"l4:spam4:eggse", `["spam","eggs"]`},
		{"d3:cow3:moo4:spam4:eggse", `{"cow":"moo","spam":"eggs"}`},
		{"le", `[]`},
		{"3:\xff\x00\x01", `"hex:ff0001"`},
		{"6:hex:ff", `"hex:6865783a6666"`},
		{"de", `{}`},
		{"d1:\xfei1e1:\xffi2ee", `{"hex:fe":1,"hex:ff":2}`},
		{"d4:hex:i1e2:\xc3\xa9d1:\x80leee", `{"hex:6865783a":1,"é":{"hex:80":[]}}`},
	}

	for _, tt := range tests {
		v, err := bencode.Decode([]byte(tt.input))
		if err != nil {
			t.Fatalf("Decode(%q): %v", tt.input, err)
		}
		out, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("json.Marshal: %v", err)
		}
		if string(out) != tt.want {
			t.Errorf("json of %q = %s, want %s", tt.input, out, tt.want)
		}
	}
}

func TestDictTypedLookups(t *testing.T) {
	d := bencode.Dict{
		"s": bencode.String("x"),
		"i": bencode.Integer(1),
		"l": bencode.List{},
		"d": bencode.Dict{},
	}

	if _, ok := d.GetString("s"); !ok {
		t.Error("GetString(s) not ok")
	}
	if _, ok := d.GetString("i"); ok {
		t.Error("GetString(i) ok for an integer")
	}
	if i, ok := d.GetInteger("i"); !ok || i != 1 {
		t.Errorf("GetInteger(i) = %d, %v", i, ok)
	}
	if _, ok := d.GetList("l"); !ok {
		t.Error("GetList(l) not ok")
	}
	if _, ok := d.GetDict("d"); !ok {
		t.Error("GetDict(d) not ok")
	}
	if _, ok := d.GetDict("missing"); ok {
		t.Error("GetDict(missing) ok")
	}
}

func TestKindString(t *testing.T) {
	if got := bencode.String("").Kind().String(); got != "byte string" {
		t.Errorf("Kind = %q", got)
	}
	if got := (bencode.Dict{}).Kind().String(); got != "dictionary" {
		t.Errorf("Kind = %q", got)
	}
}
