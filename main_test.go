package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"torrentmeta/internal/tracker"
)

func runCLI(t *testing.T, client *tracker.Client, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr, client)
	return code, stdout.String(), stderr.String()
}

func writeTorrent(t *testing.T, announce string) string {
	t.Helper()
	var b bytes.Buffer
	b.WriteString("d8:announce")
	b.WriteString(strconv.Itoa(len(announce)) + ":" + announce)
	b.WriteString("4:infod6:lengthi92063e4:name10:sample.txt12:piece lengthi32768e6:pieces40:")
	b.Write(bytes.Repeat([]byte{0xab}, 20))
	b.Write(bytes.Repeat([]byte{0x01}, 20))
	b.WriteString("ee")

	path := filepath.Join(t.TempDir(), "sample.torrent")
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecodeCommand(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"4:spam", `"spam"`},
		{"i52e", "52"},
		{"l4:spam4:eggse", `["spam","eggs"]`},
		{"d3:cow3:moo4:spam4:eggse", `{"cow":"moo","spam":"eggs"}`},
		{"d1:\xfei1e1:\xffi2ee", `{"hex:fe":1,"hex:ff":2}`},
	}
	for _, tt := range tests {
		code, stdout, stderr := runCLI(t, nil, "decode", tt.input)
		if code != exitOK {
			t.Fatalf("decode %q exit %d: %s", tt.input, code, stderr)
		}
		if strings.TrimSpace(stdout) != tt.want {
			t.Errorf("decode %q = %q, want %q", tt.input, stdout, tt.want)
		}
	}
}

func TestDecodeCommandMalformed(t *testing.T) {
	code, stdout, stderr := runCLI(t, nil, "decode", "i03e")
	if code != exitError {
		t.Errorf("exit = %d, want %d", code, exitError)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr, "malformed bencode") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestInfoCommand(t *testing.T) {
	path := writeTorrent(t, "http://tracker.example/announce")

	code, stdout, stderr := runCLI(t, nil, "info", path)
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, stderr)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines:\n%s", len(lines), stdout)
	}
	if lines[0] != "Tracker URL: http://tracker.example/announce" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "Length: 92063" {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "Info Hash: ") || len(lines[2]) != len("Info Hash: ")+40 {
		t.Errorf("line 2 = %q", lines[2])
	}
	if lines[3] != "Piece Length: 32768" {
		t.Errorf("line 3 = %q", lines[3])
	}
	if lines[5] != strings.Repeat("ab", 20) || lines[6] != strings.Repeat("01", 20) {
		t.Errorf("piece hashes = %q, %q", lines[5], lines[6])
	}
}

func TestPeersCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("d8:intervali60e5:peers12:\x7f\x00\x00\x01\x1a\xe1\x0a\x00\x00\x07\x1a\xe2e"))
	}))
	defer srv.Close()

	path := writeTorrent(t, srv.URL+"/announce")
	code, stdout, stderr := runCLI(t, tracker.NewClient(srv.Client()), "-port", "7000", "peers", path)
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if want := "127.0.0.1:6881\n10.0.0.7:6882\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestPeersCommandTrackerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	path := writeTorrent(t, srv.URL)
	code, _, stderr := runCLI(t, tracker.NewClient(srv.Client()), "peers", path)
	if code != exitError {
		t.Errorf("exit = %d, want %d", code, exitError)
	}
	if !strings.Contains(stderr, "tracker unreachable") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestUsageErrors(t *testing.T) {
	cases := [][]string{
		{},
		{"decode"},
		{"frobnicate", "x"},
		{"-port", "70000", "decode", "i1e"},
		{"-log-level", "loud", "decode", "i1e"},
	}
	for _, args := range cases {
		if code, _, _ := runCLI(t, nil, args...); code != exitUsage {
			t.Errorf("run(%q) exit = %d, want %d", args, code, exitUsage)
		}
	}
}

func TestParseFlagsDefaults(t *testing.T) {
	cfg, rest, err := parseFlags([]string{"info", "x.torrent"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg != DefaultConfig {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if len(rest) != 2 || rest[0] != "info" {
		t.Errorf("rest = %q", rest)
	}
}
