package main

import "testing"

func TestShouldLaunchTUI(t *testing.T) {
	if !shouldLaunchTUI(true, true) {
		t.Fatalf("expected TUI with both streams on a terminal")
	}
	if shouldLaunchTUI(true, false) || shouldLaunchTUI(false, true) {
		t.Fatalf("piped streams should run headless")
	}
}

func TestPprofAddr(t *testing.T) {
	tests := map[string]string{
		"":               "",
		" no ":           "",
		"0":              "",
		"true":           "127.0.0.1:6060",
		"1":              "127.0.0.1:6060",
		"7070":           "127.0.0.1:7070",
		"localhost:9000": "localhost:9000",
	}
	for in, want := range tests {
		if got := pprofAddr(in); got != want {
			t.Fatalf("pprofAddr(%q) = %q, want %q", in, got, want)
		}
	}
}
