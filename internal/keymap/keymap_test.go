package keymap

import (
	"testing"

	"github.com/andyrewlee/autoscroll/internal/config"
)

func TestDefaults(t *testing.T) {
	km := New(config.KeyMapConfig{})
	if got := PrimaryKey(km.Toggle); got != "space" {
		t.Fatalf("expected space toggle, got %q", got)
	}
	if got := km.Quit.Help().Key; got != "q/ctrl+c" {
		t.Fatalf("unexpected quit help %q", got)
	}
	if n := len(km.ShortHelp()); n != 7 {
		t.Fatalf("expected 7 hint bindings, got %d", n)
	}
}

func TestOverrides(t *testing.T) {
	km := New(config.KeyMapConfig{Bindings: map[string][]string{
		"copy":  {"c"},
		"reset": {},
	}})
	if got := PrimaryKey(km.Copy); got != "c" {
		t.Fatalf("expected override c, got %q", got)
	}
	if got := PrimaryKey(km.Reset); got != "r" {
		t.Fatalf("empty override should keep default, got %q", got)
	}
}

func TestPairHint(t *testing.T) {
	km := New(config.KeyMapConfig{})
	if got := PairHint(km.Back, km.Forward); got != "k/j" {
		t.Fatalf("unexpected pair hint %q", got)
	}
}
