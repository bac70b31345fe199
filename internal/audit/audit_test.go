package audit

import (
	"strings"
	"testing"
)

func TestHashDataDeterministic(t *testing.T) {
	a := HashData("hello")
	b := HashData("hello")
	if a != b {
		t.Errorf("same input hashed differently: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
	if a == HashData("hello!") {
		t.Error("distinct inputs collided")
	}
}

func TestHashItemsSeparatorMatters(t *testing.T) {
	// "a|b" joined must not equal the single item "ab".
	if HashItems("a", "b") == HashItems("ab") {
		t.Error("joined items collided with concatenation")
	}
	if HashItems("a", "b") != HashData("a|b") {
		t.Error("HashItems does not match pipe-joined HashData")
	}
}

func TestContextHashSensitivity(t *testing.T) {
	base := ContextHash("t1", "prompt", "response", "2026-01-01T00:00:00Z")
	cases := []struct {
		name string
		hash string
	}{
		{"id", ContextHash("t2", "prompt", "response", "2026-01-01T00:00:00Z")},
		{"prompt", ContextHash("t1", "other", "response", "2026-01-01T00:00:00Z")},
		{"response", ContextHash("t1", "prompt", "other", "2026-01-01T00:00:00Z")},
		{"timestamp", ContextHash("t1", "prompt", "response", "2026-01-01T00:00:01Z")},
	}
	for _, tc := range cases {
		if tc.hash == base {
			t.Errorf("changing %s did not change the hash", tc.name)
		}
	}
}

func TestRoot(t *testing.T) {
	empty, err := Root(nil)
	if err != nil {
		t.Fatal(err)
	}
	if empty != HashData("empty") {
		t.Errorf("empty root = %s", empty)
	}

	one, err := Root([]string{"r1"})
	if err != nil {
		t.Fatal(err)
	}
	again, err := Root([]string{"r1"})
	if err != nil {
		t.Fatal(err)
	}
	if one != again {
		t.Error("root not deterministic")
	}

	two, err := Root([]string{"r1", "r2"})
	if err != nil {
		t.Fatal(err)
	}
	if two == one {
		t.Error("adding a leaf did not change the root")
	}
	if !isHex(two) {
		t.Errorf("root is not hex: %q", two)
	}
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool {
		return !strings.ContainsRune("0123456789abcdef", r)
	}) == -1
}
