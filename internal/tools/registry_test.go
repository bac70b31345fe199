package tools

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewMockRegistry(t *testing.T) {
	reg := NewMockRegistry()

	want := []string{
		"calculator", "convert_currency", "create_user", "format_date",
		"get_weather", "send_email", "web_search",
	}
	if diff := cmp.Diff(want, reg.Names()); diff != "" {
		t.Errorf("registered tools mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveThroughNormalizer(t *testing.T) {
	reg := NewMockRegistry()

	tests := []struct {
		in   string
		want string
	}{
		{"calculator", "calculator"},
		{"Compound Interest", "calculator"},
		{"check_weather", "get_weather"},
		{"forex", "convert_currency"},
		{"book_flight", "web_search"},
	}

	for _, tt := range tests {
		tool, canonical, err := reg.Resolve(tt.in)
		if err != nil {
			t.Errorf("Resolve(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if canonical != tt.want || tool.Name != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.in, canonical, tt.want)
		}
	}
}

func TestResolveUnknownTool(t *testing.T) {
	reg := NewMockRegistry()

	_, _, err := reg.Resolve("teleport_user")
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("want ErrToolNotFound, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register(&Tool{Name: ""}); !errors.Is(err, ErrToolNameEmpty) {
		t.Errorf("empty name: got %v", err)
	}
	if err := reg.Register(&Tool{Name: "x"}); !errors.Is(err, ErrToolExecuteNil) {
		t.Errorf("nil execute: got %v", err)
	}

	tool := &Tool{
		Name:    "x",
		Execute: func(map[string]any) (map[string]any, error) { return nil, nil },
	}
	if err := reg.Register(tool); err != nil {
		t.Fatalf("valid tool rejected: %v", err)
	}
	if err := reg.Register(tool); !errors.Is(err, ErrToolAlreadyRegistered) {
		t.Errorf("duplicate: got %v", err)
	}
	if reg.Count() != 1 {
		t.Errorf("Count = %d, want 1", reg.Count())
	}
}
