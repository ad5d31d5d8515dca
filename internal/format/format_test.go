package format

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestApply_Builtins(t *testing.T) {
	r, err := New(nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Close()

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"upper", "oslo", "OSLO"},
		{"lower", "LIMA", "lima"},
		{"fixed2", 3.14159, "3.14"},
		{"fixed2", "2", "2.00"},
		{"fixed2", "n/a", "n/a"},
		{"percent", 0.25, "25.0%"},
	}
	for _, tt := range tests {
		got, err := r.Apply(tt.name, tt.value, "p")
		if err != nil {
			t.Errorf("%s(%v): unexpected error %v", tt.name, tt.value, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s(%v): expected %q, got %q", tt.name, tt.value, tt.want, got)
		}
	}
}

func TestApply_Script(t *testing.T) {
	r, err := New(map[string]string{
		"currency": "return string.format('$%.2f', tonumber(value) or 0)",
		"label":    "return property .. '=' .. tostring(value)",
		"empty":    "return nil",
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Close()

	if got, _ := r.Apply("currency", "12.5", "price"); got != "$12.50" {
		t.Errorf("expected $12.50, got %q", got)
	}
	if got, _ := r.Apply("label", true, "ok"); got != "ok=true" {
		t.Errorf("expected ok=true, got %q", got)
	}
	if got, _ := r.Apply("empty", 1, "x"); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestApply_ScriptOverridesBuiltin(t *testing.T) {
	r, err := New(map[string]string{"upper": "return 'custom'"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Close()

	if got, _ := r.Apply("upper", "x", "p"); got != "custom" {
		t.Errorf("expected custom, got %q", got)
	}
}

func TestApply_UnknownTransform(t *testing.T) {
	r, _ := New(nil)
	defer r.Close()

	_, err := r.Apply("nope", "x", "p")
	if !errors.Is(err, ErrUnknownTransform) {
		t.Errorf("expected ErrUnknownTransform, got %v", err)
	}
}

func TestApply_RuntimeError(t *testing.T) {
	r, err := New(map[string]string{"boom": "error('bad value')"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Close()

	_, err = r.Apply("boom", "x", "p")
	var terr *TransformError
	if !errors.As(err, &terr) {
		t.Fatalf("expected *TransformError, got %v", err)
	}
	if terr.Name != "boom" || !strings.Contains(err.Error(), "bad value") {
		t.Errorf("unexpected error %v", err)
	}

	if got, err := r.Apply("upper", "ok", "p"); err != nil || got != "OK" {
		t.Errorf("expected state to remain usable, got %q, %v", got, err)
	}
}

func TestApply_Timeout(t *testing.T) {
	r, err := New(map[string]string{"spin": "while true do end"}, WithTimeout(20*time.Millisecond))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Close()

	if _, err := r.Apply("spin", 1, "p"); err == nil {
		t.Error("expected timeout error")
	}
}

func TestNew_CompileError(t *testing.T) {
	_, err := New(map[string]string{"bad": "return ("})
	if !errors.Is(err, ErrCompile) {
		t.Errorf("expected ErrCompile, got %v", err)
	}
}

func TestSandbox(t *testing.T) {
	r, err := New(map[string]string{
		"io":      "return tostring(io)",
		"os":      "return tostring(os)",
		"require": "return tostring(require)",
		"load":    "return tostring(loadstring)",
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Close()

	for _, name := range []string{"io", "os", "require", "load"} {
		got, err := r.Apply(name, nil, "p")
		if err != nil {
			t.Errorf("%s: unexpected error %v", name, err)
		}
		if got != "nil" {
			t.Errorf("%s: expected nil global, got %q", name, got)
		}
	}
}

func TestRegistry_NamesAndClose(t *testing.T) {
	r, _ := New(map[string]string{"a": "return 'a'"})

	if !r.Has("a") || !r.Has("upper") || r.Has("zzz") {
		t.Error("unexpected Has results")
	}
	names := r.Names()
	if names[0] != "a" {
		t.Errorf("expected sorted names starting with a, got %v", names)
	}

	r.Close()
	r.Close()
	if _, err := r.Apply("a", 1, "p"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}
