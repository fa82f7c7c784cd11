package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func echoHandler(_ context.Context, args map[string]any) (any, error) {
	return args["text"], nil
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	d := Descriptor{Name: "sp.echo", Description: "Echo back text"}
	if err := reg.Register(d, echoHandler); err != nil {
		t.Fatalf("register: %v", err)
	}

	got, handler, err := reg.Lookup("sp.echo")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.Name != "sp.echo" {
		t.Errorf("name = %s, want sp.echo", got.Name)
	}
	if handler == nil {
		t.Fatal("handler is nil")
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	reg := NewRegistry()
	d := Descriptor{Name: "sp.echo"}
	if err := reg.Register(d, echoHandler); err != nil {
		t.Fatalf("first register: %v", err)
	}

	err := reg.Register(d, echoHandler)
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("err = %v, want ErrDuplicate", err)
	}
}

func TestRegistry_LookupNotFound(t *testing.T) {
	reg := NewRegistry()
	_, _, err := reg.Lookup("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRegistry_RejectsNilHandlerAndEmptyName(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(Descriptor{Name: "sp.x"}, nil); err == nil {
		t.Error("nil handler should fail")
	}
	if err := reg.Register(Descriptor{}, echoHandler); err == nil {
		t.Error("empty name should fail")
	}
}

func TestRegistry_ListPreservesRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	names := []string{"sp.c", "sp.a", "sp.b"}
	for _, name := range names {
		if err := reg.Register(Descriptor{Name: name}, echoHandler); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	listed := reg.List()
	if len(listed) != len(names) {
		t.Fatalf("len = %d, want %d", len(listed), len(names))
	}
	for i, name := range names {
		if listed[i].Name != name {
			t.Errorf("listed[%d] = %s, want %s", i, listed[i].Name, name)
		}
	}
}

// --- Bind ---

func TestBind_SchemaLessRejectsArguments(t *testing.T) {
	d := Descriptor{Name: "sp.version"}
	if err := d.Bind(nil); err != nil {
		t.Errorf("nil args: %v", err)
	}
	if err := d.Bind(map[string]any{}); err != nil {
		t.Errorf("empty args: %v", err)
	}
	err := d.Bind(map[string]any{"x": 1.0})
	if !errors.Is(err, ErrBadArguments) {
		t.Errorf("err = %v, want ErrBadArguments", err)
	}
}

func TestBind_Validation(t *testing.T) {
	d := Descriptor{
		Name: "sp.search",
		Schema: NewSchema().
			Required("query", TypeString, "Search query").
			Optional("limit", "Max results", 10),
	}

	tests := []struct {
		name    string
		args    map[string]any
		wantErr bool
	}{
		{"required present", map[string]any{"query": "x"}, false},
		{"optional provided", map[string]any{"query": "x", "limit": float64(5)}, false},
		{"missing required", map[string]any{"limit": float64(5)}, true},
		{"unknown argument", map[string]any{"query": "x", "bogus": "y"}, true},
		{"wrong type for string", map[string]any{"query": true}, true},
		{"non-integral for integer", map[string]any{"query": "x", "limit": 1.5}, true},
		{"integral float for integer", map[string]any{"query": "x", "limit": float64(3)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := d.Bind(tt.args)
			if tt.wantErr {
				if !errors.Is(err, ErrBadArguments) {
					t.Errorf("err = %v, want ErrBadArguments", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestBind_ErrorNamesTool(t *testing.T) {
	d := Descriptor{Name: "sp.search", Schema: NewSchema().Required("query", TypeString, "")}
	err := d.Bind(map[string]any{})
	if err == nil {
		t.Fatal("expected error")
	}
	if want := fmt.Sprintf("tool %s", d.Name); !strings.Contains(err.Error(), want) {
		t.Errorf("error %q should mention %q", err, want)
	}
}
