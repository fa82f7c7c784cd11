// Package tool defines the descriptor model and registry for callable
// tools exposed over the protocol.
//
// A tool is described once at registration time: its name, a short
// description, an explicit input schema built with the Schema builder,
// and a handler. The registry is populated during startup and read-only
// afterwards — the serving loop only lists and looks up.
package tool

import (
	"context"
	"errors"
	"fmt"
)

// Handler is the invocable implementation bound to a descriptor.
// Arguments arrive as decoded JSON values keyed by parameter name.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Descriptor is the static metadata for one callable tool.
type Descriptor struct {
	// Name uniquely identifies the tool within a registry,
	// namespaced by convention (e.g. "sp.version").
	Name string

	// Description is a short human-readable summary, typically the
	// first line of the tool's documentation.
	Description string

	// Schema describes the tool's input. A nil Schema means the tool
	// takes no input at all, which is distinct from taking an empty
	// object — schema-less tools are listed without an inputSchema.
	Schema *Schema

	// Destructive marks tools with side effects beyond returning data.
	Destructive bool
}

// ErrBadArguments reports that a set of call arguments could not be
// bound to a tool's declared parameters. Callers map it to the invalid
// params protocol error.
var ErrBadArguments = errors.New("invalid arguments")

// Bind validates args against the descriptor's schema. It is the
// explicit stand-in for keyword-argument binding: unknown argument
// names, missing required parameters, and values whose JSON type
// contradicts the declared parameter type all fail with a wrapped
// ErrBadArguments naming the tool.
func (d Descriptor) Bind(args map[string]any) error {
	if d.Schema == nil {
		if len(args) > 0 {
			return fmt.Errorf("%w for tool %s: takes no arguments", ErrBadArguments, d.Name)
		}
		return nil
	}

	for name := range args {
		if _, ok := d.Schema.param(name); !ok {
			return fmt.Errorf("%w for tool %s: unknown argument %q", ErrBadArguments, d.Name, name)
		}
	}

	for _, p := range d.Schema.params {
		v, present := args[p.Name]
		if !present {
			if p.Required {
				return fmt.Errorf("%w for tool %s: missing required argument %q", ErrBadArguments, d.Name, p.Name)
			}
			continue
		}
		if !p.Type.accepts(v) {
			return fmt.Errorf("%w for tool %s: argument %q must be %s", ErrBadArguments, d.Name, p.Name, p.Type)
		}
	}

	return nil
}
