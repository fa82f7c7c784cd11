package tools

import (
	"context"
	"fmt"

	"github.com/cdw0424/super-prompt/internal/tool"
)

// persona is a named prompt flavor. Only the catalog lives here — the
// prompt text itself is owned by the persona assets, not the server.
type persona struct {
	Name        string
	Description string
}

// personaCatalog is the static set of personas the server advertises,
// in listing order.
var personaCatalog = []persona{
	{"architect", "System design and architecture decisions"},
	{"backend", "Server-side implementation and API design"},
	{"frontend", "UI implementation and user experience"},
	{"security", "Threat modeling and security review"},
	{"performance", "Profiling and optimization"},
	{"qa", "Test strategy and quality gates"},
	{"doc-master", "Documentation structure and writing"},
	{"analyzer", "Root-cause analysis of defects"},
}

// PersonasTool serves sp.list_personas: the catalog of available
// persona flavors.
type PersonasTool struct{}

// NewPersonasTool creates a PersonasTool.
func NewPersonasTool() *PersonasTool {
	return &PersonasTool{}
}

// Register adds sp.list_personas to the registry.
func (t *PersonasTool) Register(reg *tool.Registry) error {
	return reg.Register(tool.Descriptor{
		Name:        "sp.list_personas",
		Description: "List the available persona flavors and what each is for.",
	}, t.handle)
}

func (t *PersonasTool) handle(_ context.Context, _ map[string]any) (any, error) {
	lines := make([]string, len(personaCatalog))
	for i, p := range personaCatalog {
		lines[i] = fmt.Sprintf("%s: %s", p.Name, p.Description)
	}
	return lines, nil
}
