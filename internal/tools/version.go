package tools

import (
	"context"

	"github.com/cdw0424/super-prompt/internal/tool"
)

// VersionTool serves sp.version: the running server version.
type VersionTool struct {
	version string
}

// NewVersionTool creates a VersionTool reporting the given version.
func NewVersionTool(version string) *VersionTool {
	return &VersionTool{version: version}
}

// Register adds sp.version to the registry. The tool takes no input,
// so no schema is declared.
func (t *VersionTool) Register(reg *tool.Registry) error {
	return reg.Register(tool.Descriptor{
		Name:        "sp.version",
		Description: "Report the super-prompt server version.",
	}, t.handle)
}

func (t *VersionTool) handle(_ context.Context, _ map[string]any) (any, error) {
	return "super-prompt v" + t.version, nil
}
