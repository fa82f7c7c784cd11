package tools

import (
	"context"
	"fmt"

	"github.com/cdw0424/super-prompt/internal/config"
	"github.com/cdw0424/super-prompt/internal/tool"
)

// ModeGetTool serves sp.mode_get: the currently persisted LLM mode.
type ModeGetTool struct {
	store config.Store
}

// NewModeGetTool creates a ModeGetTool backed by the given store.
func NewModeGetTool(store config.Store) *ModeGetTool {
	return &ModeGetTool{store: store}
}

// Register adds sp.mode_get to the registry.
func (t *ModeGetTool) Register(reg *tool.Registry) error {
	return reg.Register(tool.Descriptor{
		Name:        "sp.mode_get",
		Description: "Show the current LLM mode (gpt or grok).",
	}, t.handle)
}

func (t *ModeGetTool) handle(_ context.Context, _ map[string]any) (any, error) {
	settings, err := t.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return fmt.Sprintf("LLM mode: %s", settings.Mode), nil
}

// ModeSetTool serves sp.mode_set: switch and persist the LLM mode.
type ModeSetTool struct {
	store config.Store
}

// NewModeSetTool creates a ModeSetTool backed by the given store.
func NewModeSetTool(store config.Store) *ModeSetTool {
	return &ModeSetTool{store: store}
}

// Register adds sp.mode_set to the registry. The tool persists state,
// so it is flagged destructive.
func (t *ModeSetTool) Register(reg *tool.Registry) error {
	return reg.Register(tool.Descriptor{
		Name:        "sp.mode_set",
		Description: "Switch the LLM mode and persist it to the config file.",
		Schema: tool.NewSchema().
			Required("mode", tool.TypeString, "Mode to activate: 'gpt' or 'grok'"),
		Destructive: true,
	}, t.handle)
}

func (t *ModeSetTool) handle(_ context.Context, args map[string]any) (any, error) {
	mode := config.Mode(args["mode"].(string))
	if !mode.Valid() {
		return nil, fmt.Errorf("unknown mode %q: must be 'gpt' or 'grok'", mode)
	}

	settings, err := t.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	settings.Mode = mode
	if err := t.store.Save(settings); err != nil {
		return nil, fmt.Errorf("saving settings: %w", err)
	}
	return fmt.Sprintf("LLM mode set to %s", mode), nil
}
