package tools

import (
	"context"
	"fmt"

	"github.com/cdw0424/super-prompt/internal/events"
	"github.com/cdw0424/super-prompt/internal/tool"
)

// StatsTool serves sp.stats: recent tool invocations from the event
// log. It is nil-safe — when the event store failed to open, the tool
// still registers and reports that the log is disabled.
type StatsTool struct {
	log events.Log
}

// NewStatsTool creates a StatsTool reading from the given log, which
// may be nil.
func NewStatsTool(log events.Log) *StatsTool {
	return &StatsTool{log: log}
}

// Register adds sp.stats to the registry.
func (t *StatsTool) Register(reg *tool.Registry) error {
	return reg.Register(tool.Descriptor{
		Name:        "sp.stats",
		Description: "Show the most recent tool invocations recorded in the event log.",
		Schema: tool.NewSchema().
			Optional("limit", "Maximum number of events to return", 10),
	}, t.handle)
}

func (t *StatsTool) handle(_ context.Context, args map[string]any) (any, error) {
	if t.log == nil {
		return "event log disabled", nil
	}

	limit := 10
	if v, ok := args["limit"].(float64); ok {
		limit = int(v)
	}

	recent, err := t.log.Recent(limit)
	if err != nil {
		return nil, fmt.Errorf("reading event log: %w", err)
	}
	if len(recent) == 0 {
		return "no tool calls recorded yet", nil
	}

	lines := make([]string, len(recent))
	for i, e := range recent {
		lines[i] = fmt.Sprintf("%s  %s", e.CreatedAt, e.Tool)
	}
	return lines, nil
}
