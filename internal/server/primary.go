package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/cdw0424/super-prompt/internal/config"
	"github.com/cdw0424/super-prompt/internal/content"
	"github.com/cdw0424/super-prompt/internal/events"
	"github.com/cdw0424/super-prompt/internal/runtime"
	"github.com/cdw0424/super-prompt/internal/tool"
)

// primaryProbe attempts to construct the primary runtime: an mcp-go
// stdio server with every registry tool mounted through an adapter.
// When the settings force the fallback path, the probe reports the
// typed unavailability signal instead of failing startup.
func primaryProbe(reg *tool.Registry, settings config.Settings, store *events.Store) runtime.Probe {
	// A nil *events.Store must become a nil interface, not a non-nil
	// interface holding a nil pointer.
	var sink events.Sink
	if store != nil {
		sink = store
	}
	return func() (runtime.Handle, error) {
		if settings.ForceFallback {
			return nil, fmt.Errorf("force_fallback is set: %w", runtime.ErrUnavailable)
		}

		s := mcpserver.NewMCPServer(
			Name,
			Version,
			mcpserver.WithToolCapabilities(false),
			mcpserver.WithPromptCapabilities(false),
			mcpserver.WithRecovery(),
		)
		for _, d := range reg.List() {
			_, handler, err := reg.Lookup(d.Name)
			if err != nil {
				return nil, fmt.Errorf("mounting tool %s: %w", d.Name, err)
			}
			s.AddTool(toMCPTool(d), adaptHandler(d, handler, sink))
		}
		return primaryHandle{srv: s}, nil
	}
}

// primaryHandle runs the mcp-go stdio transport.
type primaryHandle struct {
	srv *mcpserver.MCPServer
}

// Serve blocks on the stdio transport. The SDK manages its own
// lifecycle and returns on EOF; ctx is unused, matching ServeStdio.
func (h primaryHandle) Serve(_ context.Context) error {
	return mcpserver.ServeStdio(h.srv)
}

// toMCPTool renders a descriptor as an mcp-go tool definition. The
// declared schema is marshaled once here; schema-less tools get a bare
// definition.
func toMCPTool(d tool.Descriptor) mcp.Tool {
	var t mcp.Tool
	if d.Schema == nil {
		t = mcp.NewTool(d.Name, mcp.WithDescription(d.Description))
	} else {
		raw, err := json.Marshal(d.Schema)
		if err != nil {
			// Schema marshaling is pure data over plain types and
			// cannot fail for any builder-produced schema.
			raw = json.RawMessage(`{"type":"object"}`)
		}
		t = mcp.NewToolWithRawSchema(d.Name, d.Description, raw)
	}
	t.Annotations.DestructiveHint = mcp.ToBoolPtr(d.Destructive)
	t.Annotations.ReadOnlyHint = mcp.ToBoolPtr(!d.Destructive)
	return t
}

// adaptHandler bridges a registry handler to the mcp-go call
// signature: bind arguments, invoke, normalize the result into text
// content, and notify the sink. Handler failures become tool-level
// errors, never transport errors.
func adaptHandler(d tool.Descriptor, h tool.Handler, sink events.Sink) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		if err := d.Bind(args); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		value, err := h(ctx, args)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("%s: %v", d.Name, err)), nil
		}

		if sink != nil {
			sink.RecordToolCall(d.Name)
		}

		items := content.Normalize(value)
		result := &mcp.CallToolResult{}
		for _, it := range items {
			result.Content = append(result.Content, mcp.NewTextContent(it.Text))
		}
		return result, nil
	}
}
