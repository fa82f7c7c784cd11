package protocol

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/cdw0424/super-prompt/internal/content"
	"github.com/cdw0424/super-prompt/internal/tool"
)

// ProtocolVersion is the MCP protocol revision this server declares
// in its initialize response.
const ProtocolVersion = "2024-11-05"

// maxLineBytes bounds a single incoming message.
const maxLineBytes = 4 * 1024 * 1024

// Sink observes successful tool calls. Recording is fire-and-forget:
// implementations must not block, and the server guards the call so a
// misbehaving sink can never fail the response path.
type Sink interface {
	RecordToolCall(tool string)
}

// Server is the fallback protocol server. It reads line-delimited
// JSON-RPC messages, dispatches against a registry built before the
// loop starts, and writes one response line per request. The loop is
// strictly sequential: one message is fully handled before the next is
// read, so responses are emitted in request order.
type Server struct {
	reg      *tool.Registry
	name     string
	version  string
	in       io.Reader
	out      io.Writer
	sink     Sink
	logger   *log.Logger
	handlers map[string]methodHandler
}

// methodHandler produces either a result or a protocol error for one
// method. The dispatch table is fixed at construction; unknown methods
// fall through to the method-not-found branch.
type methodHandler func(ctx context.Context, params json.RawMessage) (any, *Error)

// Option configures a Server.
type Option func(*Server)

// WithIO overrides the transport streams (stdin/stdout by default).
func WithIO(in io.Reader, out io.Writer) Option {
	return func(s *Server) {
		s.in = in
		s.out = out
	}
}

// WithServerInfo sets the name and version reported by initialize.
func WithServerInfo(name, version string) Option {
	return func(s *Server) {
		s.name = name
		s.version = version
	}
}

// WithSink attaches a tool-call observer.
func WithSink(sink Sink) Option {
	return func(s *Server) {
		s.sink = sink
	}
}

// WithLogger overrides the diagnostic logger (stderr by default).
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a fallback server bound to the given registry.
func NewServer(reg *tool.Registry, opts ...Option) *Server {
	s := &Server{
		reg:     reg,
		name:    "super-prompt",
		version: "dev",
		in:      os.Stdin,
		out:     os.Stdout,
		logger:  log.New(os.Stderr, "[super-prompt] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.handlers = map[string]methodHandler{
		"initialize":   s.handleInitialize,
		"ping":         s.handlePing,
		"tools/list":   s.handleToolsList,
		"tools/call":   s.handleToolsCall,
		"prompts/list": s.handlePromptsList,
		"prompts/get":  s.handlePromptsGet,
	}
	return s
}

// Serve runs the message loop until EOF on the input stream or context
// cancellation. Reading happens on a separate goroutine purely so the
// loop can observe ctx.Done(); there is never more than one message in
// flight.
func (s *Server) Serve(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("reading protocol stream: %w", err)
					}
				default:
				}
				return nil
			}
			s.handleLine(ctx, line)
		}
	}
}

// handleLine processes one raw input line: parse, dispatch, write.
// Blank lines are skipped; unparseable lines get a parse error with a
// null id; notifications produce no output at all.
func (s *Server) handleLine(ctx context.Context, line string) {
	if strings.TrimSpace(line) == "" {
		return
	}

	var req Request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		s.write(errorResponse(nil, CodeParseError, "Parse error"))
		return
	}

	if req.IsNotification() {
		return
	}

	handler, ok := s.handlers[req.Method]
	if !ok {
		s.write(errorResponse(req.ID, CodeMethodNotFound, fmt.Sprintf("method not found: %s", req.Method)))
		return
	}

	result, rpcErr := handler(ctx, req.Params)
	if rpcErr != nil {
		s.write(errorResponse(req.ID, rpcErr.Code, rpcErr.Message))
		return
	}
	s.write(successResponse(req.ID, result))
}

// write serializes a response as a single line and emits it
// immediately. Marshal failure here would corrupt the stream, so it is
// downgraded to an internal error response built from plain structs
// that cannot fail to serialize.
func (s *Server) write(resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.logger.Printf("ERROR: marshaling response: %v", err)
		data, _ = json.Marshal(errorResponse(resp.ID, CodeToolError, "internal serialization error"))
	}
	if _, err := fmt.Fprintf(s.out, "%s\n", data); err != nil {
		s.logger.Printf("ERROR: writing response: %v", err)
	}
}

// ─── Method handlers ─────────────────────────────────────────────────────────

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type listChanged struct {
	ListChanged bool `json:"listChanged"`
}

type capabilities struct {
	Tools   listChanged `json:"tools"`
	Prompts listChanged `json:"prompts"`
}

type initializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	ServerInfo      serverInfo   `json:"serverInfo"`
	Capabilities    capabilities `json:"capabilities"`
}

func (s *Server) handleInitialize(_ context.Context, _ json.RawMessage) (any, *Error) {
	return initializeResult{
		ProtocolVersion: ProtocolVersion,
		ServerInfo:      serverInfo{Name: s.name, Version: s.version},
	}, nil
}

func (s *Server) handlePing(_ context.Context, _ json.RawMessage) (any, *Error) {
	return struct{}{}, nil
}

type toolEntry struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	InputSchema *tool.Schema `json:"inputSchema,omitempty"`
}

type toolsListResult struct {
	Tools []toolEntry `json:"tools"`
}

func (s *Server) handleToolsList(_ context.Context, _ json.RawMessage) (any, *Error) {
	descriptors := s.reg.List()
	entries := make([]toolEntry, 0, len(descriptors))
	for _, d := range descriptors {
		entries = append(entries, toolEntry{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: d.Schema,
		})
	}
	return toolsListResult{Tools: entries}, nil
}

type callParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

type callResult struct {
	Content []content.Item `json:"content"`
}

func (s *Server) handleToolsCall(ctx context.Context, params json.RawMessage) (any, *Error) {
	var p callParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, &Error{Code: CodeInvalidParams, Message: fmt.Sprintf("invalid tools/call params: %v", err)}
		}
	}
	if p.Name == "" {
		return nil, &Error{Code: CodeInvalidParams, Message: "tools/call requires a tool name"}
	}

	desc, handler, err := s.reg.Lookup(p.Name)
	if err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: fmt.Sprintf("unknown tool: %s", p.Name)}
	}

	if err := desc.Bind(p.Arguments); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}

	value, err := handler(ctx, p.Arguments)
	if err != nil {
		if errors.Is(err, tool.ErrBadArguments) {
			return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
		}
		return nil, &Error{Code: CodeToolError, Message: fmt.Sprintf("%s: %v", desc.Name, err)}
	}

	s.record(desc.Name)
	return callResult{Content: content.Normalize(value)}, nil
}

type promptsListResult struct {
	Prompts []any `json:"prompts"`
}

func (s *Server) handlePromptsList(_ context.Context, _ json.RawMessage) (any, *Error) {
	return promptsListResult{Prompts: []any{}}, nil
}

func (s *Server) handlePromptsGet(_ context.Context, _ json.RawMessage) (any, *Error) {
	return nil, &Error{Code: CodeMethodNotFound, Message: "prompt not found"}
}

// record notifies the sink of a successful call. A panicking sink is
// contained here so it cannot take down the response path.
func (s *Server) record(name string) {
	if s.sink == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("WARNING: event sink panic: %v", r)
		}
	}()
	s.sink.RecordToolCall(name)
}
