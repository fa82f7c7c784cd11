// Package protocol implements the fallback JSON-RPC server: one JSON
// object per line on stdin, one per line on stdout, a fixed method
// dispatch table, and nothing on stdout that is not a complete JSON
// line. Diagnostics go to stderr only.
package protocol

import (
	"bytes"
	"encoding/json"
)

// JSON-RPC error codes used by this server.
const (
	CodeParseError     = -32700
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeToolError      = -32000
)

const jsonRPCVersion = "2.0"

// Request is the incoming message envelope. ID and Params stay raw so
// the id can be echoed byte-exactly and params decoded per method.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

var nullLiteral = []byte("null")

// IsNotification reports whether the message must never receive a
// response: a declared 2.0 envelope with an absent or null id.
func (r *Request) IsNotification() bool {
	return r.JSONRPC == jsonRPCVersion && (len(r.ID) == 0 || bytes.Equal(r.ID, nullLiteral))
}

// Response is the outgoing message envelope. Exactly one of Result and
// Error is set; a nil ID serializes as null.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is the JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func successResponse(id json.RawMessage, result any) Response {
	return Response{JSONRPC: jsonRPCVersion, ID: id, Result: result}
}

func errorResponse(id json.RawMessage, code int, message string) Response {
	return Response{JSONRPC: jsonRPCVersion, ID: id, Error: &Error{Code: code, Message: message}}
}
