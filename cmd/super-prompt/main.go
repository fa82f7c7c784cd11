// super-prompt: persona tool MCP server
//
// A universal MCP server exposing the sp.* tool set to any AI coding
// tool (Claude Code, OpenCode, Gemini CLI, Codex, Cursor) over stdio.
// When the SDK transport is disabled it degrades to a minimal
// line-delimited JSON-RPC server speaking the same tool surface.
//
// Usage:
//
//	super-prompt serve     # Start the MCP server (stdio transport)
//	super-prompt version   # Print the version
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	spserver "github.com/cdw0424/super-prompt/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("super-prompt v%s\n", spserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	handle, cleanup, err := spserver.New()
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Graceful shutdown on interrupt. The fallback server returns on
	// cancellation; the SDK transport manages its own lifecycle.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	if err := handle.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `super-prompt v%s — persona tool MCP server

Usage:
  super-prompt serve     Start the MCP server (stdio transport)
  super-prompt version   Print the version

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "super-prompt": {
        "command": "super-prompt",
        "args": ["serve"]
      }
    }
  }

Settings live in ~/.super-prompt/config.yaml.
`, spserver.Version)
}
