// Package server wires the protocol core together and selects the
// runtime.
//
// This is the composition root: it creates the concrete stores,
// registers every tool provider with the registry in one explicit
// phase, and probes the primary runtime, degrading to the fallback
// server on the typed unavailability signal. No protocol logic lives
// here — only wiring.
package server

import (
	"fmt"
	"log"
	"os"

	"github.com/cdw0424/super-prompt/internal/config"
	"github.com/cdw0424/super-prompt/internal/events"
	"github.com/cdw0424/super-prompt/internal/protocol"
	"github.com/cdw0424/super-prompt/internal/runtime"
	"github.com/cdw0424/super-prompt/internal/tool"
	"github.com/cdw0424/super-prompt/internal/tools"
)

// Name is the server name reported in the initialize handshake.
const Name = "super-prompt"

// Version is set at build time via ldflags.
var Version = "dev"

// New builds the registry, opens the event store, and selects the
// runtime. The returned cleanup function closes the event store and is
// always non-nil and safe to call.
func New() (runtime.Handle, func(), error) {
	return newWithStore(config.NewFileStore())
}

// newWithStore is the injectable core of New, split out so tests can
// supply a settings store that does not touch the home directory.
func newWithStore(store config.Store) (runtime.Handle, func(), error) {
	logger := log.New(os.Stderr, "[super-prompt] ", log.LstdFlags)

	settings, err := store.Load()
	if err != nil {
		return nil, noop, fmt.Errorf("loading settings: %w", err)
	}

	// The event log is an independent collaborator: if it fails to
	// open, tool serving continues without invocation history.
	cleanup := noop
	var sink *events.Store
	evStore, evErr := events.Open(events.Config{DataDir: settings.DataDir})
	if evErr != nil {
		logger.Printf("WARNING: event log disabled: %v", evErr)
	} else {
		sink = evStore
		cleanup = func() {
			if err := evStore.Close(); err != nil {
				logger.Printf("WARNING: event store close: %v", err)
			}
		}
	}

	reg, err := buildRegistry(store, sink)
	if err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("registering tools: %w", err)
	}

	mode, handle, err := runtime.Select(
		primaryProbe(reg, settings, sink),
		fallbackProbe(reg, sink),
		logger,
	)
	if err != nil {
		cleanup()
		return nil, noop, err
	}

	logger.Printf("serving %d tools in %s mode", reg.Len(), mode)
	return handle, cleanup, nil
}

// buildRegistry runs the single registration phase. All providers are
// passed explicitly; registration order is the tools/list order.
func buildRegistry(store config.Store, sink *events.Store) (*tool.Registry, error) {
	var statsLog events.Log
	if sink != nil {
		statsLog = sink
	}

	reg := tool.NewRegistry()
	err := tools.RegisterAll(reg,
		tools.NewVersionTool(Version),
		tools.NewPersonasTool(),
		tools.NewModeGetTool(store),
		tools.NewModeSetTool(store),
		tools.NewStatsTool(statsLog),
	)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// fallbackProbe constructs the line-delimited fallback server bound to
// the registry. Construction cannot currently fail, but the probe
// keeps the error return so the selector's fatal path stays honest.
func fallbackProbe(reg *tool.Registry, sink *events.Store) runtime.Probe {
	return func() (runtime.Handle, error) {
		opts := []protocol.Option{
			protocol.WithServerInfo(Name, Version),
		}
		if sink != nil {
			opts = append(opts, protocol.WithSink(sink))
		}
		return protocol.NewServer(reg, opts...), nil
	}
}

// noop is the default cleanup when the event store never opened.
func noop() {}
