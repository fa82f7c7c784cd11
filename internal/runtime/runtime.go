// Package runtime selects between the primary protocol engine and the
// fallback server. The decision is made exactly once per process: the
// primary is probed, and only the typed unavailability signal degrades
// to the fallback — any other probe failure is fatal.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// Mode identifies which runtime serves the process.
type Mode string

const (
	ModePrimary  Mode = "primary"
	ModeFallback Mode = "fallback"
)

// ErrUnavailable is the capability-absence signal. A primary probe
// returns it (usually wrapped) to request graceful degradation to the
// fallback server, as opposed to failing startup outright. This
// replaces any matching on error message text: callers check it with
// errors.Is.
var ErrUnavailable = errors.New("primary runtime unavailable")

// Handle is a selected runtime ready to serve.
type Handle interface {
	Serve(ctx context.Context) error
}

// Probe attempts to construct one runtime.
type Probe func() (Handle, error)

// Select evaluates the primary probe and, on ErrUnavailable, the
// fallback probe. A fallback construction failure is fatal: it is the
// one case with no further degradation. The logger receives the
// degradation notice; it must write to stderr, never stdout.
func Select(primary, fallback Probe, logger *log.Logger) (Mode, Handle, error) {
	handle, err := primary()
	if err == nil {
		return ModePrimary, handle, nil
	}
	if !errors.Is(err, ErrUnavailable) {
		return "", nil, fmt.Errorf("acquiring primary runtime: %w", err)
	}

	if logger != nil {
		logger.Printf("WARNING: %v; starting fallback server", err)
	}

	handle, err = fallback()
	if err != nil {
		return "", nil, fmt.Errorf("constructing fallback server: %w", err)
	}
	return ModeFallback, handle, nil
}
