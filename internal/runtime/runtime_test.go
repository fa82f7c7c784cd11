package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"testing"
)

type stubHandle string

func (stubHandle) Serve(context.Context) error { return nil }

func probeOK(name string) Probe {
	return func() (Handle, error) { return stubHandle(name), nil }
}

func probeErr(err error) Probe {
	return func() (Handle, error) { return nil, err }
}

func TestSelect_PrimaryAvailable(t *testing.T) {
	mode, handle, err := Select(probeOK("primary"), probeOK("fallback"), nil)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if mode != ModePrimary {
		t.Errorf("mode = %s, want primary", mode)
	}
	if handle != stubHandle("primary") {
		t.Errorf("handle = %v, want primary", handle)
	}
}

func TestSelect_UnavailableDegradesToFallback(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	probe := probeErr(fmt.Errorf("sdk disabled: %w", ErrUnavailable))
	mode, handle, err := Select(probe, probeOK("fallback"), logger)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if mode != ModeFallback {
		t.Errorf("mode = %s, want fallback", mode)
	}
	if handle != stubHandle("fallback") {
		t.Errorf("handle = %v, want fallback", handle)
	}
	if !strings.Contains(buf.String(), "fallback") {
		t.Errorf("degradation should be logged, got %q", buf.String())
	}
}

// Only the typed unavailability signal degrades; any other primary
// failure is fatal.
func TestSelect_OtherPrimaryErrorIsFatal(t *testing.T) {
	boom := errors.New("transport exploded")
	_, _, err := Select(probeErr(boom), probeOK("fallback"), nil)
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped %v", err, boom)
	}
}

func TestSelect_FallbackFailureIsFatal(t *testing.T) {
	boom := errors.New("fallback construction failed")
	probe := probeErr(fmt.Errorf("probe: %w", ErrUnavailable))
	_, _, err := Select(probe, probeErr(boom), nil)
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped %v", err, boom)
	}
}

func TestSelect_NilLoggerDoesNotPanic(t *testing.T) {
	probe := probeErr(fmt.Errorf("probe: %w", ErrUnavailable))
	if _, _, err := Select(probe, probeOK("fallback"), nil); err != nil {
		t.Fatalf("select: %v", err)
	}
}
