package lingocache

import (
	"fmt"
	"sync/atomic"
)

// Mode is the runtime operation mode consulted by the orchestrator on every
// request.
type Mode string

const (
	// ModeDisabled always returns source text with no cache or provider access.
	ModeDisabled Mode = "disabled"
	// ModeMock returns a deterministically-marked placeholder without calling
	// the provider.
	ModeMock Mode = "mock"
	// ModeCacheOnly reads the cache but never calls the provider; a miss
	// falls back to source text.
	ModeCacheOnly Mode = "cache_only"
	// ModeFull is the complete cache-then-provider behavior.
	ModeFull Mode = "full"
)

// ParseMode validates and normalizes a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDisabled, ModeMock, ModeCacheOnly, ModeFull:
		return Mode(s), nil
	case "":
		return ModeFull, nil
	default:
		return "", fmt.Errorf("unknown operation mode %q", s)
	}
}

// ModeGate holds the current operation mode as a snapshot that is re-read
// per request, so mode changes take effect without a restart.
type ModeGate struct {
	mode atomic.Value // Mode
}

// NewModeGate creates a gate with the given initial mode.
func NewModeGate(initial Mode) *ModeGate {
	g := &ModeGate{}
	g.mode.Store(initial)
	return g
}

// Current returns the mode in effect for this request.
func (g *ModeGate) Current() Mode {
	if m, ok := g.mode.Load().(Mode); ok {
		return m
	}
	return ModeFull
}

// Set switches the operation mode at runtime.
func (g *ModeGate) Set(m Mode) {
	g.mode.Store(m)
}
