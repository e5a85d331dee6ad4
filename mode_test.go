package lingocache

import (
	"sync"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"disabled", ModeDisabled, false},
		{"mock", ModeMock, false},
		{"cache_only", ModeCacheOnly, false},
		{"full", ModeFull, false},
		{"", ModeFull, false},
		{"turbo", "", true},
		{"Full", "", true},
	}
	for _, tt := range tests {
		mode, err := ParseMode(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMode(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMode(%q): unexpected error %v", tt.input, err)
		}
		if mode != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.input, mode, tt.want)
		}
	}
}

func TestModeGate_SetAndCurrent(t *testing.T) {
	g := NewModeGate(ModeFull)
	if g.Current() != ModeFull {
		t.Errorf("expected initial mode full, got %q", g.Current())
	}
	g.Set(ModeCacheOnly)
	if g.Current() != ModeCacheOnly {
		t.Errorf("expected cache_only after Set, got %q", g.Current())
	}
}

func TestModeGate_ConcurrentAccess(t *testing.T) {
	g := NewModeGate(ModeFull)
	modes := []Mode{ModeDisabled, ModeMock, ModeCacheOnly, ModeFull}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			g.Set(modes[i%len(modes)])
			if m := g.Current(); m == "" {
				t.Error("gate returned an empty mode")
			}
		}(i)
	}
	wg.Wait()

	found := false
	for _, m := range modes {
		if g.Current() == m {
			found = true
		}
	}
	if !found {
		t.Errorf("final mode %q is not a known mode", g.Current())
	}
}
