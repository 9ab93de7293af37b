package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestApplyOverridesKeepsUnsetKeys(t *testing.T) {
	Reset()
	defer Reset()

	doc := `
[pool]
default_max_size = 50

[camera]
mode = "deadzone"
dead_zone_width = 2.0

[motion]
coyote_time = 0.2
`
	if err := ApplyOverrides([]byte(doc)); err != nil {
		t.Fatalf("ApplyOverrides: %v", err)
	}
	if Pool.DefaultMaxSize != 50 {
		t.Errorf("DefaultMaxSize = %d, want 50", Pool.DefaultMaxSize)
	}
	if Pool.DefaultInitialSize != 10 {
		t.Errorf("DefaultInitialSize = %d, want untouched 10", Pool.DefaultInitialSize)
	}
	if Camera.Mode != "deadzone" || Camera.DeadZoneWidth != 2 {
		t.Errorf("camera = %q %f, want deadzone 2", Camera.Mode, Camera.DeadZoneWidth)
	}
	if Camera.DeadZoneHeight != 48 {
		t.Errorf("DeadZoneHeight = %f, want untouched 48", Camera.DeadZoneHeight)
	}
	if Motion.CoyoteTime != 0.2 {
		t.Errorf("CoyoteTime = %f, want 0.2", Motion.CoyoteTime)
	}
}

func TestApplyOverridesRejectsInvalidPoolSizes(t *testing.T) {
	Reset()
	defer Reset()

	err := ApplyOverrides([]byte("[pool]\ndefault_initial_size = 20\ndefault_max_size = 5\n"))
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	if Pool.DefaultMaxSize != 100 {
		t.Errorf("DefaultMaxSize = %d, want defaults kept after a rejected file", Pool.DefaultMaxSize)
	}
}

func TestApplyOverridesRejectsUnknownCameraMode(t *testing.T) {
	Reset()
	defer Reset()

	err := ApplyOverrides([]byte("[camera]\nmode = \"orbit\"\n"))
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestApplyOverridesParseError(t *testing.T) {
	Reset()
	defer Reset()

	err := ApplyOverrides([]byte("[pool\nbroken"))
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if errors.Is(err, ErrInvalid) {
		t.Errorf("parse failure should not be reported as ErrInvalid: %v", err)
	}
}

func TestLoadOverridesMissingFile(t *testing.T) {
	err := LoadOverrides(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}

func TestParseFollowMode(t *testing.T) {
	tests := []struct {
		in   string
		want FollowModeID
		ok   bool
	}{
		{"instant", FollowInstant, true},
		{" Smooth ", FollowSmooth, true},
		{"LINEAR", FollowLinear, true},
		{"deadzone", FollowDeadZone, true},
		{"orbit", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseFollowMode(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseFollowMode(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
