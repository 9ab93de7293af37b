package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalid is returned when an override file produces unusable values.
var ErrInvalid = errors.New("invalid configuration")

// fileConfig mirrors the global sections in a TOML document. Missing tables
// and keys keep whatever value the section already had.
type fileConfig struct {
	Game          Config              `toml:"game"`
	Pool          PoolConfig          `toml:"pool"`
	Tween         TweenConfig         `toml:"tween"`
	Camera        CameraConfig        `toml:"camera"`
	ScreenShake   ScreenShakeConfig   `toml:"screen_shake"`
	Motion        MotionConfig        `toml:"motion"`
	Physics       PhysicsConfig       `toml:"physics"`
	Player        PlayerConfig        `toml:"player"`
	SquashStretch SquashStretchConfig `toml:"squash_stretch"`
	Logging       LoggingConfig       `toml:"logging"`
	Debug         DebugConfig         `toml:"debug"`
	Audio         AudioConfig         `toml:"audio"`
}

func snapshot() fileConfig {
	return fileConfig{
		Game:          *C,
		Pool:          Pool,
		Tween:         Tween,
		Camera:        Camera,
		ScreenShake:   ScreenShake,
		Motion:        Motion,
		Physics:       Physics,
		Player:        Player,
		SquashStretch: SquashStretch,
		Logging:       Logging,
		Debug:         Debug,
		Audio:         Audio,
	}
}

func (f *fileConfig) apply() {
	*C = f.Game
	Pool = f.Pool
	Tween = f.Tween
	Camera = f.Camera
	ScreenShake = f.ScreenShake
	Motion = f.Motion
	Physics = f.Physics
	Player = f.Player
	SquashStretch = f.SquashStretch
	Logging = f.Logging
	Debug = f.Debug
	Audio = f.Audio
}

// LoadOverrides reads a TOML file and layers it over the current settings.
// Nothing is changed when the file fails to parse or validate.
func LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := ApplyOverrides(data); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// ApplyOverrides layers a TOML document over the current settings.
func ApplyOverrides(data []byte) error {
	cfg := snapshot()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	cfg.apply()
	return nil
}

func (f *fileConfig) validate() error {
	p := f.Pool
	if p.DefaultMaxSize <= 0 {
		return fmt.Errorf("%w: pool.default_max_size must be positive", ErrInvalid)
	}
	if p.DefaultInitialSize < 0 || p.DefaultInitialSize > p.DefaultMaxSize {
		return fmt.Errorf("%w: pool.default_initial_size %d outside [0, %d]", ErrInvalid, p.DefaultInitialSize, p.DefaultMaxSize)
	}
	if p.PreloadBatch <= 0 {
		return fmt.Errorf("%w: pool.preload_batch must be positive", ErrInvalid)
	}
	c := f.Camera
	if c.MinSize <= 0 || c.MinSize > c.MaxSize {
		return fmt.Errorf("%w: camera size range [%g, %g]", ErrInvalid, c.MinSize, c.MaxSize)
	}
	if _, ok := ParseFollowMode(c.Mode); !ok {
		return fmt.Errorf("%w: camera.mode %q", ErrInvalid, c.Mode)
	}
	if f.Motion.MaxJumps < 1 {
		return fmt.Errorf("%w: motion.max_jumps must be at least 1", ErrInvalid)
	}
	if f.Physics.TicksPerSecond <= 0 {
		return fmt.Errorf("%w: physics.ticks_per_second must be positive", ErrInvalid)
	}
	return nil
}

// FollowModeID selects how the camera approaches its target
type FollowModeID int

const (
	FollowInstant FollowModeID = iota
	FollowSmooth
	FollowLinear
	FollowDeadZone
)

var followModeNames = map[string]FollowModeID{
	"instant":  FollowInstant,
	"smooth":   FollowSmooth,
	"linear":   FollowLinear,
	"deadzone": FollowDeadZone,
}

// ParseFollowMode maps a config string onto a follow mode.
func ParseFollowMode(s string) (FollowModeID, bool) {
	m, ok := followModeNames[strings.ToLower(strings.TrimSpace(s))]
	return m, ok
}

func (m FollowModeID) String() string {
	for name, id := range followModeNames {
		if id == m {
			return name
		}
	}
	return fmt.Sprintf("FollowModeID(%d)", int(m))
}
