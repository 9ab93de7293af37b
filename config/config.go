package config

import (
	"image/color"

	"github.com/yohamta/donburi/ecs"
)

// PoolConfig contains object pool defaults and maintenance settings
type PoolConfig struct {
	DefaultInitialSize int     `toml:"default_initial_size"`
	DefaultMaxSize     int     `toml:"default_max_size"`
	DefaultAutoExpand  bool    `toml:"default_auto_expand"`
	PreloadBatch       int     `toml:"preload_batch"`   // instances built per preload step
	ShrinkInterval     float64 `toml:"shrink_interval"` // seconds between shrink passes (0 = never)
	KeepFloor          int     `toml:"keep_floor"`      // idle instances always kept by a shrink pass
}

// TweenConfig contains animation coordinator defaults
type TweenConfig struct {
	PopInDuration   float64 `toml:"pop_in_duration"`
	PopInOvershoot  float64 `toml:"pop_in_overshoot"`
	PulseScale      float64 `toml:"pulse_scale"`
	PulsePeriod     float64 `toml:"pulse_period"`
	ShakeSteps      int     `toml:"shake_steps"` // position jitters per shake recipe
	UIShowDuration  float64 `toml:"ui_show_duration"`
	UIHideDuration  float64 `toml:"ui_hide_duration"`
	UIHiddenScale   float64 `toml:"ui_hidden_scale"`
	SquashDuration  float64 `toml:"squash_duration"`
	HitGroup        string  `toml:"hit_group"`
	UIGroup         string  `toml:"ui_group"`
	EffectsGroup    string  `toml:"effects_group"`
	CameraGroup     string  `toml:"camera_group"`
	SpawnFadeSecond float64 `toml:"spawn_fade_seconds"`
}

// CameraConfig contains follow camera behavior configuration.
// Distances are world units (pixels at size == DefaultSize), times are seconds.
type CameraConfig struct {
	Mode                string  `toml:"mode"` // "instant", "smooth", "linear", "deadzone"
	OffsetX             float64 `toml:"offset_x"`
	OffsetY             float64 `toml:"offset_y"`
	SmoothTime          float64 `toml:"smooth_time"` // settle time for smooth follow
	LinearRate          float64 `toml:"linear_rate"` // exponential approach rate per second
	DeadZoneWidth       float64 `toml:"dead_zone_width"`
	DeadZoneHeight      float64 `toml:"dead_zone_height"`
	PredictionTime      float64 `toml:"prediction_time"`
	PredictionInfluence float64 `toml:"prediction_influence"` // 0..1
	BoundsPadding       float64 `toml:"bounds_padding"`
	MaxShakeIntensity   float64 `toml:"max_shake_intensity"`
	ShakeFrequency      float64 `toml:"shake_frequency"` // oscillations per second
	DefaultSize         float64 `toml:"default_size"`    // visible half-height
	MinSize             float64 `toml:"min_size"`
	MaxSize             float64 `toml:"max_size"`
	Aspect              float64 `toml:"aspect"` // viewport width / height
}

// ScreenShakeConfig contains gameplay screen shake presets
type ScreenShakeConfig struct {
	LandIntensity      float64 `toml:"land_intensity"`
	LandDuration       float64 `toml:"land_duration"`
	LandMinFallSpeed   float64 `toml:"land_min_fall_speed"` // fall speed below which landing does not shake
	ExplosionIntensity float64 `toml:"explosion_intensity"`
	ExplosionDuration  float64 `toml:"explosion_duration"`
	ExplosionRadius    float64 `toml:"explosion_radius"`
}

// MotionConfig contains actor motion controller tuning.
// Speeds are pixels per second, accelerations pixels per second squared.
type MotionConfig struct {
	MoveSpeed         float64 `toml:"move_speed"`
	Acceleration      float64 `toml:"acceleration"`
	Deceleration      float64 `toml:"deceleration"`
	AirControl        float64 `toml:"air_control"` // multiplier on accel/decel while airborne
	JumpForce         float64 `toml:"jump_force"`
	JumpCutMultiplier float64 `toml:"jump_cut_multiplier"`
	MaxJumps          int     `toml:"max_jumps"`
	CoyoteTime        float64 `toml:"coyote_time"`
	JumpBufferTime    float64 `toml:"jump_buffer_time"`
	FlipWithInput     bool    `toml:"flip_with_input"`
}

// PhysicsConfig contains physics integration values
type PhysicsConfig struct {
	Gravity        float64 `toml:"gravity"`
	MaxFallSpeed   float64 `toml:"max_fall_speed"`
	GroundProbe    float64 `toml:"ground_probe"` // distance below the feet checked for ground
	SpaceCellSize  int     `toml:"space_cell_size"`
	TicksPerSecond int     `toml:"ticks_per_second"`
}

// PlayerConfig contains player actor dimensions and presentation
type PlayerConfig struct {
	CollisionWidth  float64    `toml:"collision_width"`
	CollisionHeight float64    `toml:"collision_height"`
	Color           color.RGBA `toml:"-"`
}

// SquashStretchConfig contains squash/stretch effect configuration
type SquashStretchConfig struct {
	JumpScaleX float64 `toml:"jump_scale_x"` // horizontal scale on jump (< 1 = narrower)
	JumpScaleY float64 `toml:"jump_scale_y"` // vertical scale on jump (> 1 = taller)
	LandScaleX float64 `toml:"land_scale_x"` // horizontal scale on land (> 1 = wider)
	LandScaleY float64 `toml:"land_scale_y"` // vertical scale on land (< 1 = shorter)
}

// LoggingConfig selects the zap encoder and level
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// PauseConfig contains pause overlay presentation
type PauseConfig struct {
	OverlayColor color.RGBA
	TextColor    color.RGBA
	Label        string
	Hint         string
}

// Config holds general game configuration
type Config struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Global configuration instances
var C *Config
var Pool PoolConfig
var Tween TweenConfig
var Camera CameraConfig
var ScreenShake ScreenShakeConfig
var Motion MotionConfig
var Physics PhysicsConfig
var Player PlayerConfig
var SquashStretch SquashStretchConfig
var Logging LoggingConfig
var Debug DebugConfig
var Pause PauseConfig

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	Overlay bool `toml:"overlay"` // draw pool stats and collision boxes
}

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Orange       = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	BrightOrange = color.RGBA{R: 255, G: 180, B: 50, A: 255}
	LightBlue    = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	Grey         = color.RGBA{R: 100, G: 100, B: 100, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 160}
	Background   = color.RGBA{R: 15, G: 25, B: 50, A: 255}
)

// Direction constants for actor facing
const (
	DirectionLeft  = -1.0
	DirectionRight = 1.0
)

// FixedDelta returns the length of one fixed simulation step in seconds.
func FixedDelta() float64 {
	if Physics.TicksPerSecond <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(Physics.TicksPerSecond)
}

func init() {
	C = &Config{
		Width:  640,
		Height: 360,
	}
	Reset()
}

// Reset restores every configuration section to its built-in defaults.
func Reset() {
	Pool = PoolConfig{
		DefaultInitialSize: 10,
		DefaultMaxSize:     100,
		DefaultAutoExpand:  true,
		PreloadBatch:       10,
		ShrinkInterval:     30,
		KeepFloor:          5,
	}

	Tween = TweenConfig{
		PopInDuration:   0.3,
		PopInOvershoot:  1.2,
		PulseScale:      1.1,
		PulsePeriod:     0.5,
		ShakeSteps:      6,
		UIShowDuration:  0.25,
		UIHideDuration:  0.2,
		UIHiddenScale:   0.8,
		SquashDuration:  0.15,
		HitGroup:        "Hit",
		UIGroup:         "UI",
		EffectsGroup:    "Effects",
		CameraGroup:     "Camera",
		SpawnFadeSecond: 0.2,
	}

	Camera = CameraConfig{
		Mode:                "smooth",
		OffsetX:             0,
		OffsetY:             -20,
		SmoothTime:          0.15,
		LinearRate:          6,
		DeadZoneWidth:       64,
		DeadZoneHeight:      48,
		PredictionTime:      0.2,
		PredictionInfluence: 0.5,
		BoundsPadding:       0,
		MaxShakeIntensity:   12,
		ShakeFrequency:      30,
		DefaultSize:         180, // half of the 360px logical height
		MinSize:             90,
		MaxSize:             360,
		Aspect:              16.0 / 9.0,
	}

	ScreenShake = ScreenShakeConfig{
		LandIntensity:      3.0,
		LandDuration:       0.15,
		LandMinFallSpeed:   600,
		ExplosionIntensity: 8.0,
		ExplosionDuration:  0.3,
		ExplosionRadius:    400,
	}

	Motion = MotionConfig{
		MoveSpeed:         360,
		Acceleration:      2700,
		Deceleration:      3600,
		AirControl:        0.6,
		JumpForce:         780,
		JumpCutMultiplier: 0.5,
		MaxJumps:          1,
		CoyoteTime:        0.1,
		JumpBufferTime:    0.1,
		FlipWithInput:     true,
	}

	Physics = PhysicsConfig{
		Gravity:        2400,
		MaxFallSpeed:   900,
		GroundProbe:    1,
		SpaceCellSize:  16,
		TicksPerSecond: 60,
	}

	Player = PlayerConfig{
		CollisionWidth:  16,
		CollisionHeight: 40,
		Color:           LightBlue,
	}

	SquashStretch = SquashStretchConfig{
		JumpScaleX: 0.7,
		JumpScaleY: 1.5,
		LandScaleX: 1.5,
		LandScaleY: 0.6,
	}

	Logging = LoggingConfig{
		Level:  "info",
		Format: "console",
	}

	Pause = PauseConfig{
		OverlayColor: BlackOverlay,
		TextColor:    BrightOrange,
		Label:        "PAUSED",
		Hint:         "Esc / P: Resume",
	}

	// Debug Config (defaults, can be overridden by CLI flags)
	Debug = DebugConfig{
		Overlay: false,
	}
}

// Default is the single render layer every entity is created on.
const Default ecs.LayerID = 0
