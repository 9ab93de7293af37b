package config

// SettingsConfig contains in-game settings controls
type SettingsConfig struct {
	VolumeSteps []float64
	ZoomStep    float64 // world units added or removed per zoom key press
	ZoomTime    float64 // seconds per zoom step
	SparkBurst  int     // sparks spawned per spark action
}

// Settings is the global settings configuration
var Settings SettingsConfig

func init() {
	Settings = SettingsConfig{
		VolumeSteps: []float64{0, 0.25, 0.5, 0.75, 1.0},
		ZoomStep:    30,
		ZoomTime:    0.25,
		SparkBurst:  8,
	}
}
