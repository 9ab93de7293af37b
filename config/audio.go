package config

// SoundID represents a logical sound effect
type SoundID int

const (
	SoundNone SoundID = iota
	SoundJump
	SoundLand
	SoundSpawn
	SoundRelease
	SoundExplosion
)

// ToneDef describes a synthesized blip: a frequency sweep with a linear
// fade out. There are no sample files, every effect is generated at startup.
type ToneDef struct {
	StartHz  float64
	EndHz    float64
	Duration float64 // seconds
	Square   bool    // square wave instead of sine
}

// AudioConfig contains audio-related configuration values
type AudioConfig struct {
	SampleRate    int     `toml:"sample_rate"`
	DefaultSFXVol float64 `toml:"default_sfx_volume"`
	MaxVoices     int     `toml:"max_voices"` // concurrent SFX players kept alive
}

// SoundConfig maps sound IDs to their synthesized tones. Files optionally
// replaces a tone with a wav or ogg file on disk.
type SoundConfig struct {
	Tones             map[SoundID]ToneDef
	Files             map[SoundID]string
	VolumeMultipliers map[SoundID]float64
}

var Audio AudioConfig
var Sound SoundConfig

func init() {
	Audio = AudioConfig{
		SampleRate:    44100,
		DefaultSFXVol: 0.6,
		MaxVoices:     8,
	}

	Sound = SoundConfig{
		Tones: map[SoundID]ToneDef{
			SoundJump:      {StartHz: 330, EndHz: 660, Duration: 0.12},
			SoundLand:      {StartHz: 180, EndHz: 90, Duration: 0.08, Square: true},
			SoundSpawn:     {StartHz: 880, EndHz: 1320, Duration: 0.05},
			SoundRelease:   {StartHz: 660, EndHz: 440, Duration: 0.05},
			SoundExplosion: {StartHz: 120, EndHz: 40, Duration: 0.3, Square: true},
		},
		Files: map[SoundID]string{},
		VolumeMultipliers: map[SoundID]float64{
			SoundLand:      0.8,
			SoundExplosion: 1.3,
		},
	}
}
