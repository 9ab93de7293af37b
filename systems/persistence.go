package systems

import (
	"encoding/json"

	"github.com/automoto/doomkit/components"
	cfg "github.com/automoto/doomkit/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata"
	"go.uber.org/zap"
)

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	SFXVolume    float64 `json:"sfxVolume"`
	Fullscreen   bool    `json:"fullscreen"`
	CameraMode   string  `json:"cameraMode"`
	ShakeEnabled bool    `json:"shakeEnabled"`
	Zoom         float64 `json:"zoom"`
}

const settingsKey = "settings"

var (
	gdataManager *gdata.Manager
	persistLog   = zap.NewNop()
)

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence(appName string, logger *zap.Logger) error {
	if logger != nil {
		persistLog = logger
	}
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		persistLog.Warn("could not initialize persistence", zap.Error(err))
		return err
	}
	gdataManager = m
	return nil
}

// LoadSettings loads settings from disk. A missing store or item is not an
// error; it returns nil settings.
func LoadSettings() (*SavedSettings, error) {
	if gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem(settingsKey)
	if err != nil {
		persistLog.Warn("could not load settings", zap.Error(err))
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}
	return DecodeSettings(data)
}

// DecodeSettings parses stored settings, filling gaps from config.
func DecodeSettings(data []byte) (*SavedSettings, error) {
	settings := DefaultSavedSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		persistLog.Warn("could not parse saved settings", zap.Error(err))
		return nil, err
	}
	if _, ok := cfg.ParseFollowMode(settings.CameraMode); !ok {
		settings.CameraMode = cfg.Camera.Mode
	}
	settings.SFXVolume = clampUnit(settings.SFXVolume)
	return settings, nil
}

// DefaultSavedSettings mirrors the built-in configuration.
func DefaultSavedSettings() *SavedSettings {
	return &SavedSettings{
		SFXVolume:    cfg.Audio.DefaultSFXVol,
		CameraMode:   cfg.Camera.Mode,
		ShakeEnabled: true,
	}
}

// SaveSettings saves settings to disk
func SaveSettings(s *SavedSettings) error {
	if gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		persistLog.Warn("could not serialize settings", zap.Error(err))
		return err
	}

	if err := gdataManager.SaveItem(settingsKey, data); err != nil {
		persistLog.Warn("could not save settings", zap.Error(err))
		return err
	}
	return nil
}

// SaveCurrentSettings saves the live settings component.
func SaveCurrentSettings(s *components.SettingsData) {
	_ = SaveSettings(ToSaved(s))
}

func ToSaved(s *components.SettingsData) *SavedSettings {
	return &SavedSettings{
		SFXVolume:    s.SFXVolume,
		Fullscreen:   s.Fullscreen,
		CameraMode:   s.CameraMode.String(),
		ShakeEnabled: s.ShakeEnabled,
		Zoom:         s.Zoom,
	}
}

// ApplySavedSettingsGlobal applies settings before any session exists.
func ApplySavedSettingsGlobal(saved *SavedSettings) {
	if saved == nil {
		return
	}
	globalSFXVolume = saved.SFXVolume
	ebiten.SetFullscreen(saved.Fullscreen)
	loadedSettings = saved
}

// loadedSettings seeds the settings component of each new session.
var loadedSettings *SavedSettings

func clampUnit(v float64) float64 {
	return max(0, min(1, v))
}
