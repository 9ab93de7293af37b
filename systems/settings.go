package systems

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"

	"github.com/automoto/doomkit/camera"
	"github.com/automoto/doomkit/components"
	cfg "github.com/automoto/doomkit/config"
)

// GetOrCreateSettings returns the singleton Settings component, seeding it
// from config and from whatever was saved on disk.
func GetOrCreateSettings(e *ecs.ECS) *components.SettingsData {
	entry, ok := components.Settings.First(e.World)
	if ok {
		return components.Settings.Get(entry)
	}

	mode, _ := cfg.ParseFollowMode(cfg.Camera.Mode)
	settings := components.SettingsData{
		Debug:        cfg.Debug.Overlay,
		CameraMode:   mode,
		ShakeEnabled: true,
		SFXVolume:    globalSFXVolume,
	}
	if saved := loadedSettings; saved != nil {
		if m, ok := cfg.ParseFollowMode(saved.CameraMode); ok {
			settings.CameraMode = m
		}
		settings.ShakeEnabled = saved.ShakeEnabled
		settings.SFXVolume = saved.SFXVolume
		settings.Fullscreen = saved.Fullscreen
		settings.Zoom = saved.Zoom
	}

	entry = e.World.Entry(e.World.Create(components.Settings))
	components.Settings.SetValue(entry, settings)
	return components.Settings.Get(entry)
}

// UpdateSettings applies the debug and tuning hotkeys.
func UpdateSettings(e *ecs.ECS) {
	input := getOrCreateInput(e)
	settings := GetOrCreateSettings(e)
	logger := GetRuntime(e).Logger
	changed := false

	if GetAction(input, cfg.ActionToggleDebug).JustPressed {
		settings.Debug = !settings.Debug
	}

	if GetAction(input, cfg.ActionCycleCamera).JustPressed {
		settings.CameraMode = NextFollowMode(settings.CameraMode)
		if cam := GetCamera(e); cam != nil {
			cam.View.SetMode(settings.CameraMode)
		}
		logger.Info("camera mode", zap.Stringer("mode", settings.CameraMode))
		changed = true
	}

	zoom := 0.0
	if GetAction(input, cfg.ActionZoomIn).JustPressed {
		zoom -= cfg.Settings.ZoomStep
	}
	if GetAction(input, cfg.ActionZoomOut).JustPressed {
		zoom += cfg.Settings.ZoomStep
	}
	if zoom != 0 {
		if cam := GetCamera(e); cam != nil {
			size := clampZoom(cam.View.Size() + zoom)
			cam.View.ZoomTo(size, cfg.Settings.ZoomTime)
			settings.Zoom = size
			changed = true
		}
	}

	if GetAction(input, cfg.ActionCycleVolume).JustPressed {
		settings.SFXVolume = NextVolumeStep(settings.SFXVolume, cfg.Settings.VolumeSteps)
		SetSFXVolume(e, settings.SFXVolume)
		changed = true
	}

	if GetAction(input, cfg.ActionToggleShake).JustPressed {
		settings.ShakeEnabled = !settings.ShakeEnabled
		if !settings.ShakeEnabled {
			if cam := GetCamera(e); cam != nil {
				cam.View.StopShake()
			}
		}
		changed = true
	}

	if GetAction(input, cfg.ActionToggleFullscreen).JustPressed {
		settings.Fullscreen = !settings.Fullscreen
		ebiten.SetFullscreen(settings.Fullscreen)
		changed = true
	}

	if changed {
		SaveCurrentSettings(settings)
	}
}

// NextFollowMode steps through the follow modes in order, wrapping around.
func NextFollowMode(m camera.Mode) camera.Mode {
	return (m + 1) % (cfg.FollowDeadZone + 1)
}

// NextVolumeStep returns the step after the one closest to v.
func NextVolumeStep(v float64, steps []float64) float64 {
	if len(steps) == 0 {
		return v
	}
	closest := 0
	for i, s := range steps {
		if abs(s-v) < abs(steps[closest]-v) {
			closest = i
		}
	}
	return steps[(closest+1)%len(steps)]
}

func clampZoom(size float64) float64 {
	return max(cfg.Camera.MinSize, min(cfg.Camera.MaxSize, size))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
