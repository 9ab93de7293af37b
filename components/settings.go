package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/doomkit/config"
)

// SettingsData is the live copy of the player-adjustable settings
// (singleton component). Changes are written back through persistence.
type SettingsData struct {
	Debug        bool
	CameraMode   config.FollowModeID
	ShakeEnabled bool
	SFXVolume    float64
	Fullscreen   bool
	Zoom         float64 // camera half-height, 0 = config default
}

var Settings = donburi.NewComponentType[SettingsData]()
