package components

import "github.com/yohamta/donburi"

// PauseData stores the pause state (singleton). Its entity also carries the
// Transform the overlay is faded and scaled with.
type PauseData struct {
	IsPaused bool
}

var Pause = donburi.NewComponentType[PauseData]()
