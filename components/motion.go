package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/doomkit/config"
	"github.com/automoto/doomkit/motion"
)

type MotionData struct {
	Controller *motion.Controller
	State      config.StateID
	StateTimer float64
}

var Motion = donburi.NewComponentType[MotionData]()
