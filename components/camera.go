package components

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"

	"github.com/automoto/doomkit/camera"
)

type CameraData struct {
	View     *camera.Camera
	Position math.Vec2 // last rendered center, shake included
}

var Camera = donburi.NewComponentType[CameraData]()
