package components

import "github.com/yohamta/donburi"

// TransformData holds the presentation transform tweens animate. Position
// lives on the collision object; these values only change how it is drawn.
type TransformData struct {
	ScaleX, ScaleY float64
	Rotation       float64
	Alpha          float64
	Flash          float64 // 0 = normal, 1 = solid white
}

// DefaultTransform is the rest pose.
func DefaultTransform() TransformData {
	return TransformData{ScaleX: 1, ScaleY: 1, Alpha: 1}
}

var Transform = donburi.NewComponentType[TransformData]()
