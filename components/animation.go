package components

import (
	"image/color"

	"github.com/yohamta/donburi"

	"github.com/automoto/doomkit/assets/animations"
	"github.com/automoto/doomkit/config"
)

type AnimationData struct {
	CurrentAnimation *animations.Animation
	CurrentSheet     config.StateID
	Animations       map[config.StateID]*animations.Animation
	Color            color.RGBA
}

func (a *AnimationData) SetAnimation(state config.StateID) {
	if a.CurrentSheet == state && (a.CurrentAnimation != nil || a.Animations[state] == nil) {
		return
	}

	anim, ok := a.Animations[state]
	if ok {
		if a.CurrentAnimation != anim {
			a.CurrentAnimation = anim
			a.CurrentSheet = state
			a.CurrentAnimation.Restart()
		}
	} else {
		a.CurrentAnimation = nil
		a.CurrentSheet = state
	}
}

// NewAnimationData builds the clips of one character key from config.
func NewAnimationData(key string, c color.RGBA) *AnimationData {
	data := &AnimationData{
		Animations: make(map[config.StateID]*animations.Animation),
		Color:      c,
	}
	for state, def := range config.CharacterAnimations[key] {
		data.Animations[state] = animations.NewAnimation(def.First, def.Last, def.FPS)
	}
	return data
}

var Animation = donburi.NewComponentType[AnimationData]()
