package systems

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // basicfont is a font.Face
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"

	"github.com/automoto/doomkit/archetypes"
	"github.com/automoto/doomkit/components"
	cfg "github.com/automoto/doomkit/config"
	"github.com/automoto/doomkit/fonts"
	"github.com/automoto/doomkit/tween"
)

const pauseLabelScale = 3

var pauseLabelOp = &ebiten.DrawImageOptions{}

// pauseEntry returns the pause singleton, creating it with the overlay
// hidden.
func pauseEntry(e *ecs.ECS) *donburi.Entry {
	if entry, ok := components.Pause.First(e.World); ok {
		return entry
	}
	entry := archetypes.Pause.Spawn(e)
	tr := components.DefaultTransform()
	tr.Alpha = 0
	tr.ScaleX, tr.ScaleY = cfg.Tween.UIHiddenScale, cfg.Tween.UIHiddenScale
	components.Transform.SetValue(entry, tr)
	return entry
}

func GetOrCreatePause(e *ecs.ECS) *components.PauseData {
	return components.Pause.Get(pauseEntry(e))
}

// UpdatePause toggles pause. It runs after UpdateInput and before every
// system wrapped in WithGameplayChecks.
func UpdatePause(e *ecs.ECS) {
	if GetAction(getOrCreateInput(e), cfg.ActionPause).JustPressed {
		SetPaused(e, !GetOrCreatePause(e).IsPaused)
	}
}

// SetPaused freezes or resumes gameplay. Hit, effect and camera tweens hold
// where they are while the overlay animates in the UI group.
func SetPaused(e *ecs.ECS, paused bool) {
	entry := pauseEntry(e)
	pause := components.Pause.Get(entry)
	if pause.IsPaused == paused {
		return
	}
	pause.IsPaused = paused

	rt := GetRuntime(e)
	anim := GetAnimator(e)
	c := anim.Cfg
	rt.Tweens.KillGroup(c.UIGroup)
	for _, group := range []string{c.HitGroup, c.EffectsGroup, c.CameraGroup} {
		if paused {
			rt.Tweens.PauseGroup(group)
		} else {
			rt.Tweens.PlayGroup(group)
		}
	}

	if paused {
		anim.Show(entry).OnComplete(func() {
			anim.Pulse(entry, -1, tween.InGroup(c.UIGroup))
		})
	} else {
		anim.Hide(entry)
	}
	rt.Logger.Debug("pause toggled",
		zap.Bool("paused", paused),
		zap.Int("tweens", rt.Tweens.ActiveCount()))
}

// IsPaused reports whether gameplay is frozen.
func IsPaused(e *ecs.ECS) bool {
	entry, ok := components.Pause.First(e.World)
	return ok && components.Pause.Get(entry).IsPaused
}

// WithGameplayChecks wraps a system to skip execution when paused.
func WithGameplayChecks(system ecs.System) ecs.System {
	return func(e *ecs.ECS) {
		if IsPaused(e) {
			return
		}
		system(e)
	}
}

// DrawPause dims the screen and draws the label with the overlay's
// transform. It keeps drawing while the overlay fades out.
func DrawPause(e *ecs.ECS, screen *ebiten.Image) {
	entry, ok := components.Pause.First(e.World)
	if !ok {
		return
	}
	tr := components.Transform.Get(entry)
	alpha := clamp01(tr.Alpha)
	if alpha <= 0 {
		return
	}
	w, h := screenSize(screen)

	overlay := cfg.Pause.OverlayColor
	overlay.A = uint8(float64(overlay.A) * alpha)
	vector.FillRect(screen, 0, 0, float32(w), float32(h), overlay, false)

	face := fonts.Debug()
	b := text.BoundString(face, cfg.Pause.Label)
	pauseLabelOp.GeoM.Reset()
	pauseLabelOp.GeoM.Translate(-float64(b.Min.X+b.Dx()/2), -float64(b.Min.Y+b.Dy()/2))
	pauseLabelOp.GeoM.Scale(pauseLabelScale*tr.ScaleX, pauseLabelScale*tr.ScaleY)
	pauseLabelOp.GeoM.Translate(w/2, h/2)
	pauseLabelOp.ColorScale.Reset()
	pauseLabelOp.ColorScale.ScaleWithColor(cfg.Pause.TextColor)
	pauseLabelOp.ColorScale.ScaleAlpha(float32(alpha))
	text.DrawWithOptions(screen, cfg.Pause.Label, face, pauseLabelOp)

	hb := text.BoundString(face, cfg.Pause.Hint)
	pauseLabelOp.GeoM.Reset()
	pauseLabelOp.GeoM.Translate((w-float64(hb.Dx()))/2, h-12)
	pauseLabelOp.ColorScale.Reset()
	pauseLabelOp.ColorScale.ScaleWithColor(cfg.White)
	pauseLabelOp.ColorScale.ScaleAlpha(float32(alpha))
	text.DrawWithOptions(screen, cfg.Pause.Hint, face, pauseLabelOp)
}
