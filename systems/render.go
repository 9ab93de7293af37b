package systems

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/doomkit/assets"
	"github.com/automoto/doomkit/camera"
	"github.com/automoto/doomkit/components"
	cfg "github.com/automoto/doomkit/config"
)

var (
	drawOp   = &ebiten.DrawImageOptions{}
	shaderOp = &ebiten.DrawRectShaderOptions{}
	pixel    *ebiten.Image
)

func whitePixel() *ebiten.Image {
	if pixel == nil {
		pixel = ebiten.NewImage(1, 1)
		pixel.Fill(color.White)
	}
	return pixel
}

// DrawBackground clears the screen before the world is drawn.
func DrawBackground(e *ecs.ECS, screen *ebiten.Image) {
	screen.Fill(cfg.Background)
}

// DrawLevel draws the merged solids of the level through the camera.
func DrawLevel(e *ecs.ECS, screen *ebiten.Image) {
	cam := GetCamera(e)
	levelEntry, ok := components.Level.First(e.World)
	if cam == nil || !ok {
		return
	}
	lvl := components.Level.Get(levelEntry).CurrentLevel
	view := cam.View.Visible()
	w, h := screenSize(screen)

	for _, r := range lvl.Solids {
		if r.X+r.W < view.MinX || r.X > view.MaxX || r.Y+r.H < view.MinY || r.Y > view.MaxY {
			continue
		}
		drawOp.GeoM.Reset()
		drawOp.ColorScale.Reset()
		drawOp.GeoM.Scale(r.W, r.H)
		drawOp.GeoM.Translate(r.X, r.Y)
		cam.View.Apply(&drawOp.GeoM, w, h)
		drawOp.ColorScale.ScaleWithColor(cfg.Grey)
		screen.DrawImage(whitePixel(), drawOp)
	}
}

// DrawActors renders the player and every active pooled actor as a filled
// box, scaled and rotated about its anchor by the entity's transform.
func DrawActors(e *ecs.ECS, screen *ebiten.Image) {
	cam := GetCamera(e)
	if cam == nil {
		return
	}
	view := cam.View.Visible()
	const padding = 32.0

	components.Animation.Each(e.World, func(entry *donburi.Entry) {
		if !entry.HasComponent(components.Transform) {
			return
		}
		if entry.HasComponent(components.Pooled) && !components.Pooled.Get(entry).Active {
			return
		}
		o := components.Object.Get(entry)
		if o.X+o.W < view.MinX-padding || o.X > view.MaxX+padding || o.Y+o.H < view.MinY-padding || o.Y > view.MaxY+padding {
			return
		}
		drawActor(screen, cam.View, entry)
	})
}

func drawActor(screen *ebiten.Image, view *camera.Camera, entry *donburi.Entry) {
	o := components.Object.Get(entry)
	t := components.Transform.Get(entry)
	anim := components.Animation.Get(entry)
	isPlayer := entry.HasComponent(components.Player)

	var geo ebiten.GeoM
	geo.Scale(o.W, o.H)
	if isPlayer {
		// Feet stay planted while squashing.
		geo.Translate(-o.W/2, -o.H)
		geo.Scale(t.ScaleX, t.ScaleY)
		geo.Rotate(t.Rotation)
		geo.Translate(o.X+o.W/2, o.Y+o.H+bob(anim))
	} else {
		geo.Translate(-o.W/2, -o.H/2)
		geo.Scale(t.ScaleX, t.ScaleY)
		geo.Rotate(t.Rotation)
		geo.Translate(o.X+o.W/2, o.Y+o.H/2)
	}
	w, h := screenSize(screen)
	view.Apply(&geo, w, h)

	var cs ebiten.ColorScale
	cs.ScaleWithColor(anim.Color)
	cs.ScaleAlpha(float32(frameShade(anim) * clamp01(t.Alpha)))

	if t.Flash > 0 && assets.FlashShader != nil {
		shaderOp.GeoM = geo
		shaderOp.ColorScale = cs
		shaderOp.Images[0] = whitePixel()
		shaderOp.Uniforms = map[string]any{"Flash": float32(clamp01(t.Flash))}
		screen.DrawRectShader(1, 1, assets.FlashShader, shaderOp)
	} else {
		drawOp.GeoM = geo
		drawOp.ColorScale = cs
		screen.DrawImage(whitePixel(), drawOp)
	}

	if isPlayer {
		drawEye(screen, view, entry, w, h)
	}
}

// drawEye marks which way the player faces.
func drawEye(screen *ebiten.Image, view *camera.Camera, entry *donburi.Entry, w, h float64) {
	o := components.Object.Get(entry)
	facing := 1.0
	if m := components.Motion.Get(entry); m.Controller != nil && m.Controller.Facing() < 0 {
		facing = -1
	}
	ex := o.X + o.W/2 + facing*o.W/4
	ey := o.Y + o.H/4
	sx, sy := view.WorldToScreen(ex, ey, w, h)
	s := view.Scale(h)
	vector.FillRect(screen, float32(sx-s), float32(sy-s), float32(2*s), float32(2*s), cfg.White, false)
}

// bob lifts the player on odd frames so clips read without sprites.
func bob(anim *components.AnimationData) float64 {
	if anim.CurrentAnimation == nil {
		return 0
	}
	if anim.CurrentSheet == cfg.Running && anim.CurrentAnimation.Frame()%2 == 1 {
		return -1
	}
	return 0
}

// frameShade dims effects as their clip plays out.
func frameShade(anim *components.AnimationData) float64 {
	if anim.CurrentAnimation == nil {
		return 1
	}
	switch anim.CurrentSheet {
	case cfg.StateSpark, cfg.StateDust:
		return 1 - 0.5*anim.CurrentAnimation.Progress()
	}
	return 1
}

func screenSize(screen *ebiten.Image) (float64, float64) {
	b := screen.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
