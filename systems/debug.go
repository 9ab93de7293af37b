package systems

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // basicfont is a font.Face
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/doomkit/components"
	cfg "github.com/automoto/doomkit/config"
	"github.com/automoto/doomkit/fonts"
	"github.com/automoto/doomkit/tags"
)

var (
	debugSolid  = color.RGBA{100, 100, 100, 255}
	debugPlayer = color.RGBA{0, 0, 255, 255}
	debugCrate  = color.RGBA{255, 160, 0, 255}
	debugActor  = color.RGBA{0, 255, 255, 255}
)

// DrawDebug outlines every collision object and prints pool and tween
// counters. Toggled with F3.
func DrawDebug(e *ecs.ECS, screen *ebiten.Image) {
	settings := GetOrCreateSettings(e)
	if !settings.Debug {
		return
	}

	cam := GetCamera(e)
	if cam == nil {
		return
	}
	w, h := screenSize(screen)
	view := cam.View.Visible()
	s := cam.View.Scale(h)

	if spaceEntry, ok := components.Space.First(e.World); ok {
		space := components.Space.Get(spaceEntry)
		for _, obj := range space.Objects() {
			if obj.X+obj.W < view.MinX || obj.X > view.MaxX || obj.Y+obj.H < view.MinY || obj.Y > view.MaxY {
				continue
			}
			c := debugActor
			switch {
			case obj.HasTags(tags.ResolvSolid):
				c = debugSolid
			case obj.HasTags(tags.ResolvPlayer):
				c = debugPlayer
			case obj.HasTags(tags.ResolvCrate):
				c = debugCrate
			}
			x, y := cam.View.WorldToScreen(obj.X, obj.Y, w, h)
			vector.StrokeRect(screen, float32(x), float32(y), float32(obj.W*s), float32(obj.H*s), 1, c, false)
		}
	}

	text.Draw(screen, DebugText(e), fonts.Debug(), 4, 14, cfg.White)
}

// DebugText is the overlay body: one line per pool plus tween totals.
func DebugText(e *ecs.ECS) string {
	rt := GetRuntime(e)
	var b strings.Builder
	fmt.Fprintf(&b, "tweens %d", rt.Tweens.ActiveCount())
	for _, g := range rt.Tweens.Groups() {
		fmt.Fprintf(&b, "  %s:%d", g, rt.Tweens.GroupSize(g))
	}
	b.WriteByte('\n')
	for _, st := range rt.Pools.AllStats() {
		fmt.Fprintf(&b, "%-6s active %2d idle %2d size %2d/%d gets %d miss %d\n",
			st.Name, st.Active, st.Idle, st.Size, st.MaxSize, st.Gets, st.Misses)
	}
	if cam := GetCamera(e); cam != nil {
		fmt.Fprintf(&b, "camera %s size %.0f", cam.View.Mode(), cam.View.Size())
		if cam.View.Shaking() {
			b.WriteString(" shaking")
		}
	}
	return b.String()
}
