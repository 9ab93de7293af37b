package factory

import (
	"github.com/solarlune/resolv"

	"github.com/automoto/doomkit/tags"
)

// ObjectBody moves a resolv object through its space, stopping against
// anything that carries one of the blocking tags.
type ObjectBody struct {
	Obj    *resolv.Object
	Blocks []string
}

func NewObjectBody(obj *resolv.Object, blocks ...string) *ObjectBody {
	if len(blocks) == 0 {
		blocks = []string{tags.ResolvSolid}
	}
	return &ObjectBody{Obj: obj, Blocks: blocks}
}

func (b *ObjectBody) Position() (float64, float64) { return b.Obj.X, b.Obj.Y }

func (b *ObjectBody) SetPosition(x, y float64) {
	b.Obj.X, b.Obj.Y = x, y
	if b.Obj.Space != nil {
		b.Obj.Update()
	}
}

// Move resolves the horizontal axis first, then the vertical one.
func (b *ObjectBody) Move(dx, dy float64) (blockedX, blockedY bool) {
	if b.Obj.Space == nil {
		b.Obj.X += dx
		b.Obj.Y += dy
		return false, false
	}

	if dx != 0 {
		if check := b.Obj.Check(dx, 0, b.Blocks...); check != nil {
			if solid := firstOverlap(b.Obj, check.ObjectsByTags(b.Blocks...), dx, 0); solid != nil {
				dx = check.ContactWithObject(solid).X()
				blockedX = true
			}
		}
		b.Obj.X += dx
	}

	if dy != 0 {
		if check := b.Obj.Check(0, dy, b.Blocks...); check != nil {
			if solid := firstOverlap(b.Obj, check.ObjectsByTags(b.Blocks...), 0, dy); solid != nil {
				dy = check.ContactWithObject(solid).Y()
				blockedY = true
			}
		}
		b.Obj.Y += dy
	}

	b.Obj.Update()
	return blockedX, blockedY
}

// ObjectProbe looks a short distance below an object for standing ground.
type ObjectProbe struct {
	Obj      *resolv.Object
	Distance float64
	Tags     []string
}

func NewObjectProbe(obj *resolv.Object, distance float64, groundTags ...string) *ObjectProbe {
	if len(groundTags) == 0 {
		groundTags = []string{tags.ResolvSolid}
	}
	return &ObjectProbe{Obj: obj, Distance: distance, Tags: groundTags}
}

func (p *ObjectProbe) OnGround() bool {
	if p.Obj.Space == nil {
		return false
	}
	check := p.Obj.Check(0, p.Distance, p.Tags...)
	if check == nil {
		return false
	}
	bottom := p.Obj.Y + p.Obj.H
	for _, o := range check.ObjectsByTags(p.Tags...) {
		// Only surfaces at or below the feet count, not walls beside us.
		if o.Y >= bottom-p.Distance && overlaps(p.Obj, o, 0, p.Distance) {
			return true
		}
	}
	return false
}

// firstOverlap returns the first candidate the object would intersect after
// moving by (dx, dy). resolv reports everything sharing a cell, which is
// coarser than the boxes themselves.
func firstOverlap(obj *resolv.Object, candidates []*resolv.Object, dx, dy float64) *resolv.Object {
	for _, o := range candidates {
		if o != obj && overlaps(obj, o, dx, dy) {
			return o
		}
	}
	return nil
}

func overlaps(obj, o *resolv.Object, dx, dy float64) bool {
	x, y := obj.X+dx, obj.Y+dy
	return x < o.X+o.W && x+obj.W > o.X && y < o.Y+o.H && y+obj.H > o.Y
}
