package factory

import (
	"github.com/automoto/doomkit/archetypes"
	"github.com/automoto/doomkit/components"
	cfg "github.com/automoto/doomkit/config"
	"github.com/automoto/doomkit/motion"
	"github.com/automoto/doomkit/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreatePlayer spawns the player with its feet at (x, y), driven by src.
func CreatePlayer(ecs *ecs.ECS, x, y float64, src motion.IntentSource) *donburi.Entry {
	player := archetypes.Player.Spawn(ecs)

	w, h := cfg.Player.CollisionWidth, cfg.Player.CollisionHeight
	obj := resolv.NewObject(x-w/2, y-h, w, h)
	obj.AddTags("character", tags.ResolvPlayer)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	obj.Data = player
	components.Object.SetValue(player, components.ObjectData{Object: obj})

	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		components.Space.Get(spaceEntry).Add(obj)
	}

	body := NewObjectBody(obj, tags.ResolvSolid, tags.ResolvCrate)
	probe := NewObjectProbe(obj, cfg.Physics.GroundProbe, tags.ResolvSolid, tags.ResolvCrate)
	components.Motion.SetValue(player, components.MotionData{
		Controller: motion.New(motion.DefaultConfig(), probe, body, src),
		State:      cfg.Idle,
	})
	components.Player.SetValue(player, components.PlayerData{SpawnX: x, SpawnY: y})
	components.Transform.SetValue(player, components.DefaultTransform())

	animData := components.NewAnimationData("player", cfg.Player.Color)
	animData.SetAnimation(cfg.Idle)
	components.Animation.Set(player, animData)

	return player
}
