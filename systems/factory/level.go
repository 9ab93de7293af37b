package factory

import (
	"github.com/automoto/doomkit/archetypes"
	"github.com/automoto/doomkit/components"
	"github.com/automoto/doomkit/level"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateLevelAtIndex stores the chosen level; out of range indices fall
// back to the first level.
func CreateLevelAtIndex(ecs *ecs.ECS, levels []*level.Level, levelIndex int) *donburi.Entry {
	if len(levels) == 0 {
		panic("no levels loaded")
	}
	if levelIndex < 0 || levelIndex >= len(levels) {
		levelIndex = 0
	}

	entry := archetypes.Level.Spawn(ecs)
	components.Level.Set(entry, &components.LevelData{
		Levels:       levels,
		LevelIndex:   levelIndex,
		CurrentLevel: levels[levelIndex],
	})
	return entry
}

// CreateLevelGeometry adds a wall for every merged solid run of the level.
func CreateLevelGeometry(ecs *ecs.ECS, lvl *level.Level) {
	for _, r := range lvl.Solids {
		CreateWall(ecs, r)
	}
}
