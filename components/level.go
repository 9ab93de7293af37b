package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/doomkit/level"
)

type LevelData struct {
	CurrentLevel *level.Level
	LevelIndex   int
	Levels       []*level.Level
}

var Level = donburi.NewComponentType[LevelData]()
