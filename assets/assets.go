package assets

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/automoto/doomkit/level"
)

//go:embed levels/*.tmx
var levelFS embed.FS

// LevelFS exposes the bundled maps.
func LevelFS() fs.FS { return levelFS }

// MustLoadLevels parses every bundled level.
func MustLoadLevels() []*level.Level {
	levels, err := level.LoadAll(levelFS, "levels")
	if err != nil {
		panic(fmt.Sprintf("Failed to load levels: %v", err))
	}
	return levels
}
