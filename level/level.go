// Package level turns Tiled maps into collision geometry, spawn points and
// camera bounds.
package level

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/lafriks/go-tiled"
)

// Layer and object group names read from the map.
const (
	SolidLayer        = "wg-tiles"
	PlayerSpawnGroup  = "PlayerSpawn"
	CrateSpawnGroup   = "CrateSpawn"
	CameraBoundsGroup = "CameraBounds"
)

var (
	ErrNoPlayerSpawn = errors.New("level: no player spawn point")
	ErrNoLevels      = errors.New("level: no .tmx files found")
)

type Rect struct {
	X, Y, W, H float64
}

type Spawn struct {
	X, Y float64
}

type Level struct {
	Name         string
	Width        int // pixels
	Height       int
	TileWidth    int
	TileHeight   int
	Solids       []Rect // solid tiles merged into horizontal runs
	PlayerSpawns []Spawn
	CrateSpawns  []Spawn
	CameraBounds Rect
}

// Load reads one map from fsys.
func Load(fsys fs.FS, p string) (*Level, error) {
	m, err := tiled.LoadFile(p, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", p, err)
	}
	return FromMap(p, m)
}

// LoadAll reads every .tmx in dir, sorted by file name.
func LoadAll(fsys fs.FS, dir string) ([]*Level, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && path.Ext(e.Name()) == ".tmx" {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, ErrNoLevels
	}
	sort.Strings(names)

	levels := make([]*Level, 0, len(names))
	for _, n := range names {
		l, err := Load(fsys, path.Join(dir, n))
		if err != nil {
			return nil, err
		}
		levels = append(levels, l)
	}
	return levels, nil
}

// FromMap extracts level data from a parsed map.
func FromMap(name string, m *tiled.Map) (*Level, error) {
	l := &Level{
		Name:       name,
		Width:      m.Width * m.TileWidth,
		Height:     m.Height * m.TileHeight,
		TileWidth:  m.TileWidth,
		TileHeight: m.TileHeight,
	}
	l.CameraBounds = Rect{W: float64(l.Width), H: float64(l.Height)}

	for _, og := range m.ObjectGroups {
		switch og.Name {
		case PlayerSpawnGroup:
			for _, o := range og.Objects {
				l.PlayerSpawns = append(l.PlayerSpawns, Spawn{X: o.X, Y: o.Y})
			}
			sort.Slice(l.PlayerSpawns, func(i, j int) bool {
				return l.PlayerSpawns[i].X < l.PlayerSpawns[j].X
			})
		case CrateSpawnGroup:
			for _, o := range og.Objects {
				l.CrateSpawns = append(l.CrateSpawns, Spawn{X: o.X, Y: o.Y})
			}
		case CameraBoundsGroup:
			if len(og.Objects) > 0 {
				o := og.Objects[0]
				l.CameraBounds = Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
			}
		}
	}
	if len(l.PlayerSpawns) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoPlayerSpawn)
	}

	for _, layer := range m.Layers {
		if layer.Name != SolidLayer {
			continue
		}
		solid := func(x, y int) bool {
			t := layer.Tiles[y*m.Width+x]
			return t != nil && !t.IsNil()
		}
		l.Solids = mergeRuns(m.Width, m.Height, float64(m.TileWidth), float64(m.TileHeight), solid)
		break
	}
	return l, nil
}

// mergeRuns collapses each row's consecutive solid tiles into one rectangle.
func mergeRuns(w, h int, tileW, tileH float64, solid func(x, y int) bool) []Rect {
	var out []Rect
	for y := 0; y < h; y++ {
		start := -1
		for x := 0; x <= w; x++ {
			if x < w && solid(x, y) {
				if start < 0 {
					start = x
				}
				continue
			}
			if start >= 0 {
				out = append(out, Rect{
					X: float64(start) * tileW,
					Y: float64(y) * tileH,
					W: float64(x-start) * tileW,
					H: tileH,
				})
				start = -1
			}
		}
	}
	return out
}

// Spawn returns player spawn i, wrapping around.
func (l *Level) Spawn(i int) Spawn {
	if i < 0 {
		i = 0
	}
	return l.PlayerSpawns[i%len(l.PlayerSpawns)]
}
