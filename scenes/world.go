package scenes

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/automoto/doomkit/assets"
	cfg "github.com/automoto/doomkit/config"
	"github.com/automoto/doomkit/level"
	"github.com/automoto/doomkit/logging"
	"github.com/automoto/doomkit/systems"
)

// Scene is what the game loop drives.
type Scene interface {
	Update() error
	Draw(screen *ebiten.Image)
}

// PlatformerScene runs one session at a time and rebuilds it on restart.
type PlatformerScene struct {
	logger     *zap.Logger
	defs       []cfg.PoolDef
	levels     []*level.Level
	levelIndex int

	session *Session
	once    sync.Once
	err     error
}

func NewPlatformerScene(logger *zap.Logger, defs []cfg.PoolDef, levels []*level.Level, levelIndex int) *PlatformerScene {
	return &PlatformerScene{
		logger:     logging.OrNop(logger),
		defs:       defs,
		levels:     levels,
		levelIndex: levelIndex,
	}
}

func (ps *PlatformerScene) Update() error {
	ps.once.Do(ps.configure)
	if ps.err != nil {
		return ps.err
	}

	ps.session.Update()

	if ps.session.RestartRequested() {
		ps.logger.Info("restarting session")
		ps.session.Teardown()
		ps.err = ps.start()
	}
	return ps.err
}

func (ps *PlatformerScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if ps.session == nil {
		return
	}
	ps.session.Draw(screen)
}

// Close tears the running session down.
func (ps *PlatformerScene) Close() {
	if ps.session != nil {
		ps.session.Teardown()
	}
}

func (ps *PlatformerScene) configure() {
	// Preload assets to avoid lag on first use
	systems.PreloadAllSFX(ps.logger)

	if err := assets.LoadShaders(); err != nil {
		ps.logger.Warn("flash shader unavailable", zap.Error(err))
	}

	ps.err = ps.start()
}

func (ps *PlatformerScene) start() error {
	ps.session = NewSession(ps.logger, ps.defs, ps.levels, ps.levelIndex)
	return ps.session.Init()
}
