package scenes

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"

	"github.com/automoto/doomkit/archetypes"
	"github.com/automoto/doomkit/camera"
	"github.com/automoto/doomkit/components"
	cfg "github.com/automoto/doomkit/config"
	"github.com/automoto/doomkit/level"
	"github.com/automoto/doomkit/logging"
	"github.com/automoto/doomkit/pool"
	"github.com/automoto/doomkit/systems"
	"github.com/automoto/doomkit/systems/factory"
	"github.com/automoto/doomkit/tween"
)

var ErrNoLevels = errors.New("no levels loaded")

// Session owns one playable world: its pools, its tweens and every entity
// built from them. Teardown leaves nothing running.
type Session struct {
	ECS *ecs.ECS

	logger     *zap.Logger
	defs       []cfg.PoolDef
	levels     []*level.Level
	levelIndex int

	runtime *components.RuntimeData
	closed  bool
}

func NewSession(logger *zap.Logger, defs []cfg.PoolDef, levels []*level.Level, levelIndex int) *Session {
	if defs == nil {
		defs = cfg.DefaultPools
	}
	return &Session{
		logger:     logging.OrNop(logger),
		defs:       defs,
		levels:     levels,
		levelIndex: levelIndex,
	}
}

// Init builds the world. A session that fails to initialize has already
// been torn down.
func (s *Session) Init() error {
	if len(s.levels) == 0 {
		return ErrNoLevels
	}

	e := ecs.NewECS(donburi.NewWorld())
	s.ECS = e

	tweens := tween.NewCoordinator(s.logger.Named("tween"))
	s.runtime = &components.RuntimeData{
		Pools:  pool.NewRegistry(cfg.Pool, s.logger.Named("pool")),
		Tweens: tweens,
		Logger: s.logger,
		Dt:     cfg.FixedDelta(),
	}
	components.Runtime.Set(archetypes.Runtime.Spawn(e), s.runtime)
	systems.AttachAnimator(e, systems.NewAnimator(tweens, cfg.Tween))
	settings := systems.GetOrCreateSettings(e)
	systems.GetOrCreateAudio(e)

	levelEntry := factory.CreateLevelAtIndex(e, s.levels, s.levelIndex)
	lvl := components.Level.Get(levelEntry).CurrentLevel
	spaceEntry := factory.CreateSpace(e, lvl.Width, lvl.Height)
	space := components.Space.Get(spaceEntry)
	factory.CreateLevelGeometry(e, lvl)

	if err := factory.CreatePools(e, s.runtime.Pools, s.defs, space, tweens); err != nil {
		s.Teardown()
		return fmt.Errorf("create pools: %w", err)
	}
	for _, name := range []string{systems.PoolSpark, systems.PoolDust, systems.PoolCrate} {
		if !s.runtime.Pools.Has(name) {
			s.logger.Warn("pool missing, its action is disabled", zap.String("pool", name))
		}
	}

	view := camera.New(cfg.Camera, tweens, cfg.Tween.CameraGroup, s.logger.Named("camera"))
	b := lvl.CameraBounds
	view.SetBounds(camera.Rect{MinX: b.X, MinY: b.Y, MaxX: b.X + b.W, MaxY: b.Y + b.H})
	view.SetMode(settings.CameraMode)
	if settings.Zoom > 0 {
		view.ZoomTo(settings.Zoom, 0)
	}
	factory.CreateCamera(e, view)

	spawn := lvl.Spawn(0)
	player := factory.CreatePlayer(e, spawn.X, spawn.Y, systems.InputIntent(e))
	view.SetTarget(systems.Target(player))
	view.SnapToTarget()

	for _, c := range lvl.CrateSpawns {
		systems.SpawnCrate(e, c.X, c.Y)
	}

	systems.RegisterEventHandlers(e)
	s.addSystems()

	s.logger.Info("session started",
		zap.String("level", lvl.Name),
		zap.Strings("pools", s.runtime.Pools.Names()),
		zap.Int("crates", len(lvl.CrateSpawns)),
	)
	return nil
}

func (s *Session) addSystems() {
	e := s.ECS
	e.AddSystem(systems.UpdateClock)
	e.AddSystem(systems.UpdateInput)
	e.AddSystem(systems.UpdatePause)
	e.AddSystem(systems.UpdateSettings)
	e.AddSystem(systems.WithGameplayChecks(systems.UpdatePlayer))
	e.AddSystem(systems.WithGameplayChecks(systems.UpdateObjects))
	e.AddSystem(systems.WithGameplayChecks(systems.UpdateSpawning))
	e.AddSystem(systems.WithGameplayChecks(systems.UpdateEvents))
	e.AddSystem(systems.WithGameplayChecks(systems.UpdateAnimations))
	e.AddSystem(systems.WithGameplayChecks(systems.UpdateEffects))
	// Tweens keep running while paused; gameplay groups are paused instead.
	e.AddSystem(systems.UpdateTweens)
	e.AddSystem(systems.WithGameplayChecks(systems.UpdatePools))
	e.AddSystem(systems.WithGameplayChecks(systems.UpdateCamera))
	e.AddSystem(systems.UpdateAudio)

	e.AddRenderer(cfg.Default, systems.DrawBackground)
	e.AddRenderer(cfg.Default, systems.DrawLevel)
	e.AddRenderer(cfg.Default, systems.DrawActors)
	e.AddRenderer(cfg.Default, systems.DrawDebug)
	e.AddRenderer(cfg.Default, systems.DrawPause)
}

func (s *Session) Update() {
	if s.closed || s.ECS == nil {
		return
	}
	s.ECS.Update()
}

func (s *Session) Draw(screen *ebiten.Image) {
	if s.closed || s.ECS == nil {
		return
	}
	s.ECS.Draw(screen)
}

// Runtime returns the session services, nil before Init.
func (s *Session) Runtime() *components.RuntimeData {
	return s.runtime
}

// RestartRequested reports whether the restart action fired this tick.
func (s *Session) RestartRequested() bool {
	if s.closed || s.ECS == nil {
		return false
	}
	input, ok := components.Input.First(s.ECS.World)
	if !ok {
		return false
	}
	return systems.GetAction(components.Input.Get(input), cfg.ActionRestart).JustPressed
}

// Teardown kills every tween before clearing the pools, so no callback
// ever sees an entity whose pool is gone. Safe to call twice.
func (s *Session) Teardown() {
	if s.closed {
		return
	}
	s.closed = true
	if s.runtime == nil {
		return
	}
	s.runtime.Tweens.KillAll()
	s.runtime.Pools.Clear()
	if s.ECS != nil {
		systems.StopAllSFX(s.ECS)
		if _, ok := components.Runtime.First(s.ECS.World); ok {
			systems.GetAnimator(s.ECS).Forget()
		}
	}
	s.logger.Info("session torn down", zap.Int("ticks", s.runtime.Ticks))
}
