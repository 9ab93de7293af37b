package main

import (
	"errors"
	"flag"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/automoto/doomkit/assets"
	"github.com/automoto/doomkit/config"
	"github.com/automoto/doomkit/logging"
	"github.com/automoto/doomkit/scenes"
	"github.com/automoto/doomkit/systems"
)

type Game struct {
	bounds image.Rectangle
	scene  scenes.Scene
}

func NewGame(scene scenes.Scene) *Game {
	return &Game{
		bounds: image.Rectangle{},
		scene:  scene,
	}
}

func (g *Game) Update() error {
	return g.scene.Update()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	configPath := flag.String("config", "", "TOML file overriding the built-in tuning")
	poolsPath := flag.String("pools", "", "YAML pool manifest")
	levelIndex := flag.Int("level", 0, "index of the level to start on")
	debug := flag.Bool("debug", false, "start with the debug overlay on")
	flag.Parse()

	if *configPath != "" {
		if err := config.LoadOverrides(*configPath); err != nil {
			log.Fatalf("config: %v", err)
		}
	}
	if *debug {
		config.Debug.Overlay = true
	}

	logger, err := logging.New(config.Logging)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	defs := config.DefaultPools
	if *poolsPath != "" {
		defs, err = config.LoadPoolManifest(*poolsPath)
		if err != nil {
			logger.Fatal("pool manifest", zap.String("path", *poolsPath), zap.Error(err))
		}
	}

	ebiten.SetWindowSize(config.C.Width*2, config.C.Height*2)
	ebiten.SetWindowTitle("doomkit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.Physics.TicksPerSecond)

	// Initialize persistence and load saved settings
	if err := systems.InitPersistence("doomkit", logger); err == nil {
		if saved, err := systems.LoadSettings(); err == nil && saved != nil {
			systems.ApplySavedSettingsGlobal(saved)
		}
	}

	scene := scenes.NewPlatformerScene(logger, defs, assets.MustLoadLevels(), *levelIndex)
	defer scene.Close()

	if err := ebiten.RunGame(NewGame(scene)); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game exited", zap.Error(err))
	}
}
