package systems

import (
	"sync"

	"github.com/automoto/doomkit/assets"
	"github.com/automoto/doomkit/components"
	cfg "github.com/automoto/doomkit/config"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// The audio context can only be created once per process, so it and the
// decoded sound cache outlive every session.
var (
	globalAudioContext *audio.Context
	globalAudioLoader  *assets.AudioLoader
	globalSFXVolume    float64 = cfg.Audio.DefaultSFXVol
	audioInitOnce      sync.Once
)

// initGlobalAudio initializes the global audio context (called once)
func initGlobalAudio() {
	audioInitOnce.Do(func() {
		globalAudioContext = audio.NewContext(cfg.Audio.SampleRate)
		globalAudioLoader = assets.NewAudioLoader(globalAudioContext)
	})
}

// PreloadAllSFX builds every sound effect at startup so the first play
// does not stall.
func PreloadAllSFX(logger *zap.Logger) {
	initGlobalAudio()

	for id := range cfg.Sound.Tones {
		if err := globalAudioLoader.PreloadSFX(id); err != nil {
			logger.Warn("could not prepare sound", zap.Int("sound", int(id)), zap.Error(err))
		}
	}
}

// UpdateAudio plays pending SFX and closes voices that have finished.
func UpdateAudio(e *ecs.ECS) {
	initGlobalAudio()

	entry, ok := components.Audio.First(e.World)
	if !ok {
		return
	}
	audioData := components.Audio.Get(entry)

	voices := audioData.Voices[:0]
	for _, p := range audioData.Voices {
		if p.IsPlaying() {
			voices = append(voices, p)
			continue
		}
		_ = p.Close()
	}
	clear(audioData.Voices[len(voices):])
	audioData.Voices = voices

	for _, soundID := range audioData.PendingSFX {
		if len(audioData.Voices) >= cfg.Audio.MaxVoices {
			break
		}
		if p := playSFX(GetRuntime(e).Logger, soundID, audioData.SFXVolume); p != nil {
			audioData.Voices = append(audioData.Voices, p)
		}
	}
	audioData.PendingSFX = audioData.PendingSFX[:0]
}

func playSFX(logger *zap.Logger, soundID cfg.SoundID, volume float64) *audio.Player {
	if volume <= 0 {
		return nil
	}

	player, err := globalAudioLoader.LoadSFX(soundID)
	if err != nil {
		logger.Warn("could not load sound", zap.Int("sound", int(soundID)), zap.Error(err))
		return nil
	}

	if mult, ok := cfg.Sound.VolumeMultipliers[soundID]; ok {
		volume *= mult
	}

	player.SetVolume(min(volume, 1))
	player.Play()
	return player
}

// PlaySFX queues a sound effect to be played
func PlaySFX(e *ecs.ECS, sound cfg.SoundID) {
	audioData := GetOrCreateAudio(e)
	audioData.PendingSFX = append(audioData.PendingSFX, sound)
}

// SetSFXVolume changes the SFX volume (0.0 - 1.0)
func SetSFXVolume(e *ecs.ECS, volume float64) {
	globalSFXVolume = volume
	GetOrCreateAudio(e).SFXVolume = volume
}

// GetSFXVolume returns the current SFX volume (0.0 - 1.0)
func GetSFXVolume() float64 {
	return globalSFXVolume
}

// StopAllSFX closes every voice of the world, used on teardown.
func StopAllSFX(e *ecs.ECS) {
	entry, ok := components.Audio.First(e.World)
	if !ok {
		return
	}
	audioData := components.Audio.Get(entry)
	for _, p := range audioData.Voices {
		_ = p.Close()
	}
	audioData.Voices = nil
	audioData.PendingSFX = nil
}

// GetOrCreateAudio returns the singleton Audio component for this ECS, creating it if needed
func GetOrCreateAudio(e *ecs.ECS) *components.AudioData {
	entry, ok := components.Audio.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Audio))
		components.Audio.SetValue(entry, components.AudioData{
			SFXVolume:  globalSFXVolume,
			PendingSFX: make([]cfg.SoundID, 0, 8),
		})
	}
	return components.Audio.Get(entry)
}
