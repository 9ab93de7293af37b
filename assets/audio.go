package assets

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/automoto/doomkit/config"
)

// AudioLoader builds and caches PCM for every sound effect. Sounds are
// synthesized from config.Sound.Tones unless config.Sound.Files points at
// a wav or ogg override on disk.
type AudioLoader struct {
	sfxCache map[config.SoundID][]byte
	context  *audio.Context
}

// NewAudioLoader creates a new audio loader with the given context
func NewAudioLoader(ctx *audio.Context) *AudioLoader {
	return &AudioLoader{
		sfxCache: make(map[config.SoundID][]byte),
		context:  ctx,
	}
}

// PreloadSFX prepares a sound effect without creating a player.
func (l *AudioLoader) PreloadSFX(id config.SoundID) error {
	if _, ok := l.sfxCache[id]; ok {
		return nil
	}

	if path, ok := config.Sound.Files[id]; ok && path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read audio file %s: %w", path, err)
		}
		decoded, err := DecodeSFX(filepath.Ext(path), data, l.context.SampleRate())
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		l.sfxCache[id] = decoded
		return nil
	}

	tone, ok := config.Sound.Tones[id]
	if !ok {
		return fmt.Errorf("no tone defined for sound %d", id)
	}
	l.sfxCache[id] = SynthTone(tone, l.context.SampleRate())
	return nil
}

// LoadSFX returns a new player for a sound effect each call.
func (l *AudioLoader) LoadSFX(id config.SoundID) (*audio.Player, error) {
	if err := l.PreloadSFX(id); err != nil {
		return nil, err
	}
	return l.context.NewPlayerFromBytes(l.sfxCache[id]), nil
}

// DecodeSFX decodes a wav or ogg file into 16-bit stereo PCM at sampleRate.
func DecodeSFX(ext string, data []byte, sampleRate int) ([]byte, error) {
	var (
		stream io.Reader
		err    error
	)
	switch strings.ToLower(ext) {
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", ext, err)
	}
	decoded, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read decoded audio: %w", err)
	}
	return decoded, nil
}

// SynthTone renders a frequency sweep with a linear fade out as 16-bit
// little-endian stereo PCM, the format audio.Context players expect.
func SynthTone(def config.ToneDef, sampleRate int) []byte {
	n := int(def.Duration * float64(sampleRate))
	if n <= 0 {
		return nil
	}
	out := make([]byte, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		hz := def.StartHz + (def.EndHz-def.StartHz)*t
		phase += 2 * math.Pi * hz / float64(sampleRate)

		v := math.Sin(phase)
		if def.Square {
			v = math.Copysign(0.6, v)
		}
		s := int16(v * (1 - t) * 0.5 * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(s))
	}
	return out
}
