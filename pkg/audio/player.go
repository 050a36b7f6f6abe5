// Package audio plays raw PCM through the shared oto context.
package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/borgmon/jumpin/pkg/logger"
	"github.com/ebitengine/oto/v3"
	"go.uber.org/zap"
)

// SpeechFormat is the PCM layout returned by the speech model
var SpeechFormat = Format{SampleRate: 24000, Channels: 1, BitDepth: 16}

var ErrNoDevice = errors.New("audio output is not available")

// Format describes signed little-endian PCM
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// oto allows a single context per process, so its format is fixed by the first caller
var (
	sharedCtx     *oto.Context
	sharedFormat  Format
	sharedCtxErr  error
	sharedCtxOnce sync.Once
)

func contextFor(format Format, log *zap.Logger) (*oto.Context, error) {
	sharedCtxOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   format.SampleRate,
			ChannelCount: format.Channels,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			sharedCtxErr = fmt.Errorf("%w: %v", ErrNoDevice, err)
			log.Warn("audio context failed", zap.Error(err))
			return
		}
		<-ready
		sharedCtx = ctx
		sharedFormat = format
		log.Debug("audio context ready", zap.Int("sampleRate", format.SampleRate))
	})
	if sharedCtxErr != nil {
		return nil, sharedCtxErr
	}
	if sharedFormat != format {
		return nil, fmt.Errorf("audio context is %+v, cannot play %+v", sharedFormat, format)
	}
	return sharedCtx, nil
}

// Player plays one clip at a time in a fixed format
type Player struct {
	format Format
	logger *zap.Logger
	mu     sync.Mutex
}

// NewPlayer creates a Player for the given format
func NewPlayer(format Format, log *zap.Logger) *Player {
	return &Player{format: format, logger: logger.OrNop(log)}
}

// Play blocks until pcm has finished playing or ctx is done
func (p *Player) Play(ctx context.Context, pcm []byte) error {
	if len(pcm) == 0 {
		return nil
	}
	if p.format.BitDepth != 16 {
		return fmt.Errorf("unsupported bit depth %d", p.format.BitDepth)
	}

	otoCtx, err := contextFor(p.format, p.logger)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	player := otoCtx.NewPlayer(bytes.NewReader(pcm))
	defer player.Close()
	player.Play()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// Duration returns how long pcm lasts in format f
func (f Format) Duration(pcm []byte) time.Duration {
	frame := f.Channels * f.BitDepth / 8
	if frame == 0 || f.SampleRate == 0 {
		return 0
	}
	return time.Duration(len(pcm)/frame) * time.Second / time.Duration(f.SampleRate)
}
