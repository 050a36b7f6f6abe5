package assistant

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	DefaultSpeechModel = "gemini-2.5-flash-preview-tts"
	DefaultVoice       = "Kore"

	speechPrefix = "Friendly AI Assistant voice: "
)

// Player plays 24 kHz mono 16-bit PCM
type Player interface {
	Play(ctx context.Context, pcm []byte) error
}

// Speaker reads short confirmations aloud
type Speaker struct {
	gen    Generator
	player Player
	model  string
	voice  string
	logger *zap.Logger
}

// NewSpeaker creates a Speaker
func NewSpeaker(gen Generator, player Player, model, voice string, log *zap.Logger) *Speaker {
	if model == "" {
		model = DefaultSpeechModel
	}
	if voice == "" {
		voice = DefaultVoice
	}
	return &Speaker{gen: gen, player: player, model: model, voice: voice, logger: log}
}

// Synthesize returns the PCM for text
func (s *Speaker) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := s.gen.GenerateContent(ctx, s.model, genai.Text(speechPrefix+text), &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityAudio)},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: s.voice},
			},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "speech request")
	}

	blob := firstBlob(resp)
	if blob == nil {
		return nil, errors.Wrap(ErrNoAudio, "speech response")
	}
	return blob.Data, nil
}

// Speak synthesizes text and plays it, blocking until playback ends
func (s *Speaker) Speak(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	pcm, err := s.Synthesize(ctx, text)
	if err != nil {
		return err
	}
	s.logger.Debug("speaking", zap.String("text", text), zap.Int("bytes", len(pcm)))

	if s.player == nil {
		return nil
	}
	return errors.Wrap(s.player.Play(ctx, pcm), "play speech")
}
