// Package assistant implements the draft parser, spoken confirmations and
// audio transcription on top of the Gemini API.
package assistant

import (
	"context"
	"os"
	"strings"

	"github.com/borgmon/jumpin/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

var (
	ErrNoAPIKey          = errors.New("no Gemini API key configured")
	ErrMalformedResponse = errors.New("malformed model response")
	ErrNoAudio           = errors.New("no audio")
)

// APIKeyEnv lists the variables the key is read from, in order
var APIKeyEnv = []string{"GEMINI_API_KEY", "API_KEY"}

// Generator is the part of the Gemini client the assistant uses. *genai.Models implements it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// LoadAPIKey loads envFiles (missing files are ignored) and returns the first key found
func LoadAPIKey(envFiles ...string) string {
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			_ = godotenv.Load(file)
		}
	}
	for _, name := range APIKeyEnv {
		if key := strings.TrimSpace(os.Getenv(name)); key != "" {
			return key
		}
	}
	return ""
}

// NewGenerator creates a Gemini API client
func NewGenerator(ctx context.Context, apiKey string) (Generator, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create gemini client")
	}
	return client.Models, nil
}

// Options selects the models used by the assistant
type Options struct {
	ParseModel  string
	SpeechModel string
	VoiceName   string
	Logger      *zap.Logger
}

// Assistant bundles the collaborators built on one Generator
type Assistant struct {
	Parser      *Parser
	Speaker     *Speaker
	Transcriber *Transcriber
}

// New builds every collaborator on gen. player may be nil, in which case Speak only synthesizes.
func New(gen Generator, player Player, opts Options) *Assistant {
	log := logger.OrNop(opts.Logger).Named("assistant")
	return &Assistant{
		Parser:      NewParser(gen, opts.ParseModel, log),
		Speaker:     NewSpeaker(gen, player, opts.SpeechModel, opts.VoiceName, log),
		Transcriber: NewTranscriber(gen, opts.ParseModel, log),
	}
}

// firstBlob returns the first inline data part of a response
func firstBlob(resp *genai.GenerateContentResponse) *genai.Blob {
	if resp == nil {
		return nil
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData
			}
		}
	}
	return nil
}
