package assistant

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/borgmon/jumpin/pkg/audio"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const transcribePrompt = "Transcribe this audio exactly. Reply with the transcript only."

var audioMIMETypes = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mp3",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
	".m4a":  "audio/aac",
}

// Transcriber converts recorded speech to text
type Transcriber struct {
	gen    Generator
	model  string
	logger *zap.Logger
}

// NewTranscriber creates a Transcriber
func NewTranscriber(gen Generator, model string, log *zap.Logger) *Transcriber {
	if model == "" {
		model = DefaultParseModel
	}
	return &Transcriber{gen: gen, model: model, logger: log}
}

// Transcribe returns the transcript of one recording
func (t *Transcriber) Transcribe(ctx context.Context, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", ErrNoAudio
	}

	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromText(transcribePrompt),
		genai.NewPartFromBytes(data, mimeType),
	}, genai.RoleUser)

	resp, err := t.gen.GenerateContent(ctx, t.model, []*genai.Content{content}, nil)
	if err != nil {
		return "", errors.Wrap(err, "transcription request")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.Wrap(ErrNoAudio, "empty transcript")
	}
	return text, nil
}

// FileCapture is a voice capture that reads a recording from disk
type FileCapture struct {
	Path        string
	Transcriber *Transcriber
}

// Available reports whether the recording exists and can be transcribed
func (f FileCapture) Available() bool {
	if f.Transcriber == nil || f.Path == "" {
		return false
	}
	_, err := os.Stat(f.Path)
	return err == nil
}

// Capture transcribes the recording
func (f FileCapture) Capture(ctx context.Context) (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", errors.Wrap(err, "read recording")
	}

	mimeType, err := RecordingMIMEType(f.Path, data)
	if err != nil {
		return "", err
	}
	return f.Transcriber.Transcribe(ctx, data, mimeType)
}

// RecordingMIMEType picks the MIME type by extension. WAV files must
// contain at least one sample.
func RecordingMIMEType(path string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	mimeType, ok := audioMIMETypes[ext]
	if !ok {
		return "", errors.Errorf("unsupported recording format %q", ext)
	}
	if ext == ".wav" {
		_, samples, err := audio.ParseWAV(data)
		if err != nil {
			return "", errors.Wrap(err, "read wav")
		}
		if len(samples) == 0 {
			return "", ErrNoAudio
		}
	}
	return mimeType, nil
}

// Unavailable is the voice capture used where no microphone input exists
type Unavailable struct{}

func (Unavailable) Available() bool { return false }

func (Unavailable) Capture(context.Context) (string, error) { return "", ErrNoAudio }
