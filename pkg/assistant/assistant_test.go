package assistant

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/borgmon/jumpin/pkg/audio"
	"github.com/borgmon/jumpin/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type call struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

type fakeGenerator struct {
	resp  *genai.GenerateContentResponse
	err   error
	calls []call
}

func (g *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	g.calls = append(g.calls, call{model: model, contents: contents, config: config})
	return g.resp, g.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
	}}}
}

func audioResponse(pcm []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []*genai.Part{{InlineData: &genai.Blob{Data: pcm, MIMEType: "audio/L16;rate=24000"}}}},
	}}}
}

type fakePlayer struct {
	played [][]byte
}

func (p *fakePlayer) Play(_ context.Context, pcm []byte) error {
	p.played = append(p.played, pcm)
	return nil
}

var today = time.Date(2024, 3, 25, 9, 0, 0, 0, time.UTC)

func TestDecodeParsedDraft(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want models.ParsedDraft
	}{
		{
			name: "complete",
			raw:  `{"title":"Sync","date":"2024-03-26","startTime":"15:00","platform":"Zoom","link":"https://zoom.us/j/1"}`,
			want: models.ParsedDraft{Title: "Sync", Date: "2024-03-26", StartTime: "15:00", Platform: "Zoom", Link: "https://zoom.us/j/1"},
		},
		{
			name: "missing and null keys are unknown",
			raw:  `{"title":"Sync","date":null}`,
			want: models.ParsedDraft{Title: "Sync"},
		},
		{
			name: "blank values are unknown",
			raw:  `{"title":"  ","startTime":""}`,
			want: models.ParsedDraft{},
		},
		{
			name: "ill-formed date and time dropped",
			raw:  `{"title":"X","date":"next Tuesday","startTime":"3pm"}`,
			want: models.ParsedDraft{Title: "X"},
		},
		{
			name: "seconds and single digit hour normalized",
			raw:  `{"startTime":"9:30:00"}`,
			want: models.ParsedDraft{StartTime: "09:30"},
		},
		{
			name: "platform alias",
			raw:  `{"platform":"teams"}`,
			want: models.ParsedDraft{Platform: string(models.PlatformTeams)},
		},
		{
			name: "platform inferred from link",
			raw:  `{"platform":"video call","link":"https://meet.google.com/abc"}`,
			want: models.ParsedDraft{Platform: string(models.PlatformGoogleMeet), Link: "https://meet.google.com/abc"},
		},
		{
			name: "code fence",
			raw:  "```json\n{\"title\":\"Fenced\"}\n```",
			want: models.ParsedDraft{Title: "Fenced"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeParsedDraft(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeParsedDraft_Malformed(t *testing.T) {
	for _, raw := range []string{"", "not json", `["title"]`, `"Sync"`, `{"title":`} {
		_, err := DecodeParsedDraft(raw)
		assert.ErrorIs(t, err, ErrMalformedResponse, raw)
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("lunch with Bo tomorrow", today)
	assert.Contains(t, prompt, `"lunch with Bo tomorrow"`)
	assert.Contains(t, prompt, "Current year is 2024")
	assert.Contains(t, prompt, "2024-03-25")
	assert.Contains(t, prompt, "startTime (HH:mm)")
}

func TestParser_Parse(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse(`{"title":"Lunch","date":"2024-03-26"}`)}
	p := NewParser(gen, "", zap.NewNop())

	got, err := p.Parse(context.Background(), "lunch tomorrow", today)
	require.NoError(t, err)
	assert.Equal(t, models.ParsedDraft{Title: "Lunch", Date: "2024-03-26"}, got)

	require.Len(t, gen.calls, 1)
	assert.Equal(t, DefaultParseModel, gen.calls[0].model)
	assert.Equal(t, "application/json", gen.calls[0].config.ResponseMIMEType)

	_, err = p.Parse(context.Background(), " lunch tomorrow ", today)
	require.NoError(t, err)
	assert.Len(t, gen.calls, 1, "second request served from cache")

	_, err = p.Parse(context.Background(), "lunch tomorrow", today.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, gen.calls, 2, "cache is keyed by day")
}

func TestParser_Errors(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota")}
	p := NewParser(gen, "m", zap.NewNop())
	_, err := p.Parse(context.Background(), "x", today)
	assert.ErrorContains(t, err, "quota")

	gen.err, gen.resp = nil, textResponse("sorry, I can't")
	_, err = p.Parse(context.Background(), "y", today)
	assert.ErrorIs(t, err, ErrMalformedResponse)

	gen.resp = textResponse(`{"title":"Ok"}`)
	got, err := p.Parse(context.Background(), "y", today)
	require.NoError(t, err)
	assert.Equal(t, "Ok", got.Title, "failures are not cached")
}

func TestSpeaker_Speak(t *testing.T) {
	pcm := []byte{1, 2, 3, 4}
	gen := &fakeGenerator{resp: audioResponse(pcm)}
	player := &fakePlayer{}
	s := NewSpeaker(gen, player, "", "", zap.NewNop())

	require.NoError(t, s.Speak(context.Background(), "I've drafted Sync for you."))
	assert.Equal(t, [][]byte{pcm}, player.played)

	require.Len(t, gen.calls, 1)
	c := gen.calls[0]
	assert.Equal(t, DefaultSpeechModel, c.model)
	assert.Equal(t, "Friendly AI Assistant voice: I've drafted Sync for you.", c.contents[0].Parts[0].Text)
	assert.Equal(t, []string{string(genai.ModalityAudio)}, c.config.ResponseModalities)
	assert.Equal(t, DefaultVoice, c.config.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName)
}

func TestSpeaker_NoAudio(t *testing.T) {
	s := NewSpeaker(&fakeGenerator{resp: textResponse("hello")}, &fakePlayer{}, "", "", zap.NewNop())
	assert.ErrorIs(t, s.Speak(context.Background(), "x"), ErrNoAudio)
	assert.NoError(t, s.Speak(context.Background(), "  "))
}

func TestFileCapture(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.wav")
	require.NoError(t, os.WriteFile(path, audio.EncodeWAV(audio.SpeechFormat, make([]byte, 480)), 0o600))

	gen := &fakeGenerator{resp: textResponse(" meet Ana at noon \n")}
	capture := FileCapture{Path: path, Transcriber: NewTranscriber(gen, "", zap.NewNop())}

	require.True(t, capture.Available())
	got, err := capture.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "meet Ana at noon", got)

	parts := gen.calls[0].contents[0].Parts
	require.Len(t, parts, 2)
	assert.Equal(t, "audio/wav", parts[1].InlineData.MIMEType)

	assert.False(t, FileCapture{Path: filepath.Join(dir, "missing.wav"), Transcriber: capture.Transcriber}.Available())
}

func TestRecordingMIMEType(t *testing.T) {
	_, err := RecordingMIMEType("a.wav", audio.EncodeWAV(audio.SpeechFormat, nil))
	assert.ErrorIs(t, err, ErrNoAudio)

	_, err = RecordingMIMEType("a.txt", []byte("x"))
	assert.Error(t, err)

	mime, err := RecordingMIMEType("a.MP3", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "audio/mp3", mime)
}

func TestUnavailable(t *testing.T) {
	var u Unavailable
	assert.False(t, u.Available())
	_, err := u.Capture(context.Background())
	assert.ErrorIs(t, err, ErrNoAudio)
}

func TestLoadAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	require.NoError(t, os.Unsetenv("API_KEY"))

	env := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(env, []byte("API_KEY=from-file\n"), 0o600))

	assert.Equal(t, "from-file", LoadAPIKey(filepath.Join(t.TempDir(), "absent.env"), env))

	t.Setenv("GEMINI_API_KEY", "primary")
	assert.Equal(t, "primary", LoadAPIKey())
}

func TestNewGenerator_RequiresKey(t *testing.T) {
	_, err := NewGenerator(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}
