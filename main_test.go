package main

import (
	"bytes"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/borgmon/jumpin/pkg/app"
	"github.com/borgmon/jumpin/pkg/draft"
	"github.com/borgmon/jumpin/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "Product...", truncateString("Product Strategy Sync", 10))
	assert.Equal(t, "Réu...", truncateString("Réunion d'équipe", 6))
}

func TestUpcomingToday(t *testing.T) {
	now := time.Date(2024, 3, 25, 12, 0, 0, 0, time.Local)
	at := func(id string, d time.Duration) models.Meeting {
		return models.Meeting{ID: id, StartTime: now.Add(d), EndTime: now.Add(d + time.Hour)}
	}
	meetings := []models.Meeting{
		at("past", -time.Hour),
		at("a", time.Hour),
		at("b", 2*time.Hour),
		at("c", 3*time.Hour),
		at("tomorrow", 24*time.Hour),
	}

	got := upcomingToday(meetings, now, 2)
	if assert.Len(t, got, 2) {
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "b", got[1].ID)
	}
}

func TestPrintDraft(t *testing.T) {
	var buf bytes.Buffer
	printDraft(&buf, models.Draft{Title: "Sync", Date: "2024-03-25", Platform: "Zoom"})

	assert.Equal(t, ""+
		"title:       Sync\n"+
		"date:        2024-03-25\n"+
		"startTime:   -\n"+
		"platform:    Zoom\n"+
		"link:        -\n"+
		"description: -\n", buf.String())
}

func TestMainWindow_CloseReleasesListeners(t *testing.T) {
	fa := test.NewTempApp(t)
	state := app.New(app.Options{Location: time.UTC})
	t.Cleanup(state.Shutdown)

	meetings := state.Meetings.Listeners()
	notifications := state.Notifications.Listeners()

	for i := 0; i < 3; i++ {
		mw := NewMainWindow(fa, state, zap.NewNop())
		assert.Greater(t, state.Meetings.Listeners(), meetings)
		require.NoError(t, state.Schedule().ApplyManualEdit(draft.FieldTitle, "Half-typed"))

		mw.Close()
		mw.window.Close()

		assert.Equal(t, meetings, state.Meetings.Listeners())
		assert.Equal(t, notifications, state.Notifications.Listeners())
		assert.Equal(t, 0, state.Schedule().Listeners())
		assert.Equal(t, "", state.Schedule().Draft().Title)
	}
}
