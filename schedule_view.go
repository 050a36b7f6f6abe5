package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/jumpin/pkg/app"
	"github.com/borgmon/jumpin/pkg/calendar"
	"github.com/borgmon/jumpin/pkg/draft"
	"github.com/borgmon/jumpin/pkg/models"
	"go.uber.org/zap"
)

const assistantTimeout = 30 * time.Second

// ScheduleView is the meeting form bound to a draft composer
type ScheduleView struct {
	window   fyne.Window
	state    *app.App
	composer *draft.Composer
	logger   *zap.Logger

	entries     map[draft.Field]*widget.Entry
	platform    *widget.Select
	conflict    *widget.Label
	command     *widget.Entry
	sendButton  *widget.Button
	voiceButton *widget.Button
	confirm     *widget.Button
	busy        *widget.ProgressBarInfinite
	content     fyne.CanvasObject

	unsubscribe func()
}

func NewScheduleView(window fyne.Window, state *app.App, log *zap.Logger) *ScheduleView {
	sv := &ScheduleView{
		window:   window,
		state:    state,
		composer: state.Schedule(),
		logger:   log,
		entries:  make(map[draft.Field]*widget.Entry),
	}
	sv.buildUI()
	sv.unsubscribe = sv.composer.OnChange(func(s draft.State) {
		fyne.Do(func() { sv.render(s) })
	})
	sv.render(sv.composer.State())
	return sv
}

// Stop detaches the view from the composer and drops the draft
func (sv *ScheduleView) Stop() {
	sv.unsubscribe()
	sv.composer.Reset()
}

func (sv *ScheduleView) Content() fyne.CanvasObject {
	return sv.content
}

func (sv *ScheduleView) buildUI() {
	placeholders := map[draft.Field]string{
		draft.FieldTitle:       "Weekly sync",
		draft.FieldDate:        "YYYY-MM-DD",
		draft.FieldStartTime:   "HH:mm",
		draft.FieldLink:        "https://...",
		draft.FieldDescription: "Agenda, notes",
	}
	for field, placeholder := range placeholders {
		field := field
		var entry *widget.Entry
		if field == draft.FieldDescription {
			entry = widget.NewMultiLineEntry()
		} else {
			entry = widget.NewEntry()
		}
		entry.SetPlaceHolder(placeholder)
		entry.OnChanged = func(text string) {
			if err := sv.composer.ApplyManualEdit(field, text); err != nil {
				sv.logger.Error("draft edit rejected", zap.Error(err))
			}
		}
		sv.entries[field] = entry
	}

	options := make([]string, len(models.Platforms))
	for i, p := range models.Platforms {
		options[i] = string(p)
	}
	sv.platform = widget.NewSelect(options, func(value string) {
		if err := sv.composer.ApplyManualEdit(draft.FieldPlatform, value); err != nil {
			sv.logger.Error("draft edit rejected", zap.Error(err))
		}
	})

	sv.conflict = widget.NewLabel("")
	sv.conflict.Importance = widget.WarningImportance
	sv.conflict.Wrapping = fyne.TextWrapWord
	sv.conflict.Hide()

	sv.command = widget.NewEntry()
	sv.command.SetPlaceHolder(`Try "Design sync with Ana tomorrow at 3pm on Zoom"`)
	sv.command.OnSubmitted = func(string) { sv.submitCommand() }
	sv.sendButton = widget.NewButtonWithIcon("Draft", theme.MailSendIcon(), sv.submitCommand)
	sv.voiceButton = widget.NewButtonWithIcon("", theme.MediaRecordIcon(), sv.submitVoice)
	if !sv.composer.VoiceAvailable() {
		sv.voiceButton.Disable()
	}
	sv.busy = widget.NewProgressBarInfinite()
	sv.busy.Hide()

	importButton := widget.NewButtonWithIcon("Import .ics", theme.FolderOpenIcon(), sv.importInvite)
	sv.confirm = widget.NewButtonWithIcon("Confirm & Schedule", theme.ConfirmIcon(), func() {
		if _, ok := sv.state.Commit(sv.composer); !ok {
			dialog.ShowInformation("Check the details", "Date or time could not be understood.", sv.window)
		}
	})
	sv.confirm.Importance = widget.HighImportance

	form := widget.NewForm(
		widget.NewFormItem("Title", sv.entries[draft.FieldTitle]),
		widget.NewFormItem("Date", sv.entries[draft.FieldDate]),
		widget.NewFormItem("Start", sv.entries[draft.FieldStartTime]),
		widget.NewFormItem("Platform", sv.platform),
		widget.NewFormItem("Link", sv.entries[draft.FieldLink]),
		widget.NewFormItem("Description", sv.entries[draft.FieldDescription]),
	)

	commandBar := container.NewBorder(nil, sv.busy, nil,
		container.NewHBox(sv.sendButton, sv.voiceButton),
		sv.command)

	sv.content = container.NewVScroll(container.NewVBox(
		widget.NewCard("Assistant", "Describe the meeting in your own words", commandBar),
		widget.NewCard("Meeting", "", container.NewVBox(form, sv.conflict)),
		container.NewHBox(importButton, widget.NewButton("Clear", sv.composer.Reset), sv.confirm),
	))
}

// render copies the composer state into the widgets. Equal values are
// skipped so OnChanged does not echo back.
func (sv *ScheduleView) render(s draft.State) {
	values := map[draft.Field]string{
		draft.FieldTitle:       s.Draft.Title,
		draft.FieldDate:        s.Draft.Date,
		draft.FieldStartTime:   s.Draft.StartTime,
		draft.FieldLink:        s.Draft.Link,
		draft.FieldDescription: s.Draft.Description,
	}
	for field, value := range values {
		if entry := sv.entries[field]; entry.Text != value {
			entry.SetText(value)
		}
	}
	if sv.platform.Selected != s.Draft.Platform {
		sv.platform.SetSelected(s.Draft.Platform)
	}

	if s.Processing || s.Listening {
		sv.busy.Show()
		sv.sendButton.Disable()
		sv.command.Disable()
	} else {
		sv.busy.Hide()
		sv.sendButton.Enable()
		sv.command.Enable()
	}

	if sv.composer.CanCommit() {
		sv.confirm.Enable()
	} else {
		sv.confirm.Disable()
	}
	sv.RefreshConflict()
}

// RefreshConflict re-checks the draft against the store
func (sv *ScheduleView) RefreshConflict() {
	c := sv.composer.Conflict()
	if c == nil {
		sv.conflict.Hide()
		return
	}
	start := c.StartTime.In(sv.state.Location())
	sv.conflict.SetText(fmt.Sprintf("Conflicts with \"%s\" at %s. You can still schedule it.", c.Title, start.Format("3:04 PM")))
	sv.conflict.Show()
}

func (sv *ScheduleView) submitCommand() {
	text := sv.command.Text
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), assistantTimeout)
		defer cancel()

		err := sv.composer.SubmitText(ctx, text)
		switch {
		case err == nil:
			fyne.Do(func() { sv.command.SetText("") })
		case errors.Is(err, draft.ErrEmptyInput), errors.Is(err, draft.ErrBusy):
		case errors.Is(err, draft.ErrNoParser):
			fyne.Do(func() {
				dialog.ShowInformation("Assistant unavailable", "Set GEMINI_API_KEY to draft meetings from text.", sv.window)
			})
		default:
			// logged by the composer; the draft is unchanged
		}
	}()
}

func (sv *ScheduleView) submitVoice() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), assistantTimeout)
		defer cancel()
		_ = sv.composer.SubmitVoice(ctx)
	}()
}

func (sv *ScheduleView) importInvite() {
	dialog.ShowFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			sv.logger.Warn("open dialog failed", zap.Error(err))
			return
		}
		if r == nil {
			return
		}
		defer r.Close()

		parsed, err := calendar.DecodeInvite(r, sv.state.Location())
		if err != nil {
			sv.logger.Warn("invite import failed", zap.String("uri", r.URI().String()), zap.Error(err))
			dialog.ShowInformation("Import failed", "The file is not a meeting invite.", sv.window)
			return
		}
		sv.composer.ApplyParsedResult(parsed)
	}, sv.window)
}
