package main

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/jumpin/pkg/calendar"
	"github.com/borgmon/jumpin/pkg/dashboard"
	"github.com/borgmon/jumpin/pkg/models"
	"go.uber.org/zap"
)

// NewMeetingCard renders one meeting with its join and share actions
func NewMeetingCard(fa fyne.App, window fyne.Window, m models.Meeting, now time.Time, loc *time.Location, log *zap.Logger) fyne.CanvasObject {
	start := m.StartTime.In(loc)
	end := m.EndTime.In(loc)

	details := widget.NewLabel(fmt.Sprintf("%s - %s  |  %s  |  via %s",
		start.Format("3:04 PM"), end.Format("3:04 PM"), m.Platform, m.Source))
	people := widget.NewLabel(strings.Join(m.Participants, ", "))
	people.Truncation = fyne.TextTruncateEllipsis

	soon := dashboard.IsSoon(m, now)
	joinLabel := "Jump In"
	if soon {
		joinLabel = "Jump In Now"
	}
	join := widget.NewButtonWithIcon(joinLabel, theme.MediaPlayIcon(), func() {
		u, err := url.Parse(m.Link)
		if err != nil || m.Link == "" {
			log.Warn("meeting has no usable link", zap.String("id", m.ID), zap.String("link", m.Link))
			return
		}
		if err := fa.OpenURL(u); err != nil {
			log.Warn("failed to open meeting link", zap.Error(err))
		}
	})
	if soon {
		join.Importance = widget.HighImportance
	}

	copyInvite := widget.NewButtonWithIcon("Copy Invite", theme.ContentCopyIcon(), func() {
		fa.Clipboard().SetContent(calendar.ShareText(m, loc))
		fa.SendNotification(fyne.NewNotification("JumpIn", "Invite copied to clipboard"))
	})

	saveInvite := widget.NewButtonWithIcon("Save .ics", theme.DocumentSaveIcon(), func() {
		saveInviteFile(window, m, log)
	})

	card := widget.NewCard(m.Title, "", container.NewVBox(
		details,
		people,
		container.NewHBox(join, copyInvite, saveInvite),
	))
	return card
}

func saveInviteFile(window fyne.Window, m models.Meeting, log *zap.Logger) {
	data, err := calendar.EncodeInvite(m, time.Now())
	if err != nil {
		log.Error("failed to encode invite", zap.Error(err))
		dialog.ShowError(fmt.Errorf("could not create the invite"), window)
		return
	}

	save := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			log.Warn("save dialog failed", zap.Error(err))
			return
		}
		if w == nil {
			return
		}
		defer w.Close()

		if _, err := w.Write(data); err != nil {
			log.Error("failed to write invite", zap.String("uri", w.URI().String()), zap.Error(err))
			dialog.ShowError(fmt.Errorf("could not save the invite"), window)
			return
		}
		log.Info("invite saved", zap.String("uri", w.URI().String()))
	}, window)
	save.SetFileName(calendar.InviteFilename(m))
	save.Show()
}
