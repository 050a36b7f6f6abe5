package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/jumpin/pkg/app"
	"github.com/borgmon/jumpin/pkg/models"
)

// NotificationPanel shows the live notification queue, newest first
type NotificationPanel struct {
	state   *app.App
	list    *fyne.Container
	content fyne.CanvasObject
}

func NewNotificationPanel(state *app.App) *NotificationPanel {
	np := &NotificationPanel{
		state: state,
		list:  container.NewVBox(),
	}
	header := widget.NewLabelWithStyle("Notifications", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	np.content = container.NewBorder(header, nil, nil, nil, container.NewVScroll(np.list))
	return np
}

func (np *NotificationPanel) Content() fyne.CanvasObject {
	return np.content
}

func (np *NotificationPanel) Refresh(notifications []models.Notification) {
	np.list.RemoveAll()
	for _, n := range notifications {
		id := n.ID
		message := widget.NewLabel(n.Message)
		message.Wrapping = fyne.TextWrapWord

		dismiss := widget.NewButtonWithIcon("", theme.CancelIcon(), func() {
			np.state.Dismiss(id)
		})
		dismiss.Importance = widget.LowImportance

		np.list.Add(widget.NewCard("", n.CreatedAt.Local().Format("3:04:05 PM"),
			container.NewBorder(nil, nil, nil, dismiss, message)))
	}
	np.list.Refresh()
}
