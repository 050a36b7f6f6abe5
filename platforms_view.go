package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/jumpin/pkg/app"
)

// PlatformsView shows the connected sources. Nothing is actually synced.
type PlatformsView struct {
	state   *app.App
	list    *fyne.Container
	content fyne.CanvasObject
}

func NewPlatformsView(state *app.App) *PlatformsView {
	pv := &PlatformsView{
		state: state,
		list:  container.NewVBox(),
	}
	note := widget.NewLabel("Meetings found in these sources appear on the dashboard.")
	note.Wrapping = fyne.TextWrapWord
	pv.content = container.NewBorder(note, nil, nil, nil, container.NewVScroll(pv.list))
	pv.refresh()
	return pv
}

func (pv *PlatformsView) Content() fyne.CanvasObject {
	return pv.content
}

func (pv *PlatformsView) refresh() {
	pv.list.RemoveAll()
	for _, source := range pv.state.Sources() {
		id := source.ID

		status := "No active connection"
		action := "Connect"
		if source.Connected {
			status = "Last synced " + source.LastSynced
			action = "Disconnect"
		}

		button := widget.NewButton(action, func() {
			pv.state.ToggleSource(id)
			pv.refresh()
		})
		if source.Connected {
			button.Importance = widget.DangerImportance
		} else {
			button.Importance = widget.HighImportance
		}

		name := widget.NewLabel(source.Name)
		name.TextStyle = fyne.TextStyle{Bold: true}
		pv.list.Add(container.NewBorder(nil, nil, nil, button,
			container.NewVBox(name, widget.NewLabel(status))))
	}
	pv.list.Refresh()
}
