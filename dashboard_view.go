package main

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/jumpin/pkg/app"
	"go.uber.org/zap"
)

// DashboardView lists today's meetings, the platform breakdown and the
// next days preview
type DashboardView struct {
	app    fyne.App
	window fyne.Window
	state  *app.App
	logger *zap.Logger

	heading   *widget.Label
	today     *fyne.Container
	platforms *fyne.Container
	upcoming  *fyne.Container
	content   fyne.CanvasObject

	stop chan struct{}
}

func NewDashboardView(fa fyne.App, window fyne.Window, state *app.App, log *zap.Logger) *DashboardView {
	dv := &DashboardView{
		app:       fa,
		window:    window,
		state:     state,
		logger:    log,
		heading:   widget.NewLabel(""),
		today:     container.NewVBox(),
		platforms: container.NewVBox(),
		upcoming:  container.NewVBox(),
		stop:      make(chan struct{}),
	}
	dv.heading.TextStyle = fyne.TextStyle{Bold: true}

	side := container.NewVBox(
		widget.NewCard("Platforms", "", dv.platforms),
		widget.NewCard("Next Days", "", dv.upcoming),
	)
	dv.content = container.NewBorder(
		dv.heading, nil, nil, side,
		container.NewVScroll(dv.today),
	)

	// "Jump In" highlighting depends on the clock, not only on store changes
	go dv.tick()
	return dv
}

func (dv *DashboardView) Content() fyne.CanvasObject {
	return dv.content
}

func (dv *DashboardView) tick() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-dv.stop:
			return
		case <-ticker.C:
			fyne.Do(dv.Refresh)
		}
	}
}

func (dv *DashboardView) Stop() {
	select {
	case <-dv.stop:
	default:
		close(dv.stop)
	}
}

// Refresh rebuilds every section from the current store snapshot
func (dv *DashboardView) Refresh() {
	now := dv.state.Now()
	summary := dv.state.Summary()

	dv.heading.SetText(fmt.Sprintf("Today, %s - %d meeting(s)", now.Format("Monday, January 2"), len(summary.Today)))

	dv.today.RemoveAll()
	if len(summary.Today) == 0 {
		dv.today.Add(widget.NewLabel("No meetings scheduled for today."))
	}
	for _, m := range summary.Today {
		dv.today.Add(NewMeetingCard(dv.app, dv.window, m, now, dv.state.Location(), dv.logger))
	}

	dv.platforms.RemoveAll()
	if len(summary.Platforms) == 0 {
		dv.platforms.Add(widget.NewLabel("No meetings yet"))
	}
	for _, pc := range summary.Platforms {
		bar := widget.NewProgressBar()
		bar.Max = float64(summary.Total)
		bar.SetValue(float64(pc.Count))
		bar.TextFormatter = func(count int) func() string {
			return func() string { return fmt.Sprintf("%d", count) }
		}(pc.Count)
		dv.platforms.Add(container.NewBorder(nil, nil, widget.NewLabel(string(pc.Platform)), nil, bar))
	}

	dv.upcoming.RemoveAll()
	if len(summary.Upcoming) == 0 {
		dv.upcoming.Add(widget.NewLabel("Nothing planned"))
	}
	for _, m := range summary.Upcoming {
		start := m.StartTime.In(dv.state.Location())
		dv.upcoming.Add(widget.NewLabel(fmt.Sprintf("%s  %s\n%s",
			start.Format("Mon Jan 2"), start.Format("3:04 PM"), truncateString(m.Title, 40))))
	}

	dv.today.Refresh()
	dv.platforms.Refresh()
	dv.upcoming.Refresh()
}
