package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"github.com/borgmon/jumpin/pkg/app"
	"github.com/borgmon/jumpin/pkg/models"
	"go.uber.org/zap"
)

// MainWindow hosts the dashboard, schedule and platforms tabs next to the
// live notification list
type MainWindow struct {
	window fyne.Window
	app    fyne.App
	state  *app.App
	logger *zap.Logger

	tabs          *container.AppTabs
	tabItems      map[app.View]*container.TabItem
	dashboard     *DashboardView
	schedule      *ScheduleView
	platforms     *PlatformsView
	notifications *NotificationPanel

	unsubscribe []func()
	closed      bool
}

func NewMainWindow(fa fyne.App, state *app.App, log *zap.Logger) *MainWindow {
	mw := &MainWindow{
		app:    fa,
		state:  state,
		logger: log,
	}

	mw.window = fa.NewWindow("JumpIn")
	mw.window.Resize(fyne.NewSize(1100, 720))
	mw.buildUI()
	mw.subscribe()

	return mw
}

func (mw *MainWindow) buildUI() {
	mw.dashboard = NewDashboardView(mw.app, mw.window, mw.state, mw.logger)
	mw.schedule = NewScheduleView(mw.window, mw.state, mw.logger)
	mw.platforms = NewPlatformsView(mw.state)
	mw.notifications = NewNotificationPanel(mw.state)

	mw.tabItems = map[app.View]*container.TabItem{
		app.ViewDashboard: container.NewTabItemWithIcon("Dashboard", theme.HomeIcon(), mw.dashboard.Content()),
		app.ViewSchedule:  container.NewTabItemWithIcon("Schedule", theme.ContentAddIcon(), mw.schedule.Content()),
		app.ViewPlatforms: container.NewTabItemWithIcon("Platforms", theme.SettingsIcon(), mw.platforms.Content()),
	}
	mw.tabs = container.NewAppTabs(
		mw.tabItems[app.ViewDashboard],
		mw.tabItems[app.ViewSchedule],
		mw.tabItems[app.ViewPlatforms],
	)
	mw.tabs.SetTabLocation(container.TabLocationLeading)
	mw.tabs.OnSelected = func(item *container.TabItem) {
		for view, candidate := range mw.tabItems {
			if candidate == item {
				mw.state.SetView(view)
			}
		}
	}

	split := container.NewHSplit(mw.tabs, mw.notifications.Content())
	split.SetOffset(0.78)
	mw.window.SetContent(split)

	mw.dashboard.Refresh()
	mw.notifications.Refresh(mw.state.Notifications.List())
	mw.selectTab(mw.state.View())
}

// subscribe forwards state changes to the views on the fyne thread
func (mw *MainWindow) subscribe() {
	onView := mw.state.OnViewChange(func(v app.View) {
		fyne.Do(func() {
			if !mw.closed {
				mw.selectTab(v)
			}
		})
	})
	onMeetings := mw.state.Meetings.OnChange(func([]models.Meeting) {
		fyne.Do(func() {
			if !mw.closed {
				mw.dashboard.Refresh()
				mw.schedule.RefreshConflict()
			}
		})
	})
	onNotifications := mw.state.Notifications.OnChange(func(ns []models.Notification) {
		fyne.Do(func() {
			if !mw.closed {
				mw.notifications.Refresh(ns)
			}
		})
	})
	mw.unsubscribe = []func(){onView, onMeetings, onNotifications}
}

func (mw *MainWindow) selectTab(v app.View) {
	if item, ok := mw.tabItems[v]; ok && mw.tabs.Selected() != item {
		mw.tabs.Select(item)
	}
	if v == app.ViewDashboard {
		mw.dashboard.Refresh()
	}
}

func (mw *MainWindow) Show() {
	mw.window.Show()
	mw.window.RequestFocus()
}

// Close detaches the window from the app state. Updates already queued on
// the fyne thread check the flag.
func (mw *MainWindow) Close() {
	mw.closed = true
	for _, unsubscribe := range mw.unsubscribe {
		unsubscribe()
	}
	mw.unsubscribe = nil
	mw.schedule.Stop()
	mw.dashboard.Stop()
}
