package main

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/borgmon/jumpin/pkg/app"
	"github.com/borgmon/jumpin/pkg/dashboard"
	"github.com/borgmon/jumpin/pkg/models"
)

const trayMeetingLimit = 5

func (ji *JumpIn) setupSystemTray() {
	ji.updateSystemTrayMenu()
}

func (ji *JumpIn) updateSystemTrayMenu() {
	desk, ok := ji.fyneApp.(desktop.App)
	if !ok {
		return
	}

	menuItems := []*fyne.MenuItem{}

	upcoming := upcomingToday(ji.state.Meetings.List(), time.Now(), trayMeetingLimit)
	if len(upcoming) > 0 {
		headerItem := fyne.NewMenuItem("Upcoming Today:", nil)
		headerItem.Disabled = true
		menuItems = append(menuItems, headerItem)

		for _, m := range upcoming {
			item := fyne.NewMenuItem(fmt.Sprintf("  %s - %s",
				m.StartTime.Local().Format("3:04 PM"),
				truncateString(m.Title, 35)), nil)
			item.Disabled = true
			menuItems = append(menuItems, item)
		}

		menuItems = append(menuItems, fyne.NewMenuItemSeparator())
	}

	menuItems = append(menuItems,
		fyne.NewMenuItem("Schedule Meeting", func() {
			ji.showMainWindow(app.ViewSchedule)
		}),
		fyne.NewMenuItem("Dashboard", func() {
			ji.showMainWindow(app.ViewDashboard)
		}),
		fyne.NewMenuItem("Settings", func() {
			ji.showSettingsWindow()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			ji.quit()
		}),
	)

	desk.SetSystemTrayMenu(fyne.NewMenu("JumpIn", menuItems...))
	desk.SetSystemTrayIcon(theme.HistoryIcon())
}

// upcomingToday returns the next meetings that have not started yet today
func upcomingToday(meetings []models.Meeting, now time.Time, limit int) []models.Meeting {
	var out []models.Meeting
	for _, m := range dashboard.Today(meetings, now) {
		if !m.StartTime.After(now) {
			continue
		}
		out = append(out, m)
		if len(out) == limit {
			break
		}
	}
	return out
}

// truncateString truncates a string to maxLen runes, adding "..." if needed
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
