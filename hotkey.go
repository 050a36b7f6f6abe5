package main

import (
	"fyne.io/fyne/v2"
	"github.com/borgmon/jumpin/pkg/app"
	"github.com/borgmon/jumpin/pkg/platform"
	"go.uber.org/zap"
	"golang.design/x/hotkey"
)

// registerScheduleHotkey binds Ctrl+Shift+J to the schedule tab
func (ji *JumpIn) registerScheduleHotkey() {
	go func() {
		hk := hotkey.New([]hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift}, hotkey.KeyJ)
		if err := hk.Register(); err != nil {
			ji.logger.Warn("failed to register schedule hotkey", zap.Error(err))
			return
		}
		ji.scheduleHotkey = hk
		ji.logger.Debug("schedule hotkey registered", zap.String("keys", "Ctrl+Shift+J"))

		for range hk.Keydown() {
			fyne.Do(func() {
				ji.showMainWindow(app.ViewSchedule)
				platform.BringToFront()
			})
		}
	}()
}
