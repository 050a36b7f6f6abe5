package main

import (
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/jumpin/pkg/models"
	"go.uber.org/zap"
)

var leadOptions = []string{"5", "10", "15", "30"}

var logLevels = []string{"debug", "info", "warn", "error"}

// SettingsWindow edits the persisted configuration
type SettingsWindow struct {
	window fyne.Window
	app    fyne.App
	config *models.Config
	logger *zap.Logger
	onSave func(*models.Config)

	autoStartCheck *widget.Check
	ownerEntry     *widget.Entry
	speakCheck     *widget.Check
	leadSelect     *widget.Select
	logLevelSelect *widget.Select

	hasUnsavedChanges bool
	saveStatusLabel   *widget.Label
	saveButton        *widget.Button
}

func NewSettingsWindow(fa fyne.App, config *models.Config, log *zap.Logger, onSave func(*models.Config)) *SettingsWindow {
	sw := &SettingsWindow{
		app:    fa,
		config: config,
		logger: log,
		onSave: onSave,
	}

	sw.window = fa.NewWindow("JumpIn - Settings")
	sw.buildUI()

	return sw
}

func (sw *SettingsWindow) buildUI() {
	sw.autoStartCheck = widget.NewCheck("Start JumpIn when you log in", func(bool) { sw.markChanged() })
	sw.autoStartCheck.SetChecked(sw.config.AutoStart)

	sw.ownerEntry = widget.NewEntry()
	sw.ownerEntry.SetText(sw.config.OwnerName)
	sw.ownerEntry.OnChanged = func(string) { sw.markChanged() }

	sw.speakCheck = widget.NewCheck("Read drafted meetings aloud", func(bool) { sw.markChanged() })
	sw.speakCheck.SetChecked(sw.config.SpeakConfirmations)

	sw.leadSelect = widget.NewSelect(leadOptions, func(string) { sw.markChanged() })
	sw.leadSelect.SetSelected(strconv.Itoa(sw.config.ReminderLeadMinutes))

	sw.logLevelSelect = widget.NewSelect(logLevels, func(string) { sw.markChanged() })
	sw.logLevelSelect.SetSelected(sw.config.LogLevel)

	storageURIEntry := widget.NewEntry()
	storageURIEntry.SetText(sw.app.Storage().RootURI().String())
	storageURIEntry.Disable()
	openStorageButton := widget.NewButton("Open in File Manager", sw.openStorage)

	restartHelp := widget.NewLabel("Reminder and logging changes apply the next time JumpIn starts.")
	restartHelp.Wrapping = fyne.TextWrapWord
	restartHelp.Importance = widget.MediumImportance

	form := container.New(layout.NewFormLayout(),
		widget.NewLabel("Auto Start:"), sw.autoStartCheck,
		widget.NewLabel("Your Name:"), sw.ownerEntry,
		widget.NewLabel("Assistant:"), sw.speakCheck,
		widget.NewLabel("Remind Before (min):"), sw.leadSelect,
		widget.NewLabel("Log Level:"), sw.logLevelSelect,
		widget.NewLabel("Storage Location:"), container.NewBorder(nil, nil, nil, openStorageButton, storageURIEntry),
	)

	sw.saveStatusLabel = widget.NewLabel("")
	sw.saveButton = widget.NewButton("Save", sw.save)
	sw.saveButton.Importance = widget.HighImportance
	sw.saveButton.Disable()
	sw.hasUnsavedChanges = false

	buttonRow := container.NewBorder(nil, nil,
		container.NewHBox(sw.saveButton, sw.saveStatusLabel),
		widget.NewButton("Close", sw.handleClose),
	)

	sw.window.SetContent(container.NewBorder(
		nil,
		container.NewPadded(buttonRow),
		nil,
		nil,
		container.NewPadded(container.NewVBox(form, restartHelp)),
	))
	sw.window.Resize(fyne.NewSize(560, 380))
	sw.window.CenterOnScreen()
	sw.window.SetCloseIntercept(sw.handleClose)
}

func (sw *SettingsWindow) Show() {
	sw.window.Show()
}

func (sw *SettingsWindow) configFromUI() *models.Config {
	next := *sw.config
	next.AutoStart = sw.autoStartCheck.Checked
	next.OwnerName = sw.ownerEntry.Text
	next.SpeakConfirmations = sw.speakCheck.Checked
	if lead, err := strconv.Atoi(sw.leadSelect.Selected); err == nil {
		next.ReminderLeadMinutes = lead
	}
	if sw.logLevelSelect.Selected != "" {
		next.LogLevel = sw.logLevelSelect.Selected
	}
	return &next
}

func (sw *SettingsWindow) save() {
	newConfig := sw.configFromUI()
	if err := newConfig.Validate(); err != nil {
		sw.showStatus(fmt.Sprintf("Invalid settings: %v", err), widget.DangerImportance)
		return
	}

	sw.saveButton.Disable()
	sw.showStatus("Saving...", widget.MediumImportance)

	go func() {
		if err := setupAutostart(newConfig.AutoStart, sw.logger); err != nil {
			sw.logger.Error("error setting autostart", zap.Error(err))
			fyne.Do(func() {
				sw.showStatus("Error: Failed to set autostart", widget.DangerImportance)
				sw.updateSaveButtonState()
			})
			return
		}

		if sw.onSave != nil {
			sw.onSave(newConfig)
		}

		fyne.Do(func() {
			sw.config = newConfig
			sw.hasUnsavedChanges = false
			sw.showStatus("Settings saved successfully", widget.SuccessImportance)
			sw.updateSaveButtonState()
		})

		time.Sleep(3 * time.Second)
		fyne.Do(func() {
			if sw.saveStatusLabel.Text == "Settings saved successfully" {
				sw.showStatus("", widget.MediumImportance)
			}
		})
	}()
}

func (sw *SettingsWindow) showStatus(text string, importance widget.Importance) {
	sw.saveStatusLabel.SetText(text)
	sw.saveStatusLabel.Importance = importance
	sw.saveStatusLabel.Refresh()
}

func (sw *SettingsWindow) markChanged() {
	sw.hasUnsavedChanges = true
	sw.updateSaveButtonState()
}

func (sw *SettingsWindow) updateSaveButtonState() {
	if sw.saveButton == nil {
		return
	}
	if sw.hasUnsavedChanges {
		sw.saveButton.Enable()
	} else {
		sw.saveButton.Disable()
	}
}

func (sw *SettingsWindow) handleClose() {
	if *sw.configFromUI() == *sw.config {
		sw.window.Close()
		return
	}
	dialog.ShowConfirm("Unsaved Changes",
		"You have unsaved changes. Are you sure you want to close?",
		func(confirmed bool) {
			if confirmed {
				sw.window.Close()
			}
		}, sw.window)
}

func (sw *SettingsWindow) openStorage() {
	path := sw.app.Storage().RootURI().Path()
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		sw.logger.Warn("unsupported OS", zap.String("os", runtime.GOOS))
		return
	}

	if err := cmd.Start(); err != nil {
		sw.logger.Error("error opening file manager", zap.Error(err))
	}
}
