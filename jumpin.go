package main

import (
	"context"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/borgmon/jumpin/pkg/app"
	"github.com/borgmon/jumpin/pkg/assistant"
	"github.com/borgmon/jumpin/pkg/audio"
	"github.com/borgmon/jumpin/pkg/logger"
	"github.com/borgmon/jumpin/pkg/models"
	"github.com/borgmon/jumpin/pkg/platform"
	"github.com/borgmon/jumpin/pkg/store"
	"go.uber.org/zap"
	"golang.design/x/hotkey"
)

const appID = "io.github.borgmon.jumpin"

// JumpIn is the desktop shell around the application state
type JumpIn struct {
	fyneApp     fyne.App
	configStore *store.ConfigStore
	config      *models.Config
	state       *app.App
	logger      *zap.Logger

	mainWindow     *MainWindow
	settingsWindow *SettingsWindow
	scheduleHotkey *hotkey.Hotkey
}

func runDesktop(demo, background bool) error {
	fa := fyneapp.NewWithID(appID)

	configStore := store.NewConfigStore(fa.Preferences(), logger.New(rootFlags.logLevel))
	config := configStore.Load()

	level := config.LogLevel
	if rootFlags.logLevel != "" {
		level = rootFlags.logLevel
	}
	log := logger.New(level)
	defer func() { _ = log.Sync() }()

	ji := &JumpIn{
		fyneApp:     fa,
		configStore: configStore,
		config:      config,
		logger:      log,
	}
	ji.state = app.New(newAppOptions(context.Background(), config, log))

	if demo {
		ji.state.SeedDemo(time.Now())
	}

	ji.initialize()

	fa.Lifecycle().SetOnStarted(func() {
		if background {
			platform.RunAsAccessory()
			return
		}
		ji.showMainWindow(app.ViewDashboard)
	})
	fa.Run()

	ji.shutdown()
	return nil
}

// newAppOptions wires the assistant collaborators when an API key is configured
func newAppOptions(ctx context.Context, config *models.Config, log *zap.Logger) app.Options {
	opts := app.Options{
		Config: config,
		Logger: log,
		Voice:  assistant.Unavailable{},
	}

	a, err := newAssistant(ctx, config, log)
	if err != nil {
		log.Info("assistant disabled", zap.Error(err))
		return opts
	}
	opts.Parser = a.Parser
	opts.Speaker = a.Speaker
	return opts
}

func newAssistant(ctx context.Context, config *models.Config, log *zap.Logger) (*assistant.Assistant, error) {
	gen, err := assistant.NewGenerator(ctx, assistant.LoadAPIKey(".env"))
	if err != nil {
		return nil, err
	}
	return assistant.New(gen, audio.NewPlayer(audio.SpeechFormat, log), assistant.Options{
		ParseModel:  config.ParseModel,
		SpeechModel: config.SpeechModel,
		VoiceName:   config.VoiceName,
		Logger:      log,
	}), nil
}

func (ji *JumpIn) initialize() {
	if err := setupAutostart(ji.config.AutoStart, ji.logger); err != nil {
		ji.logger.Warn("failed to setup autostart", zap.Error(err))
	}

	ji.state.OnReminder(ji.alert)
	ji.state.Meetings.OnChange(func([]models.Meeting) {
		fyne.Do(ji.updateSystemTrayMenu)
	})

	ji.setupSystemTray()
	ji.registerScheduleHotkey()

	if err := ji.state.Start(); err != nil {
		ji.logger.Error("reminder scheduler failed to start", zap.Error(err))
	}
}

// alert raises an OS notification for a reminder and brings the dashboard forward
func (ji *JumpIn) alert(message string) {
	ji.fyneApp.SendNotification(fyne.NewNotification("JumpIn", message))
	fyne.Do(func() {
		ji.showMainWindow(app.ViewDashboard)
		platform.BringToFront()
	})
}

func (ji *JumpIn) showMainWindow(view app.View) {
	if ji.mainWindow == nil {
		ji.mainWindow = NewMainWindow(ji.fyneApp, ji.state, ji.logger)
		ji.mainWindow.window.SetOnClosed(func() {
			ji.mainWindow.Close()
			ji.mainWindow = nil
		})
	}
	ji.state.SetView(view)
	ji.mainWindow.Show()
}

func (ji *JumpIn) showSettingsWindow() {
	if ji.settingsWindow != nil {
		ji.settingsWindow.window.RequestFocus()
		ji.settingsWindow.window.Show()
		return
	}

	ji.settingsWindow = NewSettingsWindow(ji.fyneApp, ji.config, ji.logger, func(newConfig *models.Config) {
		ji.configStore.Save(newConfig)
		ji.config = newConfig
		ji.state.ApplyConfig(newConfig)
	})
	ji.settingsWindow.window.SetOnClosed(func() {
		ji.settingsWindow = nil
	})
	ji.settingsWindow.Show()
}

func (ji *JumpIn) quit() {
	ji.fyneApp.Quit()
}

func (ji *JumpIn) shutdown() {
	if ji.scheduleHotkey != nil {
		if err := ji.scheduleHotkey.Unregister(); err != nil {
			ji.logger.Debug("hotkey unregister", zap.Error(err))
		}
	}
	ji.state.Shutdown()
}
