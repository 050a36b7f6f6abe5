package main

import (
	"os"
	"path/filepath"

	"github.com/emersion/go-autostart"
	"go.uber.org/zap"
)

func setupAutostart(enable bool, log *zap.Logger) error {
	execPath, err := os.Executable()
	if err != nil {
		return err
	}

	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return err
	}

	entry := &autostart.App{
		Name:        "jumpin",
		DisplayName: "JumpIn",
		Exec:        []string{execPath, "--background"},
	}

	switch {
	case enable && !entry.IsEnabled():
		if err := entry.Enable(); err != nil {
			return err
		}
		log.Info("autostart enabled")
	case !enable && entry.IsEnabled():
		if err := entry.Disable(); err != nil {
			return err
		}
		log.Info("autostart disabled")
	}
	return nil
}
