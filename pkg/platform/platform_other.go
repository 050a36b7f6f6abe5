//go:build !darwin

// Package platform wraps the few OS calls fyne does not expose.
package platform

// RunAsAccessory is a no-op outside macOS
func RunAsAccessory() {}

// IsActive always returns true outside macOS
func IsActive() bool {
	return true
}

// BringToFront is a no-op outside macOS
func BringToFront() {}
