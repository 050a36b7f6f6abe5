//go:build darwin

// Package platform wraps the few OS calls fyne does not expose.
package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework AppKit
#import <Cocoa/Cocoa.h>
#import <AppKit/AppKit.h>

void runAsAccessory(void) {
    [NSApp setActivationPolicy:NSApplicationActivationPolicyAccessory];
}

int isAppActive(void) {
    return [NSApp isActive] ? 1 : 0;
}

void activateApp(void) {
    [NSApp activateIgnoringOtherApps:YES];
}
*/
import "C"

// RunAsAccessory hides the dock icon; the app lives in the menu bar
func RunAsAccessory() {
	C.runAsAccessory()
}

// IsActive reports whether the app has focus
func IsActive() bool {
	return C.isAppActive() == 1
}

// BringToFront activates the app so a reminder is not missed behind other windows
func BringToFront() {
	if !IsActive() {
		C.activateApp()
	}
}
