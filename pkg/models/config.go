package models

import (
	"time"

	"github.com/creasty/defaults"
)

// Config holds application configuration
type Config struct {
	AutoStart           bool   `json:"auto_start" default:"false"`
	ReminderLeadMinutes int    `json:"reminder_lead_minutes" default:"10" validate:"min=1,max=1440"`
	ReminderIntervalSec int    `json:"reminder_interval_sec" default:"15" validate:"min=1,max=3600"`
	NotificationTTLSec  int    `json:"notification_ttl_sec" default:"8" validate:"min=1,max=3600"`
	MeetingDurationMin  int    `json:"meeting_duration_min" default:"60" validate:"min=1,max=1440"`
	OwnerName           string `json:"owner_name" default:"You" validate:"required"`
	ParseModel          string `json:"parse_model" default:"gemini-3-flash-preview" validate:"required"`
	SpeechModel         string `json:"speech_model" default:"gemini-2.5-flash-preview-tts" validate:"required"`
	VoiceName           string `json:"voice_name" default:"Kore" validate:"required"`
	SpeakConfirmations  bool   `json:"speak_confirmations" default:"true"`
	LogLevel            string `json:"log_level" default:"info" validate:"oneof=debug info warn error"`
}

// DefaultConfig returns a Config with every default applied
func DefaultConfig() *Config {
	c := &Config{}
	// Only fails on non-pointer input.
	_ = defaults.Set(c)
	return c
}

// Validate checks the configured ranges
func (c *Config) Validate() error {
	return Validate(c)
}

// ReminderLead is the reminder window: a meeting is reminded when its
// start is within (0, ReminderLead] of now.
func (c *Config) ReminderLead() time.Duration {
	return time.Duration(c.ReminderLeadMinutes) * time.Minute
}

// ReminderInterval is the period of the reminder check
func (c *Config) ReminderInterval() time.Duration {
	return time.Duration(c.ReminderIntervalSec) * time.Second
}

// NotificationTTL is how long a notification stays visible
func (c *Config) NotificationTTL() time.Duration {
	return time.Duration(c.NotificationTTLSec) * time.Second
}

// MeetingDuration is the fixed length given to newly composed meetings
func (c *Config) MeetingDuration() time.Duration {
	return time.Duration(c.MeetingDurationMin) * time.Minute
}
