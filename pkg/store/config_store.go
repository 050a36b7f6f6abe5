package store

import (
	"fyne.io/fyne/v2"
	"github.com/borgmon/jumpin/pkg/models"
	"go.uber.org/zap"
)

// ConfigStore handles configuration persistence using Fyne preferences
type ConfigStore struct {
	prefs  fyne.Preferences
	logger *zap.Logger
}

// NewConfigStore creates a new ConfigStore instance
func NewConfigStore(prefs fyne.Preferences, logger *zap.Logger) *ConfigStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConfigStore{prefs: prefs, logger: logger}
}

// Load loads configuration from preferences. Values that fail validation
// fall back to the defaults.
func (cs *ConfigStore) Load() *models.Config {
	def := models.DefaultConfig()

	config := &models.Config{
		AutoStart:           cs.prefs.BoolWithFallback("auto_start", def.AutoStart),
		ReminderLeadMinutes: cs.prefs.IntWithFallback("reminder_lead_minutes", def.ReminderLeadMinutes),
		ReminderIntervalSec: cs.prefs.IntWithFallback("reminder_interval_sec", def.ReminderIntervalSec),
		NotificationTTLSec:  cs.prefs.IntWithFallback("notification_ttl_sec", def.NotificationTTLSec),
		MeetingDurationMin:  cs.prefs.IntWithFallback("meeting_duration_min", def.MeetingDurationMin),
		OwnerName:           cs.prefs.StringWithFallback("owner_name", def.OwnerName),
		ParseModel:          cs.prefs.StringWithFallback("parse_model", def.ParseModel),
		SpeechModel:         cs.prefs.StringWithFallback("speech_model", def.SpeechModel),
		VoiceName:           cs.prefs.StringWithFallback("voice_name", def.VoiceName),
		SpeakConfirmations:  cs.prefs.BoolWithFallback("speak_confirmations", def.SpeakConfirmations),
		LogLevel:            cs.prefs.StringWithFallback("log_level", def.LogLevel),
	}

	if err := config.Validate(); err != nil {
		cs.logger.Warn("stored config is invalid, using defaults", zap.Error(err))
		def.AutoStart = config.AutoStart
		return def
	}

	return config
}

// Save saves configuration to preferences
func (cs *ConfigStore) Save(config *models.Config) {
	cs.prefs.SetBool("auto_start", config.AutoStart)
	cs.prefs.SetInt("reminder_lead_minutes", config.ReminderLeadMinutes)
	cs.prefs.SetInt("reminder_interval_sec", config.ReminderIntervalSec)
	cs.prefs.SetInt("notification_ttl_sec", config.NotificationTTLSec)
	cs.prefs.SetInt("meeting_duration_min", config.MeetingDurationMin)
	cs.prefs.SetString("owner_name", config.OwnerName)
	cs.prefs.SetString("parse_model", config.ParseModel)
	cs.prefs.SetString("speech_model", config.SpeechModel)
	cs.prefs.SetString("voice_name", config.VoiceName)
	cs.prefs.SetBool("speak_confirmations", config.SpeakConfirmations)
	cs.prefs.SetString("log_level", config.LogLevel)
}
