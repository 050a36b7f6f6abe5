package models

import "time"

// Notification is a short-lived message shown in the notification center
type Notification struct {
	ID        string
	Message   string
	CreatedAt time.Time
}
