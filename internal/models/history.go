package models

import "time"

// UserHistory represents one immutable user_histories row.
type UserHistory struct {
	HistoryID    int64     `json:"historyId" db:"history_id"`
	UserID       int64     `json:"userId" db:"user_id"`
	ChangedField string    `json:"changedField" db:"changed_field"`
	OldValue     string    `json:"oldValue" db:"old_value"`
	NewValue     string    `json:"newValue" db:"new_value"`
	ChangedAt    time.Time `json:"changedAt" db:"changed_at"`
}

// ProfileUpdatedEvent is published after a profile update commits.
type ProfileUpdatedEvent struct {
	EventID   string        `json:"eventId"`
	UserID    int64         `json:"userId"`
	Changes   []FieldChange `json:"changes"`
	Timestamp int64         `json:"timestamp"`
}
