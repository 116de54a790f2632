package entity

import "time"

// ChangeEvent describes a committed mutation of portfolio content.
type ChangeEvent struct {
	Kind       string      `json:"kind"`   // "project", "blog", "contact"
	Action     string      `json:"action"` // "created", "updated", "deleted", "cleared"
	ID         int         `json:"id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data,omitempty"`
}
