package models

import "time"

// Activity is an operational audit row (registrations, logins, trades,
// password changes). Written off the request path by the worker pool.
type Activity struct {
	ID        string         `json:"id"`
	UserID    *string        `json:"user_id"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details"`
	CreatedAt time.Time      `json:"created_at"`
}
