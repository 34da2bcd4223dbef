package models

import "time"

// Event represents a single tag read reported by a reader or gateway.
type Event struct {
	ID        int64     `json:"id"`
	TagID     string    `json:"tagId"`
	Source    string    `json:"source"` // e.g., "gate-a", "warehouse"
	Type      string    `json:"type"`   // e.g., "check-in", "alert", "status"
	CreatedAt time.Time `json:"createdAt"`
}

// Stats is the aggregate view over all stored events. It is derived on every
// request and never stored.
type Stats struct {
	TotalEvents    int            `json:"totalEvents"`
	UniqueTags     int            `json:"uniqueTags"`
	EventsByType   map[string]int `json:"eventsByType"`
	EventsBySource map[string]int `json:"eventsBySource"`
}
