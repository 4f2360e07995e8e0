package entities

import "time"

type ActivityKind string

const (
	ActivityConversation ActivityKind = "conversation"
	ActivityOrder        ActivityKind = "order"
	ActivityViewing      ActivityKind = "viewing"
)

// ActivityItem is the common display shape of the recent-activity feed.
type ActivityItem struct {
	ID        string       `json:"id"`
	Kind      ActivityKind `json:"kind"`
	Title     string       `json:"title"`
	Subtitle  string       `json:"subtitle"`
	Status    string       `json:"status"`
	Tone      string       `json:"tone,omitempty"`
	Extra     string       `json:"extra,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}
