package domain

import "time"

// Event is published to redis channels and forwarded to realtime listeners.
type Event struct {
	Type      EventType `json:"type"`
	Channel   string    `json:"channel"`
	Username  string    `json:"username,omitempty"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
