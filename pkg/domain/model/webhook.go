package model

import "time"

// WebhookEventType represents the type of webhook event received
type WebhookEventType string

const (
	EventTypePush    WebhookEventType = "push"
	EventTypePing    WebhookEventType = "ping"
	EventTypeUnknown WebhookEventType = "unknown"
)

// WebhookEvent represents a webhook event received from GitHub
type WebhookEvent struct {
	ID         string           // Retrieved from X-GitHub-Delivery header
	Type       WebhookEventType // Retrieved from X-GitHub-Event header
	Repository string           // Repository full name
	Sender     string           // Sender login
	ReceivedAt time.Time        // Time when the event was received
	Push       *PushEvent       // Set for push deliveries only
}

// IsSupportedEvent checks if the event produces a notification
func (e *WebhookEvent) IsSupportedEvent() bool {
	switch e.Type {
	case EventTypePush:
		return e.Push != nil
	default:
		return false
	}
}
