package github

import (
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/contribmap/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// Delivery carries the headers GitHub sends with each webhook
type Delivery struct {
	ID         string // X-GitHub-Delivery
	Event      string // X-GitHub-Event
	ReceivedAt time.Time
}

// ParseEvent decodes a webhook body into a WebhookEvent. Event types that
// go-github does not know are returned as EventTypeUnknown without error.
func ParseEvent(delivery Delivery, body []byte) (*model.WebhookEvent, error) {
	event := &model.WebhookEvent{
		ID:         delivery.ID,
		Type:       model.WebhookEventType(delivery.Event),
		ReceivedAt: delivery.ReceivedAt,
	}

	payload, err := github.ParseWebHook(delivery.Event, body)
	if err != nil {
		if strings.Contains(err.Error(), "unknown X-Github-Event") {
			event.Type = model.EventTypeUnknown
			return event, nil
		}
		return nil, goerr.Wrap(err, "invalid JSON payload", goerr.V("event", delivery.Event))
	}

	switch e := payload.(type) {
	case *github.PushEvent:
		event.Push = toPushEvent(e)
		event.Repository = event.Push.Repository.FullName
		event.Sender = event.Push.Sender.Login
	case *github.PingEvent:
		event.Type = model.EventTypePing
	default:
		// Known to GitHub but not handled here
		event.Type = model.EventTypeUnknown
	}

	return event, nil
}

// Use Get*() helper methods for nil-safe field access
func toPushEvent(e *github.PushEvent) *model.PushEvent {
	push := &model.PushEvent{
		Ref:        e.GetRef(),
		Sender:     model.PushSender{Login: e.GetSender().GetLogin()},
		Repository: model.PushRepository{FullName: e.GetRepo().GetFullName()},
		Commits:    make([]model.Commit, 0, len(e.Commits)),
	}

	for _, c := range e.Commits {
		push.Commits = append(push.Commits, model.Commit{
			ID:      c.GetID(),
			Message: c.GetMessage(),
			URL:     c.GetURL(),
			Author: model.CommitAuthor{
				Name:  c.GetAuthor().GetName(),
				Email: c.GetAuthor().GetEmail(),
			},
		})
	}
	return push
}
