package slack

import (
	"context"
	"fmt"

	"github.com/m-mizutani/contribmap/pkg/domain/interfaces"
	"github.com/m-mizutani/contribmap/pkg/domain/model"
	"github.com/m-mizutani/contribmap/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// Notifier posts portal activity to a Slack channel
type Notifier struct {
	client  *slack.Client
	channel string
}

var _ interfaces.Notifier = (*Notifier)(nil)

// New creates a Slack notifier. slackOpts are passed to the Slack client.
func New(token, channel string, slackOpts ...slack.Option) *Notifier {
	return &Notifier{
		client:  slack.New(token, slackOpts...),
		channel: channel,
	}
}

// Notify posts a one-line summary of the event
func (n *Notifier) Notify(ctx context.Context, kind types.EventKind, payload any) error {
	text, err := Text(kind, payload)
	if err != nil {
		return err
	}

	if _, _, err := n.client.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionDisableLinkUnfurl(),
	); err != nil {
		return goerr.Wrap(err, "failed to post slack message",
			goerr.V("channel", n.channel),
			goerr.V("kind", kind),
		)
	}
	return nil
}

// Text renders the Slack message for an event
func Text(kind types.EventKind, payload any) (string, error) {
	switch ev := payload.(type) {
	case *model.PushEvent:
		unit := "commits"
		if ev.CommitCount() == 1 {
			unit = "commit"
		}
		return fmt.Sprintf("*%s* pushed %d %s to <https://github.com/%s|%s>",
			ev.Sender.Login, ev.CommitCount(), unit, ev.Repository.FullName, ev.Repository.FullName), nil

	case *model.ProjectEvent:
		switch kind {
		case types.EventKindProjectSubmitted:
			return fmt.Sprintf("*%s* submitted a new project: <https://github.com/%s|%s> (waiting for approval)",
				ev.ProjectUser, ev.FullName(), ev.FullName()), nil
		case types.EventKindProjectApproved:
			return fmt.Sprintf("Project <https://github.com/%s|%s> by *%s* has been approved",
				ev.FullName(), ev.FullName(), ev.ProjectUser), nil
		}
	}

	return "", goerr.New("unsupported notification payload",
		goerr.V("kind", kind),
		goerr.V("type", fmt.Sprintf("%T", payload)),
	)
}
