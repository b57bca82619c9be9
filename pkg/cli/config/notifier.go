package config

import (
	"log/slog"

	"github.com/m-mizutani/contribmap/pkg/domain/interfaces"
	"github.com/m-mizutani/contribmap/pkg/infra/amqp"
	"github.com/m-mizutani/contribmap/pkg/infra/broadcast"
	"github.com/m-mizutani/contribmap/pkg/infra/slack"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Notifier holds broadcast notification configuration
type Notifier struct {
	SlackToken   string
	SlackChannel string
	AMQPURL      string
	AMQPExchange string
}

// Flags returns CLI flags for notifier configuration
func (c *Notifier) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-token",
			Usage:       "Slack bot token for broadcast notifications",
			Destination: &c.SlackToken,
			Sources:     cli.EnvVars("CONTRIBMAP_SLACK_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID for broadcast notifications",
			Destination: &c.SlackChannel,
			Sources:     cli.EnvVars("CONTRIBMAP_SLACK_CHANNEL"),
		},
		&cli.StringFlag{
			Name:        "amqp-url",
			Usage:       "RabbitMQ URL for broadcast notifications",
			Destination: &c.AMQPURL,
			Sources:     cli.EnvVars("CONTRIBMAP_AMQP_URL"),
		},
		&cli.StringFlag{
			Name:        "amqp-exchange",
			Usage:       "RabbitMQ fanout exchange name",
			Value:       "contribmap.events",
			Destination: &c.AMQPExchange,
			Sources:     cli.EnvVars("CONTRIBMAP_AMQP_EXCHANGE"),
		},
	}
}

// LogValue hides credentials when the config is logged
func (c Notifier) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("slack", c.SlackToken != ""),
		slog.String("slack_channel", c.SlackChannel),
		slog.Bool("amqp", c.AMQPURL != ""),
		slog.String("amqp_exchange", c.AMQPExchange),
	)
}

// Configure builds the broadcast notifier from the enabled back ends. The
// returned closer releases broker connections.
func (c *Notifier) Configure() (interfaces.Notifier, func(), error) {
	var (
		fanout  broadcast.Fanout
		closers []func()
	)

	if c.SlackToken != "" {
		if c.SlackChannel == "" {
			return nil, nil, goerr.New("slack-channel is required with slack-token")
		}
		fanout = append(fanout, slack.New(c.SlackToken, c.SlackChannel))
	}

	if c.AMQPURL != "" {
		pub, err := amqp.Dial(c.AMQPURL, c.AMQPExchange)
		if err != nil {
			return nil, nil, err
		}
		fanout = append(fanout, pub)
		closers = append(closers, func() { _ = pub.Close() })
	}

	closeAll := func() {
		for _, fn := range closers {
			fn()
		}
	}
	return broadcast.Background(fanout), closeAll, nil
}
