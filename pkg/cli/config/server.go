package config

import "github.com/urfave/cli/v3"

// Server holds server configuration
type Server struct {
	Addr       string
	EventToken string
	PopupLimit int
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("CONTRIBMAP_ADDR"),
		},
		&cli.StringFlag{
			Name:        "event-token",
			Usage:       "Bearer token the portal must send to /events (empty disables the check)",
			Destination: &c.EventToken,
			Sources:     cli.EnvVars("CONTRIBMAP_EVENT_TOKEN"),
		},
		&cli.IntFlag{
			Name:        "popup-limit",
			Usage:       "Number of recent popups kept for /popups",
			Value:       100,
			Destination: &c.PopupLimit,
			Sources:     cli.EnvVars("CONTRIBMAP_POPUP_LIMIT"),
		},
	}
}
