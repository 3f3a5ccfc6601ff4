// Package serverconfig defines the Engine.IO server lifecycle and attach
// parameters from spec §6.4, sourced from CLI flags, environment
// variables, and a TOML config file, in that precedence order.
//
// Grounded verbatim on pkg/http/webhooks/config.go and
// internal/thrippy/flags.go's cli.NewValueSourceChain(cli.EnvVar(...),
// toml.TOML(...)) pattern: the same third-party flag-sourcing stack
// (github.com/urfave/cli/v3, github.com/urfave/cli-altsrc/v3) is wired
// here for a different set of settings.
package serverconfig

import (
	"errors"
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

// Transport identifies one of the transports a server may enable.
type Transport string

const (
	Polling      Transport = "polling"
	WebSocket    Transport = "websocket"
	WebTransport Transport = "webtransport"
)

// Defaults from spec §6.4.
const (
	DefaultPingInterval          = 25000
	DefaultPingTimeout           = 20000
	DefaultUpgradeTimeout        = 10000
	DefaultMaxBufferSize         = 100000
	DefaultAllowUpgrades         = true
	DefaultPath                  = "/engine.io"
	DefaultDestroyUpgrade        = true
	DefaultDestroyUpgradeTimeout = 1000
	DefaultAddTrailingSlash      = true
)

// Options holds the server lifecycle and attach parameters from spec
// §6.4. Time-valued fields are in milliseconds, matching the spec's own
// units, rather than time.Duration, so they map directly onto CLI/TOML
// integer flags.
type Options struct {
	PingInterval   int
	PingTimeout    int
	UpgradeTimeout int
	MaxBufferSize  int
	Transports     []Transport
	AllowUpgrades  bool

	Path                  string
	DestroyUpgrade        bool
	DestroyUpgradeTimeout int
	AddTrailingSlash      bool
}

// DefaultOptions returns the spec §6.4 defaults, with all three
// transports enabled.
func DefaultOptions() Options {
	return Options{
		PingInterval:          DefaultPingInterval,
		PingTimeout:           DefaultPingTimeout,
		UpgradeTimeout:        DefaultUpgradeTimeout,
		MaxBufferSize:         DefaultMaxBufferSize,
		Transports:            []Transport{Polling, WebSocket, WebTransport},
		AllowUpgrades:         DefaultAllowUpgrades,
		Path:                  DefaultPath,
		DestroyUpgrade:        DefaultDestroyUpgrade,
		DestroyUpgradeTimeout: DefaultDestroyUpgradeTimeout,
		AddTrailingSlash:      DefaultAddTrailingSlash,
	}
}

// Flags defines CLI flags for every Options field, sourced (in order)
// from an explicit flag, an environment variable, and a TOML config file
// entry, exactly as pkg/http/webhooks.Flags and thrippy.Flags do.
func Flags(configFilePath altsrc.StringSourcer) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "ping-interval",
			Usage: "milliseconds between server-sent pings",
			Value: DefaultPingInterval,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("ENGINEIO_PING_INTERVAL"),
				toml.TOML("server.ping_interval", configFilePath),
			),
			Validator: validatePositive,
		},
		&cli.IntFlag{
			Name:  "ping-timeout",
			Usage: "milliseconds to wait for a pong before closing a session",
			Value: DefaultPingTimeout,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("ENGINEIO_PING_TIMEOUT"),
				toml.TOML("server.ping_timeout", configFilePath),
			),
			Validator: validatePositive,
		},
		&cli.IntFlag{
			Name:  "upgrade-timeout",
			Usage: "milliseconds before an unfinished transport upgrade is abandoned",
			Value: DefaultUpgradeTimeout,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("ENGINEIO_UPGRADE_TIMEOUT"),
				toml.TOML("server.upgrade_timeout", configFilePath),
			),
			Validator: validatePositive,
		},
		&cli.IntFlag{
			Name:  "max-buffer-size",
			Usage: "bytes of buffered message data before a session is closed",
			Value: DefaultMaxBufferSize,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("ENGINEIO_MAX_BUFFER_SIZE"),
				toml.TOML("server.max_buffer_size", configFilePath),
			),
			Validator: validatePositive,
		},
		&cli.StringSliceFlag{
			Name:  "transports",
			Usage: "enabled transports: polling, websocket, webtransport",
			Value: []string{string(Polling), string(WebSocket), string(WebTransport)},
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("ENGINEIO_TRANSPORTS"),
				toml.TOML("server.transports", configFilePath),
			),
		},
		&cli.BoolFlag{
			Name:  "allow-upgrades",
			Usage: "whether a client may migrate transport after connecting",
			Value: DefaultAllowUpgrades,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("ENGINEIO_ALLOW_UPGRADES"),
				toml.TOML("server.allow_upgrades", configFilePath),
			),
		},
		&cli.StringFlag{
			Name:  "path",
			Usage: "URL path the server attaches to",
			Value: DefaultPath,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("ENGINEIO_PATH"),
				toml.TOML("server.path", configFilePath),
			),
		},
		&cli.BoolFlag{
			Name:  "destroy-upgrade",
			Usage: "close a transport left behind by a completed upgrade",
			Value: DefaultDestroyUpgrade,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("ENGINEIO_DESTROY_UPGRADE"),
				toml.TOML("server.destroy_upgrade", configFilePath),
			),
		},
		&cli.IntFlag{
			Name:  "destroy-upgrade-timeout",
			Usage: "milliseconds before a stale upgraded-from transport is destroyed",
			Value: DefaultDestroyUpgradeTimeout,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("ENGINEIO_DESTROY_UPGRADE_TIMEOUT"),
				toml.TOML("server.destroy_upgrade_timeout", configFilePath),
			),
			Validator: validatePositive,
		},
		&cli.BoolFlag{
			Name:  "add-trailing-slash",
			Usage: "require a trailing slash on the attach path",
			Value: DefaultAddTrailingSlash,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("ENGINEIO_ADD_TRAILING_SLASH"),
				toml.TOML("server.add_trailing_slash", configFilePath),
			),
		},
	}
}

// FromCommand reads the resolved flags defined by [Flags] back into an
// Options value.
func FromCommand(cmd *cli.Command) Options {
	raw := cmd.StringSlice("transports")
	transports := make([]Transport, 0, len(raw))
	for _, t := range raw {
		transports = append(transports, Transport(strings.ToLower(t)))
	}

	return Options{
		PingInterval:          int(cmd.Int("ping-interval")),
		PingTimeout:           int(cmd.Int("ping-timeout")),
		UpgradeTimeout:        int(cmd.Int("upgrade-timeout")),
		MaxBufferSize:         int(cmd.Int("max-buffer-size")),
		Transports:            transports,
		AllowUpgrades:         cmd.Bool("allow-upgrades"),
		Path:                  cmd.String("path"),
		DestroyUpgrade:        cmd.Bool("destroy-upgrade"),
		DestroyUpgradeTimeout: int(cmd.Int("destroy-upgrade-timeout")),
		AddTrailingSlash:      cmd.Bool("add-trailing-slash"),
	}
}

func validatePositive(n int64) error {
	if n <= 0 {
		return errors.New("must be positive")
	}
	return nil
}
