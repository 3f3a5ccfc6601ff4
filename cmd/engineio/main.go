// Command engineio is a small CLI around this module's packet codec,
// streaming framer, and event registry: encode/decode single packets,
// and run a demo that threads synthetic frames through the same data
// flow a real transport would (spec.md §2).
//
// Adapted from cmd/timpani/main.go: the same urfave/cli/v3 command
// shape, dev/pretty-log flag pair, and github.com/tzrikka/xdg config
// file resolution, now logging through zerolog (internal/logger)
// instead of log/slog, and wired to this module's own flag sets instead
// of Temporal/Thrippy/webhook ones.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli/v3"

	"github.com/greenj84/engineio/internal/logger"
	"github.com/greenj84/engineio/pkg/events"
	"github.com/greenj84/engineio/pkg/packet"
	"github.com/greenj84/engineio/pkg/serverconfig"
	"github.com/greenj84/engineio/pkg/stream"
	"github.com/greenj84/engineio/pkg/transport"
	"github.com/greenj84/engineio/pkg/websocket"
	"github.com/tzrikka/xdg"
)

const (
	ConfigDirName  = "engineio"
	ConfigFileName = "config.toml"
)

func main() {
	bi, _ := debug.ReadBuildInfo()
	path := configFile()

	cmd := &cli.Command{
		Name:    "engineio",
		Usage:   "inspect and exercise the Engine.IO packet codec and event engine",
		Version: bi.Main.Version,
		Commands: []*cli.Command{
			encodeCommand(),
			decodeCommand(),
			serveDemoCommand(path),
			connectCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// configFile returns the path to the app's configuration file,
// creating an empty file if it doesn't already exist.
func configFile() altsrc.StringSourcer {
	path, err := xdg.CreateFile(xdg.ConfigHome, ConfigDirName, ConfigFileName)
	if err != nil {
		logger.FatalError("failed to create config file", err)
	}
	return altsrc.StringSourcer(path)
}

// initLog builds a zerolog.Logger for the command, in development
// (pretty-printed) or production (JSON) mode, matching the teacher's
// initLog but backed by zerolog instead of log/slog.
func initLog(devMode bool) zerolog.Logger {
	if devMode {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func encodeCommand() *cli.Command {
	return &cli.Command{
		Name:  "encode",
		Usage: "encode a packet type plus optional payload to its wire form",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Usage: "packet type name (open, close, ping, pong, message, upgrade, noop, error)", Required: true},
			&cli.StringFlag{Name: "text", Usage: "text payload"},
			&cli.StringFlag{Name: "binary-hex", Usage: "hex-encoded binary payload"},
			&cli.BoolFlag{Name: "binary", Usage: "produce the binary wire form instead of text"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			typ, err := packet.TypeFromString(cmd.String("type"))
			if err != nil {
				return err
			}
			p := packet.New(typ)

			switch {
			case cmd.String("text") != "":
				p, err = p.WithPayload(packet.Text(cmd.String("text")))
			case cmd.String("binary-hex") != "":
				raw, decErr := hex.DecodeString(cmd.String("binary-hex"))
				if decErr != nil {
					return decErr
				}
				p, err = p.WithPayload(packet.Binary(raw))
			}
			if err != nil {
				return err
			}

			out, err := packet.Encode(p, cmd.Bool("binary"))
			if err != nil {
				return err
			}
			printRawData(out)
			return nil
		},
	}
}

func decodeCommand() *cli.Command {
	return &cli.Command{
		Name:  "decode",
		Usage: "decode a packet's wire form back to its type and payload",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Usage: "text wire form", Required: false},
			&cli.StringFlag{Name: "input-hex", Usage: "hex-encoded binary wire form", Required: false},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			var raw packet.RawData
			switch {
			case cmd.String("input-hex") != "":
				b, err := hex.DecodeString(cmd.String("input-hex"))
				if err != nil {
					return err
				}
				raw = packet.Binary(b)
			default:
				raw = packet.Text(cmd.String("input"))
			}

			p, err := packet.Decode(raw)
			if err != nil {
				return err
			}

			fmt.Printf("type: %s\n", p.Type())
			if opts, ok := p.Options(); ok {
				fmt.Printf("options: compress=%v encrypt=%v\n", opts.Compress, opts.Encrypt)
				if seq, total, ok := opts.Chunking(); ok {
					fmt.Printf("chunking: %d/%d\n", seq, total)
				}
			}
			if data, ok := p.Payload(); ok {
				printRawData(data)
			}
			return nil
		},
	}
}

func serveDemoCommand(configFilePath altsrc.StringSourcer) *cli.Command {
	return &cli.Command{
		Name:  "serve-demo",
		Usage: "run synthetic frames through the streaming decoder and the event registry",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{Name: "dev", Usage: "simple setup, but unsafe for production"},
			&cli.BoolFlag{Name: "pretty-log", Usage: "human-readable console logging, instead of JSON"},
		}, serverconfig.Flags(configFilePath)...),
		Action: func(_ context.Context, cmd *cli.Command) error {
			l := initLog(cmd.Bool("dev") || cmd.Bool("pretty-log"))
			cfg := serverconfig.FromCommand(cmd)
			l.Info().Str("path", cfg.Path).Int("ping_interval_ms", cfg.PingInterval).Msg("demo server configuration")

			reg := events.NewRegistry[packet.Packet]()
			defer reg.Close()

			if _, err := reg.AddListener("packet", func(p packet.Packet) {
				l.Info().Str("type", p.Type().String()).Msg("packet delivered")
			}); err != nil {
				return err
			}
			if _, err := reg.AddOnce("packet", func(p packet.Packet) {
				l.Info().Msg("one-shot listener fired")
			}); err != nil {
				return err
			}

			enc := stream.NewEncoder()
			dec := stream.NewDecoder()
			demo := []packet.Packet{
				packet.New(packet.Open),
				packet.New(packet.Ping),
				packet.New(packet.Pong),
				packet.New(packet.Noop),
			}
			for _, p := range demo {
				frame, err := enc.Encode(p)
				if err != nil {
					return err
				}
				if err := dec.Feed(frame); err != nil {
					return err
				}
				for {
					p, ok := dec.Next()
					if !ok {
						break
					}
					if err := reg.Emit("packet", p); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
}

// connectCommand dials a real WebSocket server, sends one packet over
// pkg/transport.WebSocketTransport (backed by pkg/websocket.Dial), and
// prints whatever packets come back within the given timeout before
// closing the connection.
func connectCommand() *cli.Command {
	return &cli.Command{
		Name:  "connect",
		Usage: "dial a WebSocket server and round-trip a packet over it",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Usage: "ws:// or wss:// server URL", Required: true},
			&cli.StringFlag{Name: "type", Usage: "packet type to send", Value: "ping"},
			&cli.StringFlag{Name: "text", Usage: "text payload"},
			&cli.DurationFlag{Name: "timeout", Usage: "how long to wait for replies", Value: 5 * time.Second},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			typ, err := packet.TypeFromString(cmd.String("type"))
			if err != nil {
				return err
			}
			p := packet.New(typ)
			if text := cmd.String("text"); text != "" {
				p, err = p.WithPayload(packet.Text(text))
				if err != nil {
					return err
				}
			}

			tr, err := transport.DialWebSocketTransport(ctx, cmd.String("url"))
			if err != nil {
				return fmt.Errorf("connect: dialing %q: %w", cmd.String("url"), err)
			}
			defer tr.Close(websocket.StatusNormalClosure)

			if err := tr.Send(p); err != nil {
				return fmt.Errorf("connect: sending packet: %w", err)
			}

			timeout := time.After(cmd.Duration("timeout"))
			for {
				select {
				case in, ok := <-tr.Packets():
					if !ok {
						return nil
					}
					if in.Err != nil {
						fmt.Printf("decode error: %v\n", in.Err)
						continue
					}
					fmt.Printf("received type: %s\n", in.Packet.Type())
					if data, ok := in.Packet.Payload(); ok {
						printRawData(data)
					}
				case <-timeout:
					return nil
				}
			}
		},
	}
}

func printRawData(data packet.RawData) {
	switch v := data.(type) {
	case packet.Text:
		fmt.Println(string(v))
	case packet.Binary:
		fmt.Println(hex.EncodeToString(v))
	}
}
