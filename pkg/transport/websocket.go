// Package transport adapts the core packet codec (spec §6.2) onto
// concrete transports. WebSocketTransport carries Engine.IO packets over
// the teacher's RFC 6455 WebSocket client (pkg/websocket): unlike the
// polling transport (pkg/payload, many packets per HTTP body) or a raw
// byte socket (pkg/stream, length-framed), a WebSocket connection already
// delivers whole messages, so each packet maps to exactly one WebSocket
// text or binary frame.
package transport

import (
	"context"
	"fmt"

	"github.com/greenj84/engineio/pkg/packet"
	"github.com/greenj84/engineio/pkg/websocket"
)

// Incoming pairs a decoded packet with any decode error encountered while
// reading the underlying connection, so a single channel can carry both.
type Incoming struct {
	Packet packet.Packet
	Err    error
}

// WebSocketTransport sends and receives Engine.IO packets over an
// established [websocket.Conn]. Build one from an already-dialed Conn
// with [NewWebSocketTransport], or dial a server directly with
// [DialWebSocketTransport].
type WebSocketTransport struct {
	conn *websocket.Conn
}

// NewWebSocketTransport wraps an already-dialed WebSocket connection.
func NewWebSocketTransport(conn *websocket.Conn) *WebSocketTransport {
	return &WebSocketTransport{conn: conn}
}

// DialWebSocketTransport performs the WebSocket handshake against wsURL
// ("ws://..." or "wss://...") and returns a transport wrapping the
// resulting connection, for callers (such as cmd/engineio's connect
// subcommand) that don't already hold a dialed [websocket.Conn].
func DialWebSocketTransport(ctx context.Context, wsURL string, opts ...websocket.DialOpt) (*WebSocketTransport, error) {
	conn, err := websocket.Dial(ctx, wsURL, opts...)
	if err != nil {
		return nil, err
	}
	return NewWebSocketTransport(conn), nil
}

// Close closes the underlying WebSocket connection with the given status.
func (t *WebSocketTransport) Close(status websocket.StatusCode) {
	t.conn.Close(status)
}

// Send encodes p as its binary wire form and sends it as a single
// WebSocket binary frame, waiting for the write to complete or fail.
func (t *WebSocketTransport) Send(p packet.Packet) error {
	enc, err := packet.Encode(p, true)
	if err != nil {
		return err
	}

	switch data := enc.(type) {
	case packet.Binary:
		return <-t.conn.SendBinaryMessage([]byte(data))
	case packet.Text:
		return <-t.conn.SendTextMessage([]byte(data))
	default:
		return fmt.Errorf("transport: unexpected encoding %T", enc)
	}
}

// Packets returns a channel of decoded packets (or decode errors) as
// WebSocket messages arrive on the underlying connection. The channel is
// closed when the connection's incoming-message channel closes.
func (t *WebSocketTransport) Packets() <-chan Incoming {
	out := make(chan Incoming)
	go func() {
		defer close(out)
		for msg := range t.conn.IncomingMessages() {
			var raw packet.RawData
			switch msg.Opcode {
			case websocket.OpcodeText:
				raw = packet.Text(msg.Data)
			case websocket.OpcodeBinary:
				raw = packet.Binary(msg.Data)
			default:
				continue
			}

			p, err := packet.Decode(raw)
			out <- Incoming{Packet: p, Err: err}
		}
	}()
	return out
}
