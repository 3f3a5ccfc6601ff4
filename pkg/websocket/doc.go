// Package websocket is a lightweight yet robust client-only
// implementation of the WebSocket protocol (RFC 6455).
//
// It focuses on continuous asynchronous reading of text/binary
// messages, and enables occasional writing. [Dial] performs the
// handshake and returns a [Conn]; pkg/transport wraps that Conn to
// carry Engine.IO packets as single WebSocket frames, and cmd/engineio's
// connect subcommand dials a real server through it.
//
// Design goals: reliability, maintainability, and efficiency, via
// idiomatic, minimalistic, and modern code patterns. Incoming messages
// are published on an unbuffered Go channel ([Conn.IncomingMessages]);
// the connection's read loop waits until each message has been received
// from it before reading the next frame.
//
// Note: WebSocket [extensions] and [subprotocols] are not supported yet.
//
// [extensions]: https://www.iana.org/assignments/websocket/websocket.xhtml#extension-name
// [subprotocols]: https://www.iana.org/assignments/websocket/websocket.xhtml#subprotocol-name
package websocket
