// Package packet implements the Engine.IO-family packet wire format: a
// dual binary/text encoding for a single typed message, together with the
// option header that carries compression/encryption flags and chunking
// metadata.
package packet

import "strconv"

// Type is the closed enumeration of packet kinds, as defined in
// https://github.com/socketio/engine.io-protocol (the numeric identity is
// part of the wire format and must never change).
type Type byte

const (
	Open Type = iota
	Close
	Ping
	Pong
	Message
	Upgrade
	Noop
	// 7 and 8 are an intentional gap in the upstream protocol.
	_
	_
	Error Type = 9
)

// typeChars and typeNames are keyed by Type; maps rather than arrays, so
// Error (9) sits alongside the 0-6 run despite the 7/8 gap.
var typeChars = map[Type]byte{
	Open: '0', Close: '1', Ping: '2', Pong: '3',
	Message: '4', Upgrade: '5', Noop: '6', Error: '9',
}

var typeNames = map[Type]string{
	Open: "open", Close: "close", Ping: "ping", Pong: "pong",
	Message: "message", Upgrade: "upgrade", Noop: "noop", Error: "error",
}

var charToType = map[byte]Type{
	'0': Open, '1': Close, '2': Ping, '3': Pong,
	'4': Message, '5': Upgrade, '6': Noop, '9': Error,
}

var nameToType = map[string]Type{
	"open": Open, "close": Close, "ping": Ping, "pong": Pong,
	"message": Message, "upgrade": Upgrade, "noop": Noop, "error": Error,
}

// Byte returns the single-byte numeric identity used by the binary encoding.
func (t Type) Byte() byte {
	return byte(t)
}

// Char returns the single-character identity used by the text encoding.
// It returns (0, false) if t is not one of the eight defined members.
func (t Type) Char() (byte, bool) {
	c, ok := typeChars[t]
	return c, ok
}

// String returns the lowercase string identity of t, e.g. "message".
// It implements fmt.Stringer, falling back to the numeric value for
// unrecognized types instead of panicking.
func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return strconv.Itoa(int(t))
}

// IsValid reports whether t is one of the eight defined packet types.
func (t Type) IsValid() bool {
	_, ok := typeChars[t]
	return ok
}

// TypeFromByte converts a binary-encoded numeric identity into a Type.
func TypeFromByte(b byte) (Type, error) {
	t := Type(b)
	if !t.IsValid() {
		return 0, &PacketError{Kind: InvalidPacketType}
	}
	return t, nil
}

// TypeFromChar converts a text-encoded character identity into a Type.
func TypeFromChar(c byte) (Type, error) {
	t, ok := charToType[c]
	if !ok {
		return 0, &PacketError{Kind: InvalidPacketType}
	}
	return t, nil
}

// TypeFromString converts the string identity (e.g. "ping") into a Type.
func TypeFromString(s string) (Type, error) {
	t, ok := nameToType[s]
	if !ok {
		return 0, &PacketError{Kind: InvalidPacketType}
	}
	return t, nil
}
