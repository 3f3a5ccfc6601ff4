package packet

import "fmt"

// DecodingKind identifies a specific wire-parsing fault within a
// [DecodingError], per spec §7 ("DecodingError").
type DecodingKind int

const (
	// PacketFault wraps an underlying [PacketError] (e.g. DataTooLarge
	// discovered while decoding, or InvalidChunkingParameters).
	PacketFault DecodingKind = iota
	// Base64Fault means base64 decoding of a `b<...>` data tag failed.
	Base64Fault
	// MissingField means a required byte/field was absent from the input.
	MissingField
	// InvalidFormat means a structural mismatch (bad boolean, unknown
	// mask, wrong field count) was found.
	InvalidFormat
	// PayloadDataMismatch means a payload's declared length prefix does
	// not match the bytes/chars actually available.
	PayloadDataMismatch
	// UnknownError is a catch-all for faults that don't fit the above.
	UnknownError
)

func (k DecodingKind) String() string {
	switch k {
	case PacketFault:
		return "packet fault"
	case Base64Fault:
		return "base64 decoding failed"
	case MissingField:
		return "missing field"
	case InvalidFormat:
		return "invalid format"
	case PayloadDataMismatch:
		return "payload data mismatch"
	default:
		return "unknown decoding error"
	}
}

// DecodingError is a wire-parsing fault, as defined in spec §7.
// Decoding functions are total: they never panic, they return a
// DecodingError on every malformed input.
type DecodingError struct {
	Kind  DecodingKind
	Msg   string
	Cause error
}

func (e *DecodingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return e.Kind.String()
}

func (e *DecodingError) Unwrap() error {
	return e.Cause
}

// Is enables errors.Is(err, &DecodingError{Kind: packet.MissingField})
// style comparisons, ignoring message/cause and comparing Kind only.
func (e *DecodingError) Is(target error) bool {
	other, ok := target.(*DecodingError)
	return ok && other.Kind == e.Kind
}

// wrapPacketError lifts a *PacketError into a *DecodingError, per the
// "Packet(PacketError)" variant in spec §7.
func wrapPacketError(err error) error {
	if err == nil {
		return nil
	}
	return &DecodingError{Kind: PacketFault, Msg: "packet construction failed", Cause: err}
}

// EncodingError is the encode-side fault surface. It currently has a
// single variant, present for symmetry with [DecodingError] per spec §7.
type EncodingError struct {
	Msg   string
	Cause error
}

func (e *EncodingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("encoding error: %s: %v", e.Msg, e.Cause)
	}
	return fmt.Sprintf("encoding error: %s", e.Msg)
}

func (e *EncodingError) Unwrap() error {
	return e.Cause
}
