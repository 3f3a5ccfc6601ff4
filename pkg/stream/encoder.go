package stream

import (
	"encoding/binary"

	"github.com/greenj84/engineio/pkg/packet"
)

// Encoder turns packets into the length-framed byte sequence described in
// spec §4.1.6: a 1-byte short length (<126), or 126 plus a 2-byte length,
// or 127 plus an 8-byte length, with the top bit of the first header byte
// set iff the packet's payload is binary.
type Encoder struct{}

// NewEncoder returns a fresh Encoder. Encoders carry no state between
// calls to [Encoder.Encode]; the type exists for symmetry with [Decoder]
// and as an anchor for future per-stream configuration.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode computes p's binary encoding and wraps it in a length-prefixed
// frame, ready to append to an outgoing byte stream.
func (e *Encoder) Encode(p packet.Packet) ([]byte, error) {
	enc, err := packet.Encode(p, true)
	if err != nil {
		return nil, err
	}
	body, ok := enc.(packet.Binary)
	if !ok {
		return nil, &packet.EncodingError{Msg: "binary encoding did not produce a Binary value"}
	}

	frame := make([]byte, 0, 9+len(body))
	frame = appendFrameHeader(frame, len(body), isBinaryPayload(p))
	frame = append(frame, body...)
	return frame, nil
}

func isBinaryPayload(p packet.Packet) bool {
	data, ok := p.Payload()
	if !ok {
		return false
	}
	_, isBinary := data.(packet.Binary)
	return isBinary
}

func appendFrameHeader(frame []byte, n int, binaryPayload bool) []byte {
	var top byte
	if binaryPayload {
		top = maskBinary
	}

	switch {
	case n <= shortLenMax:
		return append(frame, top|byte(n))
	case n <= 0xFFFF:
		var lenBuf [2]byte
		binary.BigEndian.PutUint16(lenBuf[:], uint16(n))
		frame = append(frame, top|extended16)
		return append(frame, lenBuf[:]...)
	default:
		var lenBuf [8]byte
		binary.BigEndian.PutUint64(lenBuf[:], uint64(n))
		frame = append(frame, top|extended64)
		return append(frame, lenBuf[:]...)
	}
}
