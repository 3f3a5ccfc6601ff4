// Package stream implements the asynchronous length-prefixed framer that
// turns a sequence of opaque byte chunks into a sequence of [packet.Packet]
// values (and the inverse direction), per spec §4.1.5/§4.1.6. Each Decoder
// or Encoder instance is single-owner: it is not safe for concurrent use by
// multiple goroutines, and distinct instances are fully independent.
//
// The decoder's state machine is grounded on the same three-tier
// short/126/127 length-prefix scheme used by RFC 6455 WebSocket framing
// (see the teacher's pkg/websocket frame reader), adapted here to frame
// whole packets instead of WebSocket frames.
package stream

import (
	"encoding/binary"
	"fmt"

	"github.com/greenj84/engineio/pkg/packet"
)

// readState is the per-connection decoder state, per spec §4.1.5.
type readState int

const (
	readHeader readState = iota
	readExtended16
	readExtended64
	readPayload
)

const (
	shortLenMax  = 125
	extended16   = 126
	extended64   = 127
	maskBinary   = 0x80
	maskBitsOnly = 0x7f
)

// Decoder consumes byte chunks fed via [Decoder.Feed] and produces
// [packet.Packet] values via [Decoder.Next]. The buffered chunks are owned
// exclusively by this Decoder and never shared across goroutines.
type Decoder struct {
	state       readState
	isBinary    bool
	expectedLen uint64
	buf         []byte
	ready       []packet.Packet
	ended       bool
	err         error
}

// NewDecoder returns a fresh Decoder in its initial ReadHeader state.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed appends a chunk of input bytes and advances the state machine as
// far as the buffered data allows, queuing any fully-decoded packets for
// retrieval via [Decoder.Next]. It never panics: malformed input surfaces
// as an error from Feed, and every later Feed call returns the same error.
func (d *Decoder) Feed(chunk []byte) error {
	if d.err != nil {
		return d.err
	}
	if d.ended {
		return nil
	}
	d.buf = append(d.buf, chunk...)
	if err := d.advance(); err != nil {
		d.err = err
		return err
	}
	return nil
}

// Close signals that the upstream source has ended. If the decoder is
// mid-packet (any state other than ReadHeader with an empty buffer), the
// stream simply ends without producing a partial packet or an error.
func (d *Decoder) Close() {
	d.ended = true
}

// Next returns the next decoded packet and true, or (zero, false) if none
// is currently buffered. Callers should call Feed (or check Closed) and
// call Next again to drain all packets produced by that Feed call.
func (d *Decoder) Next() (packet.Packet, bool) {
	if len(d.ready) == 0 {
		return packet.Packet{}, false
	}
	p := d.ready[0]
	d.ready = d.ready[1:]
	return p, true
}

// Closed reports whether the decoder has been told its source ended and
// has no more buffered, not-yet-decoded bytes awaiting a full packet.
func (d *Decoder) Closed() bool {
	return d.ended && len(d.buf) == 0
}

func (d *Decoder) advance() error {
	for {
		switch d.state {
		case readHeader:
			if len(d.buf) < 1 {
				return nil
			}
			b := d.buf[0]
			d.isBinary = b&maskBinary != 0
			length := b & maskBitsOnly
			d.buf = d.buf[1:]

			switch {
			case length <= shortLenMax:
				d.expectedLen = uint64(length)
				d.state = readPayload
			case length == extended16:
				d.state = readExtended16
			default: // length == extended64 (127), the only remaining 7-bit value.
				d.state = readExtended64
			}

		case readExtended16:
			if len(d.buf) < 2 {
				return nil
			}
			d.expectedLen = uint64(binary.BigEndian.Uint16(d.buf[:2]))
			d.buf = d.buf[2:]
			d.state = readPayload

		case readExtended64:
			if len(d.buf) < 8 {
				return nil
			}
			d.expectedLen = binary.BigEndian.Uint64(d.buf[:8])
			d.buf = d.buf[8:]
			d.state = readPayload

		case readPayload:
			if uint64(len(d.buf)) < d.expectedLen {
				return nil
			}
			body := d.buf[:d.expectedLen]
			d.buf = d.buf[d.expectedLen:]

			// The streaming encoder always emits a packet's binary
			// encoding (spec §4.1.6); the mask bit in the frame header
			// only carries payload-kind metadata, mirrored here by
			// always decoding the frame body per §4.1.1.
			p, err := packet.Decode(packet.Binary(append([]byte(nil), body...)))
			if err != nil {
				return err
			}
			d.ready = append(d.ready, p)
			d.state = readHeader

		default:
			return fmt.Errorf("stream: decoder in unknown state %d", d.state)
		}
	}
}
