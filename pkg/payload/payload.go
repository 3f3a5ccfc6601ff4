// Package payload implements the Engine.IO-family payload framing: a
// concatenation of length-prefixed single packets, as specified in
// spec §4.1.4. Binary payloads use a 4-byte big-endian length prefix per
// packet; text payloads use an 8-character zero-padded decimal prefix.
package payload

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/greenj84/engineio/pkg/packet"
)

// textLenWidth is the fixed width of the zero-padded decimal length
// prefix in a text payload, per spec §4.1.4.
const textLenWidth = 8

// EncodeBinary concatenates the binary encoding of each packet in seq,
// each preceded by a 4-byte big-endian length prefix.
func EncodeBinary(seq []packet.Packet) (packet.Binary, error) {
	var out []byte
	for i, p := range seq {
		enc, err := packet.Encode(p, true)
		if err != nil {
			return nil, fmt.Errorf("payload: encoding packet %d: %w", i, err)
		}
		b, ok := enc.(packet.Binary)
		if !ok {
			return nil, fmt.Errorf("payload: packet %d did not encode to binary", i)
		}

		var prefix [4]byte
		binary.BigEndian.PutUint32(prefix[:], uint32(len(b)))
		out = append(out, prefix[:]...)
		out = append(out, b...)
	}
	return out, nil
}

// DecodeBinary is the inverse of EncodeBinary: it reads a 4-byte
// big-endian length prefix, then exactly that many bytes, for each
// packet, until the input is exhausted. An under-run of a declared
// length yields [packet.DecodingError] with Kind PayloadDataMismatch.
func DecodeBinary(data packet.Binary) ([]packet.Packet, error) {
	var seq []packet.Packet
	rest := []byte(data)

	for len(rest) > 0 {
		if len(rest) < 4 {
			return nil, mismatchErr("truncated length prefix")
		}
		n := binary.BigEndian.Uint32(rest[:4])
		rest = rest[4:]

		if uint64(len(rest)) < uint64(n) {
			return nil, mismatchErr("declared length exceeds remaining data")
		}

		body := rest[:n]
		rest = rest[n:]

		p, err := packet.Decode(packet.Binary(body))
		if err != nil {
			return nil, fmt.Errorf("payload: decoding packet: %w", err)
		}
		seq = append(seq, p)
	}

	return seq, nil
}

// EncodeText concatenates the text encoding of each packet in seq, each
// preceded by an 8-character zero-padded decimal length.
func EncodeText(seq []packet.Packet) (packet.Text, error) {
	var out []byte
	for i, p := range seq {
		enc, err := packet.Encode(p, false)
		if err != nil {
			return "", fmt.Errorf("payload: encoding packet %d: %w", i, err)
		}
		t, ok := enc.(packet.Text)
		if !ok {
			return "", fmt.Errorf("payload: packet %d did not encode to text", i)
		}

		out = append(out, fmt.Sprintf("%0*d", textLenWidth, len(t))...)
		out = append(out, t...)
	}
	return packet.Text(out), nil
}

// DecodeText is the inverse of EncodeText.
func DecodeText(data packet.Text) ([]packet.Packet, error) {
	var seq []packet.Packet
	s := string(data)

	for len(s) > 0 {
		if len(s) < textLenWidth {
			return nil, mismatchErr("truncated length prefix")
		}
		n, err := strconv.Atoi(s[:textLenWidth])
		if err != nil || n < 0 {
			return nil, mismatchErr("invalid length prefix")
		}
		s = s[textLenWidth:]

		if len(s) < n {
			return nil, mismatchErr("declared length exceeds remaining data")
		}

		body := s[:n]
		s = s[n:]

		p, err := packet.Decode(packet.Text(body))
		if err != nil {
			return nil, fmt.Errorf("payload: decoding packet: %w", err)
		}
		seq = append(seq, p)
	}

	return seq, nil
}

func mismatchErr(msg string) error {
	return &packet.DecodingError{Kind: packet.PayloadDataMismatch, Msg: msg}
}
