package packet

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// optionsBinaryLen is the fixed size of the binary-encoded options block:
// compress(1) + encrypt(1) + sequence(2) + total_chunks(2).
const optionsBinaryLen = 6

// encodeOptionsBinary lays out o as exactly 6 bytes:
// [compress:1][encrypt:1][sequence:2 BE][total_chunks:2 BE].
// Unset chunking is encoded as sequence=0, total_chunks=0.
func encodeOptionsBinary(o Options) [optionsBinaryLen]byte {
	var buf [optionsBinaryLen]byte
	buf[0] = boolByte(o.Compress)
	buf[1] = boolByte(o.Encrypt)

	seq, total, ok := o.Chunking()
	if ok {
		binary.BigEndian.PutUint16(buf[2:4], seq)
		binary.BigEndian.PutUint16(buf[4:6], total)
	}
	return buf
}

// decodeOptionsBinary parses exactly 6 bytes into an Options.
func decodeOptionsBinary(b []byte) (Options, error) {
	if len(b) != optionsBinaryLen {
		return Options{}, &DecodingError{Kind: MissingField, Msg: "options block must be exactly 6 bytes"}
	}

	compress, err := byteBool(b[0])
	if err != nil {
		return Options{}, err
	}
	encrypt, err := byteBool(b[1])
	if err != nil {
		return Options{}, err
	}

	seq := binary.BigEndian.Uint16(b[2:4])
	total := binary.BigEndian.Uint16(b[4:6])

	o := NewOptions().WithCompress(compress).WithEncrypt(encrypt)
	return applyChunkingFields(o, seq, total)
}

// encodeOptionsText lays out o as "<compress>:<encrypt>:<sequence>:<total_chunks>",
// where each field is a decimal digit/number; absent chunking is "0:0".
func encodeOptionsText(o Options) string {
	seq, total, ok := o.Chunking()
	if !ok {
		seq, total = 0, 0
	}

	var sb strings.Builder
	sb.WriteString(boolDigit(o.Compress))
	sb.WriteByte(':')
	sb.WriteString(boolDigit(o.Encrypt))
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(int(seq)))
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(int(total)))
	return sb.String()
}

// decodeOptionsText parses a colon-delimited options block with exactly
// four fields; numeric fields must parse as unsigned 16-bit values.
func decodeOptionsText(s string) (Options, error) {
	fields := strings.Split(s, ":")
	if len(fields) != 4 {
		return Options{}, &DecodingError{Kind: InvalidFormat, Msg: "options block must have exactly 4 fields"}
	}

	compress, err := charBool(fields[0])
	if err != nil {
		return Options{}, err
	}
	encrypt, err := charBool(fields[1])
	if err != nil {
		return Options{}, err
	}

	seq, err := parseUint16(fields[2])
	if err != nil {
		return Options{}, err
	}
	total, err := parseUint16(fields[3])
	if err != nil {
		return Options{}, err
	}

	o := NewOptions().WithCompress(compress).WithEncrypt(encrypt)
	return applyChunkingFields(o, seq, total)
}

func applyChunkingFields(o Options, seq, total uint16) (Options, error) {
	if seq == 0 && total == 0 {
		return o, nil
	}
	withChunk, err := o.WithChunking(seq, total)
	if err != nil {
		return Options{}, err
	}
	return withChunk, nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func byteBool(b byte) (bool, error) {
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, &DecodingError{Kind: InvalidFormat, Msg: fmt.Sprintf("invalid boolean byte %d", b)}
	}
}

func boolDigit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func charBool(s string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, &DecodingError{Kind: InvalidFormat, Msg: fmt.Sprintf("invalid boolean field %q", s)}
	}
}

func parseUint16(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, &DecodingError{Kind: InvalidFormat, Msg: fmt.Sprintf("invalid numeric field %q", s), Cause: err}
	}
	return uint16(n), nil
}
