package packet

import (
	"encoding/base64"
	"strings"
)

// Decode parses a single packet from either a [Binary] or [Text]
// representation, dispatching on the concrete type of data.
func Decode(data RawData) (Packet, error) {
	switch v := data.(type) {
	case Binary:
		return decodeBinary(v)
	case Text:
		return decodeText(string(v))
	default:
		return Packet{}, &DecodingError{Kind: UnknownError, Msg: "unrecognized RawData variant"}
	}
}

// decodeBinary is the inverse of encodeBinary; see spec §4.1.1.
func decodeBinary(b []byte) (Packet, error) {
	if len(b) < 3 {
		return Packet{}, &DecodingError{Kind: MissingField, Msg: "binary packet must have at least 3 bytes"}
	}

	t, err := TypeFromByte(b[0])
	if err != nil {
		return Packet{}, wrapPacketError(err)
	}

	hasOpts, err := byteBool(b[1])
	if err != nil {
		return Packet{}, err
	}
	hasData, err := byteBool(b[2])
	if err != nil {
		return Packet{}, err
	}

	p := New(t)
	rest := b[3:]

	if hasOpts {
		if len(rest) < optionsBinaryLen {
			return Packet{}, &DecodingError{Kind: MissingField, Msg: "truncated options block"}
		}
		opts, err := decodeOptionsBinary(rest[:optionsBinaryLen])
		if err != nil {
			return Packet{}, err
		}
		p = p.WithOptions(opts)
		rest = rest[optionsBinaryLen:]
	}

	if hasData {
		if len(rest) < 1 {
			return Packet{}, &DecodingError{Kind: MissingField, Msg: "missing data-kind mask"}
		}
		mask := rest[0]
		body := rest[1:]

		var rd RawData
		switch mask {
		case binaryMask:
			rd = Binary(append([]byte(nil), body...))
		case plainTextMask:
			rd = Text(body)
		default:
			return Packet{}, &DecodingError{Kind: InvalidFormat, Msg: "unknown data-kind mask"}
		}

		p, err = p.WithPayload(rd)
		if err != nil {
			return Packet{}, wrapPacketError(err)
		}
	}

	return p, nil
}

// decodeText is the inverse of encodeText; see spec §4.1.2.
func decodeText(s string) (Packet, error) {
	if len(s) < 3 {
		return Packet{}, &DecodingError{Kind: MissingField, Msg: "text packet must have at least 3 characters"}
	}

	t, err := TypeFromChar(s[0])
	if err != nil {
		return Packet{}, wrapPacketError(err)
	}

	hasOpts, err := charBool(string(s[1]))
	if err != nil {
		return Packet{}, err
	}
	hasData, err := charBool(string(s[2]))
	if err != nil {
		return Packet{}, err
	}

	p := New(t)
	rest := s[3:]

	if hasOpts {
		// The options block has exactly 4 colon-delimited fields; find
		// its end by locating the 3rd colon, then either the data
		// separator '-' or the end of the string.
		end, err := findOptionsBlockEnd(rest)
		if err != nil {
			return Packet{}, err
		}

		opts, err := decodeOptionsText(rest[:end])
		if err != nil {
			return Packet{}, err
		}
		p = p.WithOptions(opts)
		rest = rest[end:]
	}

	if hasData {
		if len(rest) < 1 || rest[0] != '-' {
			return Packet{}, &DecodingError{Kind: MissingField, Msg: "missing data separator"}
		}
		rest = rest[1:]

		if len(rest) < 1 {
			return Packet{}, &DecodingError{Kind: MissingField, Msg: "missing data tag"}
		}
		tag := rest[0]
		body := rest[1:]

		var rd RawData
		switch tag {
		case 't':
			rd = Text(body)
		case 'b':
			decoded, decErr := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(body)
			if decErr != nil {
				return Packet{}, &DecodingError{Kind: Base64Fault, Msg: "invalid base64 data body", Cause: decErr}
			}
			rd = Binary(decoded)
		default:
			return Packet{}, &DecodingError{Kind: InvalidFormat, Msg: "unknown data tag"}
		}

		p, err = p.WithPayload(rd)
		if err != nil {
			return Packet{}, wrapPacketError(err)
		}
	} else if rest != "" {
		return Packet{}, &DecodingError{Kind: InvalidFormat, Msg: "unexpected trailing characters"}
	}

	return p, nil
}

// findOptionsBlockEnd locates the end of the 4-field colon-delimited
// options block within s, which may be immediately followed by a
// '-'-prefixed data section or nothing at all.
func findOptionsBlockEnd(s string) (int, error) {
	colons := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			colons++
			if colons == 3 {
				// The 4th field ends at the next '-' (data separator)
				// or at the end of the string.
				if idx := strings.IndexByte(s[i+1:], '-'); idx >= 0 {
					return i + 1 + idx, nil
				}
				return len(s), nil
			}
		}
	}
	return 0, &DecodingError{Kind: InvalidFormat, Msg: "truncated options block"}
}
