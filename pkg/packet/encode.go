package packet

import "encoding/base64"

// dataKind masks identify whether a single-packet binary payload section
// carries a binary or plain-text payload, per spec §4.1.1.
const (
	binaryMask    byte = 0x80
	plainTextMask byte = 0x00
)

// Encode renders p as a single packet, either as [Binary] or [Text]
// depending on supportsBinary. A text-transport encoding can still carry a
// binary payload (via base64), and a binary-transport encoding can still
// carry a text payload (via the plain-text mask), per spec §4.1.2.
func Encode(p Packet, supportsBinary bool) (RawData, error) {
	if supportsBinary {
		return encodeBinary(p)
	}
	return encodeText(p)
}

// encodeBinary lays p out per spec §4.1.1:
//
//	[0]   type numeric
//	[1]   has_options flag
//	[2]   has_data flag
//	[..]  if has_options: 6-byte options block
//	[..]  if has_data: 1-byte data-kind mask + raw payload bytes
func encodeBinary(p Packet) (RawData, error) {
	if !p.typ.IsValid() {
		return nil, newPacketError(InvalidPacketType)
	}

	opts, hasOpts := p.Options()
	data, hasData := p.Payload()

	out := make([]byte, 0, 3+optionsBinaryLen+estimatePayloadLen(data))
	out = append(out, p.typ.Byte(), boolByte(hasOpts), boolByte(hasData))

	if hasOpts {
		ob := encodeOptionsBinary(opts)
		out = append(out, ob[:]...)
	}

	if hasData {
		switch v := data.(type) {
		case Text:
			out = append(out, plainTextMask)
			out = append(out, []byte(v)...)
		case Binary:
			out = append(out, binaryMask)
			out = append(out, v...)
		}
	}

	return Binary(out), nil
}

func estimatePayloadLen(data RawData) int {
	if data == nil {
		return 0
	}
	return data.Len() + 1
}

// encodeText lays p out per spec §4.1.2:
//
//	<type-char><has_options-digit><has_data-digit>[<options-text>][-<data-tag><data-body>]
func encodeText(p Packet) (RawData, error) {
	char, ok := p.typ.Char()
	if !ok {
		return nil, newPacketError(InvalidPacketType)
	}

	opts, hasOpts := p.Options()
	data, hasData := p.Payload()

	var sb []byte
	sb = append(sb, char, '0'+boolByte(hasOpts), '0'+boolByte(hasData))

	if hasOpts {
		sb = append(sb, encodeOptionsText(opts)...)
	}

	if hasData {
		sb = append(sb, '-')
		switch v := data.(type) {
		case Text:
			sb = append(sb, 't')
			sb = append(sb, v...)
		case Binary:
			sb = append(sb, 'b')
			sb = append(sb, base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(v)...)
		}
	}

	return Text(sb), nil
}
