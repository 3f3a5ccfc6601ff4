package payload

import (
	"testing"

	"github.com/greenj84/engineio/pkg/packet"
)

func mustPayload(t *testing.T, p packet.Packet, data packet.RawData) packet.Packet {
	t.Helper()
	got, err := p.WithPayload(data)
	if err != nil {
		t.Fatalf("WithPayload: %v", err)
	}
	return got
}

func samplePackets(t *testing.T) []packet.Packet {
	t.Helper()
	return []packet.Packet{
		packet.New(packet.Open),
		mustPayload(t, packet.New(packet.Message), packet.Binary{1, 2, 3}),
		mustPayload(t, packet.New(packet.Message), packet.Text("hello")),
		packet.NewError("bad"),
	}
}

func TestEncodeDecodeBinaryRoundTrip(t *testing.T) {
	seq := samplePackets(t)

	enc, err := EncodeBinary(seq)
	if err != nil {
		t.Fatalf("EncodeBinary: %v", err)
	}

	got, err := DecodeBinary(enc)
	if err != nil {
		t.Fatalf("DecodeBinary: %v", err)
	}

	if len(got) != len(seq) {
		t.Fatalf("got %d packets, want %d", len(got), len(seq))
	}
	for i := range seq {
		if !got[i].Equal(seq[i]) {
			t.Errorf("packet %d = %+v, want %+v", i, got[i], seq[i])
		}
	}
}

func TestEncodeDecodeTextRoundTrip(t *testing.T) {
	seq := samplePackets(t)

	enc, err := EncodeText(seq)
	if err != nil {
		t.Fatalf("EncodeText: %v", err)
	}

	got, err := DecodeText(enc)
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}

	if len(got) != len(seq) {
		t.Fatalf("got %d packets, want %d", len(got), len(seq))
	}
	for i := range seq {
		if !got[i].Equal(seq[i]) {
			t.Errorf("packet %d = %+v, want %+v", i, got[i], seq[i])
		}
	}
}

func TestDecodeBinaryEmptyPayload(t *testing.T) {
	got, err := DecodeBinary(nil)
	if err != nil {
		t.Fatalf("DecodeBinary: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d packets, want 0", len(got))
	}
}

func TestDecodeBinaryTruncatedLengthPrefix(t *testing.T) {
	_, err := DecodeBinary(packet.Binary{0, 0, 1})
	if err == nil {
		t.Fatal("expected an error for a truncated length prefix")
	}
}

func TestDecodeBinaryDeclaredLengthExceedsData(t *testing.T) {
	_, err := DecodeBinary(packet.Binary{0, 0, 0, 10, 1, 2})
	if err == nil {
		t.Fatal("expected an error for a declared length exceeding the remaining data")
	}
}

func TestDecodeTextTruncatedLengthPrefix(t *testing.T) {
	_, err := DecodeText(packet.Text("123"))
	if err == nil {
		t.Fatal("expected an error for a truncated length prefix")
	}
}

func TestDecodeTextInvalidLengthPrefix(t *testing.T) {
	_, err := DecodeText(packet.Text("abcdefgh"))
	if err == nil {
		t.Fatal("expected an error for a non-numeric length prefix")
	}
}

func TestDecodeTextDeclaredLengthExceedsData(t *testing.T) {
	_, err := DecodeText(packet.Text("00000010" + "2"))
	if err == nil {
		t.Fatal("expected an error for a declared length exceeding the remaining data")
	}
}
