package stream

import (
	"math/rand"
	"testing"

	"github.com/greenj84/engineio/pkg/packet"
)

func drainAll(t *testing.T, chunks [][]byte) []packet.Packet {
	t.Helper()
	d := NewDecoder()
	var got []packet.Packet
	for _, c := range chunks {
		if err := d.Feed(c); err != nil {
			t.Fatalf("Feed: %v", err)
		}
		for {
			p, ok := d.Next()
			if !ok {
				break
			}
			got = append(got, p)
		}
	}
	return got
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	opts, _ := packet.NewOptions().WithChunking(1, 2)
	packets := []packet.Packet{
		packet.New(packet.Ping),
		mustPayload(t, packet.New(packet.Message), packet.Binary{1, 2, 3}),
		mustPayload(t, packet.New(packet.Message).WithOptions(opts), packet.Text("hello")),
		packet.NewError("bad"),
	}

	enc := NewEncoder()
	var stream []byte
	for _, p := range packets {
		frame, err := enc.Encode(p)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		stream = append(stream, frame...)
	}

	got := drainAll(t, [][]byte{stream})
	if len(got) != len(packets) {
		t.Fatalf("got %d packets, want %d", len(got), len(packets))
	}
	for i := range packets {
		if !got[i].Equal(packets[i]) {
			t.Errorf("packet %d = %+v, want %+v", i, got[i], packets[i])
		}
	}
}

// Fidelity law from spec §8: for every byte-chunking of a valid encoded
// stream, the decoder yields the same packet sequence.
func TestStreamingDecoderFidelityAcrossChunkings(t *testing.T) {
	packets := []packet.Packet{
		packet.New(packet.Open),
		mustPayload(t, packet.New(packet.Message), packet.Binary(make([]byte, 300))), // forces extended16 frame
		packet.New(packet.Noop),
	}

	enc := NewEncoder()
	var full []byte
	for _, p := range packets {
		frame, err := enc.Encode(p)
		if err != nil {
			t.Fatal(err)
		}
		full = append(full, frame...)
	}

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		chunks := randomChunking(rng, full)
		got := drainAll(t, chunks)
		if len(got) != len(packets) {
			t.Fatalf("trial %d: got %d packets, want %d", trial, len(got), len(packets))
		}
		for i := range packets {
			if !got[i].Equal(packets[i]) {
				t.Errorf("trial %d: packet %d = %+v, want %+v", trial, i, got[i], packets[i])
			}
		}
	}
}

func randomChunking(rng *rand.Rand, data []byte) [][]byte {
	var chunks [][]byte
	for len(data) > 0 {
		n := rng.Intn(len(data)) + 1
		chunks = append(chunks, data[:n])
		data = data[n:]
	}
	return chunks
}

func TestDecoderEndsCleanlyMidPacket(t *testing.T) {
	enc := NewEncoder()
	frame, err := enc.Encode(packet.New(packet.Ping))
	if err != nil {
		t.Fatal(err)
	}

	d := NewDecoder()
	if err := d.Feed(frame[:len(frame)-1]); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if _, ok := d.Next(); ok {
		t.Fatal("expected no packet from a truncated frame")
	}
	d.Close()
	if _, ok := d.Next(); ok {
		t.Fatal("expected no packet to ever surface after Close on a truncated stream")
	}
	if err := d.Feed([]byte{0}); err != nil {
		t.Fatalf("Feed after Close: %v", err)
	}
	if _, ok := d.Next(); ok {
		t.Fatal("expected Feed to be a no-op after Close")
	}
}

func mustPayload(t *testing.T, p packet.Packet, data packet.RawData) packet.Packet {
	t.Helper()
	out, err := p.WithPayload(data)
	if err != nil {
		t.Fatal(err)
	}
	return out
}
