package packet

import "testing"

func TestOptionsChunkingInvariant(t *testing.T) {
	tests := []struct {
		name        string
		seq, total  uint16
		wantErr     bool
	}{
		{"valid_first", 1, 4, false},
		{"valid_last", 4, 4, false},
		{"zero_sequence", 0, 4, true},
		{"zero_total", 2, 0, true},
		{"sequence_exceeds_total", 5, 4, true},
		{"both_zero_rejected", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOptions().WithChunking(tt.seq, tt.total)
			if (err != nil) != tt.wantErr {
				t.Errorf("WithChunking(%d, %d) error = %v, wantErr %v", tt.seq, tt.total, err, tt.wantErr)
			}
			if err != nil {
				var perr *PacketError
				if pe, ok := err.(*PacketError); !ok || pe.Kind != InvalidChunkingParameters {
					t.Errorf("error = %v (%T), want InvalidChunkingParameters", err, perr)
				}
			}
		})
	}
}

func TestOptionsBinaryRoundTrip(t *testing.T) {
	o, err := NewOptions().WithCompress(true).WithEncrypt(false).WithChunking(2, 4)
	if err != nil {
		t.Fatal(err)
	}

	enc := encodeOptionsBinary(o)
	if len(enc) != 6 {
		t.Fatalf("encoded length = %d, want 6", len(enc))
	}

	dec, err := decodeOptionsBinary(enc[:])
	if err != nil {
		t.Fatal(err)
	}
	if !dec.Equal(o) {
		t.Errorf("round trip = %+v, want %+v", dec, o)
	}
}

func TestOptionsTextRoundTrip(t *testing.T) {
	o, err := NewOptions().WithCompress(true).WithEncrypt(true).WithChunking(2, 4)
	if err != nil {
		t.Fatal(err)
	}

	text := encodeOptionsText(o)
	if text != "1:1:2:4" {
		t.Fatalf("encoded = %q, want %q", text, "1:1:2:4")
	}

	dec, err := decodeOptionsText(text)
	if err != nil {
		t.Fatal(err)
	}
	if !dec.Equal(o) {
		t.Errorf("round trip = %+v, want %+v", dec, o)
	}
}

func TestOptionsUnsetChunkingEncodesZero(t *testing.T) {
	o := NewOptions().WithCompress(false).WithEncrypt(false)
	if got := encodeOptionsText(o); got != "0:0:0:0" {
		t.Errorf("encodeOptionsText(unset) = %q, want %q", got, "0:0:0:0")
	}

	enc := encodeOptionsBinary(o)
	want := [6]byte{0, 0, 0, 0, 0, 0}
	if enc != want {
		t.Errorf("encodeOptionsBinary(unset) = %v, want %v", enc, want)
	}
}

func TestDecodeOptionsBinaryWrongLength(t *testing.T) {
	if _, err := decodeOptionsBinary([]byte{0, 0, 0}); err == nil {
		t.Error("expected error for short options block")
	}
}

func TestDecodeOptionsTextWrongFieldCount(t *testing.T) {
	if _, err := decodeOptionsText("1:1:2"); err == nil {
		t.Error("expected error for 3-field options block")
	}
}
