package stream

import "testing"

func TestDecoderNeverPanicsOnGarbage(t *testing.T) {
	inputs := [][]byte{
		{},
		{0x00},
		{0xFF},
		{126, 0},
		{127, 0, 0, 0, 0, 0, 0, 0},
		{0x80 | 3, 9, 9, 9}, // claims binary payload of 3 bytes, all garbage
	}

	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Feed(%v) panicked: %v", in, r)
				}
			}()
			d := NewDecoder()
			_ = d.Feed(in)
		}()
	}
}

func TestDecoderSplicesAcrossExtendedLengthBoundary(t *testing.T) {
	d := NewDecoder()
	// Header byte announcing extended16 length, split across two feeds.
	if err := d.Feed([]byte{extended16}); err != nil {
		t.Fatal(err)
	}
	if _, ok := d.Next(); ok {
		t.Fatal("expected no packet yet")
	}
	if err := d.Feed([]byte{0, 3}); err != nil { // length = 3
		t.Fatal(err)
	}
	if _, ok := d.Next(); ok {
		t.Fatal("expected no packet until payload arrives")
	}
	// Ping binary encoding is exactly 3 bytes: [2, 0, 0].
	if err := d.Feed([]byte{2, 0, 0}); err != nil {
		t.Fatal(err)
	}
	p, ok := d.Next()
	if !ok {
		t.Fatal("expected a decoded packet")
	}
	if p.Type().String() != "ping" {
		t.Errorf("Type() = %v, want ping", p.Type())
	}
}
