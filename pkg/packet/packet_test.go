package packet

import "testing"

func TestNewErrorPacket(t *testing.T) {
	p := NewError("boom")
	if p.Type() != Error {
		t.Fatalf("Type() = %v, want Error", p.Type())
	}
	data, ok := p.Payload()
	if !ok {
		t.Fatal("expected payload")
	}
	text, ok := data.(Text)
	if !ok || text != "boom" {
		t.Errorf("Payload() = %v, want Text(\"boom\")", data)
	}
}

func TestWithPayloadSizeBound(t *testing.T) {
	ok := make(Binary, MaxPacketSize)
	if _, err := New(Message).WithPayload(ok); err != nil {
		t.Errorf("max-size payload rejected: %v", err)
	}

	tooBig := make(Binary, MaxPacketSize+1)
	_, err := New(Message).WithPayload(tooBig)
	if err == nil {
		t.Fatal("expected DataTooLarge error")
	}
	pe, isPacketErr := err.(*PacketError)
	if !isPacketErr || pe.Kind != DataTooLarge {
		t.Errorf("error = %v, want DataTooLarge", err)
	}
}

func TestPacketEqual(t *testing.T) {
	a, _ := New(Message).WithPayload(Binary{1, 2, 3})
	b, _ := New(Message).WithPayload(Binary{1, 2, 3})
	c, _ := New(Message).WithPayload(Text("abc"))

	if !a.Equal(b) {
		t.Error("expected equal packets to compare equal")
	}
	if a.Equal(c) {
		t.Error("expected packets with different payload kinds to differ")
	}
}

// Scenario fixtures from spec §8.
func TestScenarioPing(t *testing.T) {
	p := New(Ping)

	bin, err := Encode(p, true)
	if err != nil {
		t.Fatal(err)
	}
	if want := (Binary{2, 0, 0}); string(bin.(Binary)) != string(want) {
		t.Errorf("binary = %v, want %v", bin, want)
	}

	txt, err := Encode(p, false)
	if err != nil {
		t.Fatal(err)
	}
	if txt != Text("200") {
		t.Errorf("text = %q, want %q", txt, "200")
	}

	decBin, err := Decode(bin)
	if err != nil {
		t.Fatal(err)
	}
	if !decBin.Equal(p) {
		t.Errorf("decode(binary) = %+v, want %+v", decBin, p)
	}

	decTxt, err := Decode(txt)
	if err != nil {
		t.Fatal(err)
	}
	if !decTxt.Equal(p) {
		t.Errorf("decode(text) = %+v, want %+v", decTxt, p)
	}
}

func TestScenarioMessageWithOptionsNoData(t *testing.T) {
	opts, err := NewOptions().WithCompress(true).WithEncrypt(true).WithChunking(2, 4)
	if err != nil {
		t.Fatal(err)
	}
	p := New(Message).WithOptions(opts)

	bin, err := Encode(p, true)
	if err != nil {
		t.Fatal(err)
	}
	want := Binary{4, 1, 0, 1, 1, 0, 2, 0, 4}
	if string(bin.(Binary)) != string(want) {
		t.Errorf("binary = %v, want %v", []byte(bin.(Binary)), []byte(want))
	}

	txt, err := Encode(p, false)
	if err != nil {
		t.Fatal(err)
	}
	if txt != Text("4101:1:2:4") {
		t.Errorf("text = %q, want %q", txt, "4101:1:2:4")
	}
}

func TestScenarioMessageBinaryPayload(t *testing.T) {
	p, err := New(Message).WithPayload(Binary{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}

	bin, err := Encode(p, true)
	if err != nil {
		t.Fatal(err)
	}
	want := Binary{4, 0, 1, 0x80, 1, 2, 3}
	if string(bin.(Binary)) != string(want) {
		t.Errorf("binary = %v, want %v", []byte(bin.(Binary)), []byte(want))
	}

	txt, err := Encode(p, false)
	if err != nil {
		t.Fatal(err)
	}
	if txt != Text("401-bAQID") {
		t.Errorf("text = %q, want %q", txt, "401-bAQID")
	}
}

func TestScenarioMessageTextPayload(t *testing.T) {
	p, err := New(Message).WithPayload(Text("abc"))
	if err != nil {
		t.Fatal(err)
	}

	txt, err := Encode(p, false)
	if err != nil {
		t.Fatal(err)
	}
	if txt != Text("401-tabc") {
		t.Errorf("text = %q, want %q", txt, "401-tabc")
	}

	bin, err := Encode(p, true)
	if err != nil {
		t.Fatal(err)
	}
	want := Binary{4, 0, 1, 0x00, 'a', 'b', 'c'}
	if string(bin.(Binary)) != string(want) {
		t.Errorf("binary = %v, want %v", []byte(bin.(Binary)), []byte(want))
	}
}

func TestDecodeInvalidBase64DoesNotPanic(t *testing.T) {
	_, err := Decode(Text("401-b!!!not-base64!!!"))
	if err == nil {
		t.Fatal("expected Base64Fault error")
	}
	de, ok := err.(*DecodingError)
	if !ok || de.Kind != Base64Fault {
		t.Errorf("error = %v, want Base64Fault", err)
	}
}

func TestDecodeNeverPanicsOnGarbage(t *testing.T) {
	inputs := []RawData{
		Text(""),
		Text("x"),
		Binary{},
		Binary{0xFF},
		Text("999"),
		Binary{255, 1, 1},
		Text("4101:2:3"),
		Text("401-z"),
	}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Decode(%v) panicked: %v", in, r)
				}
			}()
			_, _ = Decode(in)
		}()
	}
}

// Round-trip law from spec §8: decode(encode(p, supportsBinary)) == p.
func TestRoundTripLaw(t *testing.T) {
	opts, _ := NewOptions().WithCompress(true).WithChunking(1, 1)
	packets := []Packet{
		New(Open),
		New(Close),
		New(Ping),
		New(Pong),
		New(Noop),
		NewError("oops"),
		New(Message).WithOptions(opts),
		mustPayload(t, New(Message), Binary{0x00, 0xFF, 0x10}),
		mustPayload(t, New(Message), Text("héllo wörld")),
		mustPayload(t, New(Upgrade).WithOptions(NewOptions()), Binary{}),
	}

	for _, p := range packets {
		for _, supportsBinary := range []bool{true, false} {
			enc, err := Encode(p, supportsBinary)
			if err != nil {
				t.Fatalf("Encode(%+v, %v): %v", p, supportsBinary, err)
			}
			dec, err := Decode(enc)
			if err != nil {
				t.Fatalf("Decode(%v): %v", enc, err)
			}
			if !dec.Equal(p) {
				t.Errorf("round trip (supportsBinary=%v): got %+v, want %+v", supportsBinary, dec, p)
			}
		}
	}
}

func mustPayload(t *testing.T, p Packet, data RawData) Packet {
	t.Helper()
	out, err := p.WithPayload(data)
	if err != nil {
		t.Fatal(err)
	}
	return out
}
