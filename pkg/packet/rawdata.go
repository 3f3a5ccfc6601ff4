package packet

// RawData is the tagged union a packet's payload is carried in: exactly
// one of [Text] or [Binary]. Realized as an interface implemented by two
// concrete value types rather than a runtime type-switch over `any`, so
// callers get static typing at the call site.
type RawData interface {
	// Len returns the payload's length in units natural to the variant:
	// UTF-8 bytes for Text, raw bytes for Binary.
	Len() int

	rawData()
}

// Text is the string variant of [RawData].
type Text string

func (t Text) Len() int { return len(t) }
func (Text) rawData()   {}

// Binary is the byte-sequence variant of [RawData].
type Binary []byte

func (b Binary) Len() int { return len(b) }
func (Binary) rawData()   {}
