package packet

// Packet is the triple (type, optional options, optional payload) that
// the codec encodes and decodes. Its type is immutable after construction;
// options and payload are set through the With* builders below, which
// validate and return a new Packet rather than mutating in place.
type Packet struct {
	typ     Type
	options *Options
	payload RawData
}

// New returns an empty packet of the given type, with no options and no
// payload.
func New(t Type) Packet {
	return Packet{typ: t}
}

// NewError returns the conventional error packet
// {Error, none, Text(message)}.
func NewError(message string) Packet {
	return Packet{typ: Error, payload: Text(message)}
}

// Type returns the packet's immutable type.
func (p Packet) Type() Type {
	return p.typ
}

// Options returns the packet's header, and whether one is set.
func (p Packet) Options() (Options, bool) {
	if p.options == nil {
		return Options{}, false
	}
	return *p.options, true
}

// Payload returns the packet's payload, and whether one is set.
func (p Packet) Payload() (RawData, bool) {
	if p.payload == nil {
		return nil, false
	}
	return p.payload, true
}

// WithOptions returns a copy of p carrying the given options header.
func (p Packet) WithOptions(o Options) Packet {
	p.options = &o
	return p
}

// WithoutOptions returns a copy of p with its options header cleared.
func (p Packet) WithoutOptions() Packet {
	p.options = nil
	return p
}

// WithPayload returns a copy of p carrying data, validating the
// [MaxPacketSize] invariant.
func (p Packet) WithPayload(data RawData) (Packet, error) {
	if data != nil && data.Len() > MaxPacketSize {
		return p, newPacketError(DataTooLarge)
	}
	p.payload = data
	return p, nil
}

// WithoutPayload returns a copy of p with its payload cleared.
func (p Packet) WithoutPayload() Packet {
	p.payload = nil
	return p
}

// Equal reports whether p and other have the same type, options, and
// payload (value semantics throughout).
func (p Packet) Equal(other Packet) bool {
	if p.typ != other.typ {
		return false
	}

	po, poOk := p.Options()
	oo, ooOk := other.Options()
	if poOk != ooOk || (poOk && !po.Equal(oo)) {
		return false
	}

	pp, ppOk := p.Payload()
	op, opOk := other.Payload()
	if ppOk != opOk {
		return false
	}
	if !ppOk {
		return true
	}

	pt, pIsText := pp.(Text)
	ot, oIsText := op.(Text)
	if pIsText != oIsText {
		return false
	}
	if pIsText {
		return pt == ot
	}

	pb, _ := pp.(Binary)
	ob, _ := op.(Binary)
	return string(pb) == string(ob)
}
