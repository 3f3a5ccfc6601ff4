package packet

// Options is the fixed-shape header record carried alongside a packet's
// type. It is value-typed (cheap to copy) by design: every mutator below
// returns a new Options rather than mutating in place.
type Options struct {
	Compress bool
	Encrypt  bool

	// sequence and totalChunks are either both unset (chunking == nil)
	// or both set and validated: 1 <= sequence <= totalChunks.
	chunking *chunking
}

type chunking struct {
	sequence    uint16
	totalChunks uint16
}

// NewOptions returns an Options with no chunking and both flags false.
func NewOptions() Options {
	return Options{}
}

// WithCompress returns a copy of o with Compress set.
func (o Options) WithCompress(v bool) Options {
	o.Compress = v
	return o
}

// WithEncrypt returns a copy of o with Encrypt set.
func (o Options) WithEncrypt(v bool) Options {
	o.Encrypt = v
	return o
}

// WithChunking returns a copy of o carrying chunking metadata, validating
// the invariant that 1 <= sequence <= totalChunks and totalChunks >= 1.
// Violating it yields [InvalidChunkingParameters].
func (o Options) WithChunking(sequence, totalChunks uint16) (Options, error) {
	if sequence == 0 || totalChunks == 0 || sequence > totalChunks {
		return o, newPacketError(InvalidChunkingParameters)
	}
	o.chunking = &chunking{sequence: sequence, totalChunks: totalChunks}
	return o, nil
}

// WithoutChunking returns a copy of o with chunking metadata cleared.
func (o Options) WithoutChunking() Options {
	o.chunking = nil
	return o
}

// Chunking returns the (sequence, totalChunks) pair and true if chunking
// metadata is present, or (0, 0, false) otherwise.
func (o Options) Chunking() (sequence, totalChunks uint16, ok bool) {
	if o.chunking == nil {
		return 0, 0, false
	}
	return o.chunking.sequence, o.chunking.totalChunks, true
}

// Equal reports whether o and other carry the same flags and chunking
// metadata (value semantics, not pointer identity).
func (o Options) Equal(other Options) bool {
	if o.Compress != other.Compress || o.Encrypt != other.Encrypt {
		return false
	}
	oc, oo := o.chunking, other.chunking
	switch {
	case oc == nil && oo == nil:
		return true
	case oc == nil || oo == nil:
		return false
	default:
		return *oc == *oo
	}
}
