package gbwt

// Header flags.
const (
	FlagBidirectional uint64 = 0x0001
	FlagMetadata      uint64 = 0x0002
)

// Header holds the global statistics of a path index.
type Header struct {
	// Size is the total length of all rows.
	Size uint64
	// Sequences is the number of stored paths (both orientations when
	// bidirectional).
	Sequences uint64
	// AlphabetSize is one past the largest node identifier.
	AlphabetSize uint64
	// Offset shifts node identifiers into the dense comp range.
	Offset uint64
	Flags  uint64
}

// Effective returns the number of rows: AlphabetSize - Offset.
func (h Header) Effective() uint64 {
	if h.AlphabetSize <= h.Offset {
		return 0
	}
	return h.AlphabetSize - h.Offset
}

// Get reports whether flag is set.
func (h Header) Get(flag uint64) bool { return h.Flags&flag != 0 }

// Set sets flag.
func (h *Header) Set(flag uint64) { h.Flags |= flag }

// Unset clears flag.
func (h *Header) Unset(flag uint64) { h.Flags &^= flag }
