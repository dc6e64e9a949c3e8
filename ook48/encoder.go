package ook48

// LocatorToken marks the position in a message template that the
// encoder substitutes with the current Maidenhead locator (spec.md
// §4.3, "Visual-message expansion").
const LocatorToken byte = 0x86

// LocatorExpander supplies the encoder's station locator substitution.
// maidenhead.Station satisfies this.
type LocatorExpander interface {
	ExpandTemplate(msg []byte) []byte
}

// Encoder turns a message into the symbol-paced sequence of
// constant-weight words the key line transmits (spec.md §4.3).
type Encoder struct {
	station  LocatorExpander
	halfRate bool
}

// NewEncoder creates an encoder bound to a locator expander. station
// may be nil if the message never carries a locator token.
func NewEncoder(station LocatorExpander, halfRate bool) *Encoder {
	return &Encoder{station: station, halfRate: halfRate}
}

// Encode expands the locator token (if present), maps every character
// through the alphabet, and — under half-rate — duplicates every
// symbol so it is retransmitted once per second pair (spec.md §4.3:
// "each character is sent twice per second pair").
func (e *Encoder) Encode(msg []byte) []byte {
	if e.station != nil {
		msg = e.station.ExpandTemplate(msg)
	}

	out := make([]byte, 0, len(msg)*2)
	for _, ch := range msg {
		word := EncodeByte(ch)
		out = append(out, word)
		if e.halfRate {
			out = append(out, word)
		}
	}
	return out
}

// Indices returns the alphabet indices (not the 8-bit constant-weight
// words) for msg, useful for inspecting which character each
// transmitted symbol corresponds to.
func (e *Encoder) Indices(msg []byte) []byte {
	if e.station != nil {
		msg = e.station.ExpandTemplate(msg)
	}
	out := make([]byte, 0, len(msg)*2)
	for _, ch := range msg {
		idx := indexForChar(ch)
		out = append(out, idx)
		if e.halfRate {
			out = append(out, idx)
		}
	}
	return out
}
