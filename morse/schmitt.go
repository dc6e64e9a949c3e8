package morse

// recomputeInterval is how often the Schmitt thresholds are refreshed
// from the AGC (spec.md §4.7, "Schmitt trigger").
const recomputeInterval = 8

const (
	minEnvelopeFrames = 20
	minSNRRatio       = 6.0
	hysteresisFrac    = 0.12
)

// Schmitt slices the AGC's peak/noise envelope into a two-state
// mark/space stream with hysteresis.
type Schmitt struct {
	framesSinceRecompute int
	lo, hi               float64
	valid                bool
	state                byte // 0 = space, 1 = mark
}

// NewSchmitt creates a trigger with no thresholds yet (invalid until
// the first recompute).
func NewSchmitt() *Schmitt {
	return &Schmitt{}
}

// Update recomputes thresholds every recomputeInterval frames, then
// slices mag into the current state using hysteresis.
func (s *Schmitt) Update(mag, peak, noise float64, envelopeFrames int) (state byte, valid bool) {
	if s.framesSinceRecompute == 0 {
		s.valid = envelopeFrames >= minEnvelopeFrames && noise > 0 && peak/noise >= minSNRRatio
		if s.valid {
			mid := (peak + noise) / 2
			h := hysteresisFrac * (peak - noise)
			s.lo, s.hi = mid-h, mid+h
		}
	}
	s.framesSinceRecompute = (s.framesSinceRecompute + 1) % recomputeInterval

	if !s.valid {
		return s.state, false
	}

	switch {
	case mag > s.hi:
		s.state = 1
	case mag < s.lo:
		s.state = 0
	}
	return s.state, true
}
