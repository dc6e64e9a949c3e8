package morse

// DecoderState is the top-level Acquire/Locked lifecycle (spec.md
// §4.7, §9: "prefer explicit state types to boolean flags").
type DecoderState int

const (
	StateAcquire DecoderState = iota
	StateLocked
)

// Decoder is the streaming Morse decoder: one Feed call per incoming
// magnitude frame (spec.md §4.7).
type Decoder struct {
	agc     *AGC
	schmitt *Schmitt
	runs    *RunTracker

	state         DecoderState
	acquire       *Acquire
	locked        *Locked
	silenceFrames int
}

// NewDecoder creates a decoder starting in Acquire.
func NewDecoder() *Decoder {
	return &Decoder{
		agc:     NewAGC(),
		schmitt: NewSchmitt(),
		runs:    NewRunTracker(),
		state:   StateAcquire,
		acquire: NewAcquire(),
	}
}

// State returns the decoder's current lifecycle state.
func (d *Decoder) State() DecoderState {
	return d.state
}

// Feed processes one magnitude sample and returns any events it
// produced (usually none or one; a lock replay or a word-boundary run
// can produce several).
func (d *Decoder) Feed(mag float64) []Event {
	peak, noise := d.agc.Update(mag)
	state, valid := d.schmitt.Update(mag, peak, noise, d.agc.EnvelopeFrames())
	if !valid {
		return nil
	}

	if state == 1 {
		d.silenceFrames = 0
	} else {
		d.silenceFrames++
	}

	var events []Event

	if d.state == StateLocked && float64(d.silenceFrames) > lostSilenceUnits*d.locked.UnitEst() {
		d.toAcquire()
		return append(events, Event{Kind: EventLost})
	}

	run, done := d.runs.Feed(state == 1)
	if !done {
		// A space that has already lasted a character gap ends the
		// pending symbol without waiting for the next mark.
		if d.state == StateLocked && state == 0 && float64(d.silenceFrames) >= charGapThreshold*d.locked.UnitEst() {
			events = append(events, d.locked.flushSymbol()...)
		}
		return events
	}

	switch d.state {
	case StateAcquire:
		wpm, replay, locked := d.acquire.Feed(run)
		if !locked {
			return events
		}
		d.locked = NewLocked(wpm)
		d.state = StateLocked
		events = append(events, Event{Kind: EventLocked, WPM: wpm})
		for _, rr := range replay {
			ev, lost := d.locked.Feed(rr)
			events = append(events, ev...)
			if lost {
				d.toAcquire()
				events = append(events, Event{Kind: EventLost})
				return events
			}
		}
	case StateLocked:
		ev, lost := d.locked.Feed(run)
		events = append(events, ev...)
		if lost {
			d.toAcquire()
			events = append(events, Event{Kind: EventLost})
		}
	}
	return events
}

func (d *Decoder) toAcquire() {
	d.state = StateAcquire
	d.acquire = NewAcquire()
	d.locked = nil
	d.silenceFrames = 0
}
