package tonecache

import "time"

// State is the PPS cadence state (spec.md §4.2). Declared as an
// explicit type rather than booleans per spec.md §9's state-machine
// design note.
type State int

const (
	StateIdle State = iota
	StateArmedForSecond
	StateCapturing
	StateFrameReady
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateArmedForSecond:
		return "ArmedForSecond"
	case StateCapturing:
		return "Capturing"
	case StateFrameReady:
		return "FrameReady"
	default:
		return "Unknown"
	}
}

// freeRunTimeout is the "no DMA event" safety window (spec.md §4.2).
const freeRunTimeout = 250 * time.Millisecond

// PPSMachine arms the symbol cadence on the GPS 1PPS edge and resets
// the tone cache write index at each second boundary. It owns the
// cadence timer and the cache's single write index; no other
// component may mutate them (spec.md §3, "Ownership").
type PPSMachine struct {
	cache *Cache

	state       State
	halfRate    bool
	rxRetard    time.Duration // RX delay from the PPS edge
	txAdvance   time.Duration // TX lead ahead of the next second
	secondCount int           // counts PPS edges, for odd/even half-rate alignment

	armDeadline time.Time // when Capturing should start, post-delay
	lastDMA     time.Time
	haveLastDMA bool
}

// NewPPSMachine creates a state machine bound to cache.
func NewPPSMachine(cache *Cache) *PPSMachine {
	return &PPSMachine{cache: cache, state: StateIdle}
}

// Configure sets the RX-retard / TX-advance delays and half-rate mode.
// Settings are snapshotted atomically (spec.md §9); callers must not
// call Configure mid-second.
func (m *PPSMachine) Configure(rxRetard, txAdvance time.Duration, halfRate bool) {
	m.rxRetard = rxRetard
	m.txAdvance = txAdvance
	m.halfRate = halfRate
}

// State returns the current cadence state.
func (m *PPSMachine) State() State {
	return m.state
}

// PPSEdge handles a 1PPS edge: arms the cache reset after the
// configured RX-retard (or leading TX-advance) delay.
func (m *PPSMachine) PPSEdge(now time.Time) {
	m.secondCount++
	delay := m.rxRetard
	if m.txAdvance > 0 {
		delay = time.Second - m.txAdvance
	}
	m.armDeadline = now.Add(delay)
	m.state = StateArmedForSecond
}

// startSlot returns the slot a cache reset should rewind to: 0
// normally, or HalfRateCacheSize/2 on odd seconds under half-rate
// alignment (spec.md §4.2, §3).
func (m *PPSMachine) startSlot() int {
	if m.halfRate && m.secondCount%2 == 1 {
		return m.cache.CacheSize() / 2
	}
	return 0
}

// Tick advances the state machine's timers: transitions
// ArmedForSecond->Capturing once the delay has elapsed, and applies
// the free-run safety reset if no spectrum has arrived for 250ms.
func (m *PPSMachine) Tick(now time.Time) {
	if m.state == StateArmedForSecond && !now.Before(m.armDeadline) {
		m.cache.Reset(m.startSlot())
		m.state = StateCapturing
		m.lastDMA = now
		m.haveLastDMA = true
	}

	if m.state == StateCapturing && m.haveLastDMA && now.Sub(m.lastDMA) >= freeRunTimeout {
		m.cache.Reset(0)
		m.lastDMA = now
	}
}

// SpectrumReady is called once per completed spectrum while Capturing.
// It writes the symbol into the cache and reports whether the frame is
// now complete (FrameReady).
func (m *PPSMachine) SpectrumReady(now time.Time, mags []float64) (frameReady bool) {
	if m.state != StateCapturing {
		return false
	}
	m.lastDMA = now
	m.haveLastDMA = true
	m.cache.WriteColumn(mags)
	if m.cache.Full() {
		m.state = StateFrameReady
		return true
	}
	return false
}

// AckFrame returns the machine to Idle after the decoder has consumed
// a FrameReady event, pending the next PPS.
func (m *PPSMachine) AckFrame() {
	if m.state == StateFrameReady {
		m.state = StateIdle
	}
}
