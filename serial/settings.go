// Package serial implements the ASCII line-oriented command/telemetry
// protocol the host uses to drive and observe the core, and the
// persistent settings record it reads and writes (spec.md §6).
package serial

import "sync/atomic"

// App selects which decode mode is active (SET:app). When it changes,
// the engine rebuilds its DSP pipeline for the new mode on the next
// frame; no reboot takes place.
type App int

const (
	AppOOK48 App = iota
	AppJT4
	AppPI4
	AppMorse
)

// Settings is the persistent configuration record: message slots,
// locator length, decode mode, TX/RX timing offsets, half-rate flag,
// app selector, Morse WPM, confidence threshold (spec.md §6). It is
// not stored across boots; it starts at Defaults().
type Settings struct {
	MsgSlots            [10]string
	LocatorLen          int
	DecodeMode          int // OOK48 scalar mode: 0=Normal, 1=Alt, 2=Rainscatter
	TxAdvanceMs         int
	RxRetardMs          int
	HalfRate            bool
	App                 App
	MorseWPM            float64
	ConfidenceThreshold float64
}

// Defaults returns the boot-time settings record.
func Defaults() Settings {
	return Settings{
		LocatorLen:          6,
		DecodeMode:          0,
		TxAdvanceMs:         0,
		RxRetardMs:          0,
		HalfRate:            false,
		App:                 AppOOK48,
		MorseWPM:            20,
		ConfidenceThreshold: 0.180,
	}
}

// Store is the single configuration record owned by the dispatch
// context and snapshotted atomically into DSP parameters on mode
// change (spec.md §9: "no component reads partially-updated
// settings").
type Store struct {
	v atomic.Pointer[Settings]
}

// NewStore creates a store initialised to Defaults().
func NewStore() *Store {
	s := &Store{}
	d := Defaults()
	s.v.Store(&d)
	return s
}

// Snapshot returns a copy of the current settings, safe to read
// without racing concurrent updates.
func (s *Store) Snapshot() Settings {
	return *s.v.Load()
}

// Update atomically replaces the settings with the result of mutating
// a copy of the current snapshot.
func (s *Store) Update(mutate func(*Settings)) Settings {
	cur := s.Snapshot()
	mutate(&cur)
	s.v.Store(&cur)
	return cur
}
