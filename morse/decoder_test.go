package morse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	markMag  = 100.0
	spaceMag = 1.0
)

func feedRun(t *testing.T, d *Decoder, mark bool, frames int) []Event {
	t.Helper()
	var all []Event
	mag := spaceMag
	if mark {
		mag = markMag
	}
	for i := 0; i < frames; i++ {
		all = append(all, d.Feed(mag)...)
	}
	return all
}

func hasKind(events []Event, k EventKind) bool {
	for _, e := range events {
		if e.Kind == k {
			return true
		}
	}
	return false
}

// TestMorseLocksAtTwelveWPM covers P8: a stream built from dit_frames=3
// at 36 fps locks with wpm in [11,13] (12.5 wpm is the lowest step whose
// ditFrames rounds to 3) and eventually emits a character.
func TestMorseLocksAtTwelveWPM(t *testing.T) {
	d := NewDecoder()
	var all []Event
	for i := 0; i < 30; i++ {
		all = append(all, feedRun(t, d, true, 3)...)
		all = append(all, feedRun(t, d, false, 3)...)
		all = append(all, feedRun(t, d, true, 9)...)
		all = append(all, feedRun(t, d, false, 9)...)
	}

	require.True(t, hasKind(all, EventLocked), "decoder should reach a WPM lock")
	var wpm float64
	for _, e := range all {
		if e.Kind == EventLocked {
			wpm = e.WPM
			break
		}
	}
	assert.GreaterOrEqual(t, wpm, 11.0)
	assert.LessOrEqual(t, wpm, 13.0)
	assert.True(t, hasKind(all, EventChar), "a locked decoder should eventually emit a character")
}

// TestMorseLossAfterSilence covers P9: once locked, a long silence
// produces exactly one Lost event and no further characters.
func TestMorseLossAfterSilence(t *testing.T) {
	d := NewDecoder()
	for i := 0; i < 30; i++ {
		feedRun(t, d, true, 3)
		feedRun(t, d, false, 3)
		feedRun(t, d, true, 9)
		feedRun(t, d, false, 9)
	}
	require.Equal(t, StateLocked, d.State())

	silenceFrames := int(61 * d.locked.UnitEst())
	events := feedRun(t, d, false, silenceFrames)

	lostCount := 0
	for _, e := range events {
		if e.Kind == EventLost {
			lostCount++
		}
		assert.NotEqual(t, EventChar, e.Kind, "no character should be emitted once silence triggers loss")
	}
	assert.Equal(t, 1, lostCount)
	assert.Equal(t, StateAcquire, d.State())
}

// TestMorseEmitsSAfterLock covers scenario S5's second half: once
// locked at ~12 wpm, three dots followed by a character gap emit 'S'.
func TestMorseEmitsSAfterLock(t *testing.T) {
	d := NewDecoder()
	for i := 0; i < 200; i++ {
		feedRun(t, d, true, 3)
		feedRun(t, d, false, 9)
	}
	require.Equal(t, StateLocked, d.State())

	var events []Event
	events = append(events, feedRun(t, d, true, 3)...)
	events = append(events, feedRun(t, d, false, 3)...)
	events = append(events, feedRun(t, d, true, 3)...)
	events = append(events, feedRun(t, d, false, 3)...)
	events = append(events, feedRun(t, d, true, 3)...)
	events = append(events, feedRun(t, d, false, 9)...)

	var chars []byte
	for _, e := range events {
		if e.Kind == EventChar {
			chars = append(chars, e.Char)
		}
	}
	require.NotEmpty(t, chars)
	assert.Equal(t, byte('S'), chars[len(chars)-1])
}
