package tonecache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPPSEdgeArmsThenCaptures(t *testing.T) {
	c := NewCache(4, 8)
	m := NewPPSMachine(c)
	m.Configure(time.Millisecond, 0, false)

	base := time.Unix(0, 0)
	m.PPSEdge(base)
	assert.Equal(t, StateArmedForSecond, m.State())

	m.Tick(base)
	assert.Equal(t, StateArmedForSecond, m.State(), "capture must not begin before the arm deadline")

	m.Tick(base.Add(time.Millisecond))
	assert.Equal(t, StateCapturing, m.State())
	assert.Equal(t, 0, c.WriteIndex())
}

func TestFrameReadyOnCacheFull(t *testing.T) {
	c := NewCache(4, 2)
	m := NewPPSMachine(c)

	base := time.Unix(0, 0)
	m.PPSEdge(base)
	m.Tick(base)
	require.Equal(t, StateCapturing, m.State())

	ready := m.SpectrumReady(base, []float64{1, 2, 3, 4})
	assert.False(t, ready)
	assert.Equal(t, StateCapturing, m.State())

	ready = m.SpectrumReady(base, []float64{5, 6, 7, 8})
	assert.True(t, ready)
	assert.Equal(t, StateFrameReady, m.State())

	m.AckFrame()
	assert.Equal(t, StateIdle, m.State())
}

// TestPPSResetDuringPartialFrame covers P10: a PPS event during a
// partial frame discards the in-flight magnitudes and rewinds the
// write slot to 0.
func TestPPSResetDuringPartialFrame(t *testing.T) {
	c := NewCache(4, 8)
	m := NewPPSMachine(c)

	base := time.Unix(0, 0)
	m.PPSEdge(base)
	m.Tick(base)
	require.Equal(t, StateCapturing, m.State())

	m.SpectrumReady(base, []float64{9, 9, 9, 9})
	require.Equal(t, 1, c.WriteIndex())

	next := base.Add(time.Second)
	m.PPSEdge(next)
	m.Tick(next)

	assert.Equal(t, StateCapturing, m.State())
	assert.Equal(t, 0, c.WriteIndex())
	assert.Equal(t, 0.0, c.At(0, 0), "the stale magnitude must be discarded by the reset")
}

func TestPPSResetHalfRateOddSecondStartsAtEight(t *testing.T) {
	c := NewCache(4, 16)
	m := NewPPSMachine(c)
	m.Configure(0, 0, true)

	base := time.Unix(0, 0)
	m.PPSEdge(base) // secondCount == 1, odd
	m.Tick(base)
	assert.Equal(t, 8, c.WriteIndex())

	m.PPSEdge(base.Add(time.Second)) // secondCount == 2, even
	m.Tick(base.Add(time.Second))
	assert.Equal(t, 0, c.WriteIndex())
}

// TestFreeRunSafetyReset covers scenario S6: a PPS edge followed by a
// long gap with no spectra resets the write index back to 0 before a
// frame is ever completed.
func TestFreeRunSafetyReset(t *testing.T) {
	c := NewCache(4, 8)
	m := NewPPSMachine(c)

	base := time.Unix(0, 0)
	m.PPSEdge(base)
	m.Tick(base)
	require.Equal(t, StateCapturing, m.State())

	m.SpectrumReady(base, []float64{1, 2, 3, 4})
	require.Equal(t, 1, c.WriteIndex())

	stalled := base.Add(300 * time.Millisecond)
	m.Tick(stalled)

	assert.Equal(t, 0, c.WriteIndex(), "a 250ms gap with no spectra must free-run reset the cache")
}

func TestRXRetardDelaysCaptureStart(t *testing.T) {
	c := NewCache(4, 8)
	m := NewPPSMachine(c)
	m.Configure(50*time.Millisecond, 0, false)

	base := time.Unix(0, 0)
	m.PPSEdge(base)
	m.Tick(base.Add(49 * time.Millisecond))
	assert.Equal(t, StateArmedForSecond, m.State())

	m.Tick(base.Add(50 * time.Millisecond))
	assert.Equal(t, StateCapturing, m.State())
}
