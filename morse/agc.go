package morse

import "sort"

// FrameRate is the Morse decoder's input cadence (spec.md §4.7): a
// 256-point FFT at 9216 Hz with an oversample of 8 yields
// 9216 / 256 ≈ 36 Hz.
const FrameRate = 36.0

const (
	decaySlow       = 0.9995
	decayFast       = 0.985
	decaySlowFrames = 120
	noiseWindowLen  = 128
	noisePercentile = 0.20
	noiseFloorCreep = 0.001
)

// AGC tracks a peak envelope (asymmetric hold/decay) and a slow
// percentile-based noise floor (spec.md §4.7, "AGC").
//
// The spec describes the noise floor as a 256-bin auto-scaled
// histogram; this implementation computes the same 20th-percentile
// statistic directly from the sliding window's order statistics
// instead of binning it, which is simpler and exact rather than an
// approximation — see DESIGN.md.
type AGC struct {
	peak           float64
	framesBelow    int
	window         []float64
	noiseFloorMin  float64
	envelopeFrames int
}

// NewAGC creates an AGC with no history.
func NewAGC() *AGC {
	return &AGC{window: make([]float64, 0, noiseWindowLen)}
}

// Update folds in one magnitude sample and returns the current peak
// and noise estimate.
func (a *AGC) Update(mag float64) (peak, noise float64) {
	a.envelopeFrames++

	if mag >= a.peak {
		a.peak = mag
		a.framesBelow = 0
	} else {
		a.framesBelow++
		decay := decaySlow
		if a.framesBelow > decaySlowFrames {
			decay = decayFast
		}
		a.peak *= decay
	}

	if len(a.window) < noiseWindowLen {
		a.window = append(a.window, mag)
	} else {
		copy(a.window, a.window[1:])
		a.window[len(a.window)-1] = mag
	}

	shortTerm := percentile(a.window, noisePercentile)
	if shortTerm > a.noiseFloorMin {
		a.noiseFloorMin += noiseFloorCreep * (shortTerm - a.noiseFloorMin)
	}

	noise = shortTerm
	if a.noiseFloorMin > noise {
		noise = a.noiseFloorMin
	}
	return a.peak, noise
}

// EnvelopeFrames returns the total number of frames processed.
func (a *AGC) EnvelopeFrames() int {
	return a.envelopeFrames
}

func percentile(samples []float64, p float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	s := append([]float64(nil), samples...)
	sort.Float64s(s)
	idx := int(p * float64(len(s)-1))
	return s[idx]
}
