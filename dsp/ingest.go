package dsp

import "math"

// Ingest decimates oversampled ADC frames into real-valued sample
// frames and tracks an EMA'd audio level metric (spec.md §4.1).
//
// Grounded on the teacher's audio_extensions/morse.MorseDecoder.processSamples,
// which normalizes int16 PCM one sample at a time; narrowcore instead
// averages blocks of Oversample raw ADC readings the way spec.md §4.1
// specifies, since the front end here is a raw superheterodyne ADC
// feed rather than pre-decimated PCM.
type Ingest struct {
	params Params
	level  float64 // EMA'd audio level, 0..100
}

// NewIngest creates an Ingest for the given mode parameters.
func NewIngest(p Params) *Ingest {
	return &Ingest{params: p}
}

// audioLevelAlpha is the EMA smoothing factor from spec.md §4.1.
const audioLevelAlpha = 0.4

// Decimate averages consecutive blocks of Oversample raw ADC samples,
// subtracts ADCMidscale, and updates the audio level metric from the
// frame's peak absolute decimated sample.
//
// adc must hold exactly NumSamples*Oversample raw readings; a short
// frame is rejected (spec.md §4.1, "if the ingest frame arrives
// partially, the engine skips that frame without advancing the cache
// pointer") so the caller can skip the frame instead of decimating
// garbage.
func (in *Ingest) Decimate(adc []uint16) ([]float64, bool) {
	want := in.params.NumSamples * in.params.Oversample
	if len(adc) != want {
		return nil, false
	}

	out := make([]float64, in.params.NumSamples)
	peak := 0.0
	for i := 0; i < in.params.NumSamples; i++ {
		sum := 0.0
		base := i * in.params.Oversample
		for j := 0; j < in.params.Oversample; j++ {
			sum += float64(adc[base+j])
		}
		sample := sum/float64(in.params.Oversample) - float64(in.params.ADCMidscale)
		out[i] = sample
		if a := math.Abs(sample); a > peak {
			peak = a
		}
	}

	newLevel := clip(peak/float64(in.params.ADCMidscale)*100.0, 0, 100)
	in.level = audioLevelAlpha*newLevel + (1-audioLevelAlpha)*in.level

	return out, true
}

// Level returns the current EMA'd audio level, 0..100.
func (in *Ingest) Level() float64 {
	return in.level
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
