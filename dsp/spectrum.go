package dsp

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Spectrum applies a Hann window and a real-to-complex FFT to a
// decimated sample frame, producing the mode's magnitude window
// (spec.md §4.1).
//
// Grounded on the teacher's audio_extensions/ft8.Monitor.fft and
// audio_extensions/morse.SpectrumAnalyzer.computeSpectrum, both of
// which build a gonum fourier.FFT of a fixed size once and reuse it
// every call.
type Spectrum struct {
	params Params
	window []float64
	fft    *fourier.FFT
	time   []float64
}

// NewSpectrum creates a Spectrum engine for the given mode parameters.
func NewSpectrum(p Params) *Spectrum {
	n := p.NumSamples
	window := make([]float64, n)
	for i := 0; i < n; i++ {
		// Hann window: 0.5*(1-cos(2*pi*i/(n-1))).
		window[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return &Spectrum{
		params: p,
		window: window,
		fft:    fourier.NewFFT(n),
		time:   make([]float64, n),
	}
}

// Magnitudes windows frame, runs the FFT, and returns the mode's
// NumBins-wide magnitude slice starting at StartBin.
func (s *Spectrum) Magnitudes(frame []float64) []float64 {
	for i, v := range frame {
		s.time[i] = v * s.window[i]
	}

	coeffs := s.fft.Coefficients(nil, s.time)

	mag := make([]float64, s.params.NumBins)
	for m := 0; m < s.params.NumBins; m++ {
		bin := s.params.StartBin + m
		if bin >= len(coeffs) {
			break
		}
		c := coeffs[bin]
		mag[m] = math.Hypot(real(c), imag(c))
	}
	return mag
}
