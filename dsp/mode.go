// Package dsp implements the shared symbol-synchronous front end
// (spec.md §4.1): decimating sample ingest, Hann-windowed FFT, and
// the per-mode magnitude spectrum. Adapted from the teacher's
// audio_extensions/ft8.Monitor and audio_extensions/morse.SpectrumAnalyzer,
// both of which window a float64 buffer and call
// gonum.org/v1/gonum/dsp/fourier.FFT — narrowcore keeps that shape but
// generalizes it to the fixed per-mode bin windows spec.md §4.1 defines
// instead of FT8/FT4's tone-table-driven bin ranges.
package dsp

// Mode identifies which of the four decode paths owns the current
// front-end configuration.
type Mode int

const (
	ModeOOK48 Mode = iota
	ModeJT4G
	ModePI4
	ModeMorse
)

func (m Mode) String() string {
	switch m {
	case ModeOOK48:
		return "OOK48"
	case ModeJT4G:
		return "JT4G"
	case ModePI4:
		return "PI4"
	case ModeMorse:
		return "Morse"
	default:
		return "Unknown"
	}
}

// Params is the fixed, wire-observable per-mode front-end
// configuration from spec.md §4.1's parameter table.
type Params struct {
	Mode        Mode
	SampleRate  int // Hz
	NumSamples  int // samples per FFT period (pre-decimation it is NumSamples*Oversample)
	NumBins     int // width of the magnitude window
	StartBin    int // first FFT bin copied into the magnitude window
	Tone0       int // bin index of tone 0, relative to StartBin's FFT
	Spacing     int // bin spacing between FSK tones (0 for OOK48/Morse)
	Tolerance   int // bin search tolerance around a tone
	CacheSize   int // tone cache depth (symbols per frame)
	Oversample  int // ADC oversample factor averaged per output sample
	ADCMidscale int // ADC bias point subtracted during decimation
}

// OOK48Params is the OOK48 front-end configuration (spec.md §4.1 table).
var OOK48Params = Params{
	Mode: ModeOOK48, SampleRate: 9216, NumSamples: 1024, NumBins: 68,
	StartBin: 55, Tone0: 34, Spacing: 0, Tolerance: 11, CacheSize: 8,
	Oversample: 8, ADCMidscale: 2048,
}

// JT4GParams is the JT4G front-end configuration.
var JT4GParams = Params{
	Mode: ModeJT4G, SampleRate: 4480, NumSamples: 1024, NumBins: 343,
	StartBin: 114, Tone0: 69, Spacing: 72, Tolerance: 22, CacheSize: 240,
	Oversample: 8, ADCMidscale: 2048,
}

// PI4Params is the PI4 front-end configuration.
var PI4Params = Params{
	Mode: ModePI4, SampleRate: 6144, NumSamples: 1024, NumBins: 167,
	StartBin: 83, Tone0: 31, Spacing: 39, Tolerance: 12, CacheSize: 180,
	Oversample: 8, ADCMidscale: 2048,
}

// MorseParams is the Morse front-end configuration.
var MorseParams = Params{
	Mode: ModeMorse, SampleRate: 9216, NumSamples: 256, NumBins: 128,
	StartBin: 0, Tone0: 22, Spacing: 0, Tolerance: 3, CacheSize: 0,
	Oversample: 8, ADCMidscale: 2048,
}

// ParamsFor returns the fixed configuration for a mode.
func ParamsFor(m Mode) Params {
	switch m {
	case ModeOOK48:
		return OOK48Params
	case ModeJT4G:
		return JT4GParams
	case ModePI4:
		return PI4Params
	case ModeMorse:
		return MorseParams
	default:
		return Params{}
	}
}

// HalfRateCacheSize is the tone-cache depth used by OOK48 when
// half_rate is enabled (spec.md §3, "Tone Cache").
const HalfRateCacheSize = 16
