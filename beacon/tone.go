package beacon

import "math"

// Symbol is one decoded beacon tone slot (spec.md §4.5).
type Symbol struct {
	SyncBit byte
	DataBit byte
	SNRdB   float64
}

// DetectTone finds the strongest of four equally spaced tones within
// mags (a magnitude window covering the mode's tolerance band around
// tone0) and reports its sync/data bit pair and S/N (spec.md §4.5).
//
// mags must cover [tone0-tolerance, tone0+tolerance) relative to
// startBin; tone0Offset and spacing are given relative to that same
// window (i.e. already StartBin-adjusted).
func DetectTone(mags []float64, tone0Offset, spacing, tolerance int) Symbol {
	bestK, bestSN := 0, -math.MaxFloat64
	var bestSignal float64
	var bestNoiseN int

	for k := 0; k < 4; k++ {
		center := tone0Offset + k*spacing
		lo, hi := center-tolerance, center+tolerance
		if lo < 0 {
			lo = 0
		}
		if hi > len(mags) {
			hi = len(mags)
		}

		peak := 0.0
		for b := lo; b < hi; b++ {
			if mags[b] > peak {
				peak = mags[b]
			}
		}

		noiseSum, noiseN := 0.0, 0
		for _, edge := range []int{lo - 4, hi} {
			for b := edge; b < edge+4; b++ {
				if b >= 0 && b < len(mags) {
					noiseSum += mags[b]
					noiseN++
				}
			}
		}
		noise := 1e-9
		if noiseN > 0 {
			noise = noiseSum / float64(noiseN)
			if noise <= 0 {
				noise = 1e-9
			}
		}

		sn := peak / noise
		if sn > bestSN {
			bestSN = sn
			bestK = k
			bestSignal = peak
			bestNoiseN = noiseN
		}
	}
	_ = bestSignal

	// spec.md §4.5 step: "signal_noise_db = 10 log10(best_sn / sn_bins)",
	// sn_bins being the noise-sample count (4 bins on each side, 8 total).
	snBins := bestNoiseN
	if snBins == 0 {
		snBins = 1
	}
	snrDB := 10 * math.Log10(bestSN/float64(snBins))
	return Symbol{
		SyncBit: byte(bestK & 1),
		DataBit: byte(bestK >> 1),
		SNRdB:   snrDB,
	}
}
