package morse

import "math"

const (
	maxRingRuns      = 400
	runsPerEstimate  = 6
	minMarkRunsToTry = 20
	lockConfidence   = 0.65
	wpmMin           = 5.0
	wpmMax           = 40.0
	wpmStep          = 0.5
	wordGapUnits     = 5.5
)

// ditFrames is the PARIS-standard dit duration in frames at the given
// WPM (spec.md §4.7: uf = round(1.2/wpm * frame_rate)).
func ditFrames(wpm float64) float64 {
	return math.Round(1.2 / wpm * FrameRate)
}

// Acquire buffers runs in a ring and periodically attempts a WPM lock
// (spec.md §4.7, "Acquire").
type Acquire struct {
	ring          []Run
	sinceEstimate int
}

// NewAcquire creates an empty Acquire state.
func NewAcquire() *Acquire {
	return &Acquire{ring: make([]Run, 0, maxRingRuns)}
}

// Feed appends a completed run to the ring, trimming to maxRingRuns,
// and every runsPerEstimate runs attempts a lock. It returns the
// locked WPM and the buffered runs to replay if a lock is achieved.
func (a *Acquire) Feed(r Run) (wpm float64, replay []Run, locked bool) {
	a.ring = append(a.ring, r)
	if len(a.ring) > maxRingRuns {
		a.ring = a.ring[len(a.ring)-maxRingRuns:]
	}
	a.sinceEstimate++
	if a.sinceEstimate < runsPerEstimate {
		return 0, nil, false
	}
	a.sinceEstimate = 0

	markCount := 0
	for _, run := range a.ring {
		if run.Mark {
			markCount++
		}
	}
	if markCount < minMarkRunsToTry {
		return 0, nil, false
	}

	cleaned := morphologicalFilter(a.ring, estimateMidWPM(a.ring))
	bestWPM, bestConfidence := estimateWPM(cleaned)
	if bestConfidence < lockConfidence {
		return 0, nil, false
	}

	replay = append([]Run(nil), a.ring...)
	return bestWPM, replay, true
}

// estimateMidWPM gives the morphological filter a rough working WPM
// before the full scored estimate runs, from the mean mark-run
// length.
func estimateMidWPM(runs []Run) float64 {
	var lengths []int
	for _, r := range runs {
		if r.Mark {
			lengths = append(lengths, r.Length)
		}
	}
	if len(lengths) == 0 {
		return 20
	}
	sum := 0
	for _, l := range lengths {
		sum += l
	}
	avg := float64(sum) / float64(len(lengths))
	if avg <= 0 {
		return 20
	}
	wpm := 1.2 / (avg / FrameRate)
	if wpm < wpmMin {
		wpm = wpmMin
	}
	if wpm > wpmMax {
		wpm = wpmMax
	}
	return wpm
}

// morphologicalFilter iteratively merges runs shorter than min_run
// into the larger adjacent neighbour, then re-merges same-state
// adjacent runs, until stable (spec.md §4.7).
func morphologicalFilter(runs []Run, midWPM float64) []Run {
	minRun := int(math.Round(0.38 * ditFrames(midWPM)))
	if minRun < 1 {
		minRun = 1
	}

	cur := append([]Run(nil), runs...)
	for {
		changed := false

		for i := 0; i < len(cur); i++ {
			if cur[i].Length >= minRun || len(cur) <= 1 {
				continue
			}
			left, right := i-1, i+1
			switch {
			case left >= 0 && right < len(cur):
				if cur[left].Length >= cur[right].Length {
					cur[left].Length += cur[i].Length
					cur = append(cur[:i], cur[i+1:]...)
				} else {
					cur[right].Length += cur[i].Length
					cur = append(cur[:i], cur[i+1:]...)
				}
			case left >= 0:
				cur[left].Length += cur[i].Length
				cur = append(cur[:i], cur[i+1:]...)
			case right < len(cur):
				cur[right].Length += cur[i].Length
				cur = append(cur[:i], cur[i+1:]...)
			default:
				continue
			}
			changed = true
			break
		}

		if !changed {
			merged := mergeAdjacentSameState(cur)
			if len(merged) == len(cur) {
				cur = merged
				break
			}
			cur = merged
		}
	}
	return cur
}

func mergeAdjacentSameState(runs []Run) []Run {
	if len(runs) == 0 {
		return runs
	}
	out := make([]Run, 0, len(runs))
	out = append(out, runs[0])
	for _, r := range runs[1:] {
		last := &out[len(out)-1]
		if last.Mark == r.Mark {
			last.Length += r.Length
		} else {
			out = append(out, r)
		}
	}
	return out
}

// estimateWPM scores every candidate WPM in [wpmMin,wpmMax] and
// returns the highest-scoring candidate's WPM and confidence (spec.md
// §4.7, "WPM estimator").
func estimateWPM(runs []Run) (bestWPM, bestConfidence float64) {
	bestScore := math.Inf(-1)

	for wpm := wpmMin; wpm <= wpmMax; wpm += wpmStep {
		uf := ditFrames(wpm)
		if uf <= 0 {
			continue
		}

		var penalty, totalWeight float64
		var subWeight, allWeight float64
		markCount, hits := 0, 0

		for _, r := range runs {
			units := float64(r.Length) / uf
			weight := 1.0
			var errv float64

			if r.Mark {
				markCount++
				errv = math.Min(math.Abs(units-1), math.Abs(units-3))
			} else if units >= 6 {
				errv = math.Abs(units - 7)
				weight = 0.15
			} else {
				errv = math.Min(math.Abs(units-1), math.Abs(units-3))
				weight = 0.30
			}

			effLen := float64(r.Length)
			if effLen > 10*uf {
				effLen = 10 * uf
			}
			w := weight * effLen
			allWeight += w

			if float64(r.Length) < 0.5*uf {
				subWeight += w
				continue
			}
			penalty += errv * w
			totalWeight += w

			if r.Mark {
				d1 := math.Abs(float64(r.Length) - uf)
				d3 := math.Abs(float64(r.Length) - 3*uf)
				if d1 <= 0.35*uf || d3 <= 0.35*uf {
					hits++
				}
			}
		}

		if totalWeight == 0 || markCount == 0 || allWeight == 0 {
			continue
		}

		confidence := float64(hits) / float64(markCount)
		subFraction := subWeight / allWeight
		score := -penalty/totalWeight + 0.40*confidence - 1.5*subFraction

		if score > bestScore {
			bestScore = score
			bestWPM = wpm
			bestConfidence = confidence
		}
	}
	return bestWPM, bestConfidence
}
