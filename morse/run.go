package morse

// Run is a tagged (state, length) tuple extracted from the
// two-state Schmitt stream (spec.md §3, "Morse Run").
type Run struct {
	Mark   bool
	Length int
}

// RunTracker turns a per-frame mark/space stream into completed runs.
type RunTracker struct {
	have    bool
	current Run
}

// NewRunTracker creates an empty tracker.
func NewRunTracker() *RunTracker {
	return &RunTracker{}
}

// Feed folds in one valid Schmitt sample and returns a completed run
// whenever the state changes.
func (r *RunTracker) Feed(mark bool) (Run, bool) {
	if !r.have {
		r.have = true
		r.current = Run{Mark: mark, Length: 1}
		return Run{}, false
	}

	if mark == r.current.Mark {
		r.current.Length++
		return Run{}, false
	}

	done := r.current
	r.current = Run{Mark: mark, Length: 1}
	return done, true
}
