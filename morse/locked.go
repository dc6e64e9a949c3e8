package morse

const (
	dotMaxUnits      = 1.5
	wordGapThreshold = 5.5
	charGapThreshold = 3.0
	unitEMAMark      = 0.12
	unitEMASpace     = 0.06
	maxSymbolLen     = 7
	lostSilenceUnits = 60.0
	clampMin         = 0.60
	clampMax         = 1.55
)

// Locked tracks dot/dash timing once the decoder has acquired a WPM
// lock (spec.md §4.7, "Locked (tracking)").
type Locked struct {
	unitEst float64
	unitMin float64
	unitMax float64
	symbol  []byte
}

// NewLocked creates a Locked tracker at the given WPM.
func NewLocked(wpm float64) *Locked {
	dit := ditFrames(wpm)
	return &Locked{
		unitEst: dit,
		unitMin: clampMin * dit,
		unitMax: clampMax * dit,
	}
}

// UnitEst returns the current unit-length estimate in frames.
func (l *Locked) UnitEst() float64 {
	return l.unitEst
}

// Feed processes one completed run and returns any events it
// produces (a space run can emit both a character and a word
// separator).
func (l *Locked) Feed(r Run) (events []Event, lost bool) {
	units := float64(r.Length) / l.unitEst

	if r.Mark {
		target := 1.0
		if units > dotMaxUnits {
			if len(l.symbol) < maxSymbolLen {
				l.symbol = append(l.symbol, '-')
			}
			target = 3.0
		} else if len(l.symbol) < maxSymbolLen {
			l.symbol = append(l.symbol, '.')
		}
		return nil, l.updateUnit(float64(r.Length)/target, unitEMAMark)
	}

	switch {
	case units >= wordGapThreshold:
		events = l.flushSymbol()
		events = append(events, Event{Kind: EventWordSep})
		return events, false
	case units >= charGapThreshold:
		return l.flushSymbol(), false
	default:
		return nil, l.updateUnit(float64(r.Length)/1.0, unitEMASpace)
	}
}

func (l *Locked) flushSymbol() []Event {
	if len(l.symbol) == 0 {
		return nil
	}
	ch := lookupChar(string(l.symbol))
	l.symbol = l.symbol[:0]
	return []Event{{Kind: EventChar, Char: ch}}
}

// updateUnit applies the EMA toward target and reports whether the
// result left [unitMin,unitMax] (a Lost condition).
func (l *Locked) updateUnit(target, alpha float64) bool {
	next := (1-alpha)*l.unitEst + alpha*target
	if next < l.unitMin || next > l.unitMax {
		return true
	}
	l.unitEst = next
	return false
}
