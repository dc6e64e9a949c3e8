// Package audiosource abstracts the raw ADC feed behind a single
// interface, the way the teacher splits its audio acquisition across
// separate client binaries (clients/hpsdr, clients/iq-recorder,
// clients/rtl_sdr, clients/ubersdr-audio) that all feed the same
// decoder pipeline. narrowcore has one binary instead of several, so
// the split becomes an interface rather than separate mains: swap the
// Source passed to the engine instead of swapping binaries.
package audiosource

import "context"

// Source yields consecutive raw ADC frames. A frame has exactly
// frameLen samples (NumSamples*Oversample for the active mode); Next
// returns ok=false if a frame could not be produced in full (dropped
// or a short read at EOF), which the caller must skip rather than
// decimate (spec.md §4.1).
type Source interface {
	Next(ctx context.Context, frameLen int) (frame []uint16, ok bool, err error)
}

// Silence is a Source that always yields a midscale-flat frame. Useful
// as the default wiring point before real hardware is attached.
type Silence struct {
	Midscale uint16
}

// Next implements Source.
func (s Silence) Next(ctx context.Context, frameLen int) ([]uint16, bool, error) {
	mid := s.Midscale
	if mid == 0 {
		mid = 2048
	}
	frame := make([]uint16, frameLen)
	for i := range frame {
		frame[i] = mid
	}
	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	default:
	}
	return frame, true, nil
}
