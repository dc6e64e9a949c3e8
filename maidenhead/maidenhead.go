// Package maidenhead validates and holds the station's Maidenhead grid
// locator, and substitutes it into OOK48 visual-message templates.
//
// Adapted from the teacher's root-level maidenhead.go (lat/lon
// conversion for a map display). narrowcore has no map to draw, so
// the coordinate math is dropped; what survives is the locator
// alphabet validation, generalized from the teacher's 4/6/8 lengths
// to the 6/8/10 lengths spec.md §6 exposes via SET:loclen.
package maidenhead

import "fmt"

// LocatorToken is the single-byte placeholder substituted for the
// current locator inside an OOK48 transmit message template (spec.md
// §4.3, "Visual-message expansion").
const LocatorToken byte = 0x86

// ValidLengths are the loclen choices accepted by SET:loclen (spec.md §6).
var ValidLengths = [3]int{6, 8, 10}

// Validate checks that locator has one of the accepted lengths and
// follows the alternating letter/digit Maidenhead alphabet:
//
//	AA00aa00aa  (field, square, subsquare, extended square, extended subsquare)
//
// Subsquare and extended-subsquare letters are accepted in either case.
func Validate(locator string) error {
	n := len(locator)
	ok := false
	for _, l := range ValidLengths {
		if n == l {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("maidenhead: invalid locator length %d (must be 6, 8 or 10)", n)
	}

	for i := 0; i < n; i++ {
		c := locator[i]
		switch {
		case i < 2:
			if c < 'A' || c > 'R' {
				return fmt.Errorf("maidenhead: field character %d out of range A-R", i)
			}
		case i < 4:
			if c < '0' || c > '9' {
				return fmt.Errorf("maidenhead: square character %d out of range 0-9", i)
			}
		case i < 6:
			if lc := c | 0x20; lc < 'a' || lc > 'x' {
				return fmt.Errorf("maidenhead: subsquare character %d out of range a-x (either case)", i)
			}
		case i < 8:
			if c < '0' || c > '9' {
				return fmt.Errorf("maidenhead: extended square character %d out of range 0-9", i)
			}
		default:
			if lc := c | 0x20; lc < 'a' || lc > 'x' {
				return fmt.Errorf("maidenhead: extended subsquare character %d out of range a-x (either case)", i)
			}
		}
	}
	return nil
}

// Station holds the currently configured locator exactly as it was
// set; it is not truncated or padded to the loclen setting.
type Station struct {
	locator string
}

// NewStation creates a Station, validating the initial locator.
func NewStation(locator string) (*Station, error) {
	if err := Validate(locator); err != nil {
		return nil, err
	}
	return &Station{locator: locator}, nil
}

// Set replaces the locator after validating it.
func (s *Station) Set(locator string) error {
	if err := Validate(locator); err != nil {
		return err
	}
	s.locator = locator
	return nil
}

// String returns the current locator.
func (s *Station) String() string {
	return s.locator
}

// ExpandTemplate replaces every LocatorToken byte in msg with the
// station's current locator string (spec.md §4.3).
func (s *Station) ExpandTemplate(msg []byte) []byte {
	out := make([]byte, 0, len(msg)+len(s.locator))
	for _, b := range msg {
		if b == LocatorToken {
			out = append(out, s.locator...)
			continue
		}
		out = append(out, b)
	}
	return out
}
