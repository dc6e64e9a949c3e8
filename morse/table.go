// Package morse implements the streaming Morse decoder: AGC,
// Schmitt-triggered mark/space slicing, run tracking, and the
// Acquire/Locked WPM-tracking state machine (spec.md §4.7).
//
// Grounded on the teacher's audio_extensions/morse/decoder.go for the
// overall AGC-then-threshold-then-state-machine shape, though
// spec.md's percentile noise floor, morphological run merging, and
// histogram-scored WPM estimator replace the teacher's simpler
// peak/noise key-state approach (see DESIGN.md).
package morse

// table maps a dot/dash pattern to its character (spec.md §4.7,
// "the standard A-Z, 0-9, and .,?-/+= set").
var table = map[string]byte{
	".-": 'A', "-...": 'B', "-.-.": 'C', "-..": 'D', ".": 'E',
	"..-.": 'F', "--.": 'G', "....": 'H', "..": 'I', ".---": 'J',
	"-.-": 'K', ".-..": 'L', "--": 'M', "-.": 'N', "---": 'O',
	".--.": 'P', "--.-": 'Q', ".-.": 'R', "...": 'S', "-": 'T',
	"..-": 'U', "...-": 'V', ".--": 'W', "-..-": 'X', "-.--": 'Y',
	"--..":  'Z',
	"-----": '0', ".----": '1', "..---": '2', "...--": '3', "....-": '4',
	".....": '5', "-....": '6', "--...": '7', "---..": '8', "----.": '9',
	".-.-.-": '.', "--..--": ',', "..--..": '?', "-....-": '-',
	"-..-.": '/', ".-.-.": '+', "-...-": '=',
}

// lookupChar returns the symbol for a dot/dash string, or '?' if
// unrecognised (spec.md §4.7, "unknown → ?").
func lookupChar(symbol string) byte {
	if ch, ok := table[symbol]; ok {
		return ch
	}
	return '?'
}
