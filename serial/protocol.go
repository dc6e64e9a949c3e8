package serial

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-version"
)

// FormatRDY builds the boot-complete telemetry line (spec.md §6).
func FormatRDY(fwVersion string, morseWPM float64) string {
	return fmt.Sprintf("RDY:fw=%s;morsewpm=%g\n", fwVersion, morseWPM)
}

// FormatSTA builds the 1 Hz status line.
func FormatSTA(hh, mm, ss int, lat, lon float64, locator string, txActive bool, audioLevel float64) string {
	tx := 0
	if txActive {
		tx = 1
	}
	return fmt.Sprintf("STA:%02d:%02d:%02d,%.5f,%.5f,%s,%d,%.1f\n", hh, mm, ss, lat, lon, locator, tx, audioLevel)
}

// FormatMSG builds an OOK48 decode line. ch 0x0D renders as <CR>, 0x7E
// as <UNK>, else the literal character.
func FormatMSG(ch byte) string {
	return "MSG:" + tokenize(ch) + "\n"
}

// FormatTX builds a TX-echo line.
func FormatTX(ch byte) string {
	return "TX:" + tokenize(ch) + "\n"
}

func tokenize(ch byte) string {
	switch ch {
	case '\r':
		return "<CR>"
	case 0x7E:
		return "<UNK>"
	default:
		return string(ch)
	}
}

// FormatERR builds an error line, used for both the legacy
// single-character form and a long reason string.
func FormatERR(reason string) string {
	return "ERR:" + reason + "\n"
}

// FormatSFT builds the 8 comma-separated soft magnitudes line.
func FormatSFT(soft [8]float64) string {
	parts := make([]string, 8)
	for i, v := range soft {
		parts[i] = strconv.FormatFloat(v, 'f', 3, 64)
	}
	return "SFT:" + strings.Join(parts, ",") + "\n"
}

// FormatWF builds a waterfall row line of N comma-separated 8-bit values.
func FormatWF(row []byte) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = strconv.Itoa(int(v))
	}
	return "WF:" + strings.Join(parts, ",") + "\n"
}

// FormatJT builds a JT4 decode line.
func FormatJT(hh, mm int, snrDB float64, message string) string {
	return fmt.Sprintf("JT:%02d:%02d,%.1f,%s\n", hh, mm, snrDB, message)
}

// FormatPI builds a PI4 decode line.
func FormatPI(hh, mm int, snrDB float64, message string) string {
	return fmt.Sprintf("PI:%02d:%02d,%.1f,%s\n", hh, mm, snrDB, message)
}

// FormatMCH builds a Morse character line. wordSep renders as <SP>
// whatever ch is; otherwise '?' renders as <UNK>.
func FormatMCH(ch byte, wordSep bool) string {
	switch {
	case wordSep:
		return "MCH:<SP>\n"
	case ch == '?':
		return "MCH:<UNK>\n"
	default:
		return "MCH:" + string(ch) + "\n"
	}
}

// FormatMLS builds the Morse lock-state line: a float WPM, or LOST.
func FormatMLS(wpm float64, lost bool) string {
	if lost {
		return "MLS:LOST\n"
	}
	return fmt.Sprintf("MLS:%.1f\n", wpm)
}

// MarkKind is a waterfall annotation (spec.md §6, MRK:).
type MarkKind string

const (
	MarkRed  MarkKind = "RED"
	MarkCyan MarkKind = "CYN"
	MarkTX   MarkKind = "TX"
	MarkRX   MarkKind = "RX"
)

// FormatMRK builds a waterfall-annotation line.
func FormatMRK(k MarkKind) string {
	return "MRK:" + string(k) + "\n"
}

// FormatACK builds a command-accepted echo line.
func FormatACK(cmd string) string {
	return "ACK:" + cmd + "\n"
}

// ParseRDYVersion extracts and validates the firmware version carried
// in a RDY: line's fw= token, rejecting malformed semver so a garbled
// boot line can't silently wedge version-gated host behaviour.
func ParseRDYVersion(line string) (*version.Version, error) {
	const prefix = "fw="
	i := strings.Index(line, prefix)
	if i < 0 {
		return nil, fmt.Errorf("serial: no fw= token in %q", line)
	}
	rest := line[i+len(prefix):]
	end := strings.IndexAny(rest, ";\n")
	if end >= 0 {
		rest = rest[:end]
	}
	return version.NewVersion(strings.TrimSpace(rest))
}

// CommandKind identifies the verb of an inbound SET:/CMD: line.
type CommandKind int

const (
	CmdUnknown CommandKind = iota
	CmdSetLocLen
	CmdSetDecMode
	CmdSetTxAdvance
	CmdSetRxRetard
	CmdSetHalfRate
	CmdSetMorseWPM
	CmdSetConfidence
	CmdSetApp
	CmdSetMsg
	CmdTX
	CmdRX
	CmdTXMsg
	CmdDashes
	CmdMorseTX
	CmdIdent
	CmdClear
	CmdReboot
)

// Command is a parsed inbound line. Fields not used by Kind are zero.
type Command struct {
	Kind  CommandKind
	Int   int
	Float float64
	Bool  bool
	Slot  int
	Text  string
}

// ParseCommand parses one SET:/CMD: line, validating the value ranges
// spec.md §6 assigns to each setting. The line must not include its
// trailing newline.
func ParseCommand(line string) (Command, error) {
	switch {
	case strings.HasPrefix(line, "SET:"):
		return parseSet(strings.TrimPrefix(line, "SET:"))
	case strings.HasPrefix(line, "CMD:"):
		return parseCmd(strings.TrimPrefix(line, "CMD:"))
	default:
		return Command{}, fmt.Errorf("serial: unrecognised line %q", line)
	}
}

func parseSet(body string) (Command, error) {
	key, rest, ok := strings.Cut(body, ":")
	if !ok {
		return Command{}, fmt.Errorf("serial: malformed SET: %q", body)
	}
	switch key {
	case "loclen":
		n, err := strconv.Atoi(rest)
		if err != nil || (n != 6 && n != 8 && n != 10) {
			return Command{}, fmt.Errorf("serial: loclen must be 6, 8 or 10, got %q", rest)
		}
		return Command{Kind: CmdSetLocLen, Int: n}, nil
	case "decmode":
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 || n > 2 {
			return Command{}, fmt.Errorf("serial: decmode must be 0-2, got %q", rest)
		}
		return Command{Kind: CmdSetDecMode, Int: n}, nil
	case "txadv":
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 || n > 999 {
			return Command{}, fmt.Errorf("serial: txadv must be 0-999, got %q", rest)
		}
		return Command{Kind: CmdSetTxAdvance, Int: n}, nil
	case "rxret":
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 || n > 999 {
			return Command{}, fmt.Errorf("serial: rxret must be 0-999, got %q", rest)
		}
		return Command{Kind: CmdSetRxRetard, Int: n}, nil
	case "halfrate":
		n, err := strconv.Atoi(rest)
		if err != nil || (n != 0 && n != 1) {
			return Command{}, fmt.Errorf("serial: halfrate must be 0 or 1, got %q", rest)
		}
		return Command{Kind: CmdSetHalfRate, Bool: n == 1}, nil
	case "morsewpm":
		f, err := strconv.ParseFloat(rest, 64)
		if err != nil || f < 5 || f > 40 {
			return Command{}, fmt.Errorf("serial: morsewpm must be 5-40, got %q", rest)
		}
		return Command{Kind: CmdSetMorseWPM, Float: f}, nil
	case "confidence":
		f, err := strconv.ParseFloat(rest, 64)
		if err != nil || f < 0.0 || f > 1.0 {
			return Command{}, fmt.Errorf("serial: confidence must be 0.0-1.0, got %q", rest)
		}
		return Command{Kind: CmdSetConfidence, Float: f}, nil
	case "app":
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 || n > 3 {
			return Command{}, fmt.Errorf("serial: app must be 0-3, got %q", rest)
		}
		return Command{Kind: CmdSetApp, Int: n}, nil
	case "msg":
		slotStr, text, ok := strings.Cut(rest, ":")
		if !ok {
			return Command{}, fmt.Errorf("serial: malformed SET:msg %q", rest)
		}
		slot, err := strconv.Atoi(slotStr)
		if err != nil || slot < 0 || slot > 9 {
			return Command{}, fmt.Errorf("serial: msg slot must be 0-9, got %q", slotStr)
		}
		return Command{Kind: CmdSetMsg, Slot: slot, Text: text}, nil
	default:
		return Command{}, fmt.Errorf("serial: unknown SET key %q", key)
	}
}

func parseCmd(body string) (Command, error) {
	verb, rest, hasArg := strings.Cut(body, ":")
	switch verb {
	case "tx":
		return Command{Kind: CmdTX}, nil
	case "rx":
		return Command{Kind: CmdRX}, nil
	case "txmsg":
		if !hasArg {
			return Command{}, fmt.Errorf("serial: txmsg requires a slot")
		}
		slot, err := strconv.Atoi(rest)
		if err != nil || slot < 0 || slot > 9 {
			return Command{}, fmt.Errorf("serial: txmsg slot must be 0-9, got %q", rest)
		}
		return Command{Kind: CmdTXMsg, Slot: slot}, nil
	case "dashes":
		return Command{Kind: CmdDashes}, nil
	case "morsetx":
		if !hasArg {
			return Command{}, fmt.Errorf("serial: morsetx requires text")
		}
		return Command{Kind: CmdMorseTX, Text: rest}, nil
	case "ident":
		return Command{Kind: CmdIdent}, nil
	case "clear":
		return Command{Kind: CmdClear}, nil
	case "reboot":
		return Command{Kind: CmdReboot}, nil
	default:
		return Command{}, fmt.Errorf("serial: unknown CMD verb %q", verb)
	}
}
