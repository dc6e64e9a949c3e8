package beacon

import (
	"github.com/kf0rbx/narrowcore/fano"
)

// Outcome tags a beacon decode attempt's result (spec.md §9: "sum
// types over error codes" — beacon results are Message | NoSync |
// FanoTimeout; sync search itself cannot fail, so there is no NoSync
// outcome: a decode that does not converge at the chosen sync position
// is reported as FanoTimeout).
type Outcome int

const (
	Message Outcome = iota
	FanoTimeout
)

// Decode is a successful or failed beacon decode. SyncMismatch and
// FanoCycles are published on every attempt, success or failure, as
// the diagnostic the NoSync/FanoTimeout outcome otherwise has no
// shape for.
type Decode struct {
	Outcome      Outcome
	Text         string
	SNRdB        float64
	SyncMismatch int
	FanoCycles   int
}

// Decoder runs the full JT4/PI4 pipeline over one minute's worth of
// accumulated symbols (spec.md §4.5).
type Decoder struct {
	tbl  ModeTable
	fano *fano.Decoder
	pi4  bool
}

// NewJT4Decoder creates a JT4G beacon decoder.
func NewJT4Decoder() *Decoder {
	return &Decoder{tbl: JT4Table, fano: fano.NewDecoder()}
}

// NewPI4Decoder creates a PI4 beacon decoder.
func NewPI4Decoder() *Decoder {
	return &Decoder{tbl: PI4Table, fano: fano.NewDecoder(), pi4: true}
}

// Decode runs sync search, bit extraction, de-interleaving, Fano
// decode, and unpacking over a minute's symbol buffer. snrdB is the
// best S/N observed among the minute's symbols, passed through from
// tone detection for the published result.
func (d *Decoder) Decode(symbols []Symbol, snrdB float64) Decode {
	start, mismatch := SyncSearchScored(symbols, d.tbl)
	bits := ExtractBits(symbols, start, d.tbl)
	deinterleaved := Deinterleave(bits, d.tbl)

	soft := fano.ExpandToSoft(deinterleaved)
	nbits := d.tbl.PayloadBits + fano.TailBits
	payload, ok := d.fano.Decode(soft, nbits)
	if !ok {
		return Decode{Outcome: FanoTimeout, SyncMismatch: mismatch, FanoCycles: d.fano.LastCycles}
	}

	dec := bitsToBytes(payload)
	var text string
	if d.pi4 {
		text = UnpackPI4(dec)
	} else {
		text = UnpackJT4(dec)
	}
	return Decode{
		Outcome:      Message,
		Text:         text,
		SNRdB:        snrdB,
		SyncMismatch: mismatch,
		FanoCycles:   d.fano.LastCycles,
	}
}

func bitsToBytes(bits []byte) []byte {
	out := make([]byte, len(bits)/8)
	for i := range out {
		var b byte
		for k := 0; k < 8; k++ {
			b = b<<1 | bits[i*8+k]
		}
		out[i] = b
	}
	return out
}

func bytesToBits(bs []byte) []byte {
	out := make([]byte, len(bs)*8)
	for i, b := range bs {
		for k := 0; k < 8; k++ {
			out[i*8+k] = (b >> uint(7-k)) & 1
		}
	}
	return out
}
