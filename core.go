package main

import (
	"context"
	"io"
	"time"

	"github.com/kf0rbx/narrowcore/beacon"
	"github.com/kf0rbx/narrowcore/dispatch"
	"github.com/kf0rbx/narrowcore/dsp"
	"github.com/kf0rbx/narrowcore/internal/audiosource"
	"github.com/kf0rbx/narrowcore/internal/corelog"
	"github.com/kf0rbx/narrowcore/maidenhead"
	"github.com/kf0rbx/narrowcore/morse"
	"github.com/kf0rbx/narrowcore/ook48"
	"github.com/kf0rbx/narrowcore/serial"
	"github.com/kf0rbx/narrowcore/tonecache"

	"golang.org/x/sync/errgroup"
)

// Engine wires the DSP context (sample ingest -> spectrum -> tone
// cache -> per-mode decode) to the dispatch context (bounded queue ->
// serial line protocol) across the two goroutines spec.md §5
// describes as separate execution contexts communicating only
// through the dispatch queue.
type Engine struct {
	settings *serial.Store
	queue    *dispatch.Queue
	src      audiosource.Source
	log      *corelog.Logger

	station *maidenhead.Station

	cache *tonecache.Cache
	pps   *tonecache.PPSMachine

	ook48Dec    *ook48.Decoder
	ook48HalfRt bool
	ook48Conf   float64
	ook48Mode   ook48.DecodeMode
	ook48Enc    *ook48.Encoder
	jt4Dec      *beacon.Decoder
	pi4Dec      *beacon.Decoder
	morseDec    *morse.Decoder
}

// NewEngine builds an Engine starting in OOK48 mode with default
// settings. src supplies raw ADC frames; swap it for a real hardware
// source without touching the decode pipeline.
func NewEngine(settings *serial.Store, src audiosource.Source) *Engine {
	snap := settings.Snapshot()
	params := dsp.ParamsFor(dsp.Mode(snap.App))
	cache := tonecache.NewCache(params.NumBins, params.CacheSize)

	return &Engine{
		settings: settings,
		queue:    dispatch.NewQueue(64),
		src:      src,
		log:      corelog.New("Engine"),
		cache:    cache,
		pps:      tonecache.NewPPSMachine(cache),
		morseDec: morse.NewDecoder(),
	}
}

// Run drives the DSP context and the dispatch context until ctx is
// cancelled. out receives the formatted serial telemetry lines.
func (e *Engine) Run(ctx context.Context, out io.Writer) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return e.runDSP(gctx) })
	g.Go(func() error { return e.runDispatch(gctx, out) })

	return g.Wait()
}

// runDSP pulls ADC frames, decimates and windows them, and routes the
// resulting spectrum through the active mode's decode path (spec.md
// §4.1-§4.7).
func (e *Engine) runDSP(ctx context.Context) error {
	var mode dsp.Mode
	var params dsp.Params
	var ingest *dsp.Ingest
	var spectrum *dsp.Spectrum
	var halfRate bool

	reconfigure := func(m dsp.Mode, half bool) {
		mode = m
		halfRate = half
		params = dsp.ParamsFor(m)
		ingest = dsp.NewIngest(params)
		spectrum = dsp.NewSpectrum(params)
		e.cache = tonecache.NewCache(params.NumBins, cacheSizeFor(m, params, half))
		e.pps = tonecache.NewPPSMachine(e.cache)
	}
	initSnap := e.settings.Snapshot()
	reconfigure(dsp.Mode(initSnap.App), initSnap.HalfRate)

	// The 1PPS edge is delivered on this same goroutine so the PPS
	// machine it drives (tonecache.PPSMachine) is only ever touched
	// from the DSP context (spec.md §3, "Ownership"). A real GPS
	// discipline source would replace this ticker with an edge
	// interrupt fed through the same non-blocking select.
	ppsTicker := time.NewTicker(time.Second)
	defer ppsTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		snap := e.settings.Snapshot()
		if dsp.Mode(snap.App) != mode || snap.HalfRate != halfRate {
			reconfigure(dsp.Mode(snap.App), snap.HalfRate)
		}

		select {
		case t := <-ppsTicker.C:
			e.pps.Configure(
				time.Duration(snap.RxRetardMs)*time.Millisecond,
				time.Duration(snap.TxAdvanceMs)*time.Millisecond,
				snap.HalfRate,
			)
			e.pps.PPSEdge(t)
		default:
		}

		adc, ok, err := e.src.Next(ctx, params.NumSamples*params.Oversample)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		samples, ok := ingest.Decimate(adc)
		if !ok {
			continue
		}
		mags := spectrum.Magnitudes(samples)
		now := time.Now()
		e.pps.Tick(now)

		switch mode {
		case dsp.ModeMorse:
			e.feedMorse(ctx, mags, params)
		default:
			e.feedFramed(ctx, mags, now, mode, params, snap)
		}
	}
}

func (e *Engine) feedMorse(ctx context.Context, mags []float64, params dsp.Params) {
	tone := mags[params.Tone0]
	for _, ev := range e.morseDec.Feed(tone) {
		switch ev.Kind {
		case morse.EventChar:
			_ = e.queue.Push(ctx, dispatch.TagMorseMessage, ev.Char)
		case morse.EventWordSep:
			_ = e.queue.Push(ctx, dispatch.TagMorseMessage, byte(0))
		case morse.EventLocked:
			_ = e.queue.Push(ctx, dispatch.TagMorseLocked, ev.WPM)
		case morse.EventLost:
			_ = e.queue.Push(ctx, dispatch.TagMorseLost, nil)
		}
	}
}

func (e *Engine) feedFramed(ctx context.Context, mags []float64, now time.Time, mode dsp.Mode, params dsp.Params, snap serial.Settings) {
	if !e.pps.SpectrumReady(now, mags) {
		return
	}
	defer e.pps.AckFrame()

	switch mode {
	case dsp.ModeOOK48:
		e.decodeOOK48(ctx, params, snap)
	case dsp.ModeJT4G:
		e.decodeBeacon(ctx, params, false, now)
	case dsp.ModePI4:
		e.decodeBeacon(ctx, params, true, now)
	}
}

func (e *Engine) decodeOOK48(ctx context.Context, params dsp.Params, snap serial.Settings) {
	mode := ook48.DecodeMode(snap.DecodeMode)
	if e.ook48Dec == nil || e.ook48HalfRt != snap.HalfRate || e.ook48Conf != snap.ConfidenceThreshold || e.ook48Mode != mode {
		e.ook48Dec = ook48.NewDecoder(mode, snap.HalfRate, snap.ConfidenceThreshold)
		e.ook48HalfRt = snap.HalfRate
		e.ook48Conf = snap.ConfidenceThreshold
		e.ook48Mode = mode
	}

	slots := make([][]float64, e.cache.CacheSize())
	for i := range slots {
		slots[i] = toneWindow(e.cache.Column(i), params.Tone0, params.Tolerance)
	}

	res := e.ook48Dec.Decode(slots)
	_ = e.queue.Push(ctx, dispatch.TagSFTMessage, res.Soft)
	if res.Kind == ook48.Decoded {
		_ = e.queue.Push(ctx, dispatch.TagMessage, res.Char)
	}
}

// beaconResult pairs a beacon.Decode with the minute it was decoded
// against, the clock context beacon.Decode itself carries no notion of
// (spec.md §4.5: "Each successful decode publishes (hours, minutes,
// snr_db, message)").
type beaconResult struct {
	beacon.Decode
	Hour, Minute int
}

func (e *Engine) decodeBeacon(ctx context.Context, params dsp.Params, pi4 bool, now time.Time) {
	if e.jt4Dec == nil {
		e.jt4Dec = beacon.NewJT4Decoder()
	}
	if e.pi4Dec == nil {
		e.pi4Dec = beacon.NewPI4Decoder()
	}

	symbols := make([]beacon.Symbol, e.cache.CacheSize())
	bestSNR := -999.0
	for i := range symbols {
		symbols[i] = beacon.DetectTone(e.cache.Column(i), params.Tone0, params.Spacing, params.Tolerance)
		if symbols[i].SNRdB > bestSNR {
			bestSNR = symbols[i].SNRdB
		}
	}

	dec := e.jt4Dec
	tag := dispatch.TagJTMessage
	if pi4 {
		dec = e.pi4Dec
		tag = dispatch.TagPIMessage
	}

	result := dec.Decode(symbols, bestSNR)
	if result.Outcome == beacon.Message {
		utc := now.UTC()
		_ = e.queue.Push(ctx, tag, beaconResult{Decode: result, Hour: utc.Hour(), Minute: utc.Minute()})
	}
}

// cacheSizeFor returns the tone cache depth for mode m: OOK48 under
// half_rate doubles to dsp.HalfRateCacheSize so the 16-column frame
// the half-rate combine step (ook48.Decoder.Decode) expects actually
// arrives (spec.md §3, §4.3, §4.4 step 2).
func cacheSizeFor(m dsp.Mode, p dsp.Params, half bool) int {
	if m == dsp.ModeOOK48 && half {
		return dsp.HalfRateCacheSize
	}
	return p.CacheSize
}

func toneWindow(col []float64, tone0, tolerance int) []float64 {
	lo := tone0 - tolerance
	hi := tone0 + tolerance
	if lo < 0 {
		lo = 0
	}
	if hi > len(col) {
		hi = len(col)
	}
	return col[lo:hi]
}

// runDispatch is the dispatch context: it drains the queue and writes
// the wire protocol lines spec.md §6 defines.
func (e *Engine) runDispatch(ctx context.Context, out io.Writer) error {
	for {
		env, err := e.queue.Pop(ctx)
		if err != nil {
			return err
		}
		line := e.formatEnvelope(env)
		if line == "" {
			continue
		}
		if _, err := io.WriteString(out, line); err != nil {
			e.log.Printf("write failed: %v", err)
		}
	}
}

func (e *Engine) formatEnvelope(env dispatch.Envelope) string {
	switch env.Tag {
	case dispatch.TagMessage:
		return serial.FormatMSG(env.Payload.(byte))
	case dispatch.TagTMessage:
		return serial.FormatTX(env.Payload.(byte))
	case dispatch.TagSFTMessage:
		return serial.FormatSFT(env.Payload.([8]float64))
	case dispatch.TagJTMessage:
		r := env.Payload.(beaconResult)
		return serial.FormatJT(r.Hour, r.Minute, r.SNRdB, r.Text)
	case dispatch.TagPIMessage:
		r := env.Payload.(beaconResult)
		return serial.FormatPI(r.Hour, r.Minute, r.SNRdB, r.Text)
	case dispatch.TagMorseMessage:
		ch, _ := env.Payload.(byte)
		return serial.FormatMCH(ch, ch == 0)
	case dispatch.TagMorseLocked:
		return serial.FormatMLS(env.Payload.(float64), false)
	case dispatch.TagMorseLost:
		return serial.FormatMLS(0, true)
	case dispatch.TagError:
		return serial.FormatERR(env.Payload.(string))
	default:
		return ""
	}
}

// ApplyCommand mutates settings (or issues a transmit/side-effect
// command) per one parsed inbound line, and returns the ACK line to
// echo back (spec.md §6). Parse errors, and their ERR line, are handled
// by the caller before a Command exists.
func (e *Engine) ApplyCommand(cmd serial.Command) string {
	switch cmd.Kind {
	case serial.CmdSetLocLen:
		e.settings.Update(func(s *serial.Settings) { s.LocatorLen = cmd.Int })
	case serial.CmdSetDecMode:
		e.settings.Update(func(s *serial.Settings) { s.DecodeMode = cmd.Int })
	case serial.CmdSetTxAdvance:
		e.settings.Update(func(s *serial.Settings) { s.TxAdvanceMs = cmd.Int })
	case serial.CmdSetRxRetard:
		e.settings.Update(func(s *serial.Settings) { s.RxRetardMs = cmd.Int })
	case serial.CmdSetHalfRate:
		e.settings.Update(func(s *serial.Settings) { s.HalfRate = cmd.Bool })
	case serial.CmdSetMorseWPM:
		e.settings.Update(func(s *serial.Settings) { s.MorseWPM = cmd.Float })
	case serial.CmdSetConfidence:
		e.settings.Update(func(s *serial.Settings) { s.ConfidenceThreshold = cmd.Float })
	case serial.CmdSetApp:
		e.settings.Update(func(s *serial.Settings) { s.App = serial.App(cmd.Int) })
	case serial.CmdSetMsg:
		e.settings.Update(func(s *serial.Settings) { s.MsgSlots[cmd.Slot] = cmd.Text })
	case serial.CmdTXMsg:
		e.transmitSlot(cmd.Slot)
	case serial.CmdReboot, serial.CmdClear, serial.CmdIdent, serial.CmdTX, serial.CmdRX, serial.CmdDashes, serial.CmdMorseTX:
		// side-effecting commands with no settings mutation; keying
		// the radio itself is outside the DSP/dispatch split this
		// engine models.
	}
	return serial.FormatACK(cmdName(cmd.Kind))
}

// transmitSlot encodes a message slot into OOK48 constant-weight words
// (expanding any locator token first), logs the word count, and pushes
// one TX: echo per character of the expanded message; under half-rate
// Encode yields two words per character but the echo is still one per
// character. It does not drive a key line and does not pace the words
// at the symbol rate: all echoes are queued at once.
func (e *Engine) transmitSlot(slot int) {
	snap := e.settings.Snapshot()
	if e.ook48Enc == nil && e.station != nil {
		e.ook48Enc = ook48.NewEncoder(e.station, snap.HalfRate)
	}
	if e.ook48Enc == nil {
		return
	}
	msg := []byte(snap.MsgSlots[slot])
	expanded := msg
	if e.station != nil {
		expanded = e.station.ExpandTemplate(msg)
	}
	words := e.ook48Enc.Encode(msg)
	e.log.Printf("keying slot %d: %d OOK48 words", slot, len(words))
	for _, ch := range expanded {
		_ = e.queue.Push(context.Background(), dispatch.TagTMessage, ch)
	}
}

// SetLocator records the station's current Maidenhead grid locator,
// validated against the accepted lengths (spec.md §4.3). It is the
// integration point for whatever GPS fix subsystem resolves lat/lon
// into a locator string; none is wired in here.
func (e *Engine) SetLocator(locator string) error {
	st, err := maidenhead.NewStation(locator)
	if err != nil {
		return err
	}
	e.station = st
	e.ook48Enc = nil
	return nil
}

func cmdName(k serial.CommandKind) string {
	switch k {
	case serial.CmdSetLocLen:
		return "loclen"
	case serial.CmdSetDecMode:
		return "decmode"
	case serial.CmdSetTxAdvance:
		return "txadv"
	case serial.CmdSetRxRetard:
		return "rxret"
	case serial.CmdSetHalfRate:
		return "halfrate"
	case serial.CmdSetMorseWPM:
		return "morsewpm"
	case serial.CmdSetConfidence:
		return "confidence"
	case serial.CmdSetApp:
		return "app"
	case serial.CmdSetMsg:
		return "msg"
	case serial.CmdTX:
		return "tx"
	case serial.CmdRX:
		return "rx"
	case serial.CmdTXMsg:
		return "txmsg"
	case serial.CmdDashes:
		return "dashes"
	case serial.CmdMorseTX:
		return "morsetx"
	case serial.CmdIdent:
		return "ident"
	case serial.CmdClear:
		return "clear"
	case serial.CmdReboot:
		return "reboot"
	default:
		return "unknown"
	}
}
