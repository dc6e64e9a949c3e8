package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kf0rbx/narrowcore/internal/audiosource"
	"github.com/kf0rbx/narrowcore/serial"
)

const firmwareVersion = "1.0.0"

func main() {
	locator := flag.String("locator", "", "station Maidenhead grid locator")
	flag.Parse()

	settings := serial.NewStore()
	engine := NewEngine(settings, audiosource.Silence{})

	if *locator != "" {
		if err := engine.SetLocator(*locator); err != nil {
			log.Fatalf("invalid -locator: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := os.Stdout
	if _, err := out.WriteString(serial.FormatRDY(firmwareVersion, settings.Snapshot().MorseWPM)); err != nil {
		log.Printf("failed writing RDY: %v", err)
	}

	go runCommandLoop(ctx, os.Stdin, out, engine)

	if err := engine.Run(ctx, out); err != nil && ctx.Err() == nil {
		log.Fatalf("engine stopped: %v", err)
	}
}

// runCommandLoop reads SET:/CMD: lines from in, applying each to the
// engine and echoing the ACK/ERR line spec.md §6 defines. It is a
// goroutine of its own so a blocking read on in never stalls the DSP
// or dispatch contexts.
func runCommandLoop(ctx context.Context, in *os.File, out *os.File, engine *Engine) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, err := serial.ParseCommand(line)
		if err != nil {
			_, _ = out.WriteString(serial.FormatERR(err.Error()))
			continue
		}
		_, _ = out.WriteString(engine.ApplyCommand(cmd))
	}
}
