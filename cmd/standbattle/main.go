// Package main is the entry point for the stand battle simulation.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/samdwyer/standbattle/internal/battle"
	"github.com/samdwyer/standbattle/internal/sfx"
	"github.com/samdwyer/standbattle/internal/telemetry"
	"github.com/samdwyer/standbattle/internal/ui"
)

func main() {
	os.Exit(run())
}

// run does the work of main and returns the exit code, so deferred
// telemetry and log flushes happen before the process exits.
func run() int {
	cfg := battle.DefaultConfig()
	var (
		tui    bool
		sfxDir string
		sample float64
	)
	flag.StringVar(&cfg.RosterPath, "roster", "", "roster YAML file (default: embedded roster)")
	flag.IntVar(&cfg.Ticks, "ticks", cfg.Ticks, "heat-seeking updates in phase 2")
	flag.DurationVar(&cfg.Pause, "pause", 0, "delay between steps")
	flag.DurationVar(&cfg.Fuse, "fuse", 0, "arm the first bomb with a timer instead of detonating at once")
	flag.BoolVar(&tui, "tui", false, "render the battle on a terminal board")
	flag.StringVar(&sfxDir, "sfx-dir", "", "write sound cues as WAV files into this directory")
	flag.Float64Var(&sample, "trace-sample", 1, "fraction of battles traced")
	flag.Parse()

	// Load .env file for local development
	// This makes HONEYCOMB_STANDBATTLE_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	setupOTelEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if sfxDir != "" {
		if err := writeCues(sfxDir); err != nil {
			log.Printf("Failed to write sound cues: %v", err)
			return 1
		}
	}

	if tui && cfg.Pause == 0 {
		cfg.Pause = 700 * time.Millisecond
	}

	// The board owns the terminal, so logs only go out in narrated mode
	if !tui {
		logger, err := zap.NewDevelopment()
		if err != nil {
			log.Printf("Failed to create logger: %v", err)
			return 1
		}
		defer logger.Sync()
		cfg.Logger = logger
	}

	b, err := battle.New(cfg)
	if err != nil {
		log.Printf("Failed to initialize battle: %v", err)
		return 1
	}

	shutdown, err := telemetry.Setup(ctx, telemetry.Options{
		SampleRatio: sample,
		User:        b.Profile.User,
		Stand:       b.Profile.Stand,
		RosterSize:  b.Roster.Count(),
	})
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Battle will run without observability")
	} else {
		defer func() {
			// The run context may already be cancelled; spans still need a flush
			if err := shutdown(context.WithoutCancel(ctx)); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	if tui {
		err = runBoard(ctx, b)
	} else {
		err = runNarrated(ctx, b)
	}
	switch {
	case errors.Is(err, context.Canceled):
		log.Printf("Battle interrupted")
		return 130
	case err != nil:
		log.Printf("Battle error: %v", err)
		return 1
	}
	return 0
}

// runNarrated prints the battle as it happens.
func runNarrated(ctx context.Context, b *battle.Battle) error {
	n := ui.NewNarrator(os.Stdout, b.Roster)
	n.Intro(b.Profile)
	b.Observe(n.Narrate)
	if err := b.Run(ctx); err != nil {
		return err
	}
	return n.Err()
}

// runBoard draws the battle on the terminal. The battle runs on its own
// goroutine so Esc, q or Ctrl-C can stop it; once it ends the board waits
// for a key.
func runBoard(ctx context.Context, b *battle.Battle) error {
	screen, err := ui.NewScreen()
	if err != nil {
		return err
	}
	defer screen.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	board := ui.NewBoard(screen, b.Roster)
	b.Observe(func(ev battle.Event) { board.Render(b.Engine(), ev) })

	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	quit := make(chan struct{})
	defer close(quit)
	keys := make(chan *tcell.EventKey)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			if k, ok := ev.(*tcell.EventKey); ok {
				select {
				case keys <- k:
				case <-quit:
					return
				}
			}
		}
	}()

	for {
		select {
		case err := <-done:
			if err != nil {
				return err
			}
			_, h := screen.Size()
			screen.DrawText(0, h-1, "Press any key to exit", tcell.StyleDefault.Foreground(tcell.ColorGray))
			screen.Show()
			<-keys
			return nil
		case k := <-keys:
			if k.Key() == tcell.KeyEscape || k.Key() == tcell.KeyCtrlC || k.Rune() == 'q' {
				cancel()
			}
		}
	}
}

// writeCues renders every sound cue into dir.
func writeCues(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, cue := range sfx.AllCues() {
		path := filepath.Join(dir, cue.String()+".wav")
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := sfx.WriteWAV(f, cue); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// The .env file may hold an unexpanded variable reference, so the
	// headers are built here
	apiKey := os.Getenv("HONEYCOMB_STANDBATTLE_API_KEY")
	dataset := os.Getenv("HONEYCOMB_STANDBATTLE_DATASET")
	if dataset == "" {
		dataset = "standbattle"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
