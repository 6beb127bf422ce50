// Command racer is a top-down arcade racer: dodge traffic, chase a best
// score and claim a place on the local leaderboard.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Korport/RacingGame/internal/app"
	"github.com/Korport/RacingGame/internal/audio"
	"github.com/Korport/RacingGame/internal/desktop"
	"github.com/Korport/RacingGame/internal/game"
	"github.com/Korport/RacingGame/internal/leaderboard"
	"github.com/Korport/RacingGame/internal/settings"
	"github.com/Korport/RacingGame/internal/storage"
	"github.com/Korport/RacingGame/internal/tty"
)

func main() {
	useTTY := flag.Bool("tty", false, "play in the terminal instead of a window")
	difficulty := flag.String("difficulty", "", "start tier: easy, normal, hard or expert (overrides settings)")
	dataDir := flag.String("data", "", "directory for settings and scores (default: per-user config dir)")
	noSound := flag.Bool("mute", false, "disable all audio")
	flag.Parse()

	if err := run(*useTTY, *difficulty, *dataDir, *noSound); err != nil {
		fmt.Fprintf(os.Stderr, "racer: %v\n", err)
		os.Exit(1)
	}
}

func run(useTTY bool, difficulty, dataDir string, noSound bool) error {
	seed := uint64(time.Now().UnixNano())
	if s := os.Getenv("RACER_SEED"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			seed = v
		}
	}

	// The terminal owns stdout/stderr while the tty frontend runs.
	if useTTY {
		out, closeLog := ttyLog()
		defer closeLog()
		log.SetOutput(out)
	}

	if dataDir == "" {
		dir, err := storage.DefaultDir()
		if err != nil {
			log.Printf("no data dir, scores will not be saved: %v", err)
		}
		dataDir = dir
	}

	var kv storage.KV
	if dataDir != "" {
		fkv, err := storage.NewFileKV(dataDir)
		if err != nil {
			log.Printf("storage unavailable, scores will not be saved: %v", err)
		} else {
			kv = fkv
		}
	}
	if kv == nil {
		kv = storage.NewMemKV()
	}
	board := leaderboard.New(kv, leaderboard.WithErrorHook(func(err error) {
		log.Printf("leaderboard: %v", err)
	}))

	var settingsPath string
	cfg := settings.Default()
	if dataDir != "" {
		settingsPath = filepath.Join(dataDir, settings.FileName)
		loaded, err := settings.Load(settingsPath)
		if err != nil {
			log.Printf("settings: %v", err)
		}
		cfg = loaded
	}
	if difficulty != "" {
		tier, err := game.ParseTier(difficulty)
		if err != nil {
			return err
		}
		cfg.Difficulty = tier
	}

	conf := app.Config{
		Seed:         seed,
		Settings:     cfg,
		SettingsPath: settingsPath,
		Board:        board,
		Logf:         log.Printf,
	}
	if !noSound {
		sys, err := audio.New()
		if err != nil {
			log.Printf("audio init failed (continuing without sound): %v", err)
		} else {
			conf.Sounds = sys
			defer sys.StopMusic()
		}
	}
	a := app.New(conf)

	if useTTY {
		return tty.Run(a)
	}
	return desktop.Run(a, seed)
}

// ttyLog sends log output to $RACER_LOG, or drops it. The returned func
// closes the log file.
func ttyLog() (io.Writer, func()) {
	if p := os.Getenv("RACER_LOG"); p != "" {
		if f, err := os.OpenFile(p, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			return f, func() { f.Close() }
		}
	}
	return io.Discard, func() {}
}
