package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pet/internal/core"
	"github.com/vovakirdan/tui-pet/internal/pet"
	"github.com/vovakirdan/tui-pet/internal/platform/tui"
	"github.com/vovakirdan/tui-pet/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play with your pet",
	Long: `Open the pet screen.

Controls:
  H/Enter    - Make happy (+10)
  S          - Swipe (-10)
  P/Space    - Pet (+5)
  T          - Give a treat (+20, 5 per session)
  Tab        - Toggle action history
  Ctrl+S     - Save a text screenshot
  ?          - More keys
  Q/Ctrl+C   - Quit

Happiness drops by 3 every 5 seconds while the screen is open and is
saved after every change.

Examples:
  tuipet play
  tuipet play --db ./pet.db
  tuipet play --config ./my-pet.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so logs go to a file
	logOut, closeLog, err := openLogFile(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
	}
	defer closeLog()
	logger := newLogger(logOut)

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open pet storage
	var (
		store   pet.Store
		history tui.HistorySource
		journal pet.Journal
	)
	db, err := storage.Open(flagDBPath, cfg.StoreOptions()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open pet database: %v\n", err)
		logger.Warn("running without persistence", "db", flagDBPath, "error", err)
		// Continue in memory - the pet still works, it just forgets
	} else {
		defer db.Close()
		store, history, journal = db, db, db
	}

	feedback := tui.NewFeedback(cfg.Display.Bell)

	sessionCfg := cfg.SessionConfig()
	sessionCfg.Feedback = feedback
	sessionCfg.Logger = logger
	sessionCfg.Journal = journal

	session := pet.Open(context.Background(), store, sessionCfg)
	// Flush pending writes before the store closes
	defer session.Close()

	opts := tui.Options{
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: cfg.Display.FPS,
		},
		HistoryRows:   cfg.Display.HistoryRows,
		ScreenshotDir: filepath.Join(filepath.Dir(expandHome(flagDBPath)), "screenshots"),
	}

	if err := tui.Run(session, history, feedback, opts); err != nil {
		logger.Error("ui stopped", "error", err)
		return fmt.Errorf("running pet: %w", err)
	}
	return nil
}
