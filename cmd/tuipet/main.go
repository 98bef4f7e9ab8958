// tuipet is a virtual pet that lives in your terminal.
//
// Usage:
//
//	tuipet                   - Play with your pet (same as 'tuipet play')
//	tuipet play              - Play with your pet
//	tuipet status            - Show your pet's stored happiness
//	tuipet history           - Show recent actions
//	tuipet reset             - Reset happiness to the default
//	tuipet config            - Print the default configuration
//
// Global flags:
//
//	--db <path>        - Set database path (default: ~/.tuipet/pet.db)
//	--config <path>    - Use a custom config YAML
//	--fps <rate>       - Override the redraw rate
//	--log-file <path>  - Where 'play' writes its log (default: ~/.tuipet/tuipet.log)
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pet/internal/config"
	"github.com/vovakirdan/tui-pet/internal/storage"
)

var (
	// Global flags
	flagDBPath  string
	flagConfig  string
	flagFPS     int
	flagLogFile string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tuipet",
	Short: "tuipet - A virtual pet in your terminal",
	Long: `tuipet is a virtual pet that lives in your terminal. Keep it happy:
pet it, cheer it up and give it treats. Its happiness slowly drops on its
own and is saved between sessions.

Available commands:
  play     - Play with your pet (default)
  status   - Show the stored happiness
  history  - Show recent actions
  reset    - Reset happiness to the default
  config   - Print the default configuration

Examples:
  tuipet
  tuipet status
  tuipet history --limit 5
  tuipet play --config ./my-pet.yaml`,
	RunE: runPlay,
	// Errors are printed once by main
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tuipet/pet.db", "Path to pet database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Redraw rate (0 = use config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.tuipet/tuipet.log", "Log file used while playing")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates the command logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tuipet",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// openLogFile opens the play log for appending. The returned closer is never nil.
func openLogFile(path string) (io.Writer, func(), error) {
	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return io.Discard, func() {}, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return io.Discard, func() {}, err
	}
	//nolint:errcheck // Best-effort close
	return f, func() { f.Close() }, nil
}

// loadConfig loads the pet config and applies flag overrides.
func loadConfig() (config.PetConfig, error) {
	cfg, err := config.LoadPet(flagConfig)
	if err != nil {
		return config.PetConfig{}, err
	}
	if flagFPS > 0 {
		cfg.Display.FPS = flagFPS
	}
	return cfg, nil
}

// openStore opens and initializes the database with the configured default.
func openStore(ctx context.Context, cfg config.PetConfig) (*storage.Store, error) {
	store, err := storage.Open(flagDBPath, cfg.StoreOptions()...)
	if err != nil {
		return nil, fmt.Errorf("could not open pet database %s: %w", flagDBPath, err)
	}
	if err := store.Initialize(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("could not initialize pet database %s: %w", flagDBPath, err)
	}
	return store, nil
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
