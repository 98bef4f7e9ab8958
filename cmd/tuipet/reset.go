package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var flagResetHistory bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset happiness to the default",
	Long: `Set the stored happiness back to the configured default
(rules.default_happiness, 100 unless changed). With --history the action
journal is cleared as well.

Examples:
  tuipet reset
  tuipet reset --history`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetHistory, "history", false, "Also clear the action history")
}

func runReset(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	happiness := store.DefaultHappiness()
	if err := store.Write(ctx, happiness); err != nil {
		return fmt.Errorf("resetting pet: %w", err)
	}
	fmt.Printf("Happiness reset to %d.\n", happiness)

	if flagResetHistory {
		if err := store.ClearActions(ctx); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
		fmt.Println("History cleared.")
	}
	return nil
}
