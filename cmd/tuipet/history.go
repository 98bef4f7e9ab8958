package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent actions",
	Long: `Display the most recent actions taken on your pet, newest first.
Decay ticks are not recorded.

Examples:
  tuipet history
  tuipet history --limit 5`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 10, "Number of actions to show")
}

func runHistory(_ *cobra.Command, _ []string) error {
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

	entries, err := store.RecentActions(ctx, flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("retrieving history: %w", err)
	}

	fmt.Println("Recent actions")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No actions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'tuipet play' to spend some time with your pet!")
		return nil
	}

	// Print header
	fmt.Printf("  %-16s  %-10s  %5s  %9s  %6s\n", "Date", "Action", "Delta", "Happiness", "Treats")
	fmt.Printf("  %-16s  %-10s  %5s  %9s  %6s\n", "----", "------", "-----", "---------", "------")

	// Print entries
	for _, e := range entries {
		dateStr := e.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-16s  %-10s  %+5d  %9d  %6d\n", dateStr, e.Action, e.Delta, e.Happiness, e.Treats)
	}
	return nil
}
