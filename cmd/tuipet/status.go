package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pet/internal/platform/tui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show your pet's stored happiness",
	Long: `Print the happiness saved in the database, the mood it maps to and
when it last changed. A fresh database starts at 100.

Examples:
  tuipet status
  tuipet status --db ./pet.db`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(_ *cobra.Command, _ []string) error {
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

	rec, err := store.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("reading pet: %w", err)
	}

	mood := tui.MoodFor(rec.Happiness)
	fmt.Printf("Happiness: %d / %d\n", rec.Happiness, cfg.Rules.MaxHappiness)
	fmt.Printf("Mood:      %s\n", mood)
	if !rec.UpdatedAt.IsZero() {
		fmt.Printf("Updated:   %s\n", rec.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	}
	fmt.Println()
	sprite := tui.PetSprite(mood, 0)
	fmt.Println(sprite[1])
	fmt.Println(sprite[2])
	return nil
}
