package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"foodwaste/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Inserts random demo entries.",
	Long: `Inserts random demo entries through the entry service, so change
events are published when AMQP_URL is set. Use --seed for a repeatable set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		seedValue, _ := cmd.Flags().GetInt64("seed")
		if count <= 0 {
			return fmt.Errorf("--count must be positive, got %d", count)
		}

		res, err := openBackend(cmd.Context(), true)
		if err != nil {
			return err
		}
		svc := res.Service()
		defer svc.Close()

		gen := seed.New()
		if cmd.Flags().Changed("seed") {
			gen = seed.NewWithSeed(seedValue)
		}

		for i, d := range gen.Drafts(count) {
			if _, err := svc.CreateEntry(cmd.Context(), d); err != nil {
				return fmt.Errorf("create entry %d of %d: %w", i+1, count, err)
			}
		}
		fmt.Printf("Seeded %d entries.\n", count)
		return nil
	},
}

func init() {
	seedCmd.Flags().Int("count", 20, "number of entries to insert")
	seedCmd.Flags().Int64("seed", 0, "random seed for a repeatable set")
	rootCmd.AddCommand(seedCmd)
}
