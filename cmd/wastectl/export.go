package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"foodwaste/internal/core"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Writes entries.csv and statistics.json into a directory.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("out")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}

		res, err := openBackend(cmd.Context(), false)
		if err != nil {
			return err
		}
		svc := res.Service()
		defer svc.Close()

		// One listing feeds both files so they describe the same snapshot.
		entries, err := svc.ListEntries(cmd.Context())
		if err != nil {
			return err
		}

		var g errgroup.Group
		g.Go(func() error {
			return writeEntriesCSV(filepath.Join(dir, "entries.csv"), entries)
		})
		g.Go(func() error {
			return writeStatisticsJSON(filepath.Join(dir, "statistics.json"), core.Aggregate(entries))
		})
		if err := g.Wait(); err != nil {
			return err
		}

		fmt.Printf("Exported %d entries to %s\n", len(entries), dir)
		return nil
	},
}

func writeEntriesCSV(path string, entries []core.WasteEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	_ = w.Write([]string{"id", "createdAt", "foodItem", "category", "quantityKg", "reason", "notes"})
	for _, e := range entries {
		_ = w.Write([]string{
			e.ID,
			e.CreatedAt.UTC().Format(time.RFC3339),
			e.FoodItem,
			string(e.Category),
			core.FormatKilograms(e.Quantity.Grams),
			string(e.Reason),
			e.Notes,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

type statisticsFile struct {
	GeneratedAt  string             `json:"generatedAt"`
	TotalWaste   float64            `json:"totalWaste"`
	TotalEntries int                `json:"totalEntries"`
	AvgWaste     float64            `json:"avgWaste"`
	CarbonImpact float64            `json:"carbonImpact"`
	ByCategory   map[string]float64 `json:"byCategory"`
	ByReason     map[string]float64 `json:"byReason"`
}

func writeStatisticsJSON(path string, s core.Statistics) error {
	out := statisticsFile{
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		TotalWaste:   s.TotalWaste,
		TotalEntries: s.TotalEntries,
		AvgWaste:     s.AvgWaste,
		CarbonImpact: s.CarbonImpact,
		ByCategory:   make(map[string]float64, len(s.ByCategory)),
		ByReason:     make(map[string]float64, len(s.ByReason)),
	}
	for k, v := range s.ByCategory {
		out.ByCategory[string(k)] = v
	}
	for k, v := range s.ByReason {
		out.ByReason[string(k)] = v
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func init() {
	exportCmd.Flags().String("out", "export", "output directory")
	rootCmd.AddCommand(exportCmd)
}
