package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"foodwaste/internal/core"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints waste totals and the per-category and per-reason breakdown.",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := openBackend(cmd.Context(), false)
		if err != nil {
			return err
		}
		svc := res.Service()
		defer svc.Close()

		stats, err := svc.Statistics(cmd.Context())
		if err != nil {
			return err
		}

		if stats.TotalEntries == 0 {
			fmt.Println("No entries yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintf(w, "Total waste (kg)\t%.2f\n", stats.TotalWaste)
		fmt.Fprintf(w, "Entries logged\t%d\n", stats.TotalEntries)
		fmt.Fprintf(w, "Average per entry (kg)\t%.2f\n", stats.AvgWaste)
		fmt.Fprintf(w, "CO2 awareness (kg)\t%.2f\n", stats.CarbonImpact)
		printBreakdown(w, "CATEGORY", stats.CategoryBreakdown())
		printBreakdown(w, "REASON", stats.ReasonBreakdown())
		return w.Flush()
	},
}

func printBreakdown(w *tabwriter.Writer, title string, groups []core.GroupAmount) {
	fmt.Fprintln(w, " \t ")
	fmt.Fprintf(w, "%s\tKG\n", title)
	for _, g := range groups {
		fmt.Fprintf(w, "%s\t%.2f\n", g.Name, g.Quantity)
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
