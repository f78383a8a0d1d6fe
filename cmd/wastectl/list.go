package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"foodwaste/internal/core"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists entries, newest first.",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		res, err := openBackend(cmd.Context(), false)
		if err != nil {
			return err
		}
		svc := res.Service()
		defer svc.Close()

		entries, err := svc.ListEntries(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No entries yet.")
			return nil
		}
		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tFOOD\tCATEGORY\tKG\tREASON")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				e.ID,
				e.CreatedAt.Local().Format("2006-01-02 15:04"),
				e.FoodItem,
				e.Category,
				core.FormatKilograms(e.Quantity.Grams),
				e.Reason)
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().Int("limit", 0, "show at most this many entries (0 for all)")
	rootCmd.AddCommand(listCmd)
}
