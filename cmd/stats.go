package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/abhisek/sqlchallenge/internal/challenge"
	"github.com/abhisek/sqlchallenge/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show accuracy per window function",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		repo := st.EventRepo()
		stats, err := repo.AttemptStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}
		if len(stats) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No attempts yet.")
			return nil
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Function", "Attempts", "Correct", "Accuracy"})
		table.SetAutoFormatHeaders(false)
		var total, correct int
		for _, s := range stats {
			label := s.Category
			if c, err := challenge.ParseCategory(s.Category); err == nil {
				label = c.Label()
			}
			table.Append([]string{
				label,
				humanize.Comma(int64(s.Total)),
				humanize.Comma(int64(s.Correct)),
				fmt.Sprintf("%.0f%%", s.Accuracy()*100),
			})
			total += s.Total
			correct += s.Correct
		}
		overall := store.CategoryStats{Total: total, Correct: correct}
		table.SetFooter([]string{"Total", humanize.Comma(int64(total)), humanize.Comma(int64(correct)),
			fmt.Sprintf("%.0f%%", overall.Accuracy()*100)})
		table.Render()

		recent, err := repo.RecentAttempts(cmd.Context(), store.QueryOpts{Limit: 1})
		if err == nil && len(recent) == 1 {
			fmt.Fprintf(cmd.OutOrStdout(), "\nLast attempt %s\n", humanize.Time(recent[0].Timestamp))
		}
		return nil
	},
}
