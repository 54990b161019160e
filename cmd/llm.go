package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/abhisek/sqlchallenge/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect hint provider usage",
}

var llmUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show requests, tokens and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		usage, err := st.EventRepo().LLMUsage(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(usage) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No LLM requests recorded.")
			return nil
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Provider", "Model", "Requests", "Failed", "In", "Out", "Cost"})
		table.SetAutoFormatHeaders(false)

		var total float64
		for _, u := range usage {
			cost := "n/a"
			if c, ok := llm.EstimateCost(u.Model, u.InputTokens, u.OutputTokens); ok {
				cost = fmt.Sprintf("$%.4f", c)
				total += c
			}
			table.Append([]string{
				u.Provider,
				u.Model,
				humanize.Comma(int64(u.Requests)),
				humanize.Comma(int64(u.Failures)),
				humanize.Comma(int64(u.InputTokens)),
				humanize.Comma(int64(u.OutputTokens)),
				cost,
			})
		}
		table.Render()
		fmt.Fprintf(cmd.OutOrStdout(), "\nEstimated total: $%.4f\n", total)
		return nil
	},
}

var llmCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Show which provider hints would use",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, ok := llm.ResolveConfig()
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "No LLM provider configured; hints are disabled.")
			return nil
		}
		if err := c.Validate(); err != nil {
			return err
		}
		provider, err := llm.NewProvider(cmd.Context(), c, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "provider: %s\nmodel:    %s\n", c.Provider, provider.ModelID())
		return nil
	},
}

func init() {
	llmCmd.AddCommand(llmUsageCmd)
	llmCmd.AddCommand(llmCheckCmd)
}
