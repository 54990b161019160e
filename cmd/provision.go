package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/sqlchallenge/internal/provision"
	"github.com/abhisek/sqlchallenge/internal/schema"
)

var provisionCmd = &cobra.Command{
	Use:       "provision [topic...]",
	Short:     "Recreate practice tables and fill them with generated rows",
	ValidArgs: topicNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := schema.ParseTopics(args)
		if err != nil {
			return err
		}
		rows, _ := cmd.Flags().GetInt("rows")
		seed, _ := cmd.Flags().GetUint64("seed")
		if rows == 0 {
			rows = cfg.Practice.Rows
		}
		if seed == 0 {
			seed = cfg.Practice.Seed
		}

		exec, err := openExecutor(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer exec.Close()

		p := provision.New(exec, provision.Options{Rows: rows, Seed: seed})
		for _, t := range topics {
			if err := p.Provision(cmd.Context(), t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "provisioned %s\n", t)
		}
		return nil
	},
}

func init() {
	provisionCmd.Flags().Int("rows", 0, "Rows per table (default from config)")
	provisionCmd.Flags().Uint64("seed", 0, "Generator seed (default from config; 0 is random)")
}
