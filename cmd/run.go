package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sqlchallenge/internal/ui/components"
)

var runCmd = &cobra.Command{
	Use:   "run <sql>",
	Short: "Run a statement against the practice database",
	Long: `Run executes one statement against the practice database and prints the
result as a table. Use "provision" first to create a topic's table.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxRows, _ := cmd.Flags().GetInt("max-rows")

		exec, err := openExecutor(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer exec.Close()

		res, err := exec.Execute(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		components.WriteResult(cmd.OutOrStdout(), res, maxRows)
		return nil
	},
}

func init() {
	runCmd.Flags().Int("max-rows", 50, "Maximum rows to print (0 prints all)")
}

