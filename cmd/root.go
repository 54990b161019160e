package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/sqlchallenge/internal/config"
	"github.com/abhisek/sqlchallenge/internal/logging"
)

// annotationTUI marks commands that own the terminal; their logs must not
// go to stderr.
const annotationTUI = "tui"

var (
	cfg       *config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "sqlchallenge",
	Short: "Practice SQL window functions",
	Long: `sqlchallenge poses window-function questions against generated practice
tables and checks your query by comparing its rows with a reference answer.

Hints need an LLM provider: set ANTHROPIC_API_KEY, OPENAI_API_KEY,
OPENROUTER_API_KEY or GEMINI_API_KEY, or configure ~/.config/sqlchallenge/llm.yaml.`,
	SilenceUsage:      true,
	Annotations:       map[string]string{annotationTUI: "true"},
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
	RunE: runPlay,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/sqlchallenge/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to history database (overrides SQLCHALLENGE_DB)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(provisionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and installs the default logger.
func setup(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		loaded.Store.Path = db
	}
	cfg = loaded

	var fallback io.Writer = os.Stderr
	if cmd.Annotations[annotationTUI] == "true" {
		fallback = nil
	}
	logCloser, err = logging.Setup(logging.Options{
		Level:    cfg.Log.Level,
		Format:   cfg.Log.Format,
		File:     cfg.Log.File,
		Fallback: fallback,
	})
	return err
}
