package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/sqlchallenge/internal/app"
)

var playCmd = &cobra.Command{
	Use:         "play",
	Short:       "Start an interactive practice session",
	Annotations: map[string]string{annotationTUI: "true"},
	RunE:        runPlay,
}

// runPlay opens the practice environment and launches the TUI.
func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	env, err := openPracticeEnv(ctx, cfg)
	if err != nil {
		return err
	}
	defer env.Close()

	return app.Run(app.Deps{
		Session: env.newSession(nil, nil),
		Hints:   env.hintService(ctx),
		Events:  env.store.EventRepo(),
	})
}
