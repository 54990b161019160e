package cmd

import (
	"database/sql"
	"fmt"
	"runtime"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sqlchallenge/internal/sqlexec"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and, with --verbose, the build details",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "sqlchallenge", version)
		if verbose, _ := cmd.Flags().GetBool("verbose"); !verbose {
			return
		}

		fmt.Fprintf(out, "  commit:   %s\n", buildSetting("vcs.revision", "unknown"))
		fmt.Fprintf(out, "  go:       %s\n", runtime.Version())
		fmt.Fprintf(out, "  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(out, "  drivers:  %s\n", strings.Join(practiceDrivers(), ", "))
	},
}

func init() {
	versionCmd.Flags().BoolP("verbose", "v", false, "Include commit, toolchain and compiled-in database drivers")
}

func buildSetting(key, fallback string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return fallback
	}
	for _, s := range info.Settings {
		if s.Key == key && s.Value != "" {
			return s.Value
		}
	}
	return fallback
}

// practiceDrivers lists the registered database/sql drivers that can host
// the practice database.
func practiceDrivers() []string {
	var out []string
	for _, d := range sql.Drivers() {
		if _, err := sqlexec.DialectFor(d); err == nil {
			out = append(out, d)
		}
	}
	slices.Sort(out)
	return out
}
