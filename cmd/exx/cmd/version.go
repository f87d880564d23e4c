package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0"
	GitCommit = "development"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// Overrides the root hook so a broken config does not hide the version.
	PersistentPreRun: func(*cobra.Command, []string) {},
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "exx v%s\n", Version)
		fmt.Fprintf(w, "  Git Commit: %s\n", GitCommit)
		fmt.Fprintf(w, "  Build Date: %s\n", BuildDate)
		fmt.Fprintf(w, "  Go Version: %s\n", runtime.Version())
		fmt.Fprintf(w, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
