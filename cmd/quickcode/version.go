package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/quickcode-ui/quickcode/internal/config"
)

// buildInfo is the version stamp, filled from -ldflags when the release
// build sets them and from the module build info otherwise.
type buildInfo struct {
	Version  string
	Commit   string
	Date     string
	Modified bool
}

func currentBuild() buildInfo {
	b := buildInfo{Version: version, Commit: commit, Date: date}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	if b.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		b.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "none" {
				b.Commit = s.Value
			}
		case "vcs.time":
			if b.Date == "unknown" {
				b.Date = s.Value
			}
		case "vcs.modified":
			b.Modified = s.Value == "true"
		}
	}
	if len(b.Commit) > 12 {
		b.Commit = b.Commit[:12]
	}
	return b
}

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the QuickCode CLI version, the commit it was built from and the
component map it uses by default.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			b := currentBuild()
			if short {
				fmt.Fprintln(stdout, b.Version)
				return
			}

			commitLine := b.Commit
			if b.Modified {
				commitLine += " (modified)"
			}

			printBanner()
			fmt.Fprintf(stdout, "  quickcode %s\n\n", b.Version)
			fmt.Fprintf(stdout, "  commit    %s\n", commitLine)
			fmt.Fprintf(stdout, "  built     %s\n", b.Date)
			fmt.Fprintf(stdout, "  runtime   %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(stdout, "  registry  %s\n", config.DefaultRegistry)
			fmt.Fprintln(stdout)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only the version")

	return cmd
}
