package main

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// buildInfo describes the running binary.
type buildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	Module    string `json:"module,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
}

// readBuildInfo starts from the link-time values and fills whatever is still
// unset from the module and VCS data the toolchain embeds.
func readBuildInfo() buildInfo {
	bi := buildInfo{Version: version, Commit: commit, Date: date}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return bi
	}
	bi.Module = info.Main.Path
	bi.GoVersion = info.GoVersion
	if bi.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		bi.Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if bi.Commit == "none" {
				bi.Commit = s.Value
			}
		case "vcs.time":
			if bi.Date == "unknown" {
				bi.Date = s.Value
			}
		case "vcs.modified":
			bi.Modified = s.Value == "true"
		}
	}
	return bi
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVersion()
	},
}

func runVersion() error {
	bi := readBuildInfo()
	if jsonOut {
		return printJSON(bi)
	}
	printInfo("dequectl %s\n", bi.Version)
	rev := bi.Commit
	if bi.Modified {
		rev += " (modified)"
	}
	printInfo("  commit: %s\n", rev)
	printInfo("  built: %s\n", bi.Date)
	if bi.Module != "" {
		printInfo("  module: %s\n", bi.Module)
	}
	if bi.GoVersion != "" {
		printInfo("  go: %s\n", bi.GoVersion)
	}
	return nil
}

func init() {
	rootCmd.Version = readBuildInfo().Version
	rootCmd.AddCommand(versionCmd)
}
