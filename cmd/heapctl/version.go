package main

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/joshuapare/sbfheap/bump"
)

const libraryPath = "github.com/joshuapare/sbfheap"

// Set with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type versionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Built   string `json:"built"`
	Go      string `json:"go"`
	Library string `json:"library,omitempty"`
	Poke    bool   `json:"poke_build"`
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion()
		},
	})
}

func currentVersion() versionInfo {
	v := versionInfo{
		Version: version,
		Commit:  commit,
		Built:   date,
		Go:      runtime.Version(),
		Poke:    bump.DefaultOptions().Poke,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, dep := range bi.Deps {
			if dep.Path == libraryPath {
				v.Library = dep.Version
			}
		}
	}
	return v
}

func runVersion() error {
	v := currentVersion()
	if jsonOut {
		return printJSON(v)
	}
	printInfo("heapctl %s (%s, built %s)\n", v.Version, v.Commit, v.Built)
	printInfo("  go: %s\n", v.Go)
	if v.Library != "" {
		printInfo("  sbfheap: %s\n", v.Library)
	}
	if v.Poke {
		printInfo("  allocator: poke build\n")
	}
	return nil
}
