package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/datumkit/dump"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <snapshot>",
		Short: "Summarize a snapshot: size and block counts",
		Long: `The info command opens a snapshot, scans it, and reports how many
data arrays, pools, and caches it contains.

Example:
  datumctl info game.dmp
  datumctl info game.dmp --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

type snapshotInfo struct {
	Path        string `json:"path"`
	SizeBytes   int64  `json:"size_bytes"`
	Arrays      int    `json:"arrays"`
	Pools       int    `json:"pools"`
	Caches      int    `json:"caches"`
	TotalSlots  int    `json:"total_slots"`
	ActiveSlots int    `json:"active_slots"`
}

func runInfo(args []string) error {
	path := args[0]
	printVerbose("Opening snapshot: %s\n", path)

	s, err := dump.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer s.Close()

	views, err := s.Arrays()
	if err != nil {
		return fmt.Errorf("failed to scan snapshot: %w", err)
	}

	info := snapshotInfo{
		Path:      path,
		SizeBytes: s.Size(),
		Arrays:    len(views),
		Pools:     len(s.Pools()),
		Caches:    len(s.Caches()),
	}
	for _, v := range views {
		info.TotalSlots += v.Capacity()
		info.ActiveSlots += v.ActiveCount()
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nSnapshot Information:\n")
	printInfo("  File: %s\n", info.Path)
	printInfo("  Size: %d bytes\n", info.SizeBytes)
	printInfo("  Data arrays: %d\n", info.Arrays)
	printInfo("  Pools: %d\n", info.Pools)
	printInfo("  Caches: %d\n", info.Caches)
	printInfo("  Slots: %d active / %d total\n", info.ActiveSlots, info.TotalSlots)
	return nil
}
