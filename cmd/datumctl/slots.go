package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/datumkit/dump"
)

func init() {
	rootCmd.AddCommand(newSlotsCmd())
}

func newSlotsCmd() *cobra.Command {
	var maxBytes int

	cmd := &cobra.Command{
		Use:   "slots <snapshot> <array-name>",
		Short: "List the live slots of one data array",
		Long: `The slots command walks the liveness bit array of a named data array
and prints each live slot's index, handle, and a payload preview.

Example:
  datumctl slots game.dmp players
  datumctl slots game.dmp players --bytes 32 --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSlots(args, maxBytes)
		},
	}
	cmd.Flags().IntVar(&maxBytes, "bytes", 16, "Payload bytes to show per slot")
	return cmd
}

type slotInfo struct {
	Index   int    `json:"index"`
	Handle  string `json:"handle"`
	Payload string `json:"payload_hex"`
}

func runSlots(args []string, maxBytes int) error {
	path, name := args[0], args[1]

	s, err := dump.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer s.Close()

	views, err := s.Arrays()
	if err != nil {
		return fmt.Errorf("failed to scan snapshot: %w", err)
	}

	var view *dump.ArrayView
	for _, v := range views {
		if v.Name() == name {
			view = v
			break
		}
	}
	if view == nil {
		return fmt.Errorf("no data array named %q in %s", name, path)
	}
	printVerbose("Array %q: %d/%d slots active\n", name, view.ActiveCount(), view.Capacity())

	var infos []slotInfo
	for it := view.Slots(); ; {
		slot, err := it.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		preview := slot.Payload
		if len(preview) > maxBytes {
			preview = preview[:maxBytes]
		}
		infos = append(infos, slotInfo{
			Index:   slot.Index,
			Handle:  slot.Handle.String(),
			Payload: hex.EncodeToString(preview),
		})
	}

	if jsonOut {
		return printJSON(infos)
	}

	fmt.Fprintf(os.Stdout, "\n%-8s %-12s %s\n", "INDEX", "HANDLE", "PAYLOAD")
	for _, in := range infos {
		fmt.Fprintf(os.Stdout, "%-8d %-12s %s\n", in.Index, in.Handle, in.Payload)
	}
	printInfo("\n%d live slot(s)\n", len(infos))
	return nil
}
