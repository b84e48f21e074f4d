package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hkroes/aquanet/pkg/model"
)

var infoCmd = &cobra.Command{
	Use:   "info <config.toml>",
	Short: "Print a summary of a model bundle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := model.Read(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "model:     %s\n", m.Name)
		fmt.Fprintf(out, "starttime: %s\n", m.Config.Starttime.Format(time.RFC3339))
		fmt.Fprintf(out, "endtime:   %s\n", m.Config.Endtime.Format(time.RFC3339))
		fmt.Fprintf(out, "nodes:     %d\n", m.NodeCount())
		fmt.Fprintf(out, "edges:     %d\n", m.EdgeCount())
		for _, t := range m.Tables() {
			if t.Rows == 0 {
				continue
			}
			fmt.Fprintf(out, "table %-32s %d row(s)\n", t.Name, t.Rows)
		}
		return nil
	},
}
