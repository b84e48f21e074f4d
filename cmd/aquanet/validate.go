package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hkroes/aquanet/pkg/model"
)

var validateCmd = &cobra.Command{
	Use:   "validate <config.toml>",
	Short: "Run the full topology validation pass over a model bundle",
	Long: `Validate loads a model bundle and runs every validation pass: node type
validity, table node ID validity, cross-reference consistency, and degree
bounds. All violations are printed at once so the model can be fixed in a
single edit round.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := model.Read(args[0])
		if err != nil {
			return err
		}
		result := m.Validate()
		if result.Valid {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (%d nodes, %d edges)\n", args[0], m.NodeCount(), m.EdgeCount())
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d violation(s)\n", args[0], len(result.Violations))
		for _, v := range result.Violations {
			fmt.Fprintf(cmd.OutOrStdout(), "  [%s] %s\n", v.Kind, v.Message)
		}
		os.Exit(exitInvalid)
		return nil
	},
}
