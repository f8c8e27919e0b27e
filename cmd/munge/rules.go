package munge

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/munge/munge/internal/engine"
	"github.com/munge/munge/internal/report"
	"github.com/munge/munge/internal/stages"
)

func init() {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Show the effective substitution table",
		Args:  cobra.NoArgs,
		RunE:  runRules,
	}
	addTableFlags(rulesCmd)
	rootCmd.AddCommand(rulesCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "stages",
		Short: "List mutation stage IDs in run order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, id := range stages.IDs() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), id); err != nil {
					return err
				}
			}
			return nil
		},
	})
}

func runRules(cmd *cobra.Command, _ []string) error {
	lcfg, gcfg, err := loadConfigs()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cfg, err := tableConfig(cmd, lcfg, gcfg)
	if err != nil {
		return err
	}
	t, err := engine.BuildTable(cfg)
	if err != nil {
		return err
	}
	return report.PrintRules(cmd.OutOrStdout(), t)
}
