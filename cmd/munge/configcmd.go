package munge

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/munge/munge/internal/config"
	"github.com/munge/munge/internal/table"
)

var (
	cfgOutput    string
	cfgLevel     int
	cfgRules     []string
	cfgThreads   int
	cfgEnable    string
	cfgDisable   string
	cfgSkipEmpty bool
	cfgSort      bool
	cfgNoColor   bool
	cfgForce     bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .munge.yml with the selected options",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", ".munge.yml", "output file path")
	initCmd.Flags().IntVar(&cfgLevel, "level", table.MinLevel, "munge level")
	initCmd.Flags().StringArrayVar(&cfgRules, "rule", nil, "extra substitution rule from=to (repeatable)")
	initCmd.Flags().IntVar(&cfgThreads, "threads", 0, "worker threads (0=GOMAXPROCS)")
	initCmd.Flags().StringVar(&cfgEnable, "enable", "", "comma-separated stage IDs to enable")
	initCmd.Flags().StringVar(&cfgDisable, "disable", "", "comma-separated stage IDs to disable")
	initCmd.Flags().BoolVar(&cfgSkipEmpty, "skip-empty", false, "drop empty lines by default")
	initCmd.Flags().BoolVar(&cfgSort, "sort", false, "sort output by default")
	initCmd.Flags().BoolVar(&cfgNoColor, "no-color", false, "disable color output by default")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if _, err := table.ForLevel(cfgLevel); err != nil {
		return err
	}
	if _, err := table.ParseRules(cfgRules); err != nil {
		return err
	}
	if _, err := os.Stat(cfgOutput); err == nil && !cfgForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgOutput)
	}

	fc := config.FileConfig{
		Level:     intPtr(cfgLevel),
		Rules:     cfgRules,
		Threads:   intPtr(cfgThreads),
		Enable:    optStrPtr(cfgEnable),
		Disable:   optStrPtr(cfgDisable),
		SkipEmpty: boolPtr(cfgSkipEmpty),
		Sort:      boolPtr(cfgSort),
		NoColor:   boolPtr(cfgNoColor),
	}

	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, b, 0644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", cfgOutput)
	return nil
}

func optStrPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
func boolPtr(v bool) *bool { return &v }
