package munge

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/munge/munge/internal/config"
	"github.com/munge/munge/internal/engine"
	"github.com/munge/munge/internal/report"
	"github.com/munge/munge/internal/stages"
	"github.com/munge/munge/internal/table"
	"github.com/munge/munge/internal/wordlist"
)

const defaultMaxPlans = 1 << 20

var (
	flagWordlist       string
	flagOutput         string
	flagLevel          int
	flagRules          []string
	flagNoDefaultRules bool
	flagMaxPlans       int
	flagEnable         string
	flagDisable        string
	flagInclude        string
	flagExclude        string
	flagSkipEmpty      bool
	flagSort           bool
	flagStats          bool
)

func init() {
	cmd := &cobra.Command{
		Use:     "run",
		Aliases: []string{"mutate"},
		Short:   "Mutate a wordlist",
		Args:    cobra.NoArgs,
		RunE:    runMutate,
	}
	addRunFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func addTableFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&flagLevel, "level", "l", table.MinLevel, fmt.Sprintf("munge level %d-%d; higher levels add substitution rules", table.MinLevel, table.MaxLevel))
	cmd.Flags().StringArrayVar(&flagRules, "rule", nil, "extra substitution rule from=to (repeatable), e.g. --rule t=7")
	cmd.Flags().BoolVar(&flagNoDefaultRules, "no-default-rules", false, "ignore the built-in rules; use only --rule / config rules")
	cmd.Flags().IntVar(&flagMaxPlans, "max-plans", 0, fmt.Sprintf("refuse tables with more substitution plans than this (default %d)", defaultMaxPlans))
}

func addRunFlags(cmd *cobra.Command) {
	addTableFlags(cmd)
	cmd.Flags().StringVarP(&flagWordlist, "wordlist", "w", "", "path to the wordlist to munge (default stdin)")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "path to the output file (default stdout)")
	cmd.Flags().StringVar(&flagEnable, "enable", "", "only run these stages (comma-separated IDs)")
	cmd.Flags().StringVar(&flagDisable, "disable", "", "disable these stages (comma-separated IDs)")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated globs; only mutate matching words")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated globs; skip matching words")
	cmd.Flags().BoolVar(&flagSkipEmpty, "skip-empty", false, "drop empty lines instead of failing on them (whitespace-only lines are kept)")
	cmd.Flags().BoolVar(&flagSort, "sort", false, "sort output byte-wise")
	cmd.Flags().BoolVar(&flagStats, "stats", false, "print per-stage statistics to stderr")
}

// tableConfig resolves the table-related settings: CLI > local > global.
func tableConfig(cmd *cobra.Command, lcfg, gcfg config.FileConfig) (engine.Config, error) {
	var cfg engine.Config
	specs := pickStrings(flagRules, lcfg.Rules, gcfg.Rules)
	rules, err := table.ParseRules(specs)
	if err != nil {
		return cfg, err
	}
	cfg.Level, err = resolveLevel(cmd, lcfg, gcfg)
	if err != nil {
		return cfg, err
	}
	cfg.Rules = rules
	cfg.NoDefaultRules = pickBool(flagNoDefaultRules, lcfg.NoDefaultRules, gcfg.NoDefaultRules)
	cfg.MaxPlans = pickInt(flagMaxPlans, lcfg.MaxPlans, gcfg.MaxPlans)
	if cfg.MaxPlans == 0 {
		cfg.MaxPlans = defaultMaxPlans
	}
	return cfg, nil
}

// resolveLevel validates whichever source sets the level. Zero is only the
// engine's "unset" value and is rejected when given explicitly.
func resolveLevel(cmd *cobra.Command, lcfg, gcfg config.FileConfig) (int, error) {
	switch {
	case cmd.Flags().Changed("level"):
		return flagLevel, table.CheckLevel(flagLevel)
	case lcfg.Level != nil:
		return *lcfg.Level, table.CheckLevel(*lcfg.Level)
	case gcfg.Level != nil:
		return *gcfg.Level, table.CheckLevel(*gcfg.Level)
	}
	return table.MinLevel, nil
}

func runMutate(cmd *cobra.Command, _ []string) error {
	lcfg, gcfg, err := loadConfigs()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cfg, err := tableConfig(cmd, lcfg, gcfg)
	if err != nil {
		return err
	}
	cfg.EnableStages = pickString(flagEnable, lcfg.Enable, gcfg.Enable)
	cfg.DisableStages = pickString(flagDisable, lcfg.Disable, gcfg.Disable)
	cfg.IncludeGlobs = pickString(flagInclude, lcfg.Include, gcfg.Include)
	cfg.ExcludeGlobs = pickString(flagExclude, lcfg.Exclude, gcfg.Exclude)
	cfg.SkipEmpty = pickBool(flagSkipEmpty, lcfg.SkipEmpty, gcfg.SkipEmpty)
	cfg.Threads = pickInt(flagThreads, lcfg.Threads, gcfg.Threads)
	sorted := pickBool(flagSort, lcfg.Sort, gcfg.Sort)

	errOut := cmd.ErrOrStderr()
	tty := isTerminal(errOut)
	noColor := pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor) || !tty
	log := newLogger(errOut, noColor)

	log.WithField("source", sourceName(flagWordlist)).Debug("reading wordlist")
	var words []string
	if wordlist.IsStdio(flagWordlist) {
		words, err = wordlist.ReadWords(cmd.InOrStdin())
	} else {
		words, err = wordlist.ReadFile(flagWordlist)
	}
	if err != nil {
		return fmt.Errorf("read wordlist: %w", err)
	}

	total := len(words)
	done := 0
	if tty && total > 0 {
		cfg.Progress = func() {
			done++
			if done%100 == 0 || done == total {
				pct := float64(done) / float64(total) * 100
				_, _ = fmt.Fprintf(errOut, "\r[%d/%d] %.0f%%", done, total, pct)
			}
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	res, err := engine.Run(ctx, cfg, words)
	if done > 0 {
		_, _ = fmt.Fprintln(errOut)
	}
	if err != nil {
		return fmt.Errorf("mutate: %w", err)
	}
	log.WithFields(logrus.Fields{
		"classes": res.Classes,
		"plans":   res.Plans,
		"threads": cfg.Threads,
	}).Debug("substitution table ready")

	out := res.Variants.Slice()
	if sorted {
		out = res.Variants.Sorted()
	}
	if wordlist.IsStdio(flagOutput) {
		err = wordlist.WriteWords(cmd.OutOrStdout(), out)
	} else {
		err = wordlist.WriteFile(flagOutput, out)
	}
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	log.WithFields(logrus.Fields{
		"words":    res.Words,
		"skipped":  res.Skipped,
		"variants": res.Variants.Len(),
		"duration": res.Duration.String(),
	}).Info("wordlist munged")

	if flagStats {
		if err := report.PrintStats(errOut, res, stages.IDs(), report.PrintOptions{NoColor: noColor}); err != nil {
			return err
		}
	}
	return nil
}

func sourceName(path string) string {
	if wordlist.IsStdio(path) {
		return "stdin"
	}
	return path
}
