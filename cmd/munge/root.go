package munge

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flagThreads int
	flagNoColor bool
	flagVerbose bool
	flagConfig  string

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the munge CLI. Without a subcommand
// it behaves like "munge run".
var rootCmd = &cobra.Command{
	Use:           "munge",
	Short:         "Munge a wordlist into password candidates",
	Long:          "munge expands every word of a wordlist into its leet-speak substitutions and capitalization variants and writes the deduplicated result.",
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runMutate,
}

// Execute runs the munge CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ./.munge.yml, then $XDG_CONFIG_HOME/munge/config.yml)")
	addRunFlags(rootCmd)
}

func newLogger(w io.Writer, noColor bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:    noColor,
		DisableTimestamp: true,
	})
	log.SetLevel(logrus.InfoLevel)
	if flagVerbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
