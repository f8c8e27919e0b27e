package munge

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munge/munge/internal/config"
	"github.com/munge/munge/internal/stages"
	"github.com/munge/munge/internal/table"
)

func resetFlags(t *testing.T) {
	t.Helper()
	flagThreads, flagNoColor, flagVerbose, flagConfig = 0, false, false, ""
	flagWordlist, flagOutput, flagLevel, flagRules = "", "", table.MinLevel, nil
	flagNoDefaultRules, flagMaxPlans = false, 0
	flagEnable, flagDisable, flagInclude, flagExclude = "", "", "", ""
	flagSkipEmpty, flagSort, flagStats = false, false, false
	cfgOutput, cfgLevel, cfgRules, cfgThreads = ".munge.yml", 1, nil, 0
	cfgEnable, cfgDisable = "", ""
	cfgSkipEmpty, cfgSort, cfgNoColor, cfgForce = false, false, false, false
	clearChanged(rootCmd)
	// keep user config files out of the way
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

// clearChanged forgets which flags earlier executions set.
func clearChanged(c *cobra.Command) {
	reset := func(f *pflag.Flag) { f.Changed = false }
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		clearChanged(sub)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func lines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestCLI_CatExampleFromStdin(t *testing.T) {
	resetFlags(t)
	out, _, err := execute(t, "cat\n", "run", "--sort", "--no-default-rules", "--rule", "a=4", "--rule", "a=@")
	require.NoError(t, err)
	assert.Equal(t, []string{"CAT", "Cat", "c4t", "c@t", "cat"}, lines(out))
}

func TestCLI_RootRunsMutation(t *testing.T) {
	resetFlags(t)
	out, _, err := execute(t, "cat\nCat\n", "--sort", "--no-default-rules", "--rule", "a=4", "--rule", "a:@", "--threads", "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"C4t", "C@t", "CAT", "Cat", "c4t", "c@t", "cat"}, lines(out))
}

func TestCLI_FileInputAndOutput(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "words.txt")
	outPath := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(in, []byte("oil\r\n"), 0644))

	stdout, _, err := execute(t, "", "run", "-w", in, "-o", outPath, "-l", "1", "--sort")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	b, err := os.ReadFile(outPath)
	require.NoError(t, err)
	got := lines(string(b))
	assert.Len(t, got, 14)
	assert.Contains(t, got, "0!1")
	assert.Contains(t, got, "OIL")
	assert.Contains(t, got, "Oil")
}

func TestCLI_EmptyLineFails(t *testing.T) {
	resetFlags(t)
	out, _, err := execute(t, "cat\n\ndog\n", "run")
	require.Error(t, err)
	assert.ErrorIs(t, err, stages.ErrEmptyInput)
	assert.Contains(t, err.Error(), "word 2")
	assert.Empty(t, out)
}

func TestCLI_SkipEmpty(t *testing.T) {
	resetFlags(t)
	out, _, err := execute(t, "cat\n\ndog\n", "run", "--skip-empty", "--enable", "identity", "--sort")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog"}, lines(out))
}

func TestCLI_InvalidLevel(t *testing.T) {
	resetFlags(t)
	_, _, err := execute(t, "cat\n", "run", "-l", "9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "level out of range")
}

func TestCLI_LevelZeroRejected(t *testing.T) {
	resetFlags(t)
	_, _, err := execute(t, "cat\n", "run", "-l", "0")
	require.Error(t, err)
	assert.ErrorIs(t, err, table.ErrInvalidLevel)

	resetFlags(t)
	_, _, err = execute(t, "", "rules", "--level", "0")
	assert.ErrorIs(t, err, table.ErrInvalidLevel)
}

func TestCLI_ConfigLevelZeroRejected(t *testing.T) {
	resetFlags(t)
	p := filepath.Join(t.TempDir(), "munge.yml")
	require.NoError(t, os.WriteFile(p, []byte("level: 0\n"), 0644))

	_, _, err := execute(t, "cat\n", "run", "--config", p)
	require.Error(t, err)
	assert.ErrorIs(t, err, table.ErrInvalidLevel)

	// the flag overrides the file
	resetFlags(t)
	out, _, err := execute(t, "cat\n", "run", "--config", p, "-l", "1", "--sort")
	require.NoError(t, err)
	assert.Equal(t, []string{"CAT", "Cat", "c4t", "c@t", "cat"}, lines(out))
}

func TestCLI_BadRule(t *testing.T) {
	resetFlags(t)
	_, _, err := execute(t, "cat\n", "run", "--rule", "ab=4")
	require.Error(t, err)
}

func TestCLI_ConfigFile(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	p := filepath.Join(dir, "munge.yml")
	require.NoError(t, os.WriteFile(p, []byte("no_default_rules: true\nrules: [\"a=4\"]\nenable: identity,substitution\nsort: true\n"), 0644))

	out, _, err := execute(t, "cat\n", "run", "--config", p)
	require.NoError(t, err)
	assert.Equal(t, []string{"c4t", "cat"}, lines(out))
}

func TestCLI_Stats(t *testing.T) {
	resetFlags(t)
	_, errOut, err := execute(t, "cat\n", "run", "--stats", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, errOut, "substitution")
	assert.Contains(t, errOut, "Variants: 5")
	assert.Contains(t, errOut, "wordlist munged")
}

func TestCLI_Rules(t *testing.T) {
	resetFlags(t)
	out, _, err := execute(t, "", "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "a 4 @")
	assert.Contains(t, out, "Plans: 216")
}

func TestCLI_Stages(t *testing.T) {
	resetFlags(t)
	out, _, err := execute(t, "", "stages")
	require.NoError(t, err)
	assert.Equal(t, stages.IDs(), lines(out))
}

func TestCLI_ConfigInit(t *testing.T) {
	resetFlags(t)
	p := filepath.Join(t.TempDir(), ".munge.yml")
	_, _, err := execute(t, "", "config", "init", "--output", p, "--level", "3", "--rule", "t=7", "--sort")
	require.NoError(t, err)

	fc, err := config.LoadFile(p)
	require.NoError(t, err)
	require.NotNil(t, fc.Level)
	assert.Equal(t, 3, *fc.Level)
	assert.Equal(t, []string{"t=7"}, fc.Rules)
	require.NotNil(t, fc.Sort)
	assert.True(t, *fc.Sort)

	resetFlags(t)
	_, _, err = execute(t, "", "config", "init", "--output", p)
	assert.Error(t, err, "existing file must not be overwritten without --force")
}

func TestCLI_Version(t *testing.T) {
	resetFlags(t)
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "munge v0.1.0\n", out)
}

func TestDisplayVersion(t *testing.T) {
	assert.Equal(t, "v1.2.0", displayVersion("1.2"))
	assert.Equal(t, "v1.2.3", displayVersion("v1.2.3"))
	assert.Equal(t, "dev", displayVersion("dev"))
}
