package munge

import (
	"fmt"

	semver "github.com/blang/semver/v4"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the munge version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "munge", displayVersion(version))
			return err
		},
	})
}

// displayVersion normalizes a build version such as "1.2" or "v1.2.3" to
// "v1.2.3"; anything that is not semver is printed unchanged.
func displayVersion(v string) string {
	ver, err := semver.ParseTolerant(v)
	if err != nil {
		return v
	}
	return "v" + ver.String()
}
