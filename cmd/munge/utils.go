package munge

import (
	"os"

	"github.com/munge/munge/internal/config"
)

// loadConfigs returns the local and global file configs. An explicit
// --config file replaces the local one.
func loadConfigs() (local, global config.FileConfig, err error) {
	if c, err := config.LoadGlobal(); err == nil {
		global = c
	}
	if flagConfig != "" {
		local, err = config.LoadFile(flagConfig)
		return local, global, err
	}
	wd, _ := os.Getwd()
	if c, err := config.LoadLocal(wd); err == nil {
		local = c
	}
	return local, global, nil
}

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickStrings(cli, local, global []string) []string {
	if len(cli) > 0 {
		return cli
	}
	if len(local) > 0 {
		return local
	}
	return global
}

func pickInt(cli int, local, global *int) int {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}
