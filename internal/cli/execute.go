package cli

import (
	"errors"

	"github.com/spf13/pflag"
)

// Execute runs the root command and maps any failure onto the process exit
// code contract: 0 success, 1 internal, 2 validation, 3 not found.
func Execute() int {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		exitErr := NormalizeError(err)
		_ = writeCLIError(cmd.ErrOrStderr(), exitErr, jsonOutputRequested(cmd.PersistentFlags()))
		return exitErr.Code
	}
	return 0
}

// jsonOutputRequested reads the root --json persistent flag so errors render
// in the same format the command's output would have used.
func jsonOutputRequested(flags *pflag.FlagSet) bool {
	if flags == nil || flags.Lookup("json") == nil {
		return false
	}
	value, err := flags.GetBool("json")
	if err != nil {
		return false
	}
	return value
}
