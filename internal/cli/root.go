package cli

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/osvaldoandrade/datasetdb/internal/platform"
)

type RootOptions struct {
	DBPath     string
	JSONOutput bool
	LogLevel   string
	LogFormat  string
	FastDB     bool
}

func newRootCmd() *cobra.Command {
	opts := &RootOptions{
		DBPath:    envDefault("DATASETDB_PATH", "datasets.db"),
		LogLevel:  envDefault("DATASETDB_LOG_LEVEL", "info"),
		LogFormat: envDefault("DATASETDB_LOG_FORMAT", "text"),
		FastDB:    envBoolDefault("DATASETDB_FAST", false),
	}
	cmd := &cobra.Command{
		Use:           "datasetdb",
		Short:         "Classification dataset storage",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_, err := platform.ConfigureLogger(opts.LogLevel, opts.LogFormat, cmd.ErrOrStderr())
			return err
		},
	}

	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", opts.DBPath, "Path to the SQLite database")
	cmd.PersistentFlags().BoolVar(&opts.JSONOutput, "json", false, "Emit JSON output")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", opts.LogFormat, "Log format (text, json)")
	cmd.PersistentFlags().BoolVar(&opts.FastDB, "fast", opts.FastDB, "Relax SQLite durability for faster writes")

	cmd.AddCommand(
		newCreateCmd(opts),
		newUpdateCmd(opts),
		newPatchCmd(opts),
		newGetCmd(opts),
		newListCmd(opts),
		newDeleteCmd(opts),
		newCheckCmd(opts),
	)

	return cmd
}

func envDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envBoolDefault(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
