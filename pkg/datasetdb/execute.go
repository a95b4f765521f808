package datasetdb

import "github.com/osvaldoandrade/datasetdb/internal/cli"

// Execute runs the datasetdb CLI entrypoint.
func Execute() int {
	return cli.Execute()
}
