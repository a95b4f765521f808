package main

import (
	"os"

	"github.com/osvaldoandrade/datasetdb/pkg/datasetdb"
)

func main() {
	os.Exit(datasetdb.Execute())
}
