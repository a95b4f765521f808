package datasetdbsdk

import "errors"

var (
	ErrDBPathRequired = errors.New("datasetdb-sdk: db path required")
	ErrClosed         = errors.New("datasetdb-sdk: client is closed")
	ErrNotFound       = errors.New("datasetdb-sdk: dataset not found")
)
