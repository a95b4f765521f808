package domain

import "errors"

var ErrDatasetNotFound = errors.New("dataset not found")
var ErrDatasetIDRequired = errors.New("dataset id is required")
var ErrClassIDRequired = errors.New("class id is required")
var ErrAuthorRequired = errors.New("author is required")
var ErrInvalidName = errors.New("name must be between 1 and 100 characters")
var ErrInvalidMBID = errors.New("recording id is not a valid mbid")
