package dataset

import "errors"

var ErrDatasetIDRequired = errors.New("dataset id is required")
var ErrAuthorRequired = errors.New("author is required")
var ErrDocumentRequired = errors.New("document is required")
var ErrPatchRequired = errors.New("patch is required")
var ErrInvalidDocument = errors.New("document failed validation")
var ErrInvalidPatch = errors.New("patch is not valid JSON")
