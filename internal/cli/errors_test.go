package cli

import (
	"errors"
	"fmt"
	"testing"

	datasetapp "github.com/osvaldoandrade/datasetdb/internal/app/dataset"
	"github.com/osvaldoandrade/datasetdb/internal/domain"
)

func TestNormalizeError(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
		wantKind ErrorKind
	}{
		{err: domain.ErrDatasetNotFound, wantCode: ExitNotFound, wantKind: KindNotFound},
		{err: datasetapp.ErrInvalidDocument, wantCode: ExitInvalid, wantKind: KindValidation},
		{err: fmt.Errorf("%w: missing name", datasetapp.ErrInvalidDocument), wantCode: ExitInvalid, wantKind: KindValidation},
		{err: datasetapp.ErrInvalidPatch, wantCode: ExitInvalid, wantKind: KindValidation},
		{err: datasetapp.ErrDocumentRequired, wantCode: ExitInvalid, wantKind: KindValidation},
		{err: datasetapp.ErrPatchRequired, wantCode: ExitInvalid, wantKind: KindValidation},
		{err: datasetapp.ErrDatasetIDRequired, wantCode: ExitInvalid, wantKind: KindValidation},
		{err: datasetapp.ErrAuthorRequired, wantCode: ExitInvalid, wantKind: KindValidation},
		{err: domain.ErrInvalidName, wantCode: ExitInvalid, wantKind: KindValidation},
		{err: domain.ErrInvalidMBID, wantCode: ExitInvalid, wantKind: KindValidation},
		{err: errors.New("boom"), wantCode: ExitInternal, wantKind: KindInternal},
	}

	for _, tt := range tests {
		got := NormalizeError(tt.err)
		if got.Code != tt.wantCode {
			t.Fatalf("expected code %d, got %d for %v", tt.wantCode, got.Code, tt.err)
		}
		if got.Kind != tt.wantKind {
			t.Fatalf("expected kind %s, got %s for %v", tt.wantKind, got.Kind, tt.err)
		}
	}
}

func TestExitCode(t *testing.T) {
	if ExitCode(nil) != 0 {
		t.Fatalf("expected ExitCode(nil) == 0")
	}

	custom := ExitError{Code: 9, Kind: KindInternal, Message: "custom"}
	if ExitCode(custom) != 9 {
		t.Fatalf("expected ExitCode(custom) == 9")
	}
}
