package common

import (
	"errors"
	"fmt"
)

// InconsistencyError reports a blob/record pair that was left out of sync.
// Kind is ErrorOrphanedBlob or ErrorPartialDelete, Err is the backend failure
// that interrupted the second phase.
type InconsistencyError struct {
	Kind       error
	BlobKey    string
	FileID     string
	RolledBack bool
	Err        error
}

func (e *InconsistencyError) Error() string {
	msg := fmt.Sprintf("%v (blob_key=%s", e.Kind, e.BlobKey)
	if e.FileID != "" {
		msg += " file_id=" + e.FileID
	}
	if e.RolledBack {
		msg += " rolled_back=true"
	}
	return msg + "): " + e.Err.Error()
}

// Unwrap exposes both the inconsistency kind and the underlying failure.
func (e *InconsistencyError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// AsInconsistency returns the InconsistencyError in err's chain, if any.
func AsInconsistency(err error) (*InconsistencyError, bool) {
	var ie *InconsistencyError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}
