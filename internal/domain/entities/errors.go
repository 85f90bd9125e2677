package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrReferenceNeverExisted means the path is absent from history and from disk.
	ErrReferenceNeverExisted = errors.New("referenced path never existed")
	// ErrContentUnavailable means the tracked line(s) cannot be read at the anchor revision.
	ErrContentUnavailable = errors.New("original content unavailable")
	// ErrTargetDeletedUpstream means the file was deleted before line tracking could start.
	ErrTargetDeletedUpstream = errors.New("file has been deleted")
	// ErrMalformedHistoryRecord means a change-log line matched no known grammar.
	ErrMalformedHistoryRecord = errors.New("malformed history record")
	// ErrChangeTypeExtraction means the last reached record has an unknown change letter.
	ErrChangeTypeExtraction = errors.New("could not extract change type")
	// ErrUnsupportedReference means the reference text could not be parsed.
	ErrUnsupportedReference = errors.New("unsupported reference")
	// ErrUnknownBackend means no history backend is registered under the requested name.
	ErrUnknownBackend = errors.New("unknown history backend")
)

// TrackingError ties one of the sentinel errors above to the reference it happened on.
type TrackingError struct {
	Kind      error
	Reference string
	Detail    string
	cause     error
}

// NewTrackingError creates a TrackingError of the given kind.
func NewTrackingError(kind error, reference, detail string) *TrackingError {
	return &TrackingError{Kind: kind, Reference: reference, Detail: detail}
}

// WithCause attaches the underlying error.
func (it *TrackingError) WithCause(cause error) *TrackingError {
	it.cause = cause
	return it
}

func (it *TrackingError) Error() string {
	msg := fmt.Sprintf("%s: %s", it.Reference, it.Kind)
	if it.Detail != "" {
		msg += " (" + it.Detail + ")"
	}
	if it.cause != nil {
		msg += ": " + it.cause.Error()
	}
	return msg
}

// Is lets errors.Is match on the sentinel kind.
func (it *TrackingError) Is(target error) bool {
	return errors.Is(it.Kind, target)
}

func (it *TrackingError) Unwrap() error {
	return it.cause
}
