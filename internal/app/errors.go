package app

import (
	"errors"

	"github.com/Guilhem-Bonnet/metro-cards/internal/ports"
)

var ErrNotFound = ports.ErrNotFound

// ErrStorageUnavailable : le stockage durable n'a pas pu être ouvert, la sélection reste en mémoire.
var ErrStorageUnavailable = errors.New("durable storage unavailable")

const (
	CodeNetworkError     = "network_error"
	CodeHTTPStatus       = "http_status"
	CodeMalformedPayload = "malformed_payload"
)

// CodedError porte un code d'erreur stable (logs, métriques).
type CodedError struct {
	Code    string
	Message string
	Err     error
}

func (e *CodedError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *CodedError) Unwrap() error { return e.Err }

// ErrorCode renvoie le code d'un CodedError, ou "" sinon.
func ErrorCode(err error) string {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ""
}

func classifyFetchError(err error) *CodedError {
	var statusErr *ports.StatusError
	if errors.As(err, &statusErr) {
		return &CodedError{Code: CodeHTTPStatus, Message: "schedule request failed", Err: err}
	}
	return &CodedError{Code: CodeNetworkError, Message: "schedule request failed", Err: err}
}
