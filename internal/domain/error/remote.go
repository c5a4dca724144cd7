package error

import (
	"errors"
	"fmt"
	"net/http"
)

// RemoteErrorKind classifies failures of the remote backup store
type RemoteErrorKind string

// Remote error kinds
const (
	RemoteUnauthorized        RemoteErrorKind = "unauthorized"
	RemoteForbidden           RemoteErrorKind = "forbidden"
	RemoteNotFound            RemoteErrorKind = "not_found"
	RemoteUnprocessableEntity RemoteErrorKind = "unprocessable_entity"
	RemoteRateLimited         RemoteErrorKind = "rate_limited"
	RemoteNetworkUnreachable  RemoteErrorKind = "network_unreachable"
	RemoteUnknown             RemoteErrorKind = "unknown"
)

var remoteMessages = map[RemoteErrorKind]string{
	RemoteUnauthorized:        "Invalid access token. Check the token and its gist scope.",
	RemoteForbidden:           "Access forbidden. The rate limit may be exceeded or the token lacks permissions.",
	RemoteNotFound:            "Backup document not found. It may have been deleted.",
	RemoteUnprocessableEntity: "The backup store rejected the data as invalid.",
	RemoteRateLimited:         "Too many requests. Try again later.",
	RemoteNetworkUnreachable:  "Backup store is unreachable. Check the internet connection.",
	RemoteUnknown:             "Unknown error while talking to the backup store.",
}

// Message returns the human-readable text for the kind
func (k RemoteErrorKind) Message() string {
	if msg, ok := remoteMessages[k]; ok {
		return msg
	}
	return remoteMessages[RemoteUnknown]
}

// RemoteError is a classified failure of a remote backup call
type RemoteError struct {
	Kind       RemoteErrorKind
	StatusCode int
	Operation  string
	Err        error
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	msg := e.Kind.Message()
	if e.Kind == RemoteUnknown && e.StatusCode != 0 {
		msg = fmt.Sprintf("Backup store error: %d", e.StatusCode)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is reports ErrNetwork for every kind and ErrAuth for rejected tokens
func (e *RemoteError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return true
	case ErrAuth:
		return e.Kind == RemoteUnauthorized
	}
	return false
}

// LogFields returns a map of fields for structured logging
func (e *RemoteError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type":  "remote_error",
		"kind":        string(e.Kind),
		"status_code": e.StatusCode,
		"operation":   e.Operation,
		"error_code":  CodeRemote,
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}
	return fields
}

// NewRemoteError creates a classified remote error
func NewRemoteError(kind RemoteErrorKind, statusCode int, operation string, err error) error {
	return &RemoteError{Kind: kind, StatusCode: statusCode, Operation: operation, Err: err}
}

// ClassifyStatus maps a transport status code onto a remote error kind
func ClassifyStatus(status int) RemoteErrorKind {
	switch status {
	case http.StatusUnauthorized:
		return RemoteUnauthorized
	case http.StatusForbidden:
		return RemoteForbidden
	case http.StatusNotFound:
		return RemoteNotFound
	case http.StatusUnprocessableEntity:
		return RemoteUnprocessableEntity
	case http.StatusTooManyRequests:
		return RemoteRateLimited
	default:
		return RemoteUnknown
	}
}

// RemoteErrorKindOf extracts the kind from err, or "" when err is not a remote error
func RemoteErrorKindOf(err error) RemoteErrorKind {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.Kind
	}
	return ""
}
