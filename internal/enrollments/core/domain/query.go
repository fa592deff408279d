package domain

import (
	"errors"
	"fmt"
	"time"
)

// QueryMetadata describes a single remote call. It is built once by the
// client and handed out by value.
type QueryMetadata struct {
	Timestamp       time.Time
	Method          string
	URL             string
	StatusCode      int
	Elapsed         time.Duration
	RequestHeaders  map[string]string
	ResponseHeaders map[string]string
	RequestID       string            // generated and sent as X-Request-Id
	CorrelationIDs  map[string]string // ids echoed back by the server
	ErrorBody       string            // truncated body, failures only
}

// CorrelationID returns the first correlation/request id echoed back by the
// server, or the id we sent when the server echoed nothing.
func (m QueryMetadata) CorrelationID() string {
	for _, k := range CorrelationHeaders {
		if v, ok := m.CorrelationIDs[k]; ok && v != "" {
			return v
		}
	}
	return m.RequestID
}

// CorrelationHeaders are copied into QueryMetadata.CorrelationIDs when present.
var CorrelationHeaders = []string{"X-Request-Id", "X-Correlation-Id", "request-id", "correlation-id"}

// MaxErrorBody bounds the response snippet kept on failures.
const MaxErrorBody = 2000

var ErrRemoteQuery = errors.New("remote query failed")

type RemoteQueryErrorKind string

const (
	KindTransport       RemoteQueryErrorKind = "transport"
	KindStatus          RemoteQueryErrorKind = "status"
	KindInvalidJSON     RemoteQueryErrorKind = "invalid_json"
	KindUnexpectedShape RemoteQueryErrorKind = "unexpected_shape"
)

// RemoteQueryError is the only error kind returned by the remote client.
type RemoteQueryError struct {
	Kind       RemoteQueryErrorKind
	Cause      string
	StatusCode int
	Body       string
	Meta       QueryMetadata
	Err        error
}

func (e *RemoteQueryError) Error() string {
	msg := e.Cause
	if e.Body != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Body)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *RemoteQueryError) Unwrap() error { return e.Err }

func (e *RemoteQueryError) Is(target error) bool { return target == ErrRemoteQuery }

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
