package domain

import "time"

// QueryRun is the diagnostic trail of one remote query call.
type QueryRun struct {
	ID            string
	QueryName     string
	RequestedAt   time.Time
	URL           string
	StatusCode    int // 0 when no response was received
	ElapsedMs     int64
	RequestID     string
	CorrelationID string
	Succeeded     bool
	ErrorKind     string
	ErrorMessage  string
	RowCount      int
}
