package fiber

type QueryRunResponse struct {
	ID            string `json:"id"`
	QueryName     string `json:"query_name"`
	RequestedAt   string `json:"requested_at" example:"2025-03-01T11:00:00Z"`
	URL           string `json:"url"`
	StatusCode    int    `json:"status_code,omitempty"`
	ElapsedMs     int64  `json:"elapsed_ms"`
	RequestID     string `json:"request_id,omitempty"`
	CorrelationID string `json:"correlation_id,omitempty"`
	Succeeded     bool   `json:"succeeded"`
	ErrorKind     string `json:"error_kind,omitempty"`
	ErrorMessage  string `json:"error_message,omitempty"`
	RowCount      int    `json:"row_count"`
}

type QueryRunsResponse struct {
	Runs []QueryRunResponse `json:"runs"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_limit"`
	Message string `json:"message,omitempty" example:"invalid limit"`
}
