package fiber

type EnrollmentRowResponse struct {
	Branch string `json:"branch" example:"CENTRO"`
	Count  int64  `json:"count" example:"150"`
}

type QueryInfoResponse struct {
	URL           string  `json:"url"`
	StatusCode    int     `json:"status_code" example:"200"`
	ElapsedSecs   float64 `json:"elapsed_seconds" example:"0.842"`
	RequestedAt   string  `json:"requested_at" example:"2025-03-01T11:00:00Z"`
	RequestID     string  `json:"request_id,omitempty"`
	CorrelationID string  `json:"correlation_id,omitempty"`
}

type EnrollmentsResponse struct {
	Total     int64                   `json:"total" example:"150"`
	FetchedAt string                  `json:"fetched_at" example:"2025-03-01T11:00:00Z"`
	Rows      []EnrollmentRowResponse `json:"rows"`
	Query     QueryInfoResponse       `json:"query"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"remote_query_failed"`
	Message string `json:"message,omitempty" example:"HTTP 500 running SMP.0025"`
}
