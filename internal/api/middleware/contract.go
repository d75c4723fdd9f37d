package middleware

import "time"

type MetricsRecorder interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}
