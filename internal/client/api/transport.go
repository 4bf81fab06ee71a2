package api

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/schooldesk/internal/common"
	"github.com/dmitrijs2005/schooldesk/internal/logging"
	"github.com/google/uuid"
)

// LoggingTransport stamps each request with a request id and logs the
// exchange at debug level.
type LoggingTransport struct {
	next   http.RoundTripper
	logger logging.Logger
}

func NewLoggingTransport(next http.RoundTripper, l logging.Logger) *LoggingTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &LoggingTransport{next: next, logger: l.With("module", "http")}
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if req.Header.Get(common.RequestIDHeaderName) == "" {
		req = req.Clone(ctx)
		req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	}
	reqID := req.Header.Get(common.RequestIDHeaderName)

	t.logger.Debug(ctx, "api request", "method", req.Method, "url_path", req.URL.Path, "request_id", reqID)
	start := time.Now()

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		t.logger.Warn(ctx, "api request failed", "url_path", req.URL.Path, "request_id", reqID, "error", err)
		return nil, err
	}

	t.logger.Debug(ctx, "api response", "status", resp.StatusCode, "request_id", reqID, "elapsed", time.Since(start))
	return resp, nil
}
