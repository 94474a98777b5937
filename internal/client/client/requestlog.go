package client

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/affiliate/internal/common"
	"github.com/dmitrijs2005/affiliate/internal/logging"
	"github.com/google/uuid"
)

// loggingTransport stamps every request with a request id and logs its
// outcome. Headers are never logged.
type loggingTransport struct {
	base   http.RoundTripper
	logger logging.Logger
}

func newLoggingTransport(base http.RoundTripper, logger logging.Logger) *loggingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &loggingTransport{base: base, logger: logger}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	r := req.Clone(ctx)

	requestID := r.Header.Get(common.RequestIDHeaderName)
	if requestID == "" {
		requestID = uuid.NewString()
		r.Header.Set(common.RequestIDHeaderName, requestID)
	}

	log := t.logger.With("request_id", requestID, "method", r.Method, "path", r.URL.Path)
	start := time.Now()

	resp, err := t.base.RoundTrip(r)
	elapsed := time.Since(start)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err, "duration", elapsed)
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		log.Warn(ctx, "request rejected", "status", resp.StatusCode, "duration", elapsed)
	} else {
		log.Debug(ctx, "request completed", "status", resp.StatusCode, "duration", elapsed)
	}
	return resp, nil
}
