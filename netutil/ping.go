package netutil

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultPingTimeout is used by Ping when no timeout is given.
const DefaultPingTimeout = 5 * time.Second

// maxPingDrain is the most of a response body Ping reads.
const maxPingDrain = 4096

// PingResult describes the response to a Ping.
type PingResult struct {
	StatusCode    int
	StatusMessage string
	// ResponseTime is measured until the response headers arrived.
	ResponseTime time.Duration
	ContentType  string
}

// Ping sends a GET request to rawURL and reports how the server answered. Error status
// codes are a result, not an error. A timeout of 0 means DefaultPingTimeout.
func Ping(ctx context.Context, rawURL string, timeout time.Duration) (*PingResult, error) {
	if _, err := parseURL(rawURL); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultPingTimeout
	}

	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "build request for %s", rawURL)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "ping %s", rawURL)
	}
	elapsed := time.Since(start)
	defer resp.Body.Close()
	// Only a bounded prefix is drained; a longer body is dropped with the connection.
	if _, err := io.CopyN(io.Discard, resp.Body, maxPingDrain); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "read response from %s", rawURL)
	}

	return &PingResult{
		StatusCode:    resp.StatusCode,
		StatusMessage: statusMessage(resp),
		ResponseTime:  elapsed,
		ContentType:   resp.Header.Get("Content-Type"),
	}, nil
}

// statusMessage returns the reason phrase sent by the server, e.g. "Not Found".
func statusMessage(resp *http.Response) string {
	if _, msg, ok := strings.Cut(resp.Status, " "); ok && msg != "" {
		return msg
	}
	return http.StatusText(resp.StatusCode)
}

func parseURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidURL, "%q: %v", rawURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.Wrapf(ErrInvalidURL, "%q", rawURL)
	}
	return u, nil
}
