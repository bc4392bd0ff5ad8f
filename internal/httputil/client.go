// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP transport shared by the Zotero and
// medRxiv clients. Requests are made once; failures are returned to the
// caller without retry.
package httputil

import (
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/pdiddy/zotero-tools/pkg/types"
)

// DefaultUserAgent is sent when HTTPConfig.UserAgent is empty.
const DefaultUserAgent = "zotero-tools/0.1"

const maxBodySnippet = 512

// NewClient returns a resty client configured with the timeout and
// User-Agent from cfg.
func NewClient(cfg types.HTTPConfig) *resty.Client {
	c := resty.New()
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	c.SetHeader("User-Agent", ua)
	return c
}

// StatusError is returned when a remote API answers with a non-2xx status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s returned HTTP %d", e.Method, e.URL, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// CheckResponse returns a *StatusError when resp is not a 2xx response.
func CheckResponse(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	e := &StatusError{StatusCode: resp.StatusCode(), Body: bodySnippet(resp.Body())}
	if req := resp.Request; req != nil {
		e.Method = req.Method
		e.URL = req.URL
	}
	return e
}

func bodySnippet(body []byte) string {
	if len(body) > maxBodySnippet {
		body = body[:maxBodySnippet]
	}
	return strings.TrimSpace(string(body))
}
