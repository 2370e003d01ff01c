// Package http provides the outbound HTTP client configuration.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient creates a client for calls to external services.
//
// Settings:
//   - Proxy: honours HTTP_PROXY and friends
//   - Dialer.Timeout: TCP connect timeout, shorter than the default
//   - MaxIdleConns / IdleConnTimeout: bounded connection reuse
//   - TLSHandshakeTimeout: maximum HTTPS handshake time
//   - Client.Timeout: whole-request timeout supplied by the caller
//
// http.DefaultClient has no timeout, so callers always use this instead.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
