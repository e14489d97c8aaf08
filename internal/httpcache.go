/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
)

// NewCachedHttpClient returns an http.Client that caches responses in cache
// for maxAge regardless of what the origin says. A nil cache returns an
// uncached client. Every request carries our User-Agent.
func NewCachedHttpClient(cache httpcache.Cache, maxAge time.Duration) *http.Client {
	override := &HeaderOverrideTransport{
		wrappedRT: http.DefaultTransport,
		Request: func(req *http.Request) {
			if req.Header.Get("User-Agent") == "" {
				req.Header.Set("User-Agent", UserAgent)
			}
		},
	}
	if cache == nil {
		return &http.Client{Transport: override}
	}

	// we have to inject our own header overrides here in order to override
	// server responses that might indicate caching shouldn't be done
	override.Response = func(resp *http.Response) error {
		resp.Header.Del("Pragma")
		resp.Header.Del("Expires")
		resp.Header.Del("Cache-Control")
		resp.Header.Set("Cache-Control", fmt.Sprintf("public, max-age=%d",
			int(maxAge/time.Second)))
		return nil
	}
	hc := httpcache.NewTransport(cache)
	hc.Transport = override

	return &http.Client{Transport: hc}
}

type HeaderOverrideTransport struct {
	Request  func(req *http.Request)
	Response func(resp *http.Response) error

	// Underlying RoundTripper (e.g. default transport or another decorator)
	wrappedRT http.RoundTripper
}

func (t *HeaderOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so we don't stomp on the caller's original
	req2 := req.Clone(req.Context())
	if t.Request != nil {
		t.Request(req2)
	}

	resp, err := t.wrappedRT.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if t.Response != nil {
		if err := t.Response(resp); err != nil {
			return nil, err
		}
	}
	return resp, nil
}
