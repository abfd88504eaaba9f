// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package main

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	apperr "github.com/naranyala/webui-starter/pkg/errors"
)

// defaultHTTPClient is the package-level HTTP client used by bridge commands.
var defaultHTTPClient = &http.Client{
	Timeout: 5 * time.Second,
}

// bridgeClient provides HTTP access to a running bridge.
type bridgeClient struct {
	baseURL string
	http    *http.Client
}

// newBridgeClient creates a client targeting the given host:port address.
func newBridgeClient(addr string) *bridgeClient {
	return &bridgeClient{
		baseURL: "http://" + addr,
		http:    defaultHTTPClient,
	}
}

// getJSON performs a GET request and decodes the JSON response into dest.
// Transport errors are returned unchanged so callers can test isDialError.
// A non-200 answer is decoded as an error value when possible.
func (c *bridgeClient) getJSON(path string, dest any) error {
	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperr.FromIO(err)
	}

	if resp.StatusCode != http.StatusOK {
		var v apperr.Value
		if json.Unmarshal(body, &v) == nil {
			return apperr.New(apperr.KindFor(v.Code()), v)
		}
		return apperr.Internal("bridge returned status " + strconv.Itoa(resp.StatusCode)).WithCause(string(body))
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return apperr.FromSerialization(err)
	}
	return nil
}

// isDialError returns true if err is a net dial error (connection refused, etc.).
func isDialError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Op == "dial"
	}
	return false
}
