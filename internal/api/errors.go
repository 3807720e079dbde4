// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError is returned for any non-2xx backend response. Transport failures
// (no response at all) and body decode failures are ordinary errors, not
// APIErrors, so callers can tell the three apart with errors.As.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// AsAPIError extracts an APIError from err's chain, if there is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// IsUnauthorized reports whether err is a terminal 401 APIError.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// newAPIError builds an APIError from a non-2xx response, extracting a
// human-readable message from the body when one is present.
func newAPIError(resp *http.Response) *APIError {
	return &APIError{Status: resp.StatusCode, Message: errorMessage(resp)}
}

// errorMessage pulls the most useful message out of an error response:
// a JSON "detail" or "message" field, the raw body text, or the status text.
func errorMessage(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(strings.TrimSpace(string(body))) == 0 {
		return http.StatusText(resp.StatusCode)
	}

	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(body))
}
