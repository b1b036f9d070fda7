// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestLoggerMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		status     int
		wantCalled bool
	}{
		{
			name:       "regular request passes through",
			path:       "/livez",
			status:     http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "error status is captured",
			path:       "/readyz",
			status:     http.StatusServiceUnavailable,
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(tt.status)
			})

			handler := RequestLoggerMiddleware()(next)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCalled, called)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestResponseWriterCapturesStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	ww := &responseWriter{ResponseWriter: rec}

	ww.WriteHeader(http.StatusNotFound)
	n, err := ww.Write([]byte("not found"))

	assert.NoError(t, err)
	assert.Equal(t, 9, n)
	assert.Equal(t, http.StatusNotFound, ww.statusCode)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
