package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitMiddleware(t *testing.T) {
	const limit = 50
	detector := NewSuspiciousActivityDetector(limit)
	h := RateLimitMiddleware(nil, detector)(okHandler())

	ip := "192.168.1.100"
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = ip + ":1234"

	for i := 0; i < limit; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	other := httptest.NewRequest(http.MethodGet, "/test", nil)
	other.RemoteAddr = "192.168.1.101:1234"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code, "limits are per IP")

	detector.mu.Lock()
	defer detector.mu.Unlock()
	assert.Equal(t, limit+1, detector.requestCountByIP[ip])
}

func TestNewSuspiciousActivityDetector_DefaultLimit(t *testing.T) {
	assert.Equal(t, RateLimitPerWindow, NewSuspiciousActivityDetector(0).limit)
}
