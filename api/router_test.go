package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRouter_RequiresAuthentication(t *testing.T) {
	router := NewRouter(Services{}, testOptions())

	paths := []string{
		"/api/countries/", "/api/cities/", "/api/airports/", "/api/routes/",
		"/api/crews/", "/api/airplane_types/", "/api/airplanes/", "/api/flights/",
		"/api/orders/", "/api/tickets/",
	}
	for _, path := range paths {
		for _, token := range []string{"", "forged"} {
			w := doRequest(t, router, http.MethodGet, path, token, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code, path)
			assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"), path)
		}
	}
}

func TestRouter_Health(t *testing.T) {
	opts := testOptions()
	router := NewRouter(Services{}, opts)
	assert.Equal(t, http.StatusOK, doRequest(t, router, http.MethodGet, "/healthz", "", nil).Code)

	opts.Health = func(context.Context) error { return errors.New("database unreachable") }
	router = NewRouter(Services{}, opts)
	w := doRequest(t, router, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unavailable", decode(t, w)["status"])
}

func TestRouter_RequestID(t *testing.T) {
	router := NewRouter(Services{}, testOptions())

	w := doRequest(t, router, http.MethodGet, "/healthz", "", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_OpenAPI(t *testing.T) {
	opts := testOptions()
	router := NewRouter(Services{}, opts)
	assert.Equal(t, http.StatusNotFound, doRequest(t, router, http.MethodGet, "/openapi.json", "", nil).Code)

	opts.Swagger = true
	router = NewRouter(Services{}, opts)
	w := doRequest(t, router, http.MethodGet, "/openapi.json", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "3.0.3", body["openapi"])
	assert.Contains(t, body["paths"], "/api/orders/")
}

func TestRouter_RateLimit(t *testing.T) {
	countries := &MockUseCase[domain.Country, domain.NameFilter]{}
	limiter := &MockRateLimiter{}
	opts := testOptions()
	opts.Limiter = limiter
	router := NewRouter(Services{Countries: countries}, opts)

	countries.On("List", mock.Anything, domain.NameFilter{}, domain.Page{Limit: 20}).Return([]domain.Country{}, 0, nil)
	limiter.On("Allow", mock.Anything, "user:alice").
		Return(ratelimit.Decision{Allowed: true, Limit: 2, Remaining: 1}, nil).Once()
	limiter.On("Allow", mock.Anything, "user:alice").
		Return(ratelimit.Decision{Allowed: false, Limit: 2, RetryAfter: 1500 * time.Millisecond}, nil).Once()

	w := doRequest(t, router, http.MethodGet, "/api/countries/", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	w = doRequest(t, router, http.MethodGet, "/api/countries/", aliceToken, nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	countries.AssertNumberOfCalls(t, "List", 1)
	limiter.AssertExpectations(t)
}

func TestRouter_RateLimitFailsOpen(t *testing.T) {
	countries := &MockUseCase[domain.Country, domain.NameFilter]{}
	limiter := &MockRateLimiter{}
	opts := testOptions()
	opts.Limiter = limiter
	router := NewRouter(Services{Countries: countries}, opts)

	countries.On("List", mock.Anything, domain.NameFilter{}, domain.Page{Limit: 20}).Return([]domain.Country{}, 0, nil).Once()
	limiter.On("Allow", mock.Anything, "user:admin").Return(ratelimit.Decision{}, errors.New("redis down")).Once()

	w := doRequest(t, router, http.MethodGet, "/api/countries/", staffToken, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}
