package collectors

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBreachChecker(handler http.Handler) (*BreachChecker, *httptest.Server) {
	ts := httptest.NewServer(handler)
	checker := NewBreachChecker("test-key")
	checker.BaseURL = ts.URL
	checker.retryDelay = time.Millisecond
	return checker, ts
}

func TestCheckEmailLeaked(t *testing.T) {
	checker, ts := testBreachChecker(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("hibp-api-key"))
		fmt.Fprint(w, `[{"Name": "Adobe"}, {"Name": "LinkedIn"}]`)
	}))
	defer ts.Close()

	result, err := checker.CheckEmail(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, BreachLeaked, result.Status)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, []string{"Adobe", "LinkedIn"}, result.Sources)
}

func TestCheckEmailSafe(t *testing.T) {
	checker, ts := testBreachChecker(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	result, err := checker.CheckEmail(context.Background(), "clean@example.com")
	require.NoError(t, err)
	assert.Equal(t, BreachSafe, result.Status)
	assert.Zero(t, result.Count)
}

func TestCheckEmailRetryIsBounded(t *testing.T) {
	attempts := 0
	checker, ts := testBreachChecker(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	result, err := checker.CheckEmail(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, BreachRateLimited, result.Status)
	assert.Equal(t, breachRetryAttempts, attempts)
}

func TestCheckEmailRecoversWithinRetryBudget(t *testing.T) {
	attempts := 0
	checker, ts := testBreachChecker(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	result, err := checker.CheckEmail(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, BreachSafe, result.Status)
	assert.Equal(t, 2, attempts)
}

func TestCheckEmailSkippedWithoutKey(t *testing.T) {
	checker := NewBreachChecker("")
	result, err := checker.CheckEmail(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, BreachSkipped, result.Status)
}

func TestCheckEmailErrorStatus(t *testing.T) {
	checker, ts := testBreachChecker(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	result, err := checker.CheckEmail(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, BreachError, result.Status)
	assert.Equal(t, http.StatusUnauthorized, result.Code)
}
