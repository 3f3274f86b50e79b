package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewRequiresServer(t *testing.T) {
	_, err := New()
	require.Error(t, err)

	_, err = New(WithServer(""))
	require.Error(t, err)
}

func TestDoSetsHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Accept"))
		require.Equal(t, "ibctl", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c, err := New(WithServer(server.URL), WithToken("secret-token"))
	require.NoError(t, err)
	require.NoError(t, c.Session().Open(context.Background()))
}

func TestDoDecodesErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"not allowed to manage barrier policies"}`))
	}))
	defer server.Close()

	c, err := New(WithServer(server.URL))
	require.NoError(t, err)

	err = c.Session().Open(context.Background())
	require.Error(t, err)
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusForbidden, httpErr.StatusCode)
	require.Contains(t, httpErr.Message, "not allowed")
}

func TestDoFallsBackToStatusText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c, err := New(WithServer(server.URL))
	require.NoError(t, err)

	err = c.Session().Open(context.Background())
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	require.NotEmpty(t, httpErr.Message)
}

func TestWithVerboseLogsRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	var lines []string
	c, err := New(
		WithServer(server.URL),
		WithTimeout(5*time.Second),
		WithVerbose(func(format string, args ...any) {
			lines = append(lines, format)
		}),
	)
	require.NoError(t, err)
	require.NoError(t, c.Session().Open(context.Background()))
	require.Len(t, lines, 2)
}
