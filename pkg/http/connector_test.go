package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoPayload struct {
	Value string `json:"value"`
}

func newTestConnector(url string, opts ...HttpOpts) *Connector {
	return NewConnector(&ConnectorConfig{BaseURL: url + "/"}, opts...)
}

func TestDoRequestRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/echo", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get(clientRequestIDHeader))
		assert.Equal(t, "yes", r.Header.Get("X-Extra"))

		var in echoPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		json.NewEncoder(w).Encode(echoPayload{Value: in.Value + "!"})
	}))
	defer srv.Close()

	c := newTestConnector(srv.URL, WithAuthToken("secret"), WithRequestLogging())

	var out echoPayload
	err := c.DoRequest(context.Background(), http.MethodPost, "/echo", echoPayload{Value: "hi"}, &out, WithHeader("X-Extra", "yes"))
	require.NoError(t, err)
	assert.Equal(t, "hi!", out.Value)
}

func TestDoRequestWithoutTokenSendsNoAuthorization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := newTestConnector(srv.URL, WithAuthToken(""))
	require.NoError(t, c.DoRequest(context.Background(), http.MethodGet, "/", nil, nil))
}

func TestDoRequestHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	err := newTestConnector(srv.URL).DoRequest(context.Background(), http.MethodPost, "/x", echoPayload{}, nil)
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
	assert.Contains(t, httpErr.Error(), "rate limited")
}

func TestDoRequestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := newTestConnector(url).DoRequest(context.Background(), http.MethodGet, "/", nil, nil)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Contains(t, err.Error(), "network error")
}

func TestDoRequestOverrideURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/elsewhere", r.URL.Path)
		w.Write([]byte(`{"value":"ok"}`))
	}))
	defer srv.Close()

	var out echoPayload
	err := newTestConnector("http://127.0.0.1:1").DoRequest(context.Background(), http.MethodGet, "/ignored", nil, &out, WithURL(srv.URL+"/elsewhere"))
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Value)
}

func TestDoRequestDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	var out echoPayload
	err := newTestConnector(srv.URL).DoRequest(context.Background(), http.MethodGet, "/", nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}
