package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cekkuota-bot/internal/config"
)

func newTestClient(t *testing.T, url string, retries int) *Client {
	t.Helper()
	cfg := &config.UpstreamConfig{URL: url, Key: "test-key", Retries: retries}
	logger := zerolog.Nop()
	c := NewClient(cfg, 2*time.Second, &logger)
	c.sleep = func(time.Duration) {}
	return c
}

func TestCheckSuccessPassesBodyThrough(t *testing.T) {
	var gotKey, gotAgent string
	var gotPayload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-FDZ-Key")
		gotAgent = r.Header.Get("User-Agent")
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"quotas":[{"name":"Paket A"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 1)
	status, body := c.Check(context.Background(), "081234567890")

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"quotas":[{"name":"Paket A"}]}`, string(body))
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "cekkuota-bot/1.0", gotAgent)
	assert.Equal(t, map[string]string{"msisdn": "081234567890"}, gotPayload)
}

func TestCheckHTTPErrorNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"upstream down","status":"502"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 1)
	status, body := c.Check(context.Background(), "081234567890")

	assert.Equal(t, http.StatusBadGateway, status)
	assert.Contains(t, string(body), "upstream down")
	assert.Equal(t, 1, calls, "an HTTP error status is a response, not a transport failure")
}

func TestCheckNonJSONBodyDropped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 1)
	status, body := c.Check(context.Background(), "081234567890")

	assert.Equal(t, http.StatusOK, status)
	assert.Nil(t, body)
}

func TestCheckTransportFailureRetriesOnce(t *testing.T) {
	// A closed server yields connection refused on every attempt.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url, 1)
	var slept []time.Duration
	c.sleep = func(d time.Duration) { slept = append(slept, d) }

	status, body := c.Check(context.Background(), "081234567890")

	assert.Equal(t, 0, status)
	assert.Nil(t, body)
	require.Len(t, slept, 1, "exactly one retry delay")
	assert.Equal(t, retryDelay, slept[0])
}

func TestCheckNoRetryWithoutBudget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url, 0)
	var slept []time.Duration
	c.sleep = func(d time.Duration) { slept = append(slept, d) }

	status, _ := c.Check(context.Background(), "081234567890")

	assert.Equal(t, 0, status)
	assert.Empty(t, slept)
}
