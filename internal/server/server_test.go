package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasasbot/internal/rates"
)

type fixedStatus rates.Status

func (f fixedStatus) Status() rates.Status { return rates.Status(f) }

func newTestServer(t *testing.T, webhook http.Handler, st rates.Status) *httptest.Server {
	t.Helper()
	srv := New(Config{Addr: ":0", WebhookPath: "/api/telegram"}, webhook, fixedStatus(st),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func TestWebhookPost(t *testing.T) {
	var got string
	webhook := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got = string(b)
	})
	ts := newTestServer(t, webhook, rates.Status{})

	resp, err := http.Post(ts.URL+"/api/telegram", "application/json", strings.NewReader(`{"update_id":1}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"update_id":1}`, got)
}

func TestWebhookRejectsOtherMethods(t *testing.T) {
	called := false
	webhook := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })
	ts := newTestServer(t, webhook, rates.Status{})

	resp, err := http.Get(ts.URL + "/api/telegram")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, http.MethodPost, resp.Header.Get("Allow"))
	assert.False(t, called)
}

func TestHealthz(t *testing.T) {
	builtAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	want := rates.Status{Ready: true, BuiltAt: builtAt, Origins: 2, Routes: 5}
	ts := newTestServer(t, http.NotFoundHandler(), want)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got rates.Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("status mismatch (-want +got):\n%s", diff)
	}
}

func TestMetrics(t *testing.T) {
	ts := newTestServer(t, http.NotFoundHandler(), rates.Status{})

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "go_goroutines")
}
