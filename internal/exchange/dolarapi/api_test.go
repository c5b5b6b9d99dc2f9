package dolarapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasasbot/internal/exchange"
)

const sample = `[
  {"fuente":"oficial","nombre":"Oficial","compra":null,"venta":null,"promedio":36.52,"fechaActualizacion":"2024-05-10T12:00:00.000Z"},
  {"fuente":"paralelo","nombre":"Paralelo","compra":null,"venta":null,"promedio":40.1,"fechaActualizacion":"2024-05-10T13:30:00Z"},
  {"fuente":"bitcoin","nombre":"Bitcoin","compra":null,"venta":null,"promedio":null,"fechaActualizacion":"bad"}
]`

func TestRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sample))
	}))
	defer srv.Close()

	api := NewApiDolar(srv.URL, srv.Client(), nil)
	got, err := api.Rates(context.Background())
	require.NoError(t, err)

	want := []exchange.Rate{
		{Name: "Oficial", Average: 36.52, UpdatedAt: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)},
		{Name: "Paralelo", Average: 40.1, UpdatedAt: time.Date(2024, 5, 10, 13, 30, 0, 0, time.UTC)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rates() mismatch (-want +got):\n%s", diff)
	}
}

func TestRatesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewApiDolar(srv.URL, srv.Client(), nil).Rates(context.Background())
	assert.True(t, errors.Is(err, exchange.ErrUnavailable), "got %v", err)
}

func TestRatesMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	_, err := NewApiDolar(srv.URL, srv.Client(), nil).Rates(context.Background())
	assert.ErrorIs(t, err, exchange.ErrUnavailable)
}
