package sheets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestRows(t *testing.T) {
	got := Rows([][]any{
		{"DESDE CHILE"},
		{"venezuela", "35,50"},
		{"peru", 0.5, nil},
	})
	want := [][]string{
		{"DESDE CHILE"},
		{"venezuela", "35,50"},
		{"peru", "0.5", ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.Contains(r.URL.Path, "/spreadsheets/sheet-id/values/"), r.URL.Path)
		assert.Equal(t, "FORMATTED_VALUE", r.URL.Query().Get("valueRenderOption"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"range":"Tasas!A1:B4","majorDimension":"ROWS","values":[["DESDE CHILE"],["venezuela","35,50"]]}`))
	}))
	defer srv.Close()

	c, err := New(context.Background(), Config{SpreadsheetID: "sheet-id", Range: "Tasas!A1:B4"}, nil,
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)

	rows, err := c.FetchRows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"DESDE CHILE"}, {"venezuela", "35,50"}}, rows)
}

func TestFetchRowsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"denied"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c, err := New(context.Background(), Config{SpreadsheetID: "sheet-id", Range: "A1:B2"}, nil,
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)

	_, err = c.FetchRows(context.Background())
	assert.Error(t, err)
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(context.Background(), Config{SpreadsheetID: "x", Range: "A1"}, nil)
	assert.ErrorIs(t, err, ErrNoCredentials)
}
