package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasasbot/internal/db"
	"tasasbot/internal/rates"
)

func newRepo(t *testing.T) db.SnapshotRepository {
	t.Helper()
	conn, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)

	var repo db.SnapshotRepository = NewRepositorySQlite(conn, nil)
	require.NoError(t, repo.Init())
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestLatestEmpty(t *testing.T) {
	_, _, found, err := newRepo(t).Latest(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSaveAndLatest(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	for i := range 7 {
		table := rates.Table{"chile": {"venezuela": 35.5 + float64(i)}, "espana": {}}
		require.NoError(t, repo.Save(ctx, table, base.Add(time.Duration(i)*time.Minute)))
	}

	got, builtAt, found, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, builtAt.Equal(base.Add(6*time.Minute)))
	if diff := cmp.Diff(rates.Table{"chile": {"venezuela": 41.5}, "espana": {}}, got); diff != "" {
		t.Errorf("Latest() mismatch (-want +got):\n%s", diff)
	}

	var n int
	require.NoError(t, repo.(*RepositorySQlite).db.QueryRow("SELECT COUNT(*) FROM "+tableSnapshot).Scan(&n))
	assert.Equal(t, keepSnapshots, n)
}
