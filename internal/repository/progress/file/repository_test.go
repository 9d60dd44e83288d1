package file

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedplay/server/internal/repository/progress"
)

func TestLedgerRoundTrip(t *testing.T) {
	r, err := NewRepo(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	records := []progress.Record{
		{URL: "https://example.com/a.mp4", Timestamp: 42.5, LastUpdated: 1700000000000},
		{URL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", Timestamp: 120, LastUpdated: 1699999999999},
	}
	require.NoError(t, r.SetLedger(ctx, "client-1", records))

	got, err := r.GetLedger(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestMissingLedgerIsEmpty(t *testing.T) {
	r, err := NewRepo(t.TempDir())
	require.NoError(t, err)

	got, err := r.GetLedger(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCorruptLedgerIsEmpty(t *testing.T) {
	r, err := NewRepo(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(r.getLedgerPath("client-1"), []byte("{not json"), 0o644))

	got, err := r.GetLedger(ctx, "client-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOverwriteReplacesLedger(t *testing.T) {
	r, err := NewRepo(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, r.SetLedger(ctx, "client-1", []progress.Record{
		{URL: "https://example.com/a.mp4", Timestamp: 30, LastUpdated: 1},
	}))
	require.NoError(t, r.SetLedger(ctx, "client-1", []progress.Record{
		{URL: "https://example.com/b.mp4", Timestamp: 60, LastUpdated: 2},
	}))

	got, err := r.GetLedger(ctx, "client-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://example.com/b.mp4", got[0].URL)
}

func TestCreatesBaseDir(t *testing.T) {
	dir := t.TempDir() + "/nested/storage"

	_, err := NewRepo(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
