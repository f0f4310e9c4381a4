package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbx-insights-go/internal/types"
)

func testDB(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func run(id, account string, generated, expires int64) types.RunRecord {
	return types.RunRecord{
		ID:          id,
		AccountID:   account,
		ReportType:  types.ReportAcd,
		Success:     true,
		GeneratedAt: generated,
		ExpiresAt:   expires,
		Preview:     "ACD " + id,
	}
}

func TestOpenCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "history.db")
	s, err := Open(path, time.Second)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, path, s.Path())
}

func TestSaveAndGet(t *testing.T) {
	s := testDB(t)
	rec := run("r1", "acc", 100, 200)
	rec.Report = &types.CanonicalReport{
		ReportType: types.ReportIvr,
		Summary:    &types.IVRSummary{TotalCalls: 12, ConnectionRate: 75},
	}
	require.NoError(t, s.Save(rec))

	got, ok, err := s.Get("r1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "acc", got.AccountID)
	require.NotNil(t, got.Report)
	assert.Equal(t, &types.IVRSummary{TotalCalls: 12, ConnectionRate: 75}, got.Report.Summary)

	_, ok, err = s.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveRequiresID(t *testing.T) {
	assert.Error(t, testDB(t).Save(types.RunRecord{AccountID: "acc"}))
}

func TestListNewestFirstPerAccount(t *testing.T) {
	s := testDB(t)
	require.NoError(t, s.Save(run("old", "acc", 100, 1000)))
	require.NoError(t, s.Save(run("new", "acc", 300, 1000)))
	require.NoError(t, s.Save(run("mid", "acc", 200, 1000)))
	require.NoError(t, s.Save(run("other", "acc2", 400, 1000)))

	recs, err := s.List("acc", 0)
	require.NoError(t, err)
	ids := []string{}
	for _, r := range recs {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"new", "mid", "old"}, ids)

	recs, err = s.List("acc", 2)
	require.NoError(t, err)
	assert.Len(t, recs, 2)

	recs, err = s.List("nobody", 0)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestSaveReplacesIndexEntry(t *testing.T) {
	s := testDB(t)
	require.NoError(t, s.Save(run("r1", "acc", 100, 1000)))
	require.NoError(t, s.Save(run("r1", "acc", 150, 1000)))

	recs, err := s.List("acc", 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(150), recs[0].GeneratedAt)
}

func TestPrune(t *testing.T) {
	s := testDB(t)
	now := time.Unix(1_000, 0)
	require.NoError(t, s.Save(run("expired", "acc", 10, 500)))
	require.NoError(t, s.Save(run("edge", "acc", 20, 1_000)))
	require.NoError(t, s.Save(run("live", "acc", 30, 2_000)))

	n, err := s.Prune(now)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	recs, err := s.List("acc", 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "live", recs[0].ID)
}

func TestReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path, time.Second)
	require.NoError(t, err)
	require.NoError(t, s.Save(run("r1", "acc", 1, 2)))
	require.NoError(t, s.Close())

	s, err = Open(path, time.Second)
	require.NoError(t, err)
	defer s.Close()
	_, ok, err := s.Get("r1")
	require.NoError(t, err)
	assert.True(t, ok)
}
