package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairlance/clausecheck/internal/analysis"
)

func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "cache.db"), ttl)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func sampleResult() *analysis.AnalysisResult {
	return &analysis.AnalysisResult{
		ID:             "res-1",
		RiskScore:      72,
		Recommendation: analysis.RecommendationReject,
		Violations: []analysis.Violation{
			{Type: "non_compete", Label: "Non-compete restriction", Severity: 85},
		},
	}
}

func TestStore_RoundTrip(t *testing.T) {
	s := newTestStore(t, time.Hour)

	require.NoError(t, s.SetResult("default", sampleResult()))
	got := s.GetResult("default")

	require.NotNil(t, got)
	assert.Equal(t, "res-1", got.ID)
	assert.Equal(t, 72, got.RiskScore)
	assert.Len(t, got.Violations, 1)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, s.IsExpired("default"))
}

func TestStore_MissWhenEmpty(t *testing.T) {
	s := newTestStore(t, time.Hour)
	assert.Nil(t, s.GetResult("default"))
	assert.False(t, s.IsExpired("default"))
}

func TestStore_ExpiredResultNeverReturned(t *testing.T) {
	s := newTestStore(t, 50*time.Millisecond)
	require.NoError(t, s.SetResult("default", sampleResult()))

	time.Sleep(80 * time.Millisecond)

	assert.True(t, s.IsExpired("default"))
	assert.Nil(t, s.GetResult("default"))
	// The expired entry was purged on read.
	assert.False(t, s.IsExpired("default"))
}

func TestStore_WriteReplacesPriorResult(t *testing.T) {
	s := newTestStore(t, time.Hour)
	require.NoError(t, s.SetResult("default", sampleResult()))

	second := sampleResult()
	second.ID = "res-2"
	require.NoError(t, s.SetResult("default", second))

	got := s.GetResult("default")
	require.NotNil(t, got)
	assert.Equal(t, "res-2", got.ID)
}

func TestStore_CorruptEntryTreatedAsMiss(t *testing.T) {
	s := newTestStore(t, time.Hour)
	require.NoError(t, s.SetResult("default", sampleResult()))

	_, err := s.db.Exec(`UPDATE result_cache SET result = 'not json' WHERE session = 'default'`)
	require.NoError(t, err)

	assert.Nil(t, s.GetResult("default"))
	// The corrupt row was dropped, so the cache now behaves as empty.
	assert.Nil(t, s.GetResult("default"))
}

func TestStore_ClearResult(t *testing.T) {
	s := newTestStore(t, time.Hour)
	require.NoError(t, s.SetResult("default", sampleResult()))

	s.ClearResult("default")
	assert.Nil(t, s.GetResult("default"))
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	s := newTestStore(t, time.Hour)
	require.NoError(t, s.SetResult("alpha", sampleResult()))

	assert.NotNil(t, s.GetResult("alpha"))
	assert.Nil(t, s.GetResult("beta"))
}
