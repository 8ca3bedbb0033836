package charts

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hvaldez/ladacheck/internal/domain"
)

func seriesFixture() []domain.PeriodBucket {
	return []domain.PeriodBucket{
		{Period: "2022-11", WithoutPrefix: 10, WithPrefix: 90, Total: 100, PctWithoutPrefix: 10, PctWithPrefix: 90},
		{Period: "2023-01", WithoutPrefix: 30, WithPrefix: 70, Total: 100, PctWithoutPrefix: 30, PctWithPrefix: 70},
		{Period: "2023-02", WithoutPrefix: 60, WithPrefix: 40, Total: 100, PctWithoutPrefix: 60, PctWithPrefix: 40},
		{Period: "2023-03", WithoutPrefix: 95, WithPrefix: 5, Total: 100, PctWithoutPrefix: 95, PctWithPrefix: 5},
		{Period: "2023-04", WithoutPrefix: 92, WithPrefix: 8, Total: 100, PctWithoutPrefix: 92, PctWithPrefix: 8},
	}
}

func mustPoints(t *testing.T, buckets []domain.PeriodBucket) []point {
	t.Helper()
	points, err := toPoints(buckets)
	require.NoError(t, err)
	return points
}

func TestToPointsSortsChronologically(t *testing.T) {
	buckets := []domain.PeriodBucket{
		{Period: "2023-03"},
		{Period: "2022-11"},
		{Period: "2023-01"},
	}

	points := mustPoints(t, buckets)

	require.Len(t, points, 3)
	assert.Equal(t, "2022-11", points[0].bucket.Period)
	assert.Equal(t, "2023-01", points[1].bucket.Period)
	assert.Equal(t, "2023-03", points[2].bucket.Period)
}

func TestToPointsRejectsBadPeriod(t *testing.T) {
	_, err := toPoints([]domain.PeriodBucket{{Period: "noviembre"}})

	assert.Error(t, err)
}

func TestInversionIndex(t *testing.T) {
	points := mustPoints(t, seriesFixture())

	idx := inversionIndex(points)

	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "2023-02", points[idx].bucket.Period)
}

func TestInversionIndexNeverCrosses(t *testing.T) {
	points := mustPoints(t, []domain.PeriodBucket{
		{Period: "2023-01", PctWithoutPrefix: 20},
		{Period: "2023-02", PctWithoutPrefix: 45},
	})

	assert.Equal(t, -1, inversionIndex(points))
}

func TestHighShareRunStarts(t *testing.T) {
	points := mustPoints(t, seriesFixture())

	starts := highShareRunStarts(points)

	// 95% opens the run; the following 92% continues it.
	require.Len(t, starts, 1)
	assert.Equal(t, "2023-03", points[starts[0]].bucket.Period)
}

func TestRecentPointsFiltersByCutoff(t *testing.T) {
	points := mustPoints(t, seriesFixture())

	recent := recentPoints(points, 2023)

	require.Len(t, recent, 4)
	assert.Equal(t, "2023-01", recent[0].bucket.Period)
}

func TestRenderAllWritesCharts(t *testing.T) {
	dir := t.TempDir()
	renderer := Renderer{Dir: dir, CutoffYear: 2023}

	paths, err := renderer.RenderAll(seriesFixture())
	require.NoError(t, err)
	require.Len(t, paths, 3)

	for _, name := range []string{"evolucion_porcentajes.png", "volumen_usuarios.png", "tendencia_reciente.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}

func TestRenderAllRejectsUnparseablePeriod(t *testing.T) {
	renderer := Renderer{Dir: t.TempDir(), CutoffYear: 2023}

	_, err := renderer.RenderAll([]domain.PeriodBucket{{Period: "bad"}})

	assert.Error(t, err)
}

// recentPoints must not mutate or reorder its input.
func TestRecentPointsKeepsOrder(t *testing.T) {
	points := mustPoints(t, seriesFixture())
	cutoff := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

	recent := recentPoints(points, 2023)

	for _, p := range recent {
		assert.False(t, p.at.Before(cutoff))
	}
}
