package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordEvictsOldest(t *testing.T) {
	l := NewLedger()
	for i := 0; i < 60; i++ {
		l.Record("riverwood", "bread", int64(i), 10+i)
	}

	points := l.History("riverwood", "bread")
	require.Len(t, points, 50)
	assert.Equal(t, int64(10), points[0].Minute, "oldest ten fell off")
	assert.Equal(t, int64(59), points[49].Minute)
}

func TestTrendClassification(t *testing.T) {
	rising := NewLedger()
	for i, p := range []int{10, 11, 12, 13, 12, 14} {
		rising.Record("riverwood", "bread", int64(i), p)
	}
	assert.Equal(t, TrendRising, rising.GetTrend("riverwood", "bread"), "last five run 11 to 14")

	falling := NewLedger()
	for i, p := range []int{20, 18, 17, 16, 15} {
		falling.Record("riverwood", "bread", int64(i), p)
	}
	assert.Equal(t, TrendFalling, falling.GetTrend("riverwood", "bread"))

	stable := NewLedger()
	for i, p := range []int{10, 11, 10, 10, 10} {
		stable.Record("riverwood", "bread", int64(i), p)
	}
	assert.Equal(t, TrendStable, stable.GetTrend("riverwood", "bread"), "under ten percent is noise")
}

func TestTrendNeedsTwoPoints(t *testing.T) {
	l := NewLedger()
	assert.Equal(t, TrendStable, l.GetTrend("riverwood", "bread"))

	l.Record("riverwood", "bread", 0, 10)
	assert.Equal(t, TrendStable, l.GetTrend("riverwood", "bread"))
}

func TestAverageWindow(t *testing.T) {
	l := NewLedger()
	l.Record("riverwood", "bread", 100, 10)
	l.Record("riverwood", "bread", 200, 20)
	l.Record("riverwood", "bread", 300, 30)

	assert.InDelta(t, 25.0, l.GetAverage("riverwood", "bread", 300, 100), 1e-9)
	assert.InDelta(t, 20.0, l.GetAverage("riverwood", "bread", 300, 250), 1e-9)
	assert.Zero(t, l.GetAverage("riverwood", "bread", 1000, 50))
}

func TestCompareAcrossLocations(t *testing.T) {
	l := NewLedger()
	l.Record("kingsport", "silk", 0, 120)
	l.Record("riverwood", "silk", 0, 90)
	l.Record("goldreach", "silk", 0, 90)
	l.Record("riverwood", "bread", 0, 5)

	ranked := l.CompareAcrossLocations("silk", 0, 1440)
	require.Len(t, ranked, 3, "other items stay out")
	assert.Equal(t, "goldreach", string(ranked[0].Location), "price ties break by location id")
	assert.Equal(t, "riverwood", string(ranked[1].Location))
	assert.Equal(t, "kingsport", string(ranked[2].Location))
	assert.Equal(t, 120, ranked[2].Price)
}

func TestRestoreTrimsToCap(t *testing.T) {
	l := NewLedger()
	points := make([]PricePoint, 70)
	for i := range points {
		points[i] = PricePoint{Minute: int64(i), Price: i}
	}

	l.Restore("riverwood", "bread", points)

	got := l.History("riverwood", "bread")
	require.Len(t, got, 50)
	assert.Equal(t, int64(20), got[0].Minute)
}
