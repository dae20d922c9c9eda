package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchday/report"
)

func TestRenderCharts(t *testing.T) {
	dir := t.TempDir()
	s := report.Summary{
		Seasons: []report.SeasonRow{
			{Season: "2008/2009", UpsetRate: 0.21},
			{Season: "2009/2010", UpsetRate: 0.18},
		},
		Books: []report.BookRow{
			{Book: "B365", Quoted: 100, MeanOverround: 6.2},
			{Book: "GB", Quoted: 0}, // never quoted, no bar
		},
		GapHistogram: []report.GapBucket{
			{Label: "-10..0", Count: 4},
			{Label: "0..10", Count: 9},
		},
		Edges: []report.AttributeEdge{
			{Attribute: "overall_rating", Winner: 74, Loser: 71, Edge: 3},
			{Attribute: "sliding_tackle", Winner: 60, Loser: 61, Edge: -1},
		},
	}

	require.NoError(t, renderCharts(dir, &s))
	require.Len(t, s.Charts, 4)

	for _, c := range s.Charts {
		info, err := os.Stat(filepath.Join(dir, c.File))
		require.NoError(t, err, c.File)
		assert.Greater(t, info.Size(), int64(0), c.File)
	}
}

func TestRenderChartsSkipsEmptySeries(t *testing.T) {
	dir := t.TempDir()
	s := report.Summary{
		Seasons: []report.SeasonRow{{Season: "2008/2009", UpsetRate: 0.2}},
	}
	require.NoError(t, renderCharts(dir, &s))
	require.Len(t, s.Charts, 1)
	assert.Equal(t, "upsets_by_season.png", s.Charts[0].File)
}

func TestShortSeason(t *testing.T) {
	assert.Equal(t, "08/09", shortSeason("2008/2009"))
	assert.Equal(t, "2008", shortSeason("2008"))
}
