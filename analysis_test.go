package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func derivedMatch(season string, leagueID int64, homeOdds, awayOdds float64, hg, ag int) Match {
	m := Match{
		Season:      season,
		LeagueID:    leagueID,
		Date:        day(2009, time.March, 1),
		HomeGoals:   hg,
		AwayGoals:   ag,
		HomePlayers: fullLineup(100),
		AwayPlayers: fullLineup(200),
		Odds: map[string]BookOdds{
			"B365": {Home: fp(homeOdds), Draw: fp(3.5), Away: fp(awayOdds)},
		},
	}
	m.derive()
	return m
}

func TestHeadline(t *testing.T) {
	matches := []Match{
		derivedMatch("2008/2009", 1, 1.5, 6.0, 2, 0), // favorite wins
		derivedMatch("2008/2009", 1, 1.5, 6.0, 0, 1), // upset
		derivedMatch("2008/2009", 1, 2.0, 4.0, 1, 1), // draw
	}
	h := headline(5, 1, 1, matches)

	assert.Equal(t, 5, h.Loaded)
	assert.Equal(t, 3, h.Kept)
	assert.Equal(t, 2, h.Decisive)
	assert.Equal(t, 1, h.Draws)
	assert.Equal(t, 1, h.Upsets)
	assert.InDelta(t, 0.5, h.UpsetRate, 1e-9)
}

func TestSeasonRowsGroupAndSort(t *testing.T) {
	matches := []Match{
		derivedMatch("2009/2010", 1, 1.5, 6.0, 0, 1),
		derivedMatch("2008/2009", 1, 1.5, 6.0, 2, 0),
		derivedMatch("2008/2009", 1, 1.5, 6.0, 0, 2),
	}
	rows := seasonRows(matches)
	require.Len(t, rows, 2)

	assert.Equal(t, "2008/2009", rows[0].Season)
	assert.Equal(t, 2, rows[0].Matches)
	assert.Equal(t, 1, rows[0].Upsets)
	assert.InDelta(t, 0.5, rows[0].UpsetRate, 1e-9)

	assert.Equal(t, "2009/2010", rows[1].Season)
	assert.InDelta(t, 1.0, rows[1].UpsetRate, 1e-9)
}

func TestBookRows(t *testing.T) {
	matches := []Match{
		{Odds: map[string]BookOdds{
			"B365": {Home: fp(2.0), Draw: fp(3.5), Away: fp(4.0)}, // overround 3.571
			"BW":   {Home: fp(2.0), Away: fp(4.0)},                // no draw quote
		}},
		{Odds: map[string]BookOdds{
			"B365": {Home: fp(2.0), Draw: fp(3.5), Away: fp(4.0)},
		}},
	}
	rows := bookRows(matches)
	require.Len(t, rows, len(bookmakers))

	byBook := map[string]int{}
	for i, r := range rows {
		byBook[r.Book] = i
	}
	b365 := rows[byBook["B365"]]
	assert.Equal(t, 2, b365.Quoted)
	assert.InDelta(t, 3.5714, b365.MeanOverround, 1e-3)

	bw := rows[byBook["BW"]]
	assert.Zero(t, bw.Quoted)
	assert.Zero(t, bw.MeanOverround)
}

func TestGapHistogramBucketsAndClamping(t *testing.T) {
	matches := []Match{
		{AvgGap: 25, HasGap: true},   // 20..30
		{AvgGap: -65, HasGap: true},  // -70..-60
		{AvgGap: 200, HasGap: true},  // clamped into the top bucket
		{HasGap: false},              // ignored
	}
	buckets := gapHistogram(matches)
	require.Len(t, buckets, 14)

	counts := map[string]int{}
	total := 0
	for _, b := range buckets {
		counts[b.Label] = b.Count
		total += b.Count
	}
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, counts["20..30"])
	assert.Equal(t, 1, counts["-70..-60"])
	assert.Equal(t, 1, counts["60..70"])
}

func TestGapBandRows(t *testing.T) {
	matches := []Match{
		derivedMatch("2008/2009", 1, 1.5, 6.0, 0, 1), // |gap| 50 → 40+, upset
		derivedMatch("2008/2009", 1, 1.5, 6.0, 2, 0), // |gap| 50 → 40+
		derivedMatch("2008/2009", 1, 2.2, 2.8, 1, 0), // small gap band
	}
	rows := gapBandRows(matches)
	require.Len(t, rows, len(gapBandEdges))

	last := rows[len(rows)-1]
	assert.Equal(t, "40+", last.Label)
	assert.Equal(t, 2, last.Matches)
	assert.Equal(t, 1, last.Upsets)
	assert.InDelta(t, 0.5, last.UpsetRate, 1e-9)
}

func TestAttributeEdges(t *testing.T) {
	home := fullLineup(100)
	away := fullLineup(200)
	byPlayer := make(map[int64][]Snapshot)
	for _, p := range home {
		byPlayer[p] = []Snapshot{snap(p, day(2009, time.February, 1), 80)}
	}
	for _, p := range away {
		byPlayer[p] = []Snapshot{snap(p, day(2009, time.February, 1), 60)}
	}
	book := newAttributeBook(byPlayer)

	matches := []Match{
		derivedMatch("2008/2009", 1, 1.5, 6.0, 2, 0), // home (stronger) wins
		derivedMatch("2008/2009", 1, 2.0, 4.0, 1, 1), // draw, excluded
	}
	edges := attributeEdges(matches, book)
	require.Len(t, edges, len(attributeNames))

	for _, e := range edges {
		assert.InDelta(t, 80.0, e.Winner, 1e-9)
		assert.InDelta(t, 60.0, e.Loser, 1e-9)
		assert.InDelta(t, 20.0, e.Edge, 1e-9)
	}
}

func TestSummarizeWiring(t *testing.T) {
	matches := []Match{derivedMatch("2008/2009", 1, 1.5, 6.0, 0, 1)}
	book := newAttributeBook(map[int64][]Snapshot{})
	leagues := map[int64]string{1: "England Premier League"}

	s := summarize(Config{DBPath: "x.sqlite"}, "run-1", 2, 1, 0, matches, leagues, book)

	assert.Equal(t, "run-1", s.RunID)
	assert.Equal(t, 1, s.Headline.Kept)
	assert.Equal(t, 2, s.Headline.Loaded)
	require.Len(t, s.Leagues, 1)
	assert.Equal(t, "England Premier League", s.Leagues[0].League)
	assert.Empty(t, s.Edges, "no snapshots, no attribute rows")
}
