package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullLineup(base int64) []int64 {
	players := make([]int64, startersPerSide)
	for i := range players {
		players[i] = base + int64(i)
	}
	return players
}

func matchWith(odds map[string]BookOdds, home, away []int64) Match {
	if odds == nil {
		odds = map[string]BookOdds{}
	}
	return Match{Odds: odds, HomePlayers: home, AwayPlayers: away}
}

func TestCleanMatchesRetention(t *testing.T) {
	quoted := map[string]BookOdds{"WH": {Home: fp(2.1), Draw: fp(3.2), Away: fp(3.6)}}
	drawOnly := map[string]BookOdds{"PS": {Draw: fp(3.1)}}

	matches := []Match{
		matchWith(quoted, fullLineup(100), fullLineup(200)),   // kept
		matchWith(nil, fullLineup(100), fullLineup(200)),      // no odds at all
		matchWith(drawOnly, fullLineup(100), fullLineup(200)), // one quoted cell keeps it
		matchWith(quoted, fullLineup(100)[:10], fullLineup(200)), // 10 home starters
		matchWith(quoted, fullLineup(100), nil),                  // away lineup empty
		matchWith(nil, nil, nil), // missing both; counted against odds first
	}

	kept, droppedNoOdds, droppedLineup := cleanMatches(matches)

	assert.Len(t, kept, 2)
	assert.Equal(t, 2, droppedNoOdds)
	assert.Equal(t, 2, droppedLineup)
}

func TestCleanMatchesKeepsEverythingComplete(t *testing.T) {
	quoted := map[string]BookOdds{"B365": {Home: fp(1.9), Draw: fp(3.5), Away: fp(4.2)}}
	matches := []Match{
		matchWith(quoted, fullLineup(1), fullLineup(50)),
		matchWith(quoted, fullLineup(2), fullLineup(60)),
	}
	kept, droppedNoOdds, droppedLineup := cleanMatches(matches)
	assert.Len(t, kept, 2)
	assert.Zero(t, droppedNoOdds)
	assert.Zero(t, droppedLineup)
}

func TestFilterLeague(t *testing.T) {
	leagues := map[int64]string{1: "England Premier League", 2: "Spain LIGA BBVA"}
	matches := []Match{{LeagueID: 1}, {LeagueID: 2}, {LeagueID: 1}}

	assert.Len(t, filterLeague(matches, leagues, ""), 3)
	assert.Len(t, filterLeague(matches, leagues, "England Premier League"), 2)
	assert.Empty(t, filterLeague(matches, leagues, "Scotland Premier League"))
}
