package main

import (
	"math"
	"time"
)

// Sportsbook column prefixes in the Match table, e.g. B365H / B365D / B365A.
var bookmakers = []string{"B365", "BW", "IW", "LB", "PS", "WH", "SJ", "VC", "GB", "BS"}

const startersPerSide = 11

const (
	SideHome = "home"
	SideDraw = "draw"
	SideAway = "away"
	SideNone = "none"
)

// BookOdds is one sportsbook's three-way decimal odds for a match.
// Nil means the book did not quote that outcome.
type BookOdds struct {
	Home *float64
	Draw *float64
	Away *float64
}

type Match struct {
	ID         int64
	LeagueID   int64
	Season     string
	Stage      int
	Date       time.Time
	HomeTeamID int64
	AwayTeamID int64
	HomeGoals  int
	AwayGoals  int
	Odds       map[string]BookOdds
	// Present starting-player ids only; a full lineup has startersPerSide entries.
	HomePlayers []int64
	AwayPlayers []int64

	// Derived by derive().
	AvgGap   float64
	HasGap   bool
	Favorite string
	Winner   string
	Upset    bool
}

// impliedProbability converts decimal odds to the bookmaker-implied win
// percentage. Only meaningful for odds > 0.
func impliedProbability(odds float64) float64 {
	return 100.0 / odds
}

// gap is the home-minus-away implied probability difference for one book.
// Both sides must be quoted with positive odds.
func (o BookOdds) gap() (float64, bool) {
	if o.Home == nil || o.Away == nil || *o.Home <= 0 || *o.Away <= 0 {
		return 0, false
	}
	return impliedProbability(*o.Home) - impliedProbability(*o.Away), true
}

// overround is the book's margin: summed implied probabilities minus 100.
// Needs all three outcomes quoted.
func (o BookOdds) overround() (float64, bool) {
	if o.Home == nil || o.Draw == nil || o.Away == nil {
		return 0, false
	}
	if *o.Home <= 0 || *o.Draw <= 0 || *o.Away <= 0 {
		return 0, false
	}
	sum := impliedProbability(*o.Home) + impliedProbability(*o.Draw) + impliedProbability(*o.Away)
	return sum - 100.0, true
}

// averageGap is the cross-book mean of home-minus-away gaps over the books
// that quote both sides. The sign identifies the favorite.
func averageGap(odds map[string]BookOdds) (float64, bool) {
	sum := 0.0
	n := 0
	for _, b := range bookmakers {
		o, ok := odds[b]
		if !ok {
			continue
		}
		if g, ok := o.gap(); ok {
			sum += g
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func favoriteOf(avgGap float64, hasGap bool) string {
	switch {
	case !hasGap || avgGap == 0:
		return SideNone
	case avgGap > 0:
		return SideHome
	default:
		return SideAway
	}
}

func winnerOf(homeGoals, awayGoals int) string {
	switch {
	case homeGoals > awayGoals:
		return SideHome
	case awayGoals > homeGoals:
		return SideAway
	default:
		return SideDraw
	}
}

// isUpset reports whether the favorite lost outright. Draws are never upsets,
// and a match with no favorite cannot produce one.
func isUpset(favorite, winner string) bool {
	if winner == SideDraw || favorite == SideNone {
		return false
	}
	return winner != favorite
}

// derive fills the odds-based fields from the raw match record.
func (m *Match) derive() {
	m.AvgGap, m.HasGap = averageGap(m.Odds)
	m.Favorite = favoriteOf(m.AvgGap, m.HasGap)
	m.Winner = winnerOf(m.HomeGoals, m.AwayGoals)
	m.Upset = isUpset(m.Favorite, m.Winner)
}

// hasAnyOddsCell reports whether any of the thirty odds cells is present.
func (m Match) hasAnyOddsCell() bool {
	for _, o := range m.Odds {
		if o.Home != nil || o.Draw != nil || o.Away != nil {
			return true
		}
	}
	return false
}

// absGap is |AvgGap|, NaN when no book quoted the match both ways.
func (m Match) absGap() float64 {
	if !m.HasGap {
		return math.NaN()
	}
	return math.Abs(m.AvgGap)
}
