package main

// cleanMatches applies the two retention rules, in order:
//   - drop a match when every sportsbook cell is empty
//   - drop a match when any of the 22 starting-player ids is empty
//
// Everything else is kept as-is; malformed rows already failed at load time.
func cleanMatches(matches []Match) (kept []Match, droppedNoOdds, droppedLineup int) {
	kept = make([]Match, 0, len(matches))
	for _, m := range matches {
		if !m.hasAnyOddsCell() {
			droppedNoOdds++
			continue
		}
		if len(m.HomePlayers) < startersPerSide || len(m.AwayPlayers) < startersPerSide {
			droppedLineup++
			continue
		}
		kept = append(kept, m)
	}
	return kept, droppedNoOdds, droppedLineup
}

// filterLeague keeps only matches belonging to the named league.
// An empty name keeps everything.
func filterLeague(matches []Match, leagues map[int64]string, name string) []Match {
	if name == "" {
		return matches
	}
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if leagues[m.LeagueID] == name {
			out = append(out, m)
		}
	}
	return out
}
