package main

import (
	"fmt"
	"math"
	"sort"
	"time"

	"matchday/report"
)

const gapBucketWidth = 10

var gapBandEdges = []struct {
	lo, hi float64
	label  string
}{
	{0, 5, "0-5"},
	{5, 10, "5-10"},
	{10, 20, "10-20"},
	{20, 40, "20-40"},
	{40, math.Inf(1), "40+"},
}

// summarize folds the derived matches into the report model. Matches are
// expected to be cleaned and derive()d.
func summarize(cfg Config, runID string, loaded, droppedNoOdds, droppedLineup int, matches []Match, leagues map[int64]string, book *attributeBook) report.Summary {
	return report.Summary{
		RunID:        runID,
		GeneratedAt:  time.Now(),
		Dataset:      cfg.DBPath,
		LeagueFilter: cfg.League,
		Headline:     headline(loaded, droppedNoOdds, droppedLineup, matches),
		Seasons:      seasonRows(matches),
		Leagues:      leagueRows(matches, leagues),
		Books:        bookRows(matches),
		GapHistogram: gapHistogram(matches),
		GapBands:     gapBandRows(matches),
		Edges:        attributeEdges(matches, book),
	}
}

func rate(upsets, decisive int) float64 {
	if decisive == 0 {
		return 0
	}
	return float64(upsets) / float64(decisive)
}

func headline(loaded, droppedNoOdds, droppedLineup int, matches []Match) report.Headline {
	h := report.Headline{
		Loaded:        loaded,
		Kept:          len(matches),
		DroppedNoOdds: droppedNoOdds,
		DroppedLineup: droppedLineup,
	}
	for _, m := range matches {
		if m.Winner == SideDraw {
			h.Draws++
			continue
		}
		h.Decisive++
		if m.Upset {
			h.Upsets++
		}
	}
	h.UpsetRate = rate(h.Upsets, h.Decisive)
	return h
}

func seasonRows(matches []Match) []report.SeasonRow {
	bySeason := make(map[string]*report.SeasonRow)
	for _, m := range matches {
		r, ok := bySeason[m.Season]
		if !ok {
			r = &report.SeasonRow{Season: m.Season}
			bySeason[m.Season] = r
		}
		r.Matches++
		if m.Winner != SideDraw {
			r.Decisive++
			if m.Upset {
				r.Upsets++
			}
		}
	}
	rows := make([]report.SeasonRow, 0, len(bySeason))
	for _, r := range bySeason {
		r.UpsetRate = rate(r.Upsets, r.Decisive)
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Season < rows[j].Season })
	return rows
}

func leagueRows(matches []Match, leagues map[int64]string) []report.LeagueRow {
	byLeague := make(map[string]*report.LeagueRow)
	for _, m := range matches {
		name := leagues[m.LeagueID]
		if name == "" {
			name = fmt.Sprintf("league %d", m.LeagueID)
		}
		r, ok := byLeague[name]
		if !ok {
			r = &report.LeagueRow{League: name}
			byLeague[name] = r
		}
		r.Matches++
		if m.Winner != SideDraw {
			r.Decisive++
			if m.Upset {
				r.Upsets++
			}
		}
	}
	rows := make([]report.LeagueRow, 0, len(byLeague))
	for _, r := range byLeague {
		r.UpsetRate = rate(r.Upsets, r.Decisive)
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].League < rows[j].League })
	return rows
}

func bookRows(matches []Match) []report.BookRow {
	rows := make([]report.BookRow, 0, len(bookmakers))
	for _, b := range bookmakers {
		sum := 0.0
		n := 0
		for _, m := range matches {
			if over, ok := m.Odds[b].overround(); ok {
				sum += over
				n++
			}
		}
		row := report.BookRow{Book: b, Quoted: n}
		if n > 0 {
			row.MeanOverround = sum / float64(n)
		}
		rows = append(rows, row)
	}
	return rows
}

// gapHistogram buckets the signed average gap into 10-point bars over
// [-70, 70); outliers land in the end bars.
func gapHistogram(matches []Match) []report.GapBucket {
	const lo, hi = -70, 70
	n := (hi - lo) / gapBucketWidth
	counts := make([]int, n)
	for _, m := range matches {
		if !m.HasGap {
			continue
		}
		idx := int(math.Floor((m.AvgGap - lo) / gapBucketWidth))
		if idx < 0 {
			idx = 0
		}
		if idx >= n {
			idx = n - 1
		}
		counts[idx]++
	}
	buckets := make([]report.GapBucket, n)
	for i := range buckets {
		a := lo + i*gapBucketWidth
		buckets[i] = report.GapBucket{
			Label: fmt.Sprintf("%d..%d", a, a+gapBucketWidth),
			Count: counts[i],
		}
	}
	return buckets
}

func gapBandRows(matches []Match) []report.GapBand {
	rows := make([]report.GapBand, len(gapBandEdges))
	for i, e := range gapBandEdges {
		rows[i] = report.GapBand{Label: e.label}
	}
	for _, m := range matches {
		g := m.absGap()
		if math.IsNaN(g) {
			continue
		}
		for i, e := range gapBandEdges {
			if g >= e.lo && g < e.hi {
				rows[i].Matches++
				if m.Winner != SideDraw {
					rows[i].Decisive++
					if m.Upset {
						rows[i].Upsets++
					}
				}
				break
			}
		}
	}
	for i := range rows {
		rows[i].UpsetRate = rate(rows[i].Upsets, rows[i].Decisive)
	}
	return rows
}

// attributeEdges compares the winning and losing side's average player
// ratings across all decisive matches, sampled from each player's
// nearest-in-time snapshot.
func attributeEdges(matches []Match, book *attributeBook) []report.AttributeEdge {
	winSum := make([]float64, len(attributeNames))
	winN := make([]int, len(attributeNames))
	loseSum := make([]float64, len(attributeNames))
	loseN := make([]int, len(attributeNames))

	for _, m := range matches {
		var win, lose []int64
		switch m.Winner {
		case SideHome:
			win, lose = m.HomePlayers, m.AwayPlayers
		case SideAway:
			win, lose = m.AwayPlayers, m.HomePlayers
		default:
			continue
		}
		wAvg := book.sideAverage(win, m.Date)
		lAvg := book.sideAverage(lose, m.Date)
		for i := range attributeNames {
			if !math.IsNaN(wAvg[i]) {
				winSum[i] += wAvg[i]
				winN[i]++
			}
			if !math.IsNaN(lAvg[i]) {
				loseSum[i] += lAvg[i]
				loseN[i]++
			}
		}
	}

	var edges []report.AttributeEdge
	for i, name := range attributeNames {
		if winN[i] == 0 || loseN[i] == 0 {
			continue
		}
		w := winSum[i] / float64(winN[i])
		l := loseSum[i] / float64(loseN[i])
		edges = append(edges, report.AttributeEdge{Attribute: name, Winner: w, Loser: l, Edge: w - l})
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].Edge > edges[j].Edge })
	return edges
}
