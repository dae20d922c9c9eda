package main

import (
	"fmt"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"

	"matchday/report"
)

// renderCharts writes the PNG charts into dir and records them on the
// summary so the report can embed them.
func renderCharts(dir string, s *report.Summary) error {
	type chartDef struct {
		title string
		file  string
		bars  []chart.Value
	}

	seasonBars := make([]chart.Value, 0, len(s.Seasons))
	for _, r := range s.Seasons {
		seasonBars = append(seasonBars, chart.Value{Label: shortSeason(r.Season), Value: r.UpsetRate * 100})
	}
	bookBars := make([]chart.Value, 0, len(s.Books))
	for _, r := range s.Books {
		if r.Quoted == 0 {
			continue
		}
		bookBars = append(bookBars, chart.Value{Label: r.Book, Value: r.MeanOverround})
	}
	gapBars := make([]chart.Value, 0, len(s.GapHistogram))
	for _, b := range s.GapHistogram {
		gapBars = append(gapBars, chart.Value{Label: b.Label, Value: float64(b.Count)})
	}
	edgeBars := make([]chart.Value, 0, 12)
	for _, e := range s.Edges {
		if len(edgeBars) == 12 {
			break
		}
		edgeBars = append(edgeBars, chart.Value{Label: e.Attribute, Value: e.Edge})
	}

	defs := []chartDef{
		{"Upset rate by season", "upsets_by_season.png", seasonBars},
		{"Mean overround by bookmaker", "overround_by_book.png", bookBars},
		{"Average home-away probability gap", "gap_histogram.png", gapBars},
		{"Winner vs loser rating edge (top attributes)", "attribute_edges.png", edgeBars},
	}

	for _, sp := range defs {
		if len(sp.bars) == 0 {
			continue
		}
		path := filepath.Join(dir, sp.file)
		if err := renderBarChart(sp.title, path, sp.bars); err != nil {
			return fmt.Errorf("render %s: %w", sp.file, err)
		}
		s.Charts = append(s.Charts, report.Chart{Title: sp.title, File: sp.file})
	}
	return nil
}

func renderBarChart(title, path string, bars []chart.Value) error {
	minV, maxV := 0.0, 0.0
	for _, b := range bars {
		if b.Value < minV {
			minV = b.Value
		}
		if b.Value > maxV {
			maxV = b.Value
		}
	}
	if maxV == 0 && minV == 0 {
		maxV = 1
	}

	ch := chart.BarChart{
		Title:  title,
		Width:  1100,
		Height: 512,
		Background: chart.Style{
			Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		BarWidth:     40,
		BarSpacing:   24,
		UseBaseValue: true,
		BaseValue:    0,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: minV * 1.15, Max: maxV * 1.15},
		},
		Bars: bars,
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ch.Render(chart.PNG, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// shortSeason turns "2008/2009" into "08/09" for bar labels.
func shortSeason(s string) string {
	if len(s) == 9 && s[4] == '/' {
		return s[2:4] + "/" + s[7:9]
	}
	return s
}
