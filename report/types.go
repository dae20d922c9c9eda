package report

import "time"

type Headline struct {
	Loaded        int     `json:"loaded"`
	Kept          int     `json:"kept"`
	DroppedNoOdds int     `json:"dropped_no_odds"`
	DroppedLineup int     `json:"dropped_lineup"`
	Decisive      int     `json:"decisive"`
	Draws         int     `json:"draws"`
	Upsets        int     `json:"upsets"`
	UpsetRate     float64 `json:"upset_rate"` // over decisive matches
}

type SeasonRow struct {
	Season    string  `json:"season"`
	Matches   int     `json:"matches"`
	Decisive  int     `json:"decisive"`
	Upsets    int     `json:"upsets"`
	UpsetRate float64 `json:"upset_rate"`
}

type LeagueRow struct {
	League    string  `json:"league"`
	Matches   int     `json:"matches"`
	Decisive  int     `json:"decisive"`
	Upsets    int     `json:"upsets"`
	UpsetRate float64 `json:"upset_rate"`
}

type BookRow struct {
	Book          string  `json:"book"`
	Quoted        int     `json:"quoted"` // matches with all three outcomes priced
	MeanOverround float64 `json:"mean_overround"`
}

// GapBucket is one bar of the signed average-gap histogram.
type GapBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// GapBand groups matches by absolute average gap and carries the upset rate
// inside the band.
type GapBand struct {
	Label     string  `json:"label"`
	Matches   int     `json:"matches"`
	Decisive  int     `json:"decisive"`
	Upsets    int     `json:"upsets"`
	UpsetRate float64 `json:"upset_rate"`
}

// AttributeEdge is the winner-minus-loser mean rating for one attribute,
// taken across all decisive matches.
type AttributeEdge struct {
	Attribute string  `json:"attribute"`
	Winner    float64 `json:"winner"`
	Loser     float64 `json:"loser"`
	Edge      float64 `json:"edge"`
}

type Chart struct {
	Title string `json:"title"`
	File  string `json:"file"`
}

type Summary struct {
	RunID        string          `json:"run_id"`
	GeneratedAt  time.Time       `json:"generated_at"`
	Dataset      string          `json:"dataset"`
	LeagueFilter string          `json:"league_filter,omitempty"`
	Headline     Headline        `json:"headline"`
	Seasons      []SeasonRow     `json:"seasons"`
	Leagues      []LeagueRow     `json:"leagues"`
	Books        []BookRow       `json:"books"`
	GapHistogram []GapBucket     `json:"gap_histogram"`
	GapBands     []GapBand       `json:"gap_bands"`
	Edges        []AttributeEdge `json:"attribute_edges"`
	Charts       []Chart         `json:"charts"`
}
