package main

import (
	"math"
	"sort"
	"time"
)

// Numeric skill ratings carried by each Player_Attributes snapshot,
// in column order. All are on a 0-100 scale.
var attributeNames = []string{
	"overall_rating", "potential", "crossing", "finishing",
	"heading_accuracy", "short_passing", "volleys", "dribbling",
	"curve", "free_kick_accuracy", "long_passing", "ball_control",
	"acceleration", "sprint_speed", "agility", "reactions", "balance",
	"shot_power", "jumping", "stamina", "strength", "long_shots",
	"aggression", "interceptions", "positioning", "vision", "penalties",
	"marking", "standing_tackle", "sliding_tackle", "gk_diving",
	"gk_handling", "gk_kicking", "gk_positioning", "gk_reflexes",
}

// Snapshot is one dated attribute sample for a player. Ratings line up with
// attributeNames; NaN marks a value the dataset left empty.
type Snapshot struct {
	PlayerID int64
	Date     time.Time
	Ratings  []float64
}

// attributeBook answers nearest-in-time snapshot lookups. Histories are
// sorted once at construction so each lookup is a binary search.
type attributeBook struct {
	byPlayer map[int64][]Snapshot
}

func newAttributeBook(byPlayer map[int64][]Snapshot) *attributeBook {
	for _, snaps := range byPlayer {
		sort.Slice(snaps, func(i, j int) bool {
			return snaps[i].Date.Before(snaps[j].Date)
		})
	}
	return &attributeBook{byPlayer: byPlayer}
}

// nearest returns the snapshot whose date is closest to at, by minimum
// absolute difference. When two snapshots are equidistant the earlier one
// wins. ok is false for a player with no snapshots at all.
func (b *attributeBook) nearest(playerID int64, at time.Time) (Snapshot, bool) {
	snaps := b.byPlayer[playerID]
	if len(snaps) == 0 {
		return Snapshot{}, false
	}
	idx := sort.Search(len(snaps), func(i int) bool {
		return !snaps[i].Date.Before(at)
	})
	if idx == 0 {
		return snaps[0], true
	}
	if idx == len(snaps) {
		return snaps[len(snaps)-1], true
	}
	before := snaps[idx-1]
	after := snaps[idx]
	if at.Sub(before.Date) <= after.Date.Sub(at) {
		return before, true
	}
	return after, true
}

// sideAverage averages the nearest snapshots of one side's starters into a
// single attribute vector. Per attribute the mean runs over the starters that
// actually carry a value; an attribute nobody carries stays NaN.
func (b *attributeBook) sideAverage(players []int64, at time.Time) []float64 {
	sum := make([]float64, len(attributeNames))
	n := make([]int, len(attributeNames))
	for _, p := range players {
		snap, ok := b.nearest(p, at)
		if !ok {
			continue
		}
		for i, v := range snap.Ratings {
			if math.IsNaN(v) {
				continue
			}
			sum[i] += v
			n[i]++
		}
	}
	avg := make([]float64, len(attributeNames))
	for i := range avg {
		if n[i] == 0 {
			avg[i] = math.NaN()
			continue
		}
		avg[i] = sum[i] / float64(n[i])
	}
	return avg
}

func attributeIndex(name string) int {
	for i, n := range attributeNames {
		if n == name {
			return i
		}
	}
	return -1
}
