package main

import (
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

var db *sql.DB

// The dataset stores dates as text, mostly with a midnight time part.
const (
	dateTimeLayout = "2006-01-02 15:04:05"
	dateOnlyLayout = "2006-01-02"
)

func initDB(path string) error {
	var err error
	db, err = sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open dataset %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping dataset %s: %w", path, err)
	}
	return nil
}

func parseDatasetDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateTimeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(dateOnlyLayout, s)
}

func loadLeagues() (map[int64]string, error) {
	rows, err := db.Query("SELECT id, name FROM League")
	if err != nil {
		return nil, fmt.Errorf("query leagues: %w", err)
	}
	defer rows.Close()

	leagues := make(map[int64]string)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan league: %w", err)
		}
		leagues[id] = name
	}
	return leagues, rows.Err()
}

// loadTeams maps team_api_id (the id the Match table references) to display name.
func loadTeams() (map[int64]string, error) {
	rows, err := db.Query("SELECT team_api_id, team_long_name FROM Team")
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()

	teams := make(map[int64]string)
	for rows.Next() {
		var apiID sql.NullInt64
		var name sql.NullString
		if err := rows.Scan(&apiID, &name); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		if apiID.Valid {
			teams[apiID.Int64] = name.String
		}
	}
	return teams, rows.Err()
}

func matchColumns() []string {
	cols := []string{
		"id", "league_id", "season", "stage", "date",
		"home_team_api_id", "away_team_api_id",
		"home_team_goal", "away_team_goal",
	}
	for i := 1; i <= startersPerSide; i++ {
		cols = append(cols, fmt.Sprintf("home_player_%d", i))
	}
	for i := 1; i <= startersPerSide; i++ {
		cols = append(cols, fmt.Sprintf("away_player_%d", i))
	}
	for _, b := range bookmakers {
		cols = append(cols, b+"H", b+"D", b+"A")
	}
	return cols
}

func loadMatches() ([]Match, error) {
	query := "SELECT " + strings.Join(matchColumns(), ", ") + " FROM Match"
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var (
			id, leagueID, homeTeam, awayTeam sql.NullInt64
			stage, homeGoals, awayGoals      sql.NullInt64
			season, date                     sql.NullString
		)
		home := make([]sql.NullInt64, startersPerSide)
		away := make([]sql.NullInt64, startersPerSide)
		odds := make([]sql.NullFloat64, len(bookmakers)*3)

		dest := []any{
			&id, &leagueID, &season, &stage, &date,
			&homeTeam, &awayTeam, &homeGoals, &awayGoals,
		}
		for i := range home {
			dest = append(dest, &home[i])
		}
		for i := range away {
			dest = append(dest, &away[i])
		}
		for i := range odds {
			dest = append(dest, &odds[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}

		when, err := parseDatasetDate(date.String)
		if err != nil {
			return nil, fmt.Errorf("match %d: bad date %q: %w", id.Int64, date.String, err)
		}

		m := Match{
			ID:         id.Int64,
			LeagueID:   leagueID.Int64,
			Season:     season.String,
			Stage:      int(stage.Int64),
			Date:       when,
			HomeTeamID: homeTeam.Int64,
			AwayTeamID: awayTeam.Int64,
			HomeGoals:  int(homeGoals.Int64),
			AwayGoals:  int(awayGoals.Int64),
			Odds:       make(map[string]BookOdds, len(bookmakers)),
		}
		for _, p := range home {
			if p.Valid {
				m.HomePlayers = append(m.HomePlayers, p.Int64)
			}
		}
		for _, p := range away {
			if p.Valid {
				m.AwayPlayers = append(m.AwayPlayers, p.Int64)
			}
		}
		for i, b := range bookmakers {
			m.Odds[b] = BookOdds{
				Home: nullableFloat(odds[i*3]),
				Draw: nullableFloat(odds[i*3+1]),
				Away: nullableFloat(odds[i*3+2]),
			}
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// loadPlayerAttributes reads every snapshot, grouped per player. Snapshots
// are returned unsorted; newAttributeBook orders them.
func loadPlayerAttributes() (map[int64][]Snapshot, error) {
	cols := append([]string{"player_api_id", "date"}, attributeNames...)
	query := "SELECT " + strings.Join(cols, ", ") + " FROM Player_Attributes"
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query player attributes: %w", err)
	}
	defer rows.Close()

	byPlayer := make(map[int64][]Snapshot)
	for rows.Next() {
		var playerID sql.NullInt64
		var date sql.NullString
		vals := make([]sql.NullFloat64, len(attributeNames))

		dest := []any{&playerID, &date}
		for i := range vals {
			dest = append(dest, &vals[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan player attributes: %w", err)
		}
		if !playerID.Valid || !date.Valid {
			continue
		}
		when, err := parseDatasetDate(date.String)
		if err != nil {
			continue
		}

		snap := Snapshot{
			PlayerID: playerID.Int64,
			Date:     when,
			Ratings:  make([]float64, len(attributeNames)),
		}
		for i, v := range vals {
			if v.Valid {
				snap.Ratings[i] = v.Float64
			} else {
				snap.Ratings[i] = math.NaN()
			}
		}
		byPlayer[snap.PlayerID] = append(byPlayer[snap.PlayerID], snap)
	}
	return byPlayer, rows.Err()
}
