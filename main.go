package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"matchday/report"
)

type Config struct {
	DBPath string // MATCHDAY_DB
	OutDir string // MATCHDAY_OUT
	League string // MATCHDAY_LEAGUE, optional exact league name
	Listen string // MATCHDAY_LISTEN, optional; empty disables the report server
}

func loadConfig() Config {
	// A missing .env is fine; env vars win either way.
	_ = godotenv.Load()
	return Config{
		DBPath: getEnv("MATCHDAY_DB", "./database.sqlite"),
		OutDir: getEnv("MATCHDAY_OUT", "./out"),
		League: getEnv("MATCHDAY_LEAGUE", ""),
		Listen: getEnv("MATCHDAY_LISTEN", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	runID := uuid.NewString()
	log := logrus.WithField("run", runID[:8])

	cfg := loadConfig()
	if err := run(cfg, runID, log); err != nil {
		log.WithError(err).Fatal("analysis failed")
	}
}

func run(cfg Config, runID string, log *logrus.Entry) error {
	if err := initDB(cfg.DBPath); err != nil {
		return err
	}
	defer db.Close()

	start := time.Now()
	leagues, err := loadLeagues()
	if err != nil {
		return err
	}
	teams, err := loadTeams()
	if err != nil {
		return err
	}
	matches, err := loadMatches()
	if err != nil {
		return err
	}
	snapshots, err := loadPlayerAttributes()
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"leagues": len(leagues),
		"teams":   len(teams),
		"matches": len(matches),
		"players": len(snapshots),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Info("dataset loaded")

	matches = filterLeague(matches, leagues, cfg.League)
	loaded := len(matches)

	kept, droppedNoOdds, droppedLineup := cleanMatches(matches)
	log.WithFields(logrus.Fields{
		"kept":           len(kept),
		"dropped_odds":   droppedNoOdds,
		"dropped_lineup": droppedLineup,
	}).Info("matches cleaned")

	for i := range kept {
		kept[i].derive()
	}

	book := newAttributeBook(snapshots)

	start = time.Now()
	summary := summarize(cfg, runID, loaded, droppedNoOdds, droppedLineup, kept, leagues, book)
	log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("summary built")

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := renderCharts(cfg.OutDir, &summary); err != nil {
		return err
	}
	path, err := report.WriteFile(cfg.OutDir, summary)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"report": path,
		"charts": len(summary.Charts),
	}).Info("report written")

	printSummary(summary)

	if cfg.Listen != "" {
		fmt.Printf("📊 matchday report on http://localhost%s\n", cfg.Listen)
		return http.ListenAndServe(cfg.Listen, report.Handler(cfg.OutDir, summary))
	}
	return nil
}

func printSummary(s report.Summary) {
	h := s.Headline
	fmt.Printf("\nMatches: %d loaded, %d kept (%d dropped without odds, %d without full lineups)\n",
		h.Loaded, h.Kept, h.DroppedNoOdds, h.DroppedLineup)
	fmt.Printf("Results: %d decisive, %d draws, %d upsets (%.1f%% of decisive)\n\n",
		h.Decisive, h.Draws, h.Upsets, h.UpsetRate*100)

	fmt.Println("Upset rate by season")
	fmt.Printf("  %-10s %8s %8s %8s %8s\n", "season", "matches", "decisive", "upsets", "rate")
	for _, r := range s.Seasons {
		fmt.Printf("  %-10s %8d %8d %8d %7.1f%%\n", r.Season, r.Matches, r.Decisive, r.Upsets, r.UpsetRate*100)
	}

	fmt.Println("\nUpset rate by league")
	fmt.Printf("  %-28s %8s %8s %8s %8s\n", "league", "matches", "decisive", "upsets", "rate")
	for _, r := range s.Leagues {
		fmt.Printf("  %-28s %8d %8d %8d %7.1f%%\n", r.League, r.Matches, r.Decisive, r.Upsets, r.UpsetRate*100)
	}

	fmt.Println("\nMean overround by bookmaker")
	fmt.Printf("  %-6s %10s %12s\n", "book", "quoted", "overround")
	for _, r := range s.Books {
		fmt.Printf("  %-6s %10d %11.2f%%\n", r.Book, r.Quoted, r.MeanOverround)
	}

	fmt.Println("\nUpset rate by favorite margin (|avg gap|, pts)")
	fmt.Printf("  %-8s %8s %8s %8s %8s\n", "band", "matches", "decisive", "upsets", "rate")
	for _, r := range s.GapBands {
		fmt.Printf("  %-8s %8d %8d %8d %7.1f%%\n", r.Label, r.Matches, r.Decisive, r.Upsets, r.UpsetRate*100)
	}

	if len(s.Edges) > 0 {
		fmt.Println("\nWinner vs loser average ratings (top 10 edges)")
		fmt.Printf("  %-20s %8s %8s %8s\n", "attribute", "winners", "losers", "edge")
		for i, e := range s.Edges {
			if i == 10 {
				break
			}
			fmt.Printf("  %-20s %8.2f %8.2f %+8.2f\n", e.Attribute, e.Winner, e.Loser, e.Edge)
		}
	}
	fmt.Println()
}
