package report

import (
	"bytes"
	"context"
	"fmt"
	tpl "html/template"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/a-h/templ"
)

// Page renders the whole report as a single HTML page. Tailwind via CDN keeps
// the styling consistent without shipping assets.
func Page(s Summary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		writeHead(&buf)
		writeHeadline(&buf, s)
		writeCharts(&buf, s.Charts)
		writeBooks(&buf, s.Books)
		writeSeasons(&buf, s.Seasons)
		writeLeagues(&buf, s.Leagues)
		writeGapBands(&buf, s.GapBands)
		writeEdges(&buf, s.Edges)
		fmt.Fprintf(&buf, `<p class="mt-8 text-xs text-stone-400">run %s · generated %s · dataset %s</p>`,
			tpl.HTMLEscapeString(s.RunID),
			s.GeneratedAt.Format("2006-01-02 15:04:05"),
			tpl.HTMLEscapeString(s.Dataset))
		buf.WriteString(`</div></div></body></html>`)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func writeHead(buf *bytes.Buffer) {
	buf.WriteString(`<!doctype html><html lang="en"><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"><title>Matchday Report</title><script src="https://cdn.tailwindcss.com"></script></head><body class="bg-[#F7F0E6] font-sans text-stone-800"><div class="min-h-screen flex justify-center py-10"><div class="max-w-5xl w-full bg-white/90 rounded-3xl p-8 shadow-2xl"><h1 class="text-3xl font-black mb-6">Matchday: odds, upsets and player ratings</h1>`)
}

func writeHeadline(buf *bytes.Buffer, s Summary) {
	h := s.Headline
	buf.WriteString(`<div class="grid grid-cols-4 gap-4 mb-8">`)
	stat(buf, "Matches kept", fmt.Sprintf("%d / %d", h.Kept, h.Loaded))
	stat(buf, "Dropped (no odds / lineup)", fmt.Sprintf("%d / %d", h.DroppedNoOdds, h.DroppedLineup))
	stat(buf, "Decisive · draws", fmt.Sprintf("%d · %d", h.Decisive, h.Draws))
	stat(buf, "Upset rate", fmt.Sprintf("%.1f%% (%d)", h.UpsetRate*100, h.Upsets))
	buf.WriteString(`</div>`)
	if s.LeagueFilter != "" {
		fmt.Fprintf(buf, `<p class="mb-6 text-sm text-stone-500">League filter: %s</p>`, tpl.HTMLEscapeString(s.LeagueFilter))
	}
}

func stat(buf *bytes.Buffer, label, value string) {
	fmt.Fprintf(buf, `<div class="bg-stone-50 rounded-xl p-4"><div class="text-xs uppercase text-stone-500">%s</div><div class="text-xl font-extrabold">%s</div></div>`,
		tpl.HTMLEscapeString(label), tpl.HTMLEscapeString(value))
}

func writeCharts(buf *bytes.Buffer, charts []Chart) {
	if len(charts) == 0 {
		return
	}
	section(buf, "Charts")
	buf.WriteString(`<div class="grid grid-cols-2 gap-6 mb-8">`)
	for _, c := range charts {
		fmt.Fprintf(buf, `<figure><img src="%s" alt="%s" class="rounded-xl border"><figcaption class="text-sm text-stone-500 mt-1">%s</figcaption></figure>`,
			tpl.HTMLEscapeString(c.File), tpl.HTMLEscapeString(c.Title), tpl.HTMLEscapeString(c.Title))
	}
	buf.WriteString(`</div>`)
}

func writeBooks(buf *bytes.Buffer, rows []BookRow) {
	section(buf, "Bookmaker margin")
	table(buf, []string{"Book", "Fully quoted", "Mean overround"}, func(b *bytes.Buffer) {
		for _, r := range rows {
			fmt.Fprintf(b, `<tr><td class="py-1 pr-6 font-mono">%s</td><td class="py-1 pr-6">%d</td><td class="py-1">%.2f%%</td></tr>`,
				tpl.HTMLEscapeString(r.Book), r.Quoted, r.MeanOverround)
		}
	})
}

func writeSeasons(buf *bytes.Buffer, rows []SeasonRow) {
	section(buf, "Upsets by season")
	table(buf, []string{"Season", "Matches", "Decisive", "Upsets", "Upset rate"}, func(b *bytes.Buffer) {
		for _, r := range rows {
			fmt.Fprintf(b, `<tr><td class="py-1 pr-6">%s</td><td class="py-1 pr-6">%d</td><td class="py-1 pr-6">%d</td><td class="py-1 pr-6">%d</td><td class="py-1">%.1f%%</td></tr>`,
				tpl.HTMLEscapeString(r.Season), r.Matches, r.Decisive, r.Upsets, r.UpsetRate*100)
		}
	})
}

func writeLeagues(buf *bytes.Buffer, rows []LeagueRow) {
	section(buf, "Upsets by league")
	table(buf, []string{"League", "Matches", "Decisive", "Upsets", "Upset rate"}, func(b *bytes.Buffer) {
		for _, r := range rows {
			fmt.Fprintf(b, `<tr><td class="py-1 pr-6">%s</td><td class="py-1 pr-6">%d</td><td class="py-1 pr-6">%d</td><td class="py-1 pr-6">%d</td><td class="py-1">%.1f%%</td></tr>`,
				tpl.HTMLEscapeString(r.League), r.Matches, r.Decisive, r.Upsets, r.UpsetRate*100)
		}
	})
}

func writeGapBands(buf *bytes.Buffer, rows []GapBand) {
	section(buf, "Upset rate by favorite margin")
	table(buf, []string{"|avg gap| (pts)", "Matches", "Decisive", "Upsets", "Upset rate"}, func(b *bytes.Buffer) {
		for _, r := range rows {
			fmt.Fprintf(b, `<tr><td class="py-1 pr-6">%s</td><td class="py-1 pr-6">%d</td><td class="py-1 pr-6">%d</td><td class="py-1 pr-6">%d</td><td class="py-1">%.1f%%</td></tr>`,
				tpl.HTMLEscapeString(r.Label), r.Matches, r.Decisive, r.Upsets, r.UpsetRate*100)
		}
	})
}

func writeEdges(buf *bytes.Buffer, rows []AttributeEdge) {
	section(buf, "Winner vs loser: average player ratings")
	table(buf, []string{"Attribute", "Winners", "Losers", "Edge"}, func(b *bytes.Buffer) {
		for _, r := range rows {
			fmt.Fprintf(b, `<tr><td class="py-1 pr-6 font-mono">%s</td><td class="py-1 pr-6">%.2f</td><td class="py-1 pr-6">%.2f</td><td class="py-1">%+.2f</td></tr>`,
				tpl.HTMLEscapeString(r.Attribute), r.Winner, r.Loser, r.Edge)
		}
	})
}

func section(buf *bytes.Buffer, title string) {
	fmt.Fprintf(buf, `<h2 class="text-xl font-bold mt-8 mb-3">%s</h2>`, tpl.HTMLEscapeString(title))
}

func table(buf *bytes.Buffer, headers []string, body func(*bytes.Buffer)) {
	buf.WriteString(`<table class="w-full text-sm text-left"><thead><tr>`)
	for _, h := range headers {
		fmt.Fprintf(buf, `<th class="py-1 pr-6 text-stone-500 font-semibold">%s</th>`, tpl.HTMLEscapeString(h))
	}
	buf.WriteString(`</tr></thead><tbody>`)
	body(buf)
	buf.WriteString(`</tbody></table>`)
}

// WriteFile renders the report to <dir>/report.html.
func WriteFile(dir string, s Summary) (string, error) {
	path := filepath.Join(dir, "report.html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	if err := Page(s).Render(context.Background(), f); err != nil {
		f.Close()
		return "", fmt.Errorf("render report: %w", err)
	}
	return path, f.Close()
}

// Handler serves the rendered report at / and the chart images from dir.
func Handler(dir string, s Summary) http.Handler {
	page := templ.Handler(Page(s))
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			page.ServeHTTP(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
