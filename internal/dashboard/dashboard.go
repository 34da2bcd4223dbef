// Package dashboard renders the event list and stats as terminal text: bar
// charts scaled to the largest value shown, a trend sparkline over the most
// recent events, and a table of recent events.
package dashboard

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"github.com/isdelr/tagpulse-be/internal/models"
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Options controls the rendered layout.
type Options struct {
	BarWidth    int
	TrendWindow int
	TableRows   int
}

// DefaultOptions returns the layout used by the simulator.
func DefaultOptions() Options {
	return Options{BarWidth: 30, TrendWindow: 40, TableRows: 8}
}

// Render writes a full dashboard for events (newest first) and stats.
func Render(w io.Writer, events []models.Event, stats models.Stats, opts Options) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Events: %d   Unique tags: %d\n\n", stats.TotalEvents, stats.UniqueTags)
	b.WriteString(Bars("By type", stats.EventsByType, opts.BarWidth))
	b.WriteString("\n")
	b.WriteString(Bars("By source", stats.EventsBySource, opts.BarWidth))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Trend (last %d): %s\n\n", opts.TrendWindow, Sparkline(events, opts.TrendWindow))
	b.WriteString(Table(events, opts.TableRows))

	_, err := io.WriteString(w, b.String())
	return err
}

type bar struct {
	label string
	count int
}

// Bars renders one row per key, largest first. Bar length is relative to the
// largest count in counts.
func Bars(title string, counts map[string]int, width int) string {
	var b strings.Builder
	b.WriteString(title + "\n")
	if len(counts) == 0 {
		b.WriteString("  (no data)\n")
		return b.String()
	}
	if width <= 0 {
		width = 1
	}

	rows := make([]bar, 0, len(counts))
	peak, labelWidth := 0, 0
	for label, count := range counts {
		rows = append(rows, bar{label: label, count: count})
		peak = max(peak, count)
		labelWidth = max(labelWidth, utf8.RuneCountInString(label))
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].label < rows[j].label
	})

	for _, row := range rows {
		n := 0
		if peak > 0 {
			n = row.count * width / peak
		}
		if n == 0 && row.count > 0 {
			n = 1
		}
		fmt.Fprintf(&b, "  %-*s %s %d\n", labelWidth, row.label, strings.Repeat("█", n), row.count)
	}
	return b.String()
}

// Sparkline renders the most recent window events (given newest first) from
// oldest to newest. Each event's height reflects its type.
func Sparkline(events []models.Event, window int) string {
	if window <= 0 || len(events) == 0 {
		return ""
	}
	if len(events) > window {
		events = events[:window]
	}

	out := make([]rune, len(events))
	for i, e := range events {
		out[len(events)-1-i] = sparkLevels[typeLevel(e.Type)]
	}
	return string(out)
}

func typeLevel(eventType string) int {
	switch eventType {
	case "alert":
		return len(sparkLevels) - 1
	case "status":
		return len(sparkLevels) / 2
	default:
		return 0
	}
}

// Table renders up to limit events as aligned columns.
func Table(events []models.Event, limit int) string {
	if len(events) == 0 {
		return "No events yet.\n"
	}
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTAG\tSOURCE\tTYPE\tTIME")
	for _, e := range events {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.TagID, e.Source, e.Type, e.CreatedAt.Format(time.TimeOnly))
	}
	tw.Flush()
	return b.String()
}
