// Package analytics summarises training history for the analytics screen.
package analytics

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/rinkside/rinkside/internal/cli/client"
)

// DataPoint is the total training time for one calendar day.
type DataPoint struct {
	Day     time.Time // midnight UTC
	Label   string    // MM/DD
	Minutes int
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate accepts the date formats the backend and users produce:
// RFC 3339, zone-less ISO timestamps (read as UTC), and plain dates.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q (use YYYY-MM-DD)", s)
}

// DailyDurations sums training minutes per UTC day, oldest first. Trainings
// with unparseable dates are skipped.
func DailyDurations(trainings []client.Training) []DataPoint {
	totals := make(map[time.Time]int)
	for _, t := range trainings {
		d, err := ParseDate(t.Date)
		if err != nil {
			continue
		}
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		totals[day] += t.Duration
	}

	points := make([]DataPoint, 0, len(totals))
	for day, minutes := range totals {
		points = append(points, DataPoint{Day: day, Label: day.Format("01/02"), Minutes: minutes})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Day.Before(points[j].Day) })
	return points
}

// Total returns the summed minutes across points.
func Total(points []DataPoint) int {
	total := 0
	for _, p := range points {
		total += p.Minutes
	}
	return total
}

const barWidth = 40

// RenderChart writes a horizontal bar chart of points to w.
func RenderChart(w io.Writer, points []DataPoint) {
	if len(points) == 0 {
		fmt.Fprintln(w, "No training data found.")
		return
	}

	peak := 0
	for _, p := range points {
		if p.Minutes > peak {
			peak = p.Minutes
		}
	}

	for _, p := range points {
		n := 0
		if peak > 0 {
			n = p.Minutes * barWidth / peak
		}
		if n == 0 && p.Minutes > 0 {
			n = 1
		}
		fmt.Fprintf(w, "%s │%s %d min\n", p.Label, strings.Repeat("█", n), p.Minutes)
	}
	fmt.Fprintf(w, "\nTotal: %d min over %d day(s)\n", Total(points), len(points))
}
