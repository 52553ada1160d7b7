// Package progress computes task completion from subtask lines and the
// schedule-derived flags that depend on it.
package progress

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rezkam/weekly/internal/domain"
)

const (
	// BehindScheduleSlack is how many percentage points completion may trail
	// elapsed time before a task is flagged behind schedule.
	BehindScheduleSlack = 10

	// NearDeadlineDays is the largest positive DaysRemaining that counts as near-deadline.
	NearDeadlineDays = 2

	// HoursPerDay converts hour-denominated quantities to day equivalents.
	HoursPerDay = 8
)

// CompletionMarker is appended to subtask lines that are done.
const CompletionMarker = "✅"

// completionMarkers are all glyphs accepted as "done" on a subtask line.
var completionMarkers = []string{CompletionMarker, "✓", "✔"}

var (
	dayQuantity  = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:pd|天)`)
	hourQuantity = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:小时|h)`)
	numbered     = regexp.MustCompile(`^\s*\d+[.、)]`)
)

// Result is the outcome of a progress calculation.
type Result struct {
	Percent        int
	QuantityBased  bool
	CompletedQty   float64
	TotalQty       float64
	CompletedCount int
	TotalCount     int
}

// Units renders "completed/total" day units for quantity-based results, else "".
func (r Result) Units() string {
	if !r.QuantityBased {
		return ""
	}
	return formatQty(r.CompletedQty) + "/" + formatQty(r.TotalQty) + "pd"
}

// IsComplete reports whether the line carries a completion marker.
func IsComplete(line string) bool {
	for _, m := range completionMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// Quantity returns the work size of a line in days.
// Day units win over hour units when a line carries both.
func Quantity(line string) (float64, bool) {
	if m := dayQuantity.FindStringSubmatch(line); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil && v > 0 {
			return v, true
		}
	}
	if m := hourQuantity.FindStringSubmatch(line); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil && v > 0 {
			return v / HoursPerDay, true
		}
	}
	return 0, false
}

// Calculate computes completion over subtask lines.
//
// When any line carries a quantity token the result is weighted by quantity;
// otherwise it counts enumerable lines (numeric-prefixed or quantity-bearing).
// No recognized line yields 0%.
func Calculate(lines []string) Result {
	var r Result
	for _, line := range lines {
		qty, ok := Quantity(line)
		if !ok {
			continue
		}
		r.TotalQty += qty
		if IsComplete(line) {
			r.CompletedQty += qty
		}
	}

	if r.TotalQty > 0 {
		r.QuantityBased = true
		r.Percent = percentOf(r.CompletedQty, r.TotalQty)
		return r
	}

	for _, line := range lines {
		if !numbered.MatchString(line) {
			continue
		}
		r.TotalCount++
		if IsComplete(line) {
			r.CompletedCount++
		}
	}
	if r.TotalCount > 0 {
		r.Percent = percentOf(float64(r.CompletedCount), float64(r.TotalCount))
	}
	return r
}

// percentOf rounds to the nearest integer but never reports 100 for partial work.
func percentOf(done, total float64) int {
	p := int(math.Round(100 * done / total))
	if p >= 100 && done < total {
		return 99
	}
	return min(max(p, 0), 100)
}

// BehindSchedule reports whether completion trails elapsed time by more than
// BehindScheduleSlack. Done tasks are never behind.
func BehindSchedule(t domain.Task, percent int) bool {
	if t.Status == domain.TaskStatusDone {
		return false
	}
	return percent < t.TimeProgress-BehindScheduleSlack
}

// NearDeadline reports whether 0 < DaysRemaining ≤ NearDeadlineDays.
func NearDeadline(t domain.Task) bool {
	return t.DaysRemaining > 0 && t.DaysRemaining <= NearDeadlineDays
}

func formatQty(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
