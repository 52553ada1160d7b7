// Package report renders classified tasks into the weekly report grammar and
// parses report text back into a document block tree.
//
// Grammar:
//
//	### 1. Completed Last Week
//
//	a. <title> ✅
//
//	### 2. This Week's Plan
//
//	a. <title>[ <glyph>] — <bar> <pct>%[ (<done>/<total>pd)]
//	   i. <subtask line>
//
//	### 3. Schedule Notes
//
//	<glyph> <title> — <condition>
//
// Sections with no items carry a single placeholder line. The notes section
// is emitted only when at least one current task carries a glyph.
package report

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rezkam/weekly/internal/domain"
	"github.com/rezkam/weekly/internal/progress"
)

// Section titles in render order.
const (
	TitleCompleted = "Completed Last Week"
	TitlePlan      = "This Week's Plan"
	TitleNotes     = "Schedule Notes"
	TitleInfoSync  = "Info Sync / Issues / Learning"
)

// NonePlaceholder is rendered in place of an empty section.
const NonePlaceholder = "None"

// Status glyphs, highest priority first.
const (
	GlyphOverdue      = "🔴"
	GlyphBehind       = "🟠"
	GlyphNearDeadline = "🟡"
)

const (
	headingMarker = "### "
	itemSeparator = " — "
	subIndent     = "   "
	dateLayout    = "2006-01-02"
)

// Glyph returns the single status glyph for a current task, or "".
func Glyph(t domain.Task, percent int) string {
	switch {
	case t.IsOverdue:
		return GlyphOverdue
	case progress.BehindSchedule(t, percent):
		return GlyphBehind
	case progress.NearDeadline(t):
		return GlyphNearDeadline
	default:
		return ""
	}
}

// Build lays out the report for a classified task set. Every time-derived
// value comes from the enriched tasks; no clock is read here.
func Build(set domain.TaskSet) domain.ReportDocument {
	completed := domain.Section{Title: TitleCompleted, Placeholder: NonePlaceholder}
	for _, t := range set.RecentlyDone {
		completed.Items = append(completed.Items, domain.ReportItem{
			Text: oneLine(t.Title) + " " + progress.CompletionMarker,
		})
	}

	plan := domain.Section{Title: TitlePlan, Placeholder: NonePlaceholder}
	var notes []string
	for _, t := range set.Current {
		r := progress.Calculate(t.Subtasks)
		glyph := Glyph(t, r.Percent)

		var b strings.Builder
		b.WriteString(oneLine(t.Title))
		if glyph != "" {
			b.WriteString(" " + glyph)
		}
		fmt.Fprintf(&b, "%s%s %d%%", itemSeparator, progress.Bar(r.Percent), r.Percent)
		if units := r.Units(); units != "" {
			fmt.Fprintf(&b, " (%s)", units)
		}

		item := domain.ReportItem{Text: b.String()}
		for _, s := range t.Subtasks {
			item.Subitems = append(item.Subitems, strings.ReplaceAll(strings.TrimSpace(s), "\n", " "))
		}
		plan.Items = append(plan.Items, item)

		if note := scheduleNote(t, glyph, r.Percent); note != "" {
			notes = append(notes, note)
		}
	}

	doc := domain.ReportDocument{Sections: []domain.Section{completed, plan}}
	if len(notes) > 0 {
		doc.Sections = append(doc.Sections, domain.Section{Title: TitleNotes, Lines: notes})
	}
	return doc
}

func scheduleNote(t domain.Task, glyph string, percent int) string {
	title := oneLine(t.Title)
	switch glyph {
	case GlyphOverdue:
		return fmt.Sprintf("%s %s%sdeadline %s, %d day(s) overdue",
			glyph, title, itemSeparator, t.End.Format(dateLayout), t.DaysOverdue)
	case GlyphBehind:
		return fmt.Sprintf("%s %s%s%d%% of time elapsed, %d%% complete",
			glyph, title, itemSeparator, t.TimeProgress, percent)
	case GlyphNearDeadline:
		return fmt.Sprintf("%s %s%s%d day(s) remaining",
			glyph, title, itemSeparator, t.DaysRemaining)
	default:
		return ""
	}
}

// Render writes a report document as text. Output is a pure function of doc.
func Render(doc domain.ReportDocument) string {
	var b strings.Builder
	for i, s := range doc.Sections {
		fmt.Fprintf(&b, "%s%d. %s\n\n", headingMarker, i+1, s.Title)

		if len(s.Items) == 0 && len(s.Lines) == 0 {
			b.WriteString(s.Placeholder + "\n\n")
			continue
		}
		for _, line := range s.Lines {
			b.WriteString(line + "\n")
		}
		for j, item := range s.Items {
			fmt.Fprintf(&b, "%s. %s\n", Label(j), item.Text)
			for k, sub := range item.Subitems {
				fmt.Fprintf(&b, "%s%s. %s\n", subIndent, Roman(k+1), sub)
			}
			if len(item.Subitems) > 0 && j < len(s.Items)-1 {
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// Fallback is the non-generative report: the same grammar, no external call.
func Fallback(set domain.TaskSet) string {
	return Render(Build(set))
}

// WithInfoSync appends the info-sync section to a report text. Blank info
// yields the placeholder item.
func WithInfoSync(text, info string) string {
	n := 1
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, headingMarker) {
			n++
		}
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(text, "\n"))
	fmt.Fprintf(&b, "\n\n%s%d. %s\n\n", headingMarker, n, TitleInfoSync)

	info = strings.TrimSpace(info)
	if info == "" {
		b.WriteString("a. " + NonePlaceholder + "\n")
		return b.String()
	}
	b.WriteString(info + "\n")
	return b.String()
}

// Label returns the item label for index i: a..z, then aa..zz, then aaa, ...
func Label(i int) string {
	var b []byte
	for n := i + 1; n > 0; n = (n - 1) / 26 {
		b = append(b, byte('a'+(n-1)%26))
	}
	slices.Reverse(b)
	return string(b)
}

var romanNumerals = []struct {
	value  int
	symbol string
}{
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

// Roman returns the lower-case roman numeral for n in 1..399.
// Larger values fall back to decimal.
func Roman(n int) string {
	if n <= 0 || n >= 400 {
		return fmt.Sprint(n)
	}
	var b strings.Builder
	for _, r := range romanNumerals {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "\n", " ")), " ")
}
