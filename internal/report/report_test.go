package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/weekly/internal/domain"
)

func endAt(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func sampleSet() domain.TaskSet {
	return domain.TaskSet{
		RecentlyDone: []domain.Task{
			{ID: "d1", Title: "Onboarding flow", Status: domain.TaskStatusDone},
		},
		Current: []domain.Task{
			{
				ID:            "c1",
				Title:         "Billing export",
				Status:        domain.TaskStatusInProgress,
				Subtasks:      []string{"draft 1pd ✓", "polish 1pd"},
				End:           endAt(2025, 12, 20),
				IsOverdue:     true,
				DaysOverdue:   2,
				DaysRemaining: -2,
				TimeProgress:  100,
			},
			{
				ID:           "c2",
				Title:        "Search tuning",
				Status:       domain.TaskStatusNextUp,
				Subtasks:     []string{"1. collect queries", "2. tune boosts"},
				TimeProgress: 80,
			},
			{
				ID:            "c3",
				Title:         "Release notes",
				Status:        domain.TaskStatusReview,
				End:           endAt(2025, 12, 24),
				DaysRemaining: 2,
			},
		},
	}
}

func TestRender_Grammar(t *testing.T) {
	text := Fallback(sampleSet())

	expected := strings.Join([]string{
		"### 1. Completed Last Week",
		"",
		"a. Onboarding flow ✅",
		"",
		"### 2. This Week's Plan",
		"",
		"a. Billing export 🔴 — █████░░░░░ 50% (1/2pd)",
		"   i. draft 1pd ✓",
		"   ii. polish 1pd",
		"",
		"b. Search tuning 🟠 — ░░░░░░░░░░ 0%",
		"   i. 1. collect queries",
		"   ii. 2. tune boosts",
		"",
		"c. Release notes 🟡 — ░░░░░░░░░░ 0%",
		"",
		"### 3. Schedule Notes",
		"",
		"🔴 Billing export — deadline 2025-12-20, 2 day(s) overdue",
		"🟠 Search tuning — 80% of time elapsed, 0% complete",
		"🟡 Release notes — 2 day(s) remaining",
		"",
	}, "\n")

	assert.Equal(t, expected, text)
}

func TestRender_IsDeterministic(t *testing.T) {
	assert.Equal(t, Fallback(sampleSet()), Fallback(sampleSet()))
}

func TestRender_EmptySections(t *testing.T) {
	text := Fallback(domain.TaskSet{})

	assert.Equal(t, "### 1. Completed Last Week\n\nNone\n\n### 2. This Week's Plan\n\nNone\n", text)
	assert.NotContains(t, text, TitleNotes)
}

func TestGlyph_Priority(t *testing.T) {
	overdueAndBehind := domain.Task{Status: domain.TaskStatusInProgress, IsOverdue: true, TimeProgress: 100}
	assert.Equal(t, GlyphOverdue, Glyph(overdueAndBehind, 0))

	behindAndNear := domain.Task{Status: domain.TaskStatusInProgress, TimeProgress: 90, DaysRemaining: 1}
	assert.Equal(t, GlyphBehind, Glyph(behindAndNear, 10))

	near := domain.Task{Status: domain.TaskStatusInProgress, TimeProgress: 90, DaysRemaining: 1}
	assert.Equal(t, GlyphNearDeadline, Glyph(near, 85))

	assert.Empty(t, Glyph(domain.Task{Status: domain.TaskStatusNextUp}, 0))
}

func TestLabelAndRoman(t *testing.T) {
	assert.Equal(t, "a", Label(0))
	assert.Equal(t, "z", Label(25))
	assert.Equal(t, "aa", Label(26))
	assert.Equal(t, "ab", Label(27))
	assert.Equal(t, "ba", Label(52))
	assert.Equal(t, "zz", Label(701))
	assert.Equal(t, "aaa", Label(702))
	assert.Equal(t, "aab", Label(703))

	assert.Equal(t, "i", Roman(1))
	assert.Equal(t, "iv", Roman(4))
	assert.Equal(t, "ix", Roman(9))
	assert.Equal(t, "xiv", Roman(14))
	assert.Equal(t, "xl", Roman(40))
}

func TestParse_RoundTripPreservesCounts(t *testing.T) {
	set := sampleSet()
	blocks := Parse(Fallback(set))

	require.Len(t, blocks, 3)
	for _, b := range blocks {
		assert.Equal(t, domain.BlockNumberedItem, b.Kind)
	}
	assert.Equal(t, TitleCompleted, blocks[0].Text)
	assert.Equal(t, TitlePlan, blocks[1].Text)
	assert.Equal(t, TitleNotes, blocks[2].Text)

	require.Len(t, blocks[0].Children, len(set.RecentlyDone))
	assert.Equal(t, "Onboarding flow ✅", blocks[0].Children[0].Text)

	plan := blocks[1].Children
	require.Len(t, plan, len(set.Current))
	for i, task := range set.Current {
		assert.Equal(t, domain.BlockBulletItem, plan[i].Kind)
		assert.True(t, strings.HasPrefix(plan[i].Text, task.Title))
		require.Len(t, plan[i].Children, len(task.Subtasks))
		for j, sub := range task.Subtasks {
			assert.Equal(t, sub, plan[i].Children[j].Text)
		}
	}

	assert.Len(t, blocks[2].Children, 3)
}

func TestParse_PlaceholderIsGroupingLeaf(t *testing.T) {
	blocks := Parse(Fallback(domain.TaskSet{}))

	require.Len(t, blocks, 2)
	for _, b := range blocks {
		require.Len(t, b.Children, 1)
		assert.Equal(t, NonePlaceholder, b.Children[0].Text)
		assert.Empty(t, b.Children[0].Children)
	}
}

func TestParse_DegenerateSingleLine(t *testing.T) {
	blocks := Parse("(on leave)\n")

	require.Len(t, blocks, 1)
	assert.Equal(t, domain.Paragraph("(on leave)"), blocks[0])
}

func TestParse_SingleHeadingIsNotDegenerate(t *testing.T) {
	blocks := Parse("### 1. Completed Last Week")

	require.Len(t, blocks, 1)
	assert.Equal(t, domain.BlockNumberedItem, blocks[0].Kind)
	assert.Empty(t, blocks[0].Children)
}

func TestParse_IndentedLinesDoNotCloseItem(t *testing.T) {
	text := strings.Join([]string{
		"intro text before any heading",
		"### 2. Plan",
		"a. First",
		"   i. one",
		"      continued detail",
		"   2. two",
		"b. Second",
		"   iii. three",
	}, "\n")

	blocks := Parse(text)

	require.Len(t, blocks, 1)
	assert.Equal(t, "Plan", blocks[0].Text)
	items := blocks[0].Children
	require.Len(t, items, 2)
	assert.Equal(t, "First", items[0].Text)
	assert.Equal(t, []domain.Block{
		domain.Bullet("one"),
		domain.Bullet("continued detail"),
		domain.Bullet("two"),
	}, items[0].Children)
	assert.Equal(t, "Second", items[1].Text)
	assert.Equal(t, []domain.Block{domain.Bullet("three")}, items[1].Children)
}

func TestParse_TwoLetterLabels(t *testing.T) {
	var b strings.Builder
	b.WriteString("### 1. Completed Last Week\n")
	for i := range 28 {
		b.WriteString(Label(i) + ". task\n")
	}

	blocks := Parse(b.String())

	require.Len(t, blocks, 1)
	assert.Len(t, blocks[0].Children, 28)
}

func TestParse_ThreeLetterLabels(t *testing.T) {
	var b strings.Builder
	b.WriteString("### 2. This Week's Plan\n")
	for i := range 705 {
		b.WriteString(Label(i) + ". task\n")
	}

	blocks := Parse(b.String())

	require.Len(t, blocks, 1)
	require.Len(t, blocks[0].Children, 705)
	assert.Equal(t, "task", blocks[0].Children[704].Text)
	assert.Empty(t, blocks[0].Children[704].Children)
}

func TestWithInfoSync(t *testing.T) {
	base := Fallback(domain.TaskSet{})

	withNone := WithInfoSync(base, "  ")
	assert.True(t, strings.HasSuffix(withNone, "### 3. Info Sync / Issues / Learning\n\na. None\n"))

	withInfo := WithInfoSync(base, "a. Waiting on design review")
	blocks := Parse(withInfo)
	require.Len(t, blocks, 3)
	assert.Equal(t, TitleInfoSync, blocks[2].Text)
	require.Len(t, blocks[2].Children, 1)
	assert.Equal(t, "Waiting on design review", blocks[2].Children[0].Text)
}
