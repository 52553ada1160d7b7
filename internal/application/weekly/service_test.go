package weekly_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/weekly/internal/application/ledger"
	"github.com/rezkam/weekly/internal/application/weekly"
	"github.com/rezkam/weekly/internal/clock"
	"github.com/rezkam/weekly/internal/document"
	"github.com/rezkam/weekly/internal/domain"
	docmemory "github.com/rezkam/weekly/internal/infrastructure/document/memory"
	"github.com/rezkam/weekly/internal/report"
	ledgermemory "github.com/rezkam/weekly/internal/storage/memory"
)

var monday = time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)

var roster = []domain.Member{
	{ID: "alice", Name: "Alice"},
	{ID: "bob", Name: "Bob"},
}

type fakeSource struct {
	pages       []domain.TaskPage
	content     map[string][]domain.RawLine
	failContent map[string]bool
	queryErr    error
	delay       time.Duration

	mu       sync.Mutex
	cursors  []string
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (f *fakeSource) QueryTasks(_ context.Context, statuses []domain.TaskStatus, cursor string) (domain.TaskPage, error) {
	f.mu.Lock()
	f.cursors = append(f.cursors, cursor)
	f.mu.Unlock()

	if f.queryErr != nil {
		return domain.TaskPage{}, f.queryErr
	}
	if len(statuses) != len(domain.ReportableStatuses) {
		return domain.TaskPage{}, errors.New("unexpected status filter")
	}
	if cursor == "" {
		if len(f.pages) == 0 {
			return domain.TaskPage{}, nil
		}
		return f.pages[0], nil
	}
	var idx int
	if _, err := fmt.Sscanf(cursor, "page-%d", &idx); err != nil || idx >= len(f.pages) {
		return domain.TaskPage{}, fmt.Errorf("bad cursor %q", cursor)
	}
	return f.pages[idx], nil
}

func (f *fakeSource) FetchContent(_ context.Context, taskID string) ([]domain.RawLine, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if n <= seen || f.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.failContent[taskID] {
		return nil, errors.New("rate limited")
	}
	return f.content[taskID], nil
}

type fakeRewriter struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeRewriter) Rewrite(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

type harness struct {
	svc    *weekly.Service
	source *fakeSource
	docs   *docmemory.Store
	ledger *ledger.Service
}

func newHarness(t *testing.T, source *fakeSource, opts ...weekly.Option) *harness {
	t.Helper()
	if source == nil {
		source = &fakeSource{}
	}
	clk := clock.Fixed(monday)
	docs := docmemory.NewStore()
	led := ledger.NewService(ledgermemory.NewRepository(), clk)

	svc, err := weekly.NewService(source, document.NewSynchronizer(docs), led, roster, clk, opts...)
	require.NoError(t, err)
	return &harness{svc: svc, source: source, docs: docs, ledger: led}
}

func (h *harness) regionTexts(t *testing.T, docID, label string) []string {
	t.Helper()
	nodes := h.docs.Nodes(docID)
	r, ok := document.BuildRegions(nodes)[label]
	require.True(t, ok, "region %s", label)

	out := make([]string, 0, r.Len())
	for _, n := range nodes[r.Start:r.EndExclusive] {
		out = append(out, n.Text)
	}
	return out
}

func ptr(t time.Time) *time.Time { return &t }

func checked(v bool) *bool { return &v }

func TestFetchTasks(t *testing.T) {
	source := &fakeSource{
		pages: []domain.TaskPage{
			{
				Tasks: []domain.RawTask{
					{ID: "t1", Title: "Billing export", Status: "In Progress", Assignees: []string{"Alice"},
						Start: ptr(monday.AddDate(0, 0, -12)), End: ptr(monday.AddDate(0, 0, -2))},
					{ID: "t2", Title: "Not mine", Status: "In Progress", Assignees: []string{"Bob"}},
				},
				NextCursor: "page-1",
				HasMore:    true,
			},
			{
				Tasks: []domain.RawTask{
					{ID: "t3", Title: "Login page", Status: "Done", Assignees: []string{"alice"},
						LastModifiedAt: monday.AddDate(0, 0, -2)},
					{ID: "t4", Title: "Backlog item", Status: "Backlog", Assignees: []string{"Alice"}},
					{ID: "t5", Title: "Review copy", Status: "Review", Assignees: []string{"Carol", "Alice"}},
				},
			},
		},
		content: map[string][]domain.RawLine{
			"t1": {
				{Kind: domain.LineKindToDo, Text: "schema 1pd", Checked: checked(true)},
				{Kind: domain.LineKindToDo, Text: "export 1pd", Checked: checked(false)},
			},
		},
		failContent: map[string]bool{"t3": true},
	}
	h := newHarness(t, source)

	set, err := h.svc.FetchTasks(context.Background(), "Alice")
	require.NoError(t, err)

	assert.Equal(t, []string{"", "page-1"}, source.cursors)

	require.Len(t, set.Current, 2)
	assert.Equal(t, "t1", set.Current[0].ID)
	assert.Equal(t, "t5", set.Current[1].ID)
	assert.Equal(t, []string{"schema 1pd ✅", "export 1pd"}, set.Current[0].Subtasks)
	assert.True(t, set.Current[0].IsOverdue)
	assert.Equal(t, 2, set.Current[0].DaysOverdue)

	require.Len(t, set.RecentlyDone, 1)
	assert.Equal(t, "t3", set.RecentlyDone[0].ID)
	assert.Empty(t, set.RecentlyDone[0].Subtasks)
}

func TestFetchTasks_Errors(t *testing.T) {
	h := newHarness(t, &fakeSource{queryErr: errors.New("unavailable")})

	_, err := h.svc.FetchTasks(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = h.svc.FetchTasks(context.Background(), "Alice")
	assert.ErrorIs(t, err, domain.ErrExternalCall)
}

func TestFetchTasks_BoundsConcurrency(t *testing.T) {
	page := domain.TaskPage{}
	for i := range 12 {
		page.Tasks = append(page.Tasks, domain.RawTask{
			ID: fmt.Sprintf("t%d", i), Title: "x", Status: "Next Up", Assignees: []string{"Alice"},
		})
	}
	source := &fakeSource{pages: []domain.TaskPage{page}, delay: 5 * time.Millisecond}
	h := newHarness(t, source, weekly.WithFetchConcurrency(3))

	set, err := h.svc.FetchTasks(context.Background(), "Alice")
	require.NoError(t, err)

	assert.Len(t, set.Current, 12)
	assert.LessOrEqual(t, source.maxSeen.Load(), int32(3))
	for i, task := range set.Current {
		assert.Equal(t, fmt.Sprintf("t%d", i), task.ID)
	}
}

func TestGenerateReport(t *testing.T) {
	set := domain.TaskSet{
		RecentlyDone: []domain.Task{{ID: "d", Title: "Login page", Status: domain.TaskStatusDone}},
	}
	draft := report.Fallback(set)

	t.Run("no rewriter", func(t *testing.T) {
		h := newHarness(t, nil)
		got, err := h.svc.GenerateReport(context.Background(), "Alice", set)
		require.NoError(t, err)
		assert.Equal(t, weekly.Draft{Report: draft, Fallback: true}, got)
	})

	t.Run("rewrite failure falls back", func(t *testing.T) {
		rw := &fakeRewriter{err: errors.New("timeout")}
		h := newHarness(t, nil, weekly.WithRewriter(rw))
		got, err := h.svc.GenerateReport(context.Background(), "Alice", set)
		require.NoError(t, err)
		assert.Equal(t, weekly.Draft{Report: draft, Fallback: true}, got)
	})

	t.Run("blank rewrite falls back", func(t *testing.T) {
		h := newHarness(t, nil, weekly.WithRewriter(&fakeRewriter{text: "\n  \n"}))
		got, err := h.svc.GenerateReport(context.Background(), "Alice", set)
		require.NoError(t, err)
		assert.True(t, got.Fallback)
	})

	t.Run("rewritten", func(t *testing.T) {
		rw := &fakeRewriter{text: "### 1. Completed Last Week\n\na. Shipped the login page ✅\n\n"}
		h := newHarness(t, nil, weekly.WithRewriter(rw))
		got, err := h.svc.GenerateReport(context.Background(), "Alice", set)
		require.NoError(t, err)

		assert.False(t, got.Fallback)
		assert.Equal(t, "### 1. Completed Last Week\n\na. Shipped the login page ✅\n", got.Report)
		require.Len(t, rw.prompts, 1)
		assert.Equal(t, weekly.Prompt("Alice", draft), rw.prompts[0])
		assert.Contains(t, rw.prompts[0], "Alice")
	})

	t.Run("member required", func(t *testing.T) {
		h := newHarness(t, nil)
		_, err := h.svc.GenerateReport(context.Background(), "", set)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	content := report.Fallback(domain.TaskSet{})

	res, err := h.svc.Submit(ctx, weekly.SubmitRequest{MemberID: "alice", Content: content})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, monday, res.SubmittedAt)

	assert.Equal(t, []string{report.TitleCompleted, report.TitlePlan, report.TitleInfoSync, ""},
		h.regionTexts(t, res.DocumentID, "Alice"))
	assert.Equal(t, []string{document.PendingPlaceholder}, h.regionTexts(t, res.DocumentID, "Bob"))

	rec, err := h.ledger.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, rec.IsSubmitted("alice"))
	assert.Equal(t, res.DocumentID, rec.DocumentID)

	before := h.docs.Nodes(res.DocumentID)
	_, err = h.svc.Submit(ctx, weekly.SubmitRequest{MemberID: "alice", Content: "### 1. Changed\n\na. x\n"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, before, h.docs.Nodes(res.DocumentID))

	second, err := h.svc.Submit(ctx, weekly.SubmitRequest{MemberID: "bob", Content: content, ExtraInfo: "a. Pairing on Friday"})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, res.DocumentID, second.DocumentID)
}

func TestSubmit_Validation(t *testing.T) {
	h := newHarness(t, nil)

	_, err := h.svc.Submit(context.Background(), weekly.SubmitRequest{Content: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = h.svc.Submit(context.Background(), weekly.SubmitRequest{MemberID: "alice", Content: " \n"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, h.docs.Nodes("any"))
}

func TestSubmit_UsesLeaveFlagsForNewPage(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	require.NoError(t, h.svc.SetLeave(ctx, "bob", true))

	res, err := h.svc.Submit(ctx, weekly.SubmitRequest{MemberID: "alice", Content: "Out sick most of the week."})
	require.NoError(t, err)

	assert.Equal(t, []string{document.LeavePlaceholder}, h.regionTexts(t, res.DocumentID, "Bob"))
}

func TestSubmit_KeepsSingleLineReport(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)

	res, err := h.svc.Submit(ctx, weekly.SubmitRequest{MemberID: "alice", Content: "Out sick most of the week."})
	require.NoError(t, err)

	assert.Equal(t, []string{"Out sick most of the week.", report.TitleInfoSync, ""},
		h.regionTexts(t, res.DocumentID, "Alice"))
}

func TestSubmit_RejectsContentWithoutSections(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)

	_, err := h.svc.Submit(ctx, weekly.SubmitRequest{MemberID: "alice", Content: "shipped the importer\nfixed login bug\n"})

	var verr domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "content", verr.Field)
	assert.NoError(t, h.ledger.EnsureNotSubmitted(ctx, "alice"))

	rec, err := h.ledger.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, rec.DocumentID)
}

type unreachableStore struct {
	document.Store
}

func (unreachableStore) ListDocuments(context.Context) ([]document.Ref, error) {
	return nil, errors.New("connection reset")
}

func TestSubmit_DocumentErrorNamesMember(t *testing.T) {
	clk := clock.Fixed(monday)
	led := ledger.NewService(ledgermemory.NewRepository(), clk)
	svc, err := weekly.NewService(&fakeSource{}, document.NewSynchronizer(unreachableStore{docmemory.NewStore()}), led, roster, clk)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), weekly.SubmitRequest{MemberID: "alice", Content: "### 1. Done\na. x"})

	var ext domain.ExternalCallError
	require.ErrorAs(t, err, &ext)
	assert.Equal(t, "list documents", ext.Op)
	assert.Equal(t, "Alice", ext.Member)
	assert.ErrorIs(t, err, domain.ErrExternalCall)
}

func TestSubmit_UnknownRegionIsNotRecorded(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)

	_, err := h.svc.Submit(ctx, weekly.SubmitRequest{MemberID: "zed", Content: "a. x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, h.ledger.EnsureNotSubmitted(ctx, "zed"))
}

func TestSetLeave_AfterSubmitConflicts(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)

	_, err := h.svc.Submit(ctx, weekly.SubmitRequest{MemberID: "alice", Content: "a. done"})
	require.NoError(t, err)

	assert.ErrorIs(t, h.svc.SetLeave(ctx, "alice", true), domain.ErrConflict)
	assert.ErrorIs(t, h.svc.SetLeave(ctx, "", true), domain.ErrValidation)
}

func TestSyncLeave(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing to sync", func(t *testing.T) {
		h := newHarness(t, nil)
		res, err := h.svc.SyncLeave(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, weekly.LeaveSync{}, res)
	})

	t.Run("creates page with leave placeholders", func(t *testing.T) {
		h := newHarness(t, nil)
		res, err := h.svc.SyncLeave(ctx, []string{"bob"})
		require.NoError(t, err)

		assert.True(t, res.Created)
		assert.Equal(t, 1, res.Updated)
		assert.Equal(t, []string{document.LeavePlaceholder}, h.regionTexts(t, res.DocumentID, "Bob"))
		assert.Equal(t, []string{document.PendingPlaceholder}, h.regionTexts(t, res.DocumentID, "Alice"))
	})

	t.Run("replaces existing regions", func(t *testing.T) {
		h := newHarness(t, nil)
		docID, created, err := h.svc.EnsurePage(ctx)
		require.NoError(t, err)
		require.True(t, created)

		res, err := h.svc.SyncLeave(ctx, []string{"bob", "ghost"})
		require.NoError(t, err)

		assert.False(t, res.Created)
		assert.Equal(t, 1, res.Updated)
		assert.Equal(t, []string{document.LeavePlaceholder, ""}, h.regionTexts(t, docID, "Bob"))
	})

	t.Run("skips members who already submitted", func(t *testing.T) {
		h := newHarness(t, nil)
		sub, err := h.svc.Submit(ctx, weekly.SubmitRequest{MemberID: "alice", Content: report.Fallback(domain.TaskSet{})})
		require.NoError(t, err)

		res, err := h.svc.SyncLeave(ctx, []string{"alice", "bob"})
		require.NoError(t, err)

		assert.Equal(t, 1, res.Updated)
		assert.Equal(t, []string{report.TitleCompleted, report.TitlePlan, report.TitleInfoSync, ""},
			h.regionTexts(t, sub.DocumentID, "Alice"))
		assert.Equal(t, []string{document.LeavePlaceholder, ""}, h.regionTexts(t, sub.DocumentID, "Bob"))
	})
}

func TestAppendTeamSummary(t *testing.T) {
	ctx := context.Background()
	source := &fakeSource{pages: []domain.TaskPage{{Tasks: []domain.RawTask{
		{ID: "t1", Title: "Late", Status: "In Progress", Assignees: []string{"Alice"}, End: ptr(monday.AddDate(0, 0, -1))},
		{ID: "t2", Title: "Soon", Status: "Next Up", Assignees: []string{"Bob"}, End: ptr(monday.AddDate(0, 0, 1))},
	}}}}
	h := newHarness(t, source)

	_, err := h.svc.AppendTeamSummary(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	docID, _, err := h.svc.EnsurePage(ctx)
	require.NoError(t, err)
	before := len(h.docs.Nodes(docID))

	res, err := h.svc.AppendTeamSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, weekly.TeamSummaryResult{DocumentID: docID, Members: 2}, res)

	nodes := h.docs.Nodes(docID)
	require.Greater(t, len(nodes), before)
	appended := nodes[before:]
	assert.True(t, slices.ContainsFunc(appended, func(b domain.Block) bool {
		return b.Kind == domain.BlockHeading && b.Text == document.SummaryTitle
	}))
	assert.True(t, slices.ContainsFunc(appended, func(b domain.Block) bool {
		return b.Kind == domain.BlockHeading && b.Text == document.RiskTitle
	}))
}

func TestOverview(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	require.NoError(t, h.svc.SetLeave(ctx, "bob", true))

	ov, err := h.svc.Overview(ctx)
	require.NoError(t, err)

	assert.Equal(t, "2025-12-22", ov.PeriodKey)
	assert.Equal(t, "12/15 ~ 12/21", ov.WeekRange)
	require.Len(t, ov.Members, 2)
	assert.False(t, ov.Members[0].OnLeave)
	assert.True(t, ov.Members[1].OnLeave)
}

func TestNewService_RequiresDependencies(t *testing.T) {
	_, err := weekly.NewService(nil, nil, nil, roster, clock.Fixed(monday))
	assert.Error(t, err)

	clk := clock.Fixed(monday)
	led := ledger.NewService(ledgermemory.NewRepository(), clk)
	docs := document.NewSynchronizer(docmemory.NewStore())
	_, err = weekly.NewService(&fakeSource{}, docs, led, nil, clk)
	assert.ErrorContains(t, err, "roster")
}
