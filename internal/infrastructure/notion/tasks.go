package notion

import (
	"context"
	"time"

	"github.com/jomei/notionapi"

	"github.com/rezkam/weekly/internal/domain"
)

// Property names looked up on task pages, in order of preference.
var (
	titleProperties    = []string{"Name", "名称"}
	assigneeProperties = []string{"Assignee", "负责人", "assignee"}
	dateProperties     = []string{"Date", "日期", "Deadline"}
)

const (
	statusProperty  = "Status"
	projectProperty = "Project"
)

// TaskSource reads tasks from a Notion database.
type TaskSource struct {
	client     *Client
	databaseID string
	// statusType is the filter type of the status property: "select" or "status".
	statusType string
}

// NewTaskSource creates a task source over the database. statusType defaults
// to "select".
func NewTaskSource(client *Client, databaseID, statusType string) *TaskSource {
	if statusType == "" {
		statusType = "select"
	}
	return &TaskSource{client: client, databaseID: databaseID, statusType: statusType}
}

// QueryTasks returns one page of tasks whose status is any of statuses.
func (s *TaskSource) QueryTasks(ctx context.Context, statuses []domain.TaskStatus, cursor string) (domain.TaskPage, error) {
	resp, err := s.client.queryDatabase(ctx, s.databaseID, s.statusFilter(statuses), cursor)
	if err != nil {
		return domain.TaskPage{}, err
	}

	out := domain.TaskPage{
		Tasks:      make([]domain.RawTask, 0, len(resp.Results)),
		NextCursor: string(resp.NextCursor),
		HasMore:    resp.HasMore,
	}
	for _, p := range resp.Results {
		out.Tasks = append(out.Tasks, toRawTask(p))
	}
	return out, nil
}

func (s *TaskSource) statusFilter(statuses []domain.TaskStatus) notionapi.Filter {
	or := make(notionapi.OrCompoundFilter, 0, len(statuses))
	for _, st := range statuses {
		f := &notionapi.PropertyFilter{Property: statusProperty}
		if s.statusType == "status" {
			f.Status = &notionapi.StatusFilterCondition{Equals: st.DisplayName()}
		} else {
			f.Select = &notionapi.SelectFilterCondition{Equals: st.DisplayName()}
		}
		or = append(or, f)
	}
	return or
}

// FetchContent returns the content lines of a task page.
func (s *TaskSource) FetchContent(ctx context.Context, taskID string) ([]domain.RawLine, error) {
	blocks, err := s.client.listChildren(ctx, taskID)
	if err != nil {
		return nil, err
	}
	lines := make([]domain.RawLine, 0, len(blocks))
	for _, b := range blocks {
		lines = append(lines, toRawLine(b))
	}
	return lines, nil
}

func toRawTask(p notionapi.Page) domain.RawTask {
	t := domain.RawTask{
		ID:             string(p.ID),
		LastModifiedAt: p.LastEditedTime,
	}

	if tp, ok := firstProperty(p.Properties, titleProperties).(*notionapi.TitleProperty); ok {
		t.Title = joinPlainText(tp.Title)
	} else {
		t.Title = pageTitle(p)
	}

	switch v := p.Properties[statusProperty].(type) {
	case *notionapi.SelectProperty:
		t.Status = v.Select.Name
	case *notionapi.StatusProperty:
		t.Status = v.Status.Name
	}
	if v, ok := p.Properties[projectProperty].(*notionapi.SelectProperty); ok {
		t.Project = v.Select.Name
	}

	t.Assignees = assignees(firstProperty(p.Properties, assigneeProperties))

	if v, ok := firstProperty(p.Properties, dateProperties).(*notionapi.DateProperty); ok && v.Date != nil {
		t.Start = toTime(v.Date.Start)
		t.End = toTime(v.Date.End)
	}
	return t
}

// pageTitle returns the text of the page's title property, whatever its name.
func pageTitle(p notionapi.Page) string {
	for _, prop := range p.Properties {
		if tp, ok := prop.(*notionapi.TitleProperty); ok {
			return joinPlainText(tp.Title)
		}
	}
	return ""
}

func firstProperty(props notionapi.Properties, names []string) notionapi.Property {
	for _, n := range names {
		if p, ok := props[n]; ok {
			return p
		}
	}
	return nil
}

func assignees(p notionapi.Property) []string {
	var names []string
	add := func(name string) {
		if name != "" {
			names = append(names, name)
		}
	}

	switch v := p.(type) {
	case *notionapi.PeopleProperty:
		for _, u := range v.People {
			name := u.Name
			if name == "" && u.Person != nil {
				name = u.Person.Email
			}
			add(name)
		}
	case *notionapi.SelectProperty:
		add(v.Select.Name)
	case *notionapi.MultiSelectProperty:
		for _, o := range v.MultiSelect {
			add(o.Name)
		}
	case *notionapi.RichTextProperty:
		add(joinPlainText(v.RichText))
	}
	return names
}

// toTime converts an API date. Date-only values read as UTC midnight.
func toTime(d *notionapi.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := time.Time(*d)
	if t.IsZero() {
		return nil
	}
	return &t
}
