package config

import (
	"errors"
	"time"
)

var (
	// ErrTaskDatabaseRequired is returned when the task database is not configured.
	ErrTaskDatabaseRequired = errors.New("WEEKLY_NOTION_TASK_DATABASE_ID is required")
	// ErrReportDatabaseRequired is returned when the report database is not configured.
	ErrReportDatabaseRequired = errors.New("WEEKLY_NOTION_REPORT_DATABASE_ID is required")
)

// NotionConfig configures the Notion task source and the weekly page store.
type NotionConfig struct {
	Token            string        `env:"WEEKLY_NOTION_TOKEN,required"`
	TaskDatabaseID   string        `env:"WEEKLY_NOTION_TASK_DATABASE_ID"`
	ReportDatabaseID string        `env:"WEEKLY_NOTION_REPORT_DATABASE_ID"`
	BaseURL          string        `env:"WEEKLY_NOTION_BASE_URL"`
	Version          string        `env:"WEEKLY_NOTION_VERSION"`
	Timeout          time.Duration `env:"WEEKLY_NOTION_TIMEOUT"`

	// StatusType is the Status property's type: "select" (default) or "status".
	StatusType string `env:"WEEKLY_NOTION_STATUS_TYPE"`

	// FetchConcurrency bounds concurrent task content fetches (zero = service default).
	FetchConcurrency int `env:"WEEKLY_NOTION_FETCH_CONCURRENCY"`
}

// Validate validates the Notion configuration.
func (c *NotionConfig) Validate() error {
	var errs []error
	if c.TaskDatabaseID == "" {
		errs = append(errs, ErrTaskDatabaseRequired)
	}
	if c.ReportDatabaseID == "" {
		errs = append(errs, ErrReportDatabaseRequired)
	}
	switch c.StatusType {
	case "", "select", "status":
	default:
		errs = append(errs, errors.New("WEEKLY_NOTION_STATUS_TYPE must be select or status"))
	}
	return errors.Join(errs...)
}
