// Package weekly orchestrates the weekly report flow: fetch and classify
// tasks, render a report, and sync it into the member's region of the
// period's shared document while keeping the submission ledger current.
package weekly

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/rezkam/weekly/internal/application/ledger"
	"github.com/rezkam/weekly/internal/clock"
	"github.com/rezkam/weekly/internal/document"
	"github.com/rezkam/weekly/internal/domain"
)

const instrumentationName = "github.com/rezkam/weekly/internal/application/weekly"

// DefaultFetchConcurrency bounds concurrent task content fetches.
const DefaultFetchConcurrency = 8

var tracer = otel.Tracer(instrumentationName)

// Service runs the weekly report operations for a fixed roster.
type Service struct {
	source   TaskSource
	rewriter Rewriter
	docs     *document.Synchronizer
	ledger   *ledger.Service
	roster   []domain.Member
	clock    clock.Clock

	fetchConcurrency int
	metrics          metrics
}

type metrics struct {
	submissions metric.Int64Counter
	fallbacks   metric.Int64Counter
	degraded    metric.Int64Counter
}

// Option configures a Service.
type Option func(*Service)

// WithRewriter enables the generative rewrite of report drafts.
func WithRewriter(r Rewriter) Option {
	return func(s *Service) {
		s.rewriter = r
	}
}

// WithFetchConcurrency sets how many task contents are fetched at once.
func WithFetchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.fetchConcurrency = n
		}
	}
}

// NewService creates the weekly service.
func NewService(source TaskSource, docs *document.Synchronizer, led *ledger.Service, roster []domain.Member, clk clock.Clock, opts ...Option) (*Service, error) {
	if source == nil || docs == nil || led == nil || clk == nil {
		return nil, errors.New("weekly: task source, document synchronizer, ledger and clock are required")
	}
	if len(roster) == 0 {
		return nil, errors.New("weekly: roster must list at least one member")
	}

	s := &Service{
		source:           source,
		docs:             docs,
		ledger:           led,
		roster:           roster,
		clock:            clk,
		fetchConcurrency: DefaultFetchConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}

	m, err := newMetrics(otel.Meter(instrumentationName))
	if err != nil {
		return nil, err
	}
	s.metrics = m
	return s, nil
}

func newMetrics(meter metric.Meter) (metrics, error) {
	var (
		m    metrics
		err  error
		errs []error
	)
	m.submissions, err = meter.Int64Counter("weekly.submissions",
		metric.WithDescription("Reports synced into the weekly document"))
	errs = append(errs, err)
	m.fallbacks, err = meter.Int64Counter("weekly.report.fallbacks",
		metric.WithDescription("Reports served from the deterministic renderer after a rewrite failure"))
	errs = append(errs, err)
	m.degraded, err = meter.Int64Counter("weekly.task_content.degraded",
		metric.WithDescription("Tasks whose content could not be fetched"))
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return metrics{}, fmt.Errorf("failed to create instruments: %w", err)
	}
	return m, nil
}

// Roster returns the configured members in order.
func (s *Service) Roster() []domain.Member {
	return s.roster
}

// Overview is the current period with every member's status.
type Overview struct {
	PeriodKey string                `json:"weekOf"`
	WeekRange string                `json:"weekRange"`
	Members   []domain.MemberStatus `json:"members"`
}

// Overview returns the current period key, last week's range and the
// roster joined with the ledger.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	now := s.clock.Now()
	statuses, err := s.ledger.Statuses(ctx, s.roster)
	if err != nil {
		return Overview{}, err
	}
	return Overview{
		PeriodKey: domain.PeriodKey(now),
		WeekRange: domain.PeriodRange(now),
		Members:   statuses,
	}, nil
}

// label returns the region heading for a member ID. IDs missing from the
// roster are used verbatim.
func (s *Service) label(memberID string) string {
	if m, ok := s.member(memberID); ok {
		return m.Name
	}
	return memberID
}

func (s *Service) member(id string) (domain.Member, bool) {
	for _, m := range s.roster {
		if m.ID == id {
			return m, true
		}
	}
	return domain.Member{}, false
}

func (s *Service) slots(onLeave func(memberID string) bool) []document.Slot {
	slots := make([]document.Slot, 0, len(s.roster))
	for _, m := range s.roster {
		slots = append(slots, document.Slot{Label: m.Name, OnLeave: onLeave(m.ID)})
	}
	return slots
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
