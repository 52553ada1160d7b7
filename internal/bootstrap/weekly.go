package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rezkam/weekly/internal/application/ledger"
	"github.com/rezkam/weekly/internal/application/weekly"
	"github.com/rezkam/weekly/internal/clock"
	"github.com/rezkam/weekly/internal/config"
	"github.com/rezkam/weekly/internal/document"
	"github.com/rezkam/weekly/internal/infrastructure/notion"
	"github.com/rezkam/weekly/internal/infrastructure/rewrite"
)

// Settings is the configuration the weekly service is built from.
// A nil Rewrite disables the rewrite service.
type Settings struct {
	Notion  config.NotionConfig
	Rewrite *config.RewriteConfig
	Ledger  config.LedgerConfig
	Roster  config.RosterConfig
	Time    config.TimeConfig
}

// Weekly is a built weekly service together with the resources it holds.
type Weekly struct {
	Service *weekly.Service
	closers []io.Closer
}

// Close releases the ledger backend.
func (w *Weekly) Close() error {
	return CloseAll(w.closers...)
}

// NewWeekly wires the Notion adapters, the ledger backend, the optional
// rewrite client and the roster into a weekly service.
func NewWeekly(ctx context.Context, s Settings) (*Weekly, error) {
	roster, err := s.Roster.Load()
	if err != nil {
		return nil, err
	}

	loc, err := s.Time.Location()
	if err != nil {
		return nil, err
	}
	clk := clock.System{Location: loc}

	client, err := notion.NewClient(notion.Config{
		Token:   s.Notion.Token,
		BaseURL: s.Notion.BaseURL,
		Version: s.Notion.Version,
		Timeout: s.Notion.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create notion client: %w", err)
	}
	source := notion.NewTaskSource(client, s.Notion.TaskDatabaseID, s.Notion.StatusType)
	docs := document.NewSynchronizer(notion.NewDocumentStore(client, s.Notion.ReportDatabaseID))

	repo, closer, err := OpenLedger(ctx, s.Ledger)
	if err != nil {
		return nil, err
	}

	opts := []weekly.Option{weekly.WithFetchConcurrency(s.Notion.FetchConcurrency)}
	if s.Rewrite != nil && s.Rewrite.Enabled() {
		rw, err := rewrite.NewClient(ctx, rewrite.Config{
			Provider:   s.Rewrite.Provider,
			APIKey:     s.Rewrite.APIKey,
			BaseURL:    s.Rewrite.BaseURL,
			Region:     s.Rewrite.Region,
			Model:      s.Rewrite.Model,
			MaxTokens:  s.Rewrite.MaxTokens,
			MaxRetries: s.Rewrite.MaxRetries,
			Timeout:    s.Rewrite.Timeout,
		})
		if err != nil {
			return nil, errors.Join(fmt.Errorf("failed to create rewrite client: %w", err), closer.Close())
		}
		opts = append(opts, weekly.WithRewriter(rw))
		slog.InfoContext(ctx, "rewrite service enabled",
			"provider", s.Rewrite.Provider,
			"model", s.Rewrite.Model)
	} else {
		slog.InfoContext(ctx, "rewrite service disabled, reports use the built-in rendering")
	}

	svc, err := weekly.NewService(source, docs, ledger.NewService(repo, clk), roster, clk, opts...)
	if err != nil {
		return nil, errors.Join(err, closer.Close())
	}

	slog.InfoContext(ctx, "weekly service initialized",
		"members", len(roster),
		"timezone", loc.String(),
		"ledger", s.Ledger.BackendName())

	return &Weekly{Service: svc, closers: []io.Closer{closer}}, nil
}

// CloseAll closes every closer in order, logging and collecting failures.
func CloseAll(closers ...io.Closer) error {
	var errs []error
	for _, c := range closers {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			slog.Error("failed to close resource", "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
