// Package gcs stores the ledger record as a JSON object in Google Cloud Storage.
package gcs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/rezkam/weekly/internal/domain"
)

// DefaultObjectName is used when no object name is configured.
const DefaultObjectName = "weekly/submissions.json"

// Repository is a GCS-backed ledger repository.
type Repository struct {
	client *storage.Client
	bucket string
	object string
}

// NewRepository creates a GCS repository.
// Without options the client uses Application Default Credentials; it also
// honors STORAGE_EMULATOR_HOST.
func NewRepository(ctx context.Context, bucket, object string, opts ...option.ClientOption) (*Repository, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	if object == "" {
		object = DefaultObjectName
	}
	return &Repository{
		client: client,
		bucket: bucket,
		object: object,
	}, nil
}

// Load reads the ledger object. A missing object means no record.
func (r *Repository) Load(ctx context.Context) (*domain.LedgerRecord, error) {
	reader, err := r.client.Bucket(r.bucket).Object(r.object).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	defer reader.Close()

	var rec domain.LedgerRecord
	if err := json.NewDecoder(reader).Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode ledger: %w", err)
	}
	return rec.Clone(), nil
}

// Save overwrites the ledger object.
func (r *Repository) Save(ctx context.Context, record *domain.LedgerRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}

	w := r.client.Bucket(r.bucket).Object(r.object).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("failed to write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize object: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (r *Repository) Close() error {
	return r.client.Close()
}
