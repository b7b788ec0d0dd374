package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fundvault/fundvault/backend/go-services/internal/pool"
)

// ObjectStore is the storage surface the exporter needs. Satisfied by
// storage.MinIOStorage.
type ObjectStore interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	GetPresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

// Statement points at an archived pool statement.
type Statement struct {
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// statementDocument is the archived payload: the summary plus generation
// metadata.
type statementDocument struct {
	PoolID      string        `json:"poolId"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Summary     *pool.Summary `json:"summary"`
}

// Exporter archives pool statements to object storage and hands back a
// presigned download link.
type Exporter struct {
	store  ObjectStore
	expiry time.Duration
}

func NewExporter(store ObjectStore) *Exporter {
	return &Exporter{store: store, expiry: 24 * time.Hour}
}

// ExportSummary serializes the summary as a JSON statement, uploads it under
// pools/<id>/statement-<timestamp>.json and returns a presigned GET URL.
func (e *Exporter) ExportSummary(ctx context.Context, poolID string, sum *pool.Summary) (*Statement, error) {
	now := time.Now().UTC()
	doc := statementDocument{PoolID: poolID, GeneratedAt: now, Summary: sum}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal statement: %w", err)
	}
	key := fmt.Sprintf("pools/%s/statement-%s.json", poolID, now.Format("20060102T150405Z"))
	if err := e.store.UploadFile(ctx, key, bytes.NewReader(b), int64(len(b)), "application/json"); err != nil {
		return nil, fmt.Errorf("upload statement: %w", err)
	}
	url, err := e.store.GetPresignedURL(ctx, key, e.expiry)
	if err != nil {
		return nil, fmt.Errorf("presign statement: %w", err)
	}
	return &Statement{Key: key, URL: url, GeneratedAt: now}, nil
}
