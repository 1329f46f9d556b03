package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"daytrack/pkg/metrics"
)

// Postgres keeps every document in one JSONB table, grouped by collection
// name. The created_at column orders documents without touching the payload.
type Postgres struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) *Postgres {
	return &Postgres{pool: pool, logger: logger}
}

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    collection TEXT NOT NULL,
    doc        JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS documents_collection_idx ON documents (collection, created_at DESC);
`

func (s *Postgres) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		s.logger.Error("Failed to migrate documents table", zap.Error(err))
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

func (s *Postgres) InsertOne(ctx context.Context, collection string, doc Document) (string, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}

	query := `
        INSERT INTO documents (collection, doc)
        VALUES ($1, $2)
        RETURNING id
    `
	var id string
	if err := s.pool.QueryRow(ctx, query, collection, body).Scan(&id); err != nil {
		s.logger.Error("Failed to insert document",
			zap.String("collection", collection),
			zap.Error(err),
		)
		return "", err
	}

	metrics.IncrementDocumentsWritten(collection, 1)
	s.logger.Debug("Document inserted",
		zap.String("collection", collection),
		zap.String("id", id),
	)
	return id, nil
}

func (s *Postgres) InsertMany(ctx context.Context, collection string, docs []Document) ([]string, error) {
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		id, err := s.InsertOne(ctx, collection, doc)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Postgres) Find(ctx context.Context, collection string, filter Filter, opts ...FindOption) ([]Document, error) {
	var options FindOptions
	for _, opt := range opts {
		opt(&options)
	}

	query := `SELECT id, doc FROM documents WHERE collection = $1`
	args := []any{collection}

	if len(filter) > 0 {
		body, err := json.Marshal(filter)
		if err != nil {
			return nil, fmt.Errorf("failed to encode filter: %w", err)
		}
		query += ` AND doc @> $2`
		args = append(args, body)
	}
	if options.NewestFirst {
		query += ` ORDER BY created_at DESC`
	}
	if options.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, options.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		s.logger.Error("Failed to query documents",
			zap.String("collection", collection),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		var id string
		var body []byte
		if err := rows.Scan(&id, &body); err != nil {
			return nil, err
		}
		doc, err := decodeDocument(id, body)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *Postgres) FindOneAndUpdate(ctx context.Context, collection, id string, patch Document) (Document, error) {
	docID, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("failed to encode patch: %w", err)
	}

	// jsonb || merges top-level keys; an explicit null in the patch keeps the
	// key and clears its value.
	query := `
        UPDATE documents
        SET doc = doc || $3
        WHERE id = $1 AND collection = $2
        RETURNING doc
    `
	var updated []byte
	err = s.pool.QueryRow(ctx, query, docID, collection, body).Scan(&updated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Error("Failed to update document",
			zap.String("collection", collection),
			zap.String("id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return decodeDocument(id, updated)
}

func (s *Postgres) FindOneAndDelete(ctx context.Context, collection, id string) (Document, error) {
	docID, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	query := `
        DELETE FROM documents
        WHERE id = $1 AND collection = $2
        RETURNING doc
    `
	var deleted []byte
	err = s.pool.QueryRow(ctx, query, docID, collection).Scan(&deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Error("Failed to delete document",
			zap.String("collection", collection),
			zap.String("id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return decodeDocument(id, deleted)
}

func (s *Postgres) ListCollections(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT collection FROM documents ORDER BY collection`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Postgres) Available(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return s.pool.Ping(pingCtx) == nil
}

func decodeDocument(id string, body []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
	}
	doc["_id"] = id
	return doc, nil
}
