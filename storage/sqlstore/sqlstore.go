// Package sqlstore is a reference SQL-backed Storage implementation
// using uptrace/bun over either Postgres (pgx) or SQLite (modernc),
// storing each resource as an opaque JSON document keyed by
// (tenant_id, resource_type, id).
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"

	"github.com/uptrace/bun"

	"github.com/xraph/scimcore/storage"
)

// record is the bun model backing the scim_resources table. Doc is
// stored as JSON text rather than a native jsonb column so the same
// model works unmodified against both the Postgres and SQLite dialects.
type record struct {
	bun.BaseModel `bun:"table:scim_resources"`

	TenantID     string `bun:"tenant_id,pk"`
	ResourceType string `bun:"resource_type,pk"`
	ID           string `bun:"id,pk"`
	Doc          string `bun:"doc,type:text,notnull"`
}

// Store is a bun-backed Storage. Construct with New over a *bun.DB from
// OpenPostgres or OpenSQLite, which select the appropriate dialect.
type Store struct {
	db *bun.DB
}

// New wraps an already-dialected *bun.DB. Callers needing the
// Postgres or SQLite driver wiring directly can use pgdialect or
// sqlitedialect with database/sql and pass the result here.
func New(db *bun.DB) *Store {
	return &Store{db: db}
}

var _ storage.Storage = (*Store)(nil)

// EnsureSchema creates the backing table if it does not already exist.
// Safe to call repeatedly.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.NewCreateTable().Model((*record)(nil)).IfNotExists().Exec(ctx)
	return err
}

func (s *Store) Put(ctx context.Context, tenantID, resourceType, id string, doc map[string]any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	rec := &record{TenantID: tenantID, ResourceType: resourceType, ID: id, Doc: string(body)}
	_, err = s.db.NewInsert().
		Model(rec).
		On("CONFLICT (tenant_id, resource_type, id) DO UPDATE").
		Set("doc = EXCLUDED.doc").
		Exec(ctx)
	return err
}

func (s *Store) Get(ctx context.Context, tenantID, resourceType, id string) (map[string]any, bool, error) {
	rec := new(record)
	err := s.db.NewSelect().Model(rec).
		Where("tenant_id = ? AND resource_type = ? AND id = ?", tenantID, resourceType, id).
		Scan(ctx)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(rec.Doc), &doc); err != nil {
		return nil, false, err
	}
	return doc, true, nil
}

func (s *Store) Delete(ctx context.Context, tenantID, resourceType, id string) (bool, error) {
	res, err := s.db.NewDelete().Model((*record)(nil)).
		Where("tenant_id = ? AND resource_type = ? AND id = ?", tenantID, resourceType, id).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) List(ctx context.Context, tenantID, resourceType string, query storage.Query) ([]map[string]any, int, error) {
	var recs []record
	err := s.db.NewSelect().Model(&recs).
		Where("tenant_id = ? AND resource_type = ?", tenantID, resourceType).
		Scan(ctx)
	if err != nil {
		return nil, 0, err
	}

	docs := make([]map[string]any, 0, len(recs))
	for _, rec := range recs {
		var doc map[string]any
		if err := json.Unmarshal([]byte(rec.Doc), &doc); err != nil {
			return nil, 0, err
		}
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return idOf(docs[i]) < idOf(docs[j])
	})

	total := len(docs)
	start := query.StartIndex
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	count := query.Count
	if count <= 0 {
		count = total - start
	}
	end := start + count
	if end > total {
		end = total
	}
	return docs[start:end], total, nil
}

func (s *Store) FindByAttributeValue(ctx context.Context, tenantID, resourceType, path, value string) (map[string]any, bool, error) {
	docs, _, err := s.List(ctx, tenantID, resourceType, storage.Query{})
	if err != nil {
		return nil, false, err
	}
	for _, doc := range docs {
		if v, ok := doc[path].(string); ok && v == value {
			return doc, true, nil
		}
	}
	return nil, false, nil
}

func (s *Store) Exists(ctx context.Context, tenantID, resourceType, id string) (bool, error) {
	count, err := s.db.NewSelect().Model((*record)(nil)).
		Where("tenant_id = ? AND resource_type = ? AND id = ?", tenantID, resourceType, id).
		Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func idOf(doc map[string]any) string {
	if v, ok := doc["id"].(string); ok {
		return v
	}
	return ""
}
