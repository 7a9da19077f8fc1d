// Package memstore is an in-process Storage implementation backed by a
// mutex-guarded map, suitable for tests and single-process deployments.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/xraph/scimcore/storage"
)

// Store is a mutex-guarded, in-memory Storage. The zero value is not
// usable; construct with New.
type Store struct {
	mu   sync.Mutex
	data map[string]map[string]any
}

func New() *Store {
	return &Store{data: make(map[string]map[string]any)}
}

var _ storage.Storage = (*Store)(nil)

func key(tenantID, resourceType, id string) string {
	return tenantID + "\x00" + resourceType + "\x00" + id
}

func prefix(tenantID, resourceType string) string {
	return tenantID + "\x00" + resourceType + "\x00"
}

func (s *Store) Put(_ context.Context, tenantID, resourceType, id string, doc map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := make(map[string]any, len(doc))
	for k, v := range doc {
		clone[k] = v
	}
	s.data[key(tenantID, resourceType, id)] = clone
	return nil
}

func (s *Store) Get(_ context.Context, tenantID, resourceType, id string) (map[string]any, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.data[key(tenantID, resourceType, id)]
	if !ok {
		return nil, false, nil
	}
	return cloneDoc(doc), true, nil
}

func (s *Store) Delete(_ context.Context, tenantID, resourceType, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(tenantID, resourceType, id)
	if _, ok := s.data[k]; !ok {
		return false, nil
	}
	delete(s.data, k)
	return true, nil
}

func (s *Store) List(_ context.Context, tenantID, resourceType string, query storage.Query) ([]map[string]any, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := prefix(tenantID, resourceType)
	var all []map[string]any
	for k, doc := range s.data {
		if strings.HasPrefix(k, p) {
			all = append(all, cloneDoc(doc))
		}
	}

	sort.Slice(all, func(i, j int) bool {
		return idOf(all[i]) < idOf(all[j])
	})

	total := len(all)
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
	return all[start:end], total, nil
}

func (s *Store) FindByAttributeValue(_ context.Context, tenantID, resourceType, path, value string) (map[string]any, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := prefix(tenantID, resourceType)
	for k, doc := range s.data {
		if !strings.HasPrefix(k, p) {
			continue
		}
		if v, ok := doc[path]; ok {
			if sv, ok := v.(string); ok && sv == value {
				return cloneDoc(doc), true, nil
			}
		}
	}
	return nil, false, nil
}

func (s *Store) Exists(_ context.Context, tenantID, resourceType, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key(tenantID, resourceType, id)]
	return ok, nil
}

func idOf(doc map[string]any) string {
	if v, ok := doc["id"].(string); ok {
		return v
	}
	return ""
}

func cloneDoc(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
