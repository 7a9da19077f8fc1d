// Package storage defines the pluggable backend contract the versioned
// provider persists through (spec.md §6.1), plus reference
// implementations.
package storage

import "context"

// Storage stores opaque JSON resource documents, partitioned by tenant
// and resource type. Implementations must make each call atomic;
// partial writes are not a contract callers need to guard against.
type Storage interface {
	// Put performs a full replace, creating the record if absent.
	Put(ctx context.Context, tenantID, resourceType, id string, doc map[string]any) error

	// Get returns the stored document, or ok=false if absent.
	Get(ctx context.Context, tenantID, resourceType, id string) (doc map[string]any, ok bool, err error)

	// Delete removes the record, reporting whether it existed.
	Delete(ctx context.Context, tenantID, resourceType, id string) (existed bool, err error)

	// List returns a page of documents and the total count. The
	// reference drivers order documents by id ascending and apply
	// StartIndex (0-based offset) and Count; they do not evaluate
	// Filter, SortBy or SortDescending.
	List(ctx context.Context, tenantID, resourceType string, query Query) ([]map[string]any, int, error)

	// FindByAttributeValue returns the first document whose value at
	// the attribute path equals value, used for uniqueness probes and
	// username/externalId lookups. memstore and sqlstore compare the
	// top-level member named path; mongostore resolves dotted paths.
	FindByAttributeValue(ctx context.Context, tenantID, resourceType, path, value string) (doc map[string]any, ok bool, err error)

	// Exists reports whether id is present without fetching the body.
	Exists(ctx context.Context, tenantID, resourceType, id string) (bool, error)
}

// Query carries list-operation pagination and sort parameters. Filter
// is an opaque SCIM filter expression; none of the reference drivers
// applies it.
type Query struct {
	Filter         string
	StartIndex     int
	Count          int
	SortBy         string
	SortDescending bool
}
