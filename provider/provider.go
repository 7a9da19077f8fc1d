// Package provider implements the versioned provider layer: optimistic
// concurrency, content-hash versioning, and uniform error mapping over
// a pluggable storage backend (spec.md §4.3).
package provider

import (
	"context"
	"time"

	"github.com/rs/xid"
	"go.jetify.com/typeid/v2"

	"github.com/xraph/scimcore/resource"
	"github.com/xraph/scimcore/scimerr"
	"github.com/xraph/scimcore/storage"
)

// newResourceID allocates a typed, prefixed, lexicographically sortable
// id for a newly created resource. xid is kept as a fallback generator
// for the (practically unreachable) case where typeid construction
// itself fails, since id allocation must never error out from Create.
func newResourceID() string {
	tid, err := typeid.WithPrefix("res")
	if err != nil {
		return xid.New().String()
	}
	return tid.String()
}

// Provider wraps a storage.Storage with version assignment and
// If-Match enforcement through each write's expectedVersion argument;
// it does not evaluate If-None-Match conditions. It is the sole writer
// of meta.version.
type Provider struct {
	store   storage.Storage
	metrics *Metrics
	now     func() time.Time
}

// Option configures a Provider at construction time.
type Option func(*Provider)

// WithClock overrides the time source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

func New(store storage.Storage, opts ...Option) *Provider {
	p := &Provider{store: store, metrics: GetMetrics(), now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Create persists doc as a new resource. If doc carries no "id", one is
// allocated; if it carries "externalId", it is preserved unchanged. Not
// idempotent: repeated calls with an id-less body always create a new
// resource (spec.md §4.3 idempotence note). location is the resource
// type's collection URI; when non-empty, meta.location is location
// followed by "/" and the id.
func (p *Provider) Create(ctx context.Context, tenantID, resourceType string, doc map[string]any, location string) (map[string]any, error) {
	id, _ := doc["id"].(string)
	if id == "" {
		id = newResourceID()
	}
	if location != "" {
		location = location + "/" + id
	}
	doc = cloneMap(doc)
	doc["id"] = id

	now := p.now()
	meta := resource.CreateMeta(resourceType, location, now)
	return p.persist(ctx, tenantID, resourceType, id, doc, meta, "create")
}

// Get returns the stored resource, NotFound if absent.
func (p *Provider) Get(ctx context.Context, tenantID, resourceType, id string) (map[string]any, error) {
	doc, ok, err := p.store.Get(ctx, tenantID, resourceType, id)
	if err != nil {
		p.metrics.recordOp("get", "error")
		return nil, scimerr.StorageFailure("get", err)
	}
	if !ok {
		p.metrics.recordOp("get", "notfound")
		return nil, scimerr.NotFound(resourceType, id)
	}
	p.metrics.recordOp("get", "ok")
	return doc, nil
}

// Replace performs a full replace of id's document, enforcing
// expectedVersion when supplied.
func (p *Provider) Replace(ctx context.Context, tenantID, resourceType, id string, doc map[string]any, expectedVersion string, location string) (map[string]any, error) {
	current, ok, err := p.store.Get(ctx, tenantID, resourceType, id)
	if err != nil {
		p.metrics.recordOp("replace", "error")
		return nil, scimerr.StorageFailure("replace", err)
	}
	if !ok {
		p.metrics.recordOp("replace", "notfound")
		return nil, scimerr.NotFound(resourceType, id)
	}
	if err := p.checkVersion(current, expectedVersion); err != nil {
		p.metrics.recordOp("replace", "conflict")
		return nil, err
	}

	doc = cloneMap(doc)
	doc["id"] = id

	meta := metaFromDoc(current, resourceType)
	meta = meta.Touch(p.now())
	return p.persist(ctx, tenantID, resourceType, id, doc, meta, "replace")
}

// Delete removes id. A missing id is a no-op success unless
// expectedVersion was supplied, in which case it returns NotFound.
func (p *Provider) Delete(ctx context.Context, tenantID, resourceType, id string, expectedVersion string) error {
	current, ok, err := p.store.Get(ctx, tenantID, resourceType, id)
	if err != nil {
		p.metrics.recordOp("delete", "error")
		return scimerr.StorageFailure("delete", err)
	}
	if !ok {
		if expectedVersion != "" {
			p.metrics.recordOp("delete", "conflict")
			return scimerr.NotFound(resourceType, id)
		}
		p.metrics.recordOp("delete", "noop")
		return nil
	}
	if err := p.checkVersion(current, expectedVersion); err != nil {
		p.metrics.recordOp("delete", "conflict")
		return err
	}
	if _, err := p.store.Delete(ctx, tenantID, resourceType, id); err != nil {
		p.metrics.recordOp("delete", "error")
		return scimerr.StorageFailure("delete", err)
	}
	p.metrics.recordOp("delete", "ok")
	return nil
}

// List returns a page of documents and the total matching count.
func (p *Provider) List(ctx context.Context, tenantID, resourceType string, query storage.Query) ([]map[string]any, int, error) {
	docs, total, err := p.store.List(ctx, tenantID, resourceType, query)
	if err != nil {
		p.metrics.recordOp("list", "error")
		return nil, 0, scimerr.StorageFailure("list", err)
	}
	p.metrics.recordOp("list", "ok")
	return docs, total, nil
}

// FindByAttr is used by uniqueness probes and exact-match lookups
// (e.g. userName).
func (p *Provider) FindByAttr(ctx context.Context, tenantID, resourceType, path, value string) (map[string]any, bool, error) {
	doc, ok, err := p.store.FindByAttributeValue(ctx, tenantID, resourceType, path, value)
	if err != nil {
		return nil, false, scimerr.StorageFailure("find", err)
	}
	return doc, ok, nil
}

// Exists reports whether id is present.
func (p *Provider) Exists(ctx context.Context, tenantID, resourceType, id string) (bool, error) {
	ok, err := p.store.Exists(ctx, tenantID, resourceType, id)
	if err != nil {
		return false, scimerr.StorageFailure("exists", err)
	}
	return ok, nil
}

// persist stamps meta onto doc, computes and writes meta.version, and
// performs the storage write. It is the only path by which a version
// is ever assigned.
func (p *Provider) persist(ctx context.Context, tenantID, resourceType, id string, doc map[string]any, meta resource.Meta, op string) (map[string]any, error) {
	doc["meta"] = metaToMap(meta)

	version, err := resource.ComputeVersion(doc)
	if err != nil {
		p.metrics.recordOp(op, "error")
		return nil, scimerr.StorageFailure(op, err)
	}
	metaMap := doc["meta"].(map[string]any)
	metaMap["version"] = version
	doc["meta"] = metaMap

	if err := p.store.Put(ctx, tenantID, resourceType, id, doc); err != nil {
		p.metrics.recordOp(op, "error")
		return nil, scimerr.StorageFailure(op, err)
	}
	p.metrics.recordOp(op, "ok")
	return doc, nil
}

// checkVersion enforces If-Match semantics: when expectedVersion is
// non-empty it must, after ETag normalisation, equal the current
// document's meta.version.
func (p *Provider) checkVersion(current map[string]any, expectedVersion string) error {
	if expectedVersion == "" {
		return nil
	}
	currentVersion := currentVersionOf(current)
	expected := resource.NormalizeETag(expectedVersion)
	actual := resource.NormalizeETag(currentVersion)
	if expected != actual {
		p.metrics.recordVersionMismatch()
		return scimerr.VersionMismatch(expected, actual)
	}
	return nil
}

func currentVersionOf(doc map[string]any) string {
	meta, _ := doc["meta"].(map[string]any)
	if meta == nil {
		return ""
	}
	v, _ := meta["version"].(string)
	return v
}

func metaFromDoc(doc map[string]any, resourceType string) resource.Meta {
	meta, _ := doc["meta"].(map[string]any)
	m := resource.Meta{ResourceType: resourceType}
	if meta == nil {
		return m
	}
	if rt, ok := meta["resourceType"].(string); ok && rt != "" {
		m.ResourceType = rt
	}
	if loc, ok := meta["location"].(string); ok {
		m.Location = loc
	}
	if created, ok := meta["created"].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			m.Created = t
		}
	}
	if lastModified, ok := meta["lastModified"].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, lastModified); err == nil {
			m.LastModified = t
		}
	}
	return m
}

func metaToMap(m resource.Meta) map[string]any {
	out := map[string]any{
		"resourceType": m.ResourceType,
		"created":      m.Created.UTC().Format(time.RFC3339Nano),
		"lastModified": m.LastModified.UTC().Format(time.RFC3339Nano),
	}
	if m.Location != "" {
		out["location"] = m.Location
	}
	return out
}

func cloneMap(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
