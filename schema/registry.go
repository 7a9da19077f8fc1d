package schema

import (
	"sync"

	"github.com/xraph/scimcore/scimerr"
)

// Registry holds every Schema a server instance knows about, indexed
// both by schema URN and by resource type name. A Registry is safe for
// concurrent reads and writes.
type Registry struct {
	mu         sync.RWMutex
	byURN      map[string]Schema
	byResource map[string]Schema
}

// NewRegistry returns an empty Registry. Call RegisterCore to load the
// bundled RFC 7643 schemas, or Register to add custom ones.
func NewRegistry() *Registry {
	return &Registry{
		byURN:      map[string]Schema{},
		byResource: map[string]Schema{},
	}
}

// Register adds or replaces a schema, indexed by its ID (URN) and by
// resourceType.
func (r *Registry) Register(resourceType string, s Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byURN[s.ID] = s
	r.byResource[resourceType] = s
}

// RegisterCore loads the embedded core User, Group, and Enterprise User
// extension schemas (schema/embedded.go).
func (r *Registry) RegisterCore() {
	r.Register("User", UserCoreSchema())
	r.Register("Group", GroupCoreSchema())
	r.mu.Lock()
	r.byURN[EnterpriseUserSchema().ID] = EnterpriseUserSchema()
	r.mu.Unlock()
}

// ByURN looks up a schema by its full URN.
func (r *Registry) ByURN(urn string) (Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byURN[urn]
	return s, ok
}

// ByResourceType looks up the primary schema registered for a resource
// type name (e.g. "User", "Group").
func (r *Registry) ByResourceType(resourceType string) (Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byResource[resourceType]
	if !ok {
		return Schema{}, scimerr.UnsupportedResourceType(resourceType)
	}
	return s, nil
}

// ResourceTypes returns the names of every registered resource type,
// used to answer the /ResourceTypes discovery endpoint.
func (r *Registry) ResourceTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.byResource))
	for name := range r.byResource {
		out = append(out, name)
	}
	return out
}

// Schemas returns every distinct registered Schema, used to answer the
// /Schemas discovery endpoint.
func (r *Registry) Schemas() []Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool, len(r.byURN))
	out := make([]Schema, 0, len(r.byURN))
	for _, s := range r.byURN {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		out = append(out, s)
	}
	return out
}
