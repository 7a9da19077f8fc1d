// Package server implements the orchestrator (spec.md §4.4): the set of
// registered resource types, their allowed operations, and the
// validated, versioned CRUD entry points the operation handler calls
// into.
package server

import (
	"context"

	"github.com/xraph/scimcore/patch"
	"github.com/xraph/scimcore/provider"
	"github.com/xraph/scimcore/schema"
	"github.com/xraph/scimcore/scimerr"
	"github.com/xraph/scimcore/storage"
	"github.com/xraph/scimcore/tenant"
)

// Op identifies one of the verbs a resource type may support.
type Op string

const (
	OpCreate  Op = "Create"
	OpRead    Op = "Read"
	OpReplace Op = "Replace"
	OpPatch   Op = "Patch"
	OpDelete  Op = "Delete"
	OpList    Op = "List"
	OpSearch  Op = "Search"
)

// registration is the state recorded for one resource type at
// RegisterResourceType time.
type registration struct {
	schema     schema.Schema
	allowedOps map[Op]bool
}

// Server is the per-instance orchestrator. Registration is write-once
// at startup; Server does not support registering new resource types
// after serving requests (spec.md §5 Shared resources).
type Server struct {
	registry   *schema.Registry
	validator  *schema.Validator
	provider   *provider.Provider
	refBuilder *tenant.RefBuilder
	baseURL    string

	registrations map[string]registration
}

// Config bundles the collaborators a Server is built from.
type Config struct {
	Registry   *schema.Registry
	Provider   *provider.Provider
	RefBuilder *tenant.RefBuilder
	BaseURL    string
}

func New(cfg Config) *Server {
	return &Server{
		registry:      cfg.Registry,
		validator:     schema.NewValidator(cfg.Registry),
		provider:      cfg.Provider,
		refBuilder:    cfg.RefBuilder,
		baseURL:       cfg.BaseURL,
		registrations: map[string]registration{},
	}
}

// RegisterResourceType enables resourceType with the given schema and
// allowed operation set.
func (s *Server) RegisterResourceType(resourceType string, sch schema.Schema, allowedOps []Op) {
	ops := make(map[Op]bool, len(allowedOps))
	for _, op := range allowedOps {
		ops[op] = true
	}
	s.registrations[resourceType] = registration{schema: sch, allowedOps: ops}
	s.registry.Register(resourceType, sch)
}

func (s *Server) checkOp(resourceType string, op Op) (registration, error) {
	reg, ok := s.registrations[resourceType]
	if !ok {
		return registration{}, scimerr.UnsupportedResourceType(resourceType)
	}
	if !reg.allowedOps[op] {
		return registration{}, scimerr.UnsupportedOperation(resourceType, string(op))
	}
	return reg, nil
}

type uniquenessChecker struct {
	ctx          context.Context
	server       *Server
	tenantID     string
	resourceType string
}

func (u uniquenessChecker) Exists(attributePath, value, excludeID string) (bool, error) {
	doc, ok, err := u.server.provider.FindByAttr(u.ctx, u.tenantID, u.resourceType, attributePath, value)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	id, _ := doc["id"].(string)
	return id != excludeID, nil
}

// Create validates body under OpCtx=Create and persists it, injecting
// member $ref entries per the configured tenant strategy.
func (s *Server) Create(ctx context.Context, tenantID, resourceType string, body map[string]any) (map[string]any, error) {
	reg, err := s.checkOp(resourceType, OpCreate)
	if err != nil {
		return nil, err
	}

	body = withSchemaDefault(body, reg, nil)

	vctx := schema.Context{
		Operation:  schema.OperationCreate,
		Uniqueness: uniquenessChecker{ctx: ctx, server: s, tenantID: tenantID, resourceType: resourceType},
	}
	if err := s.validator.Validate(reg.schema, body, vctx); err != nil {
		return nil, err
	}

	location := s.locationFor(resourceType, "")
	stored, err := s.provider.Create(ctx, tenantID, resourceType, body, location)
	if err != nil {
		return nil, err
	}
	return s.finalize(tenantID, resourceType, stored)
}

// Get fetches a resource by id and applies ref injection before return.
func (s *Server) Get(ctx context.Context, tenantID, resourceType, id string) (map[string]any, error) {
	if _, err := s.checkOp(resourceType, OpRead); err != nil {
		return nil, err
	}
	doc, err := s.provider.Get(ctx, tenantID, resourceType, id)
	if err != nil {
		return nil, err
	}
	return s.finalize(tenantID, resourceType, doc)
}

// Replace validates body under OpCtx=Replace against both the schema
// and the previously stored resource, then persists it.
func (s *Server) Replace(ctx context.Context, tenantID, resourceType, id string, body map[string]any, expectedVersion string) (map[string]any, error) {
	reg, err := s.checkOp(resourceType, OpReplace)
	if err != nil {
		return nil, err
	}

	previous, err := s.provider.Get(ctx, tenantID, resourceType, id)
	if err != nil {
		return nil, err
	}

	body = withSchemaDefault(body, reg, previous)

	vctx := schema.Context{
		Operation:  schema.OperationReplace,
		ResourceID: id,
		Previous:   previous,
		Uniqueness: uniquenessChecker{ctx: ctx, server: s, tenantID: tenantID, resourceType: resourceType},
	}
	if err := s.validator.Validate(reg.schema, body, vctx); err != nil {
		return nil, err
	}

	location := s.locationFor(resourceType, id)
	stored, err := s.provider.Replace(ctx, tenantID, resourceType, id, body, expectedVersion, location)
	if err != nil {
		return nil, err
	}
	return s.finalize(tenantID, resourceType, stored)
}

// Patch applies req to the stored resource's deep clone, then routes
// through the same validated, versioned path as Replace (spec.md
// §4.4 Patch path, §6.3).
func (s *Server) Patch(ctx context.Context, tenantID, resourceType, id string, req *patch.Request, expectedVersion string) (map[string]any, error) {
	if _, err := s.checkOp(resourceType, OpPatch); err != nil {
		return nil, err
	}
	previous, err := s.provider.Get(ctx, tenantID, resourceType, id)
	if err != nil {
		return nil, err
	}
	patched, err := patch.Apply(previous, req)
	if err != nil {
		return nil, err
	}
	return s.Replace(ctx, tenantID, resourceType, id, patched, expectedVersion)
}

// Delete removes a resource, enforcing expectedVersion per the
// provider's idempotence rules.
func (s *Server) Delete(ctx context.Context, tenantID, resourceType, id, expectedVersion string) error {
	if _, err := s.checkOp(resourceType, OpDelete); err != nil {
		return err
	}
	return s.provider.Delete(ctx, tenantID, resourceType, id, expectedVersion)
}

// List returns a page of resources, each with ref injection applied.
func (s *Server) List(ctx context.Context, tenantID, resourceType string, query storage.Query) ([]map[string]any, int, error) {
	if _, err := s.checkOp(resourceType, OpList); err != nil {
		return nil, 0, err
	}
	docs, total, err := s.provider.List(ctx, tenantID, resourceType, query)
	if err != nil {
		return nil, 0, err
	}
	out := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		finalized, err := s.finalize(tenantID, resourceType, doc)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, finalized)
	}
	return out, total, nil
}

// finalize strips writeOnly attributes and applies tenant ref
// injection to a stored document before it is returned to a caller.
func (s *Server) finalize(tenantID, resourceType string, doc map[string]any) (map[string]any, error) {
	reg, ok := s.registrations[resourceType]
	if ok {
		stripped, err := schema.StripWriteOnly(reg.schema, doc)
		if err != nil {
			return nil, err
		}
		doc = stripped
	}
	if s.refBuilder == nil {
		return doc, nil
	}
	return s.refBuilder.ApplyRefs(tenant.Context{TenantID: tenantID}, doc)
}

// withSchemaDefault returns body unchanged if it already names a
// "schemas" value. Otherwise it returns a shallow copy with a default
// injected (spec.md §4.2): previous's own "schemas" value when previous
// is non-nil, so a Replace that omits "schemas" doesn't drop any
// extension URNs the resource already carries (e.g. the Enterprise User
// extension), or the resource type's primary schema URN alone on
// Create, where there is no prior document to preserve.
func withSchemaDefault(body map[string]any, reg registration, previous map[string]any) map[string]any {
	if _, ok := body["schemas"]; ok {
		return body
	}
	out := make(map[string]any, len(body)+1)
	for k, v := range body {
		out[k] = v
	}
	if previous != nil {
		if prior, ok := previous["schemas"]; ok {
			out["schemas"] = prior
			return out
		}
	}
	out["schemas"] = []any{reg.schema.ID}
	return out
}

func (s *Server) locationFor(resourceType, id string) string {
	if id == "" {
		return s.baseURL + "/v2/" + resourceType + "s"
	}
	return s.baseURL + "/v2/" + resourceType + "s/" + id
}

// ResourceTypes exposes the registry's resource type names for the
// /ResourceTypes discovery endpoint.
func (s *Server) ResourceTypes() []string {
	return s.registry.ResourceTypes()
}

// Schemas exposes every registered schema for the /Schemas discovery
// endpoint.
func (s *Server) Schemas() []schema.Schema {
	return s.registry.Schemas()
}
