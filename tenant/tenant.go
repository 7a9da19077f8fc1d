// Package tenant implements the multi-tenant resolver and $ref builder
// (spec.md §4.5): tenant context plumbing and the strategy-specific
// URI construction for member references.
package tenant

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/xraph/scimcore/scimerr"
)

// Strategy selects how a server instance derives $ref URIs and whether
// a tenant id is required on every call.
type Strategy string

const (
	SingleTenant Strategy = "single"
	Subdomain    Strategy = "subdomain"
	PathBased    Strategy = "path"
)

// Context carries the tenant id for a single request. It is passed
// explicitly through every provider call rather than stashed in
// server-level state (spec.md §4.5 Isolation).
type Context struct {
	TenantID string
}

// RefBuilder computes $ref URIs for a configured Strategy and base URL.
type RefBuilder struct {
	Strategy Strategy
	BaseURL  string
}

func NewRefBuilder(strategy Strategy, baseURL string) *RefBuilder {
	return &RefBuilder{Strategy: strategy, BaseURL: strings.TrimRight(baseURL, "/")}
}

// RefFor builds the $ref URI for a resource of resourceType with id,
// under ctx's tenant. Group/User type names are pluralised per RFC
// 7644 path conventions ("Users", "Groups").
func (b *RefBuilder) RefFor(ctx Context, resourceType, id string) (string, error) {
	switch b.Strategy {
	case SingleTenant:
		return fmt.Sprintf("%s/v2/%ss/%s", b.BaseURL, resourceType, id), nil
	case Subdomain:
		if ctx.TenantID == "" {
			return "", scimerr.TenantIDRequired(string(Subdomain))
		}
		u, err := url.Parse(b.BaseURL)
		if err != nil {
			return "", scimerr.MalformedRequest("invalid base URL: " + err.Error())
		}
		host := fmt.Sprintf("%s.%s", ctx.TenantID, u.Host)
		return fmt.Sprintf("%s://%s%s/v2/%ss/%s", u.Scheme, host, u.Path, resourceType, id), nil
	case PathBased:
		if ctx.TenantID == "" {
			return "", scimerr.TenantIDRequired(string(PathBased))
		}
		return fmt.Sprintf("%s/%s/v2/%ss/%s", b.BaseURL, ctx.TenantID, resourceType, id), nil
	default:
		return "", scimerr.MalformedRequest("unrecognised tenant strategy")
	}
}

// ApplyRefs walks doc's multi-valued reference-bearing attributes
// (currently "members") and injects a "$ref" entry into any element
// whose "value" and "type" are both present, per the configured
// strategy. It mutates doc in place and also returns it.
func (b *RefBuilder) ApplyRefs(ctx Context, doc map[string]any) (map[string]any, error) {
	members, ok := doc["members"].([]any)
	if !ok {
		return doc, nil
	}
	for _, item := range members {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		value, _ := obj["value"].(string)
		memberType, _ := obj["type"].(string)
		if value == "" || memberType == "" {
			continue
		}
		ref, err := b.RefFor(ctx, memberType, value)
		if err != nil {
			return nil, err
		}
		obj["$ref"] = ref
	}
	return doc, nil
}
