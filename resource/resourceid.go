package resource

import (
	"strings"

	"github.com/xraph/scimcore/scimerr"
)

// ResourceId is the server (or IdP) assigned identifier of a Resource.
// The only contract is non-emptiness: external identity providers may
// supply their own id format, so scimcore does not impose UUID shape.
type ResourceId struct {
	value string
}

// NewResourceId validates and wraps a resource id.
func NewResourceId(value string) (ResourceId, error) {
	if strings.TrimSpace(value) == "" {
		return ResourceId{}, scimerr.MissingRequired("id")
	}
	return ResourceId{value: value}, nil
}

func (r ResourceId) String() string { return r.value }

// IsZero reports whether the id was never set (server must allocate one).
func (r ResourceId) IsZero() bool { return r.value == "" }
