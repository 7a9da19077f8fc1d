package resource

import (
	"strings"
	"time"

	"github.com/xraph/scimcore/scimerr"
)

// Meta carries the server-controlled metadata common to every SCIM
// resource (RFC 7643 §3.1). Version is left empty here: the versioned
// provider is the sole writer of Version, computed from the resource's
// content hash just before persistence (spec.md §4.2, §4.3).
type Meta struct {
	ResourceType string    `json:"resourceType"`
	Created      time.Time `json:"created"`
	LastModified time.Time `json:"lastModified"`
	Location     string    `json:"location,omitempty"`
	Version      string    `json:"version,omitempty"`
}

func NewMeta(m Meta) (Meta, error) {
	if err := validateResourceTypeTag(m.ResourceType); err != nil {
		return Meta{}, err
	}
	if m.LastModified.Before(m.Created) {
		return Meta{}, scimerr.MalformedRequest("meta.lastModified cannot precede meta.created")
	}
	if m.Location != "" && !strings.HasPrefix(m.Location, "http://") && !strings.HasPrefix(m.Location, "https://") {
		return Meta{}, scimerr.InvalidLocationURI(m.Location)
	}
	if m.Version != "" && !isValidETagFormat(m.Version) {
		return Meta{}, scimerr.InvalidVersionFormat(m.Version)
	}
	return m, nil
}

func validateResourceTypeTag(tag string) error {
	if tag == "" {
		return scimerr.MissingRequired("meta.resourceType")
	}
	for _, r := range tag {
		if !(r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return scimerr.MalformedRequest("meta.resourceType must be alphanumeric or underscore")
		}
	}
	return nil
}

func isValidETagFormat(version string) bool {
	v := version
	if strings.HasPrefix(v, `W/"`) {
		v = v[2:]
	}
	return strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) && len(v) >= 2
}

// CreateMeta stamps Created and LastModified to now and sets Location
// to location as given; the caller supplies the id-bearing URI.
func CreateMeta(resourceType, location string, now time.Time) Meta {
	return Meta{
		ResourceType: resourceType,
		Created:      now,
		LastModified: now,
		Location:     location,
	}
}

// Touch returns a copy of m with LastModified advanced to now. Created
// and Version are left untouched — the provider sets Version separately.
func (m Meta) Touch(now time.Time) Meta {
	m.LastModified = now
	return m
}

// NormalizeETag strips an optional weak prefix and surrounding quotes,
// accepting a raw hash, `"hash"`, or `W/"hash"` (spec.md §4.3).
func NormalizeETag(version string) string {
	v := strings.TrimSpace(version)
	v = strings.TrimPrefix(v, "W/")
	v = strings.Trim(v, `"`)
	return v
}
