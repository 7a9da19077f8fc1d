package resource

import (
	"strings"

	"github.com/xraph/scimcore/scimerr"
)

// SchemaUri wraps a `schemas[]` entry. Per spec.md §3 it must be
// syntactically a URN and reference the SCIM schema namespace; a
// "test:" marker is also accepted so fixtures and unit tests can use
// short-lived schema identifiers without a registered urn:ietf: URI.
type SchemaUri struct {
	value string
}

func NewSchemaUri(value string) (SchemaUri, error) {
	if value == "" {
		return SchemaUri{}, scimerr.MalformedRequest("schema uri must not be empty")
	}
	if !strings.HasPrefix(value, "urn:") {
		return SchemaUri{}, scimerr.MalformedRequest("schema uri must be a urn: identifier")
	}
	if !strings.Contains(value, "scim:schemas") && !strings.Contains(value, "test:") {
		return SchemaUri{}, scimerr.MalformedRequest("schema uri must reference scim:schemas or a test: marker")
	}
	return SchemaUri{value: value}, nil
}

func (s SchemaUri) String() string { return s.value }
