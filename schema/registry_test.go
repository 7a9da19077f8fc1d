package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/scimcore/scimerr"
)

func TestRegistry_ByResourceTypeUnknownReturnsUnsupportedResourceType(t *testing.T) {
	r := NewRegistry()
	r.RegisterCore()
	_, err := r.ByResourceType("Device")
	require.Error(t, err)
	se, ok := err.(*scimerr.Error)
	require.True(t, ok)
	assert.Equal(t, scimerr.CodeUnsupportedResourceType, se.Code)
}

func TestRegistry_ByURNFindsEnterpriseExtensionByURNOnly(t *testing.T) {
	r := NewRegistry()
	r.RegisterCore()
	s, ok := r.ByURN("urn:ietf:params:scim:schemas:extension:enterprise:2.0:User")
	require.True(t, ok)
	assert.Equal(t, "EnterpriseUser", s.Name)
}

func TestRegistry_ResourceTypesListsRegisteredTypes(t *testing.T) {
	r := NewRegistry()
	r.RegisterCore()
	types := r.ResourceTypes()
	assert.Contains(t, types, "User")
	assert.Contains(t, types, "Group")
}

func TestRegistry_SchemasDedupesByID(t *testing.T) {
	r := NewRegistry()
	r.RegisterCore()
	seen := map[string]int{}
	for _, s := range r.Schemas() {
		seen[s.ID]++
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "schema %s listed more than once", id)
	}
}
