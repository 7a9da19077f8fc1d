package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefFor_SingleTenant(t *testing.T) {
	b := NewRefBuilder(SingleTenant, "http://host")
	ref, err := b.RefFor(Context{}, "User", "u1")
	require.NoError(t, err)
	assert.Equal(t, "http://host/v2/Users/u1", ref)
}

func TestRefFor_SubdomainRequiresTenant(t *testing.T) {
	b := NewRefBuilder(Subdomain, "http://host")
	_, err := b.RefFor(Context{}, "User", "u1")
	require.Error(t, err)

	ref, err := b.RefFor(Context{TenantID: "acme"}, "User", "u1")
	require.NoError(t, err)
	assert.Equal(t, "http://acme.host/v2/Users/u1", ref)
}

func TestRefFor_PathBasedRequiresTenant(t *testing.T) {
	b := NewRefBuilder(PathBased, "http://host")
	_, err := b.RefFor(Context{}, "Group", "g1")
	require.Error(t, err)

	ref, err := b.RefFor(Context{TenantID: "acme"}, "Group", "g1")
	require.NoError(t, err)
	assert.Equal(t, "http://host/acme/v2/Groups/g1", ref)
}

func TestApplyRefs_InjectsRefIntoMembers(t *testing.T) {
	b := NewRefBuilder(SingleTenant, "http://host")
	doc := map[string]any{
		"members": []any{
			map[string]any{"value": "u1", "type": "User"},
			map[string]any{"value": "g1"}, // missing type: no $ref injected
		},
	}
	out, err := b.ApplyRefs(Context{}, doc)
	require.NoError(t, err)

	members := out["members"].([]any)
	m0 := members[0].(map[string]any)
	assert.Equal(t, "http://host/v2/Users/u1", m0["$ref"])

	m1 := members[1].(map[string]any)
	_, hasRef := m1["$ref"]
	assert.False(t, hasRef)
}
