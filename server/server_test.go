package server

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/scimcore/patch"
	"github.com/xraph/scimcore/provider"
	"github.com/xraph/scimcore/schema"
	"github.com/xraph/scimcore/scimerr"
	"github.com/xraph/scimcore/storage/memstore"
	"github.com/xraph/scimcore/tenant"
)

func newTestServer() *Server {
	registry := schema.NewRegistry()
	registry.RegisterCore()
	prov := provider.New(memstore.New())
	refBuilder := tenant.NewRefBuilder(tenant.SingleTenant, "http://host")

	srv := New(Config{Registry: registry, Provider: prov, RefBuilder: refBuilder, BaseURL: "http://host"})
	srv.RegisterResourceType("User", schema.UserCoreSchema(), []Op{OpCreate, OpRead, OpReplace, OpPatch, OpDelete, OpList})
	srv.RegisterResourceType("Group", schema.GroupCoreSchema(), []Op{OpCreate, OpRead, OpList})
	return srv
}

func TestCreate_UnsupportedResourceTypeRejected(t *testing.T) {
	srv := newTestServer()
	_, err := srv.Create(context.Background(), "t1", "Device", map[string]any{})
	require.Error(t, err)
	var se *scimerr.Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, scimerr.CodeUnsupportedResourceType, se.Code)
}

func TestDelete_UnsupportedOperationRejected(t *testing.T) {
	srv := newTestServer()
	err := srv.Delete(context.Background(), "t1", "Group", "g1", "")
	require.Error(t, err)
	var se *scimerr.Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, scimerr.CodeUnsupportedOperation, se.Code)
}

func TestCreate_UniquenessViolationAgainstExistingUser(t *testing.T) {
	srv := newTestServer()
	_, err := srv.Create(context.Background(), "t1", "User", map[string]any{"userName": "jdoe"})
	require.NoError(t, err)

	_, err = srv.Create(context.Background(), "t1", "User", map[string]any{"userName": "jdoe"})
	require.Error(t, err)
	var se *scimerr.Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, scimerr.CodeServerUniquenessViolation, se.Code)
}

func TestCreate_SameUserNameAllowedAcrossTenants(t *testing.T) {
	srv := newTestServer()
	_, err := srv.Create(context.Background(), "tenantA", "User", map[string]any{"userName": "jdoe"})
	require.NoError(t, err)
	_, err = srv.Create(context.Background(), "tenantB", "User", map[string]any{"userName": "jdoe"})
	require.NoError(t, err)
}

func TestPatch_RoutesThroughReplaceAndBumpsVersion(t *testing.T) {
	srv := newTestServer()
	created, err := srv.Create(context.Background(), "t1", "User", map[string]any{"userName": "jdoe"})
	require.NoError(t, err)
	id := created["id"].(string)
	oldVersion := created["meta"].(map[string]any)["version"].(string)

	req, err := patch.Parse([]byte(`{"schemas":["urn:ietf:params:scim:api:messages:2.0:PatchOp"],"Operations":[{"op":"replace","path":"nickName","value":"JD"}]}`))
	require.NoError(t, err)

	updated, err := srv.Patch(context.Background(), "t1", "User", id, req, "")
	require.NoError(t, err)
	assert.Equal(t, "JD", updated["nickName"])
	newVersion := updated["meta"].(map[string]any)["version"].(string)
	assert.NotEqual(t, oldVersion, newVersion)
}

func TestCreate_StripsWriteOnlyPasswordFromResponse(t *testing.T) {
	srv := newTestServer()
	created, err := srv.Create(context.Background(), "t1", "User", map[string]any{
		"userName": "jdoe",
		"password": "hunter2",
	})
	require.NoError(t, err)
	_, hasPassword := created["password"]
	assert.False(t, hasPassword, "writeOnly attributes must never be emitted in a response")
}

func TestServiceProviderConfig_ETagAlwaysSupported(t *testing.T) {
	srv := newTestServer()
	cfg := srv.ServiceProviderConfig()
	assert.True(t, cfg.ETag.Supported)
	assert.True(t, cfg.Patch.Supported)
	assert.False(t, cfg.Bulk.Supported)
}

func TestResourceTypeDocuments_ListsRegisteredTypes(t *testing.T) {
	srv := newTestServer()
	docs := srv.ResourceTypeDocuments()
	names := map[string]bool{}
	for _, d := range docs {
		names[d.Name] = true
	}
	assert.True(t, names["User"])
	assert.True(t, names["Group"])
}

func TestCreate_InjectsDefaultSchemaWhenOmitted(t *testing.T) {
	srv := newTestServer()
	created, err := srv.Create(context.Background(), "t1", "User", map[string]any{"userName": "jdoe"})
	require.NoError(t, err)
	schemas := created["schemas"].([]any)
	require.Len(t, schemas, 1)
	assert.Equal(t, "urn:ietf:params:scim:schemas:core:2.0:User", schemas[0])
}

func TestReplace_OmittedSchemasPreservesEnterpriseExtension(t *testing.T) {
	srv := newTestServer()
	created, err := srv.Create(context.Background(), "t1", "User", map[string]any{
		"schemas": []any{
			"urn:ietf:params:scim:schemas:core:2.0:User",
			"urn:ietf:params:scim:schemas:extension:enterprise:2.0:User",
		},
		"userName": "jdoe",
	})
	require.NoError(t, err)
	id := created["id"].(string)

	updated, err := srv.Replace(context.Background(), "t1", "User", id, map[string]any{
		"userName": "jdoe2",
	}, "")
	require.NoError(t, err)
	schemas := updated["schemas"].([]any)
	assert.ElementsMatch(t, []any{
		"urn:ietf:params:scim:schemas:core:2.0:User",
		"urn:ietf:params:scim:schemas:extension:enterprise:2.0:User",
	}, schemas)
}

func TestGet_AppliesRefInjectionToGroupMembers(t *testing.T) {
	srv := newTestServer()
	created, err := srv.Create(context.Background(), "t1", "Group", map[string]any{
		"displayName": "Admins",
		"members":     []any{map[string]any{"value": "u1", "type": "User"}},
	})
	require.NoError(t, err)

	fetched, err := srv.Get(context.Background(), "t1", "Group", created["id"].(string))
	require.NoError(t, err)
	members := fetched["members"].([]any)
	m0 := members[0].(map[string]any)
	assert.Equal(t, "http://host/v2/Users/u1", m0["$ref"])
}
