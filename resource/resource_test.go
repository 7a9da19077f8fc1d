package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMap_DefaultsSchemaWhenAbsent(t *testing.T) {
	r, err := FromMap("User", map[string]any{"userName": "jdoe"})
	require.NoError(t, err)
	assert.Equal(t, []string{SchemaUserCore}, r.Schemas)
}

func TestFromMap_EmptySchemasArrayRejected(t *testing.T) {
	_, err := FromMap("User", map[string]any{"schemas": []any{}})
	require.Error(t, err)
}

func TestFromMap_MultiplePrimaryEmailsRejected(t *testing.T) {
	doc := map[string]any{
		"userName": "jdoe",
		"emails": []any{
			map[string]any{"value": "a@example.com", "primary": true},
			map[string]any{"value": "b@example.com", "primary": true},
		},
	}
	_, err := FromMap("User", doc)
	require.Error(t, err)
}

func TestFromMap_UnrecognisedTopLevelKeyGoesToExtension(t *testing.T) {
	doc := map[string]any{"userName": "jdoe", "active": true}
	r, err := FromMap("User", doc)
	require.NoError(t, err)
	assert.Equal(t, true, r.Extension["active"])
}

func TestFromMap_RoundTripsThroughToMap(t *testing.T) {
	doc := map[string]any{
		"userName": "jdoe",
		"name":     map[string]any{"givenName": "Jane"},
		"emails": []any{
			map[string]any{"value": "jane@example.com", "primary": true, "type": "work"},
		},
	}
	r, err := FromMap("User", doc)
	require.NoError(t, err)
	out := r.ToMap()
	assert.Equal(t, "jdoe", out["userName"])
	emails, ok := out["emails"].([]EmailAddress)
	require.True(t, ok)
	require.Len(t, emails, 1)
	assert.Equal(t, "jane@example.com", emails[0].Value)
}

func TestFromMap_InvalidAddressCountryRejected(t *testing.T) {
	doc := map[string]any{
		"userName": "jdoe",
		"addresses": []any{
			map[string]any{"locality": "Springfield", "country": "ZZ"},
		},
	}
	_, err := FromMap("User", doc)
	require.Error(t, err)
}

func TestFromMap_GroupDefaultsToGroupSchema(t *testing.T) {
	r, err := FromMap("Group", map[string]any{"displayName": "Admins"})
	require.NoError(t, err)
	assert.Equal(t, []string{SchemaGroupCore}, r.Schemas)
}
