package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/scimcore/scimerr"
)

func registryWithCore() *Registry {
	r := NewRegistry()
	r.RegisterCore()
	return r
}

func TestValidate_MissingRequiredAttribute(t *testing.T) {
	r := registryWithCore()
	s, _ := r.ByResourceType("User")
	v := NewValidator(r)

	err := v.Validate(s, map[string]any{"schemas": []any{SchemaUserCore}}, Context{Operation: OperationCreate})
	require.Error(t, err)
	var se *scimerr.Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, scimerr.CodeMissingRequired, se.Code)
}

func TestValidate_UnknownAttributeRejected(t *testing.T) {
	r := registryWithCore()
	s, _ := r.ByResourceType("User")
	v := NewValidator(r)

	doc := map[string]any{"userName": "jdoe", "bogus": "x"}
	err := v.Validate(s, doc, Context{Operation: OperationCreate})
	require.Error(t, err)
	var se *scimerr.Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, scimerr.CodeUnknownAttributeForSchema, se.Code)
}

func TestValidate_CanonicalValueRejected(t *testing.T) {
	r := registryWithCore()
	s, _ := r.ByResourceType("User")
	v := NewValidator(r)

	doc := map[string]any{
		"userName": "jdoe",
		"emails": []any{
			map[string]any{"value": "a@example.com", "type": "carrier-pigeon"},
		},
	}
	err := v.Validate(s, doc, Context{Operation: OperationCreate})
	require.Error(t, err)
}

func TestValidate_ReadOnlyRejectedOnReplaceWhenValueDiffers(t *testing.T) {
	r := registryWithCore()
	s, _ := r.ByResourceType("User")
	v := NewValidator(r)

	doc := map[string]any{"userName": "jdoe", "id": "abc123"}
	prev := map[string]any{"id": "original-id"}
	err := v.Validate(s, doc, Context{Operation: OperationReplace, Previous: prev})
	require.Error(t, err)
	var se *scimerr.Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, scimerr.CodeReadOnlyViolation, se.Code)
}

func TestValidate_ReadOnlySameValueAllowedOnReplace(t *testing.T) {
	r := registryWithCore()
	s, _ := r.ByResourceType("User")
	v := NewValidator(r)

	doc := map[string]any{"userName": "jdoe", "id": "abc123"}
	prev := map[string]any{"id": "abc123"}
	err := v.Validate(s, doc, Context{Operation: OperationReplace, Previous: prev})
	require.NoError(t, err)
}

func TestValidate_ImmutableUnchangedAllowedOnReplace(t *testing.T) {
	r := registryWithCore()
	s, _ := r.ByResourceType("Group")
	v := NewValidator(r)

	doc := map[string]any{
		"displayName": "Admins",
		"members":     []any{map[string]any{"value": "u1", "type": "User"}},
	}
	prev := map[string]any{
		"members": []any{map[string]any{"value": "u1", "type": "User"}},
	}
	err := v.Validate(s, doc, Context{Operation: OperationReplace, Previous: prev})
	require.NoError(t, err)
}

type stubUniqueness struct{ taken map[string]bool }

func (s stubUniqueness) Exists(attributePath, value, excludeID string) (bool, error) {
	return s.taken[attributePath+"="+value], nil
}

func TestValidate_ServerUniquenessViolation(t *testing.T) {
	r := registryWithCore()
	s, _ := r.ByResourceType("User")
	v := NewValidator(r)

	doc := map[string]any{"userName": "jdoe"}
	ctx := Context{
		Operation:  OperationCreate,
		Uniqueness: stubUniqueness{taken: map[string]bool{"userName=jdoe": true}},
	}
	err := v.Validate(s, doc, ctx)
	require.Error(t, err)
	var se *scimerr.Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, scimerr.CodeServerUniquenessViolation, se.Code)
}

func TestValidate_MultiValuedScalarMismatch(t *testing.T) {
	r := registryWithCore()
	s, _ := r.ByResourceType("User")
	v := NewValidator(r)

	doc := map[string]any{"userName": "jdoe", "emails": "not-a-list"}
	err := v.Validate(s, doc, Context{Operation: OperationCreate})
	require.Error(t, err)
	var se *scimerr.Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, scimerr.CodeExpectedMultiValue, se.Code)
}
