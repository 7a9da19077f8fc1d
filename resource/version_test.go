package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeVersion_StableAcrossKeyOrder(t *testing.T) {
	a := map[string]any{"userName": "jdoe", "id": "1", "meta": map[string]any{"resourceType": "User"}}
	b := map[string]any{"id": "1", "meta": map[string]any{"resourceType": "User"}, "userName": "jdoe"}

	va, err := ComputeVersion(a)
	require.NoError(t, err)
	vb, err := ComputeVersion(b)
	require.NoError(t, err)
	assert.Equal(t, va, vb)
}

func TestComputeVersion_IgnoresPriorVersion(t *testing.T) {
	doc := map[string]any{"id": "1", "meta": map[string]any{"resourceType": "User", "version": "stale"}}
	withoutVersion := map[string]any{"id": "1", "meta": map[string]any{"resourceType": "User"}}

	v1, err := ComputeVersion(doc)
	require.NoError(t, err)
	v2, err := ComputeVersion(withoutVersion)
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
}

func TestComputeVersion_ChangesWithContent(t *testing.T) {
	a := map[string]any{"id": "1", "userName": "jdoe"}
	b := map[string]any{"id": "1", "userName": "jsmith"}

	va, err := ComputeVersion(a)
	require.NoError(t, err)
	vb, err := ComputeVersion(b)
	require.NoError(t, err)
	assert.NotEqual(t, va, vb)
}

func TestNormalizeETag(t *testing.T) {
	cases := map[string]string{
		`"abc123"`:   "abc123",
		`W/"abc123"`: "abc123",
		"abc123":     "abc123",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeETag(in))
	}
}
