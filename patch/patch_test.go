package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPatchBody(operations string) []byte {
	return []byte(`{"schemas":["` + patchSchemaURN + `"],"Operations":[` + operations + `]}`)
}

func TestParse_RejectsMissingSchema(t *testing.T) {
	_, err := Parse([]byte(`{"schemas":["urn:other"],"Operations":[{"op":"add","path":"x","value":"y"}]}`))
	require.Error(t, err)
}

func TestParse_RejectsUnknownOp(t *testing.T) {
	_, err := Parse(validPatchBody(`{"op":"frobnicate","path":"x","value":"y"}`))
	require.Error(t, err)
}

func TestApply_ReplaceDottedPath(t *testing.T) {
	req, err := Parse(validPatchBody(`{"op":"replace","path":"displayName","value":"New Name"}`))
	require.NoError(t, err)

	doc := map[string]any{"displayName": "Old Name"}
	out, err := Apply(doc, req)
	require.NoError(t, err)
	assert.Equal(t, "New Name", out["displayName"])
	assert.Equal(t, "Old Name", doc["displayName"], "original document must not be mutated")
}

func TestApply_RemoveDottedPath(t *testing.T) {
	req, err := Parse(validPatchBody(`{"op":"remove","path":"nickName"}`))
	require.NoError(t, err)

	doc := map[string]any{"nickName": "JD", "userName": "jdoe"}
	out, err := Apply(doc, req)
	require.NoError(t, err)
	_, has := out["nickName"]
	assert.False(t, has)
	assert.Equal(t, "jdoe", out["userName"])
}

func TestApply_FilteredReplaceOnMemberSubAttribute(t *testing.T) {
	req, err := Parse(validPatchBody(`{"op":"replace","path":"members[value eq \"u1\"].display","value":"Jane"}`))
	require.NoError(t, err)

	doc := map[string]any{
		"members": []any{
			map[string]any{"value": "u1", "type": "User"},
			map[string]any{"value": "u2", "type": "User"},
		},
	}
	out, err := Apply(doc, req)
	require.NoError(t, err)

	members := out["members"].([]any)
	m0 := members[0].(map[string]any)
	assert.Equal(t, "Jane", m0["display"])
	m1 := members[1].(map[string]any)
	_, has := m1["display"]
	assert.False(t, has)
}

func TestApply_FilteredRemoveWholeElement(t *testing.T) {
	req, err := Parse(validPatchBody(`{"op":"remove","path":"members[value eq \"u1\"]"}`))
	require.NoError(t, err)

	doc := map[string]any{
		"members": []any{
			map[string]any{"value": "u1", "type": "User"},
			map[string]any{"value": "u2", "type": "User"},
		},
	}
	out, err := Apply(doc, req)
	require.NoError(t, err)

	members := out["members"].([]any)
	require.Len(t, members, 1)
	assert.Equal(t, "u2", members[0].(map[string]any)["value"])
}

func TestApply_AddWithoutPathMergesObject(t *testing.T) {
	req, err := Parse(validPatchBody(`{"op":"add","value":{"nickName":"JD"}}`))
	require.NoError(t, err)

	doc := map[string]any{"userName": "jdoe"}
	out, err := Apply(doc, req)
	require.NoError(t, err)
	assert.Equal(t, "JD", out["nickName"])
}
