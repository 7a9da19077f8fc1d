package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripWriteOnly_RemovesPasswordFromUserResponse(t *testing.T) {
	s := UserCoreSchema()
	doc := map[string]any{"userName": "jdoe", "password": "hunter2"}

	out, err := StripWriteOnly(s, doc)
	require.NoError(t, err)
	_, has := out["password"]
	assert.False(t, has)
	assert.Equal(t, "jdoe", out["userName"])
}

func TestStripWriteOnly_LeavesOriginalDocumentUntouched(t *testing.T) {
	s := UserCoreSchema()
	doc := map[string]any{"userName": "jdoe", "password": "hunter2"}

	_, err := StripWriteOnly(s, doc)
	require.NoError(t, err)
	_, stillHas := doc["password"]
	assert.True(t, stillHas, "StripWriteOnly must not mutate the caller's document")
}
