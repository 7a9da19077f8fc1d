package scimerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	a := NotFound("User", "u1")
	b := NotFound("Group", "g1")
	assert.True(t, errors.Is(a, b), "two errors with the same code should match via errors.Is")

	c := VersionMismatch("v1", "v2")
	assert.False(t, errors.Is(a, c))
}

func TestError_UnwrapExposesWrappedCause(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	wrapped := StorageFailure("get", cause)
	assert.Equal(t, cause, errors.Unwrap(wrapped))
	assert.True(t, errors.Is(wrapped, cause))
}

func TestError_WithContextAccumulates(t *testing.T) {
	e := MissingRequired("userName").WithContext("resourceType", "User")
	assert.Equal(t, "userName", e.Context["attribute"])
	assert.Equal(t, "User", e.Context["resourceType"])
}

func TestError_StatusAndScimTypeMapping(t *testing.T) {
	e := ImmutableViolation("id")
	assert.Equal(t, 400, e.Status)
	assert.Equal(t, "mutability", e.ScimType)
	assert.Equal(t, CodeImmutableViolation, e.Code)
}

func TestError_ErrorStringIncludesCause(t *testing.T) {
	e := StorageFailure("put", fmt.Errorf("disk full"))
	assert.Contains(t, e.Error(), "disk full")
	assert.Contains(t, e.Error(), CodeStorageFailure)
}
