package resource

import (
	"strings"

	"github.com/xraph/scimcore/scimerr"
)

// UserName wraps the User resource's unique, non-empty login identifier.
type UserName struct {
	value string
}

func NewUserName(value string) (UserName, error) {
	if strings.TrimSpace(value) == "" {
		return UserName{}, scimerr.MissingRequired("userName")
	}
	return UserName{value: value}, nil
}

func (u UserName) String() string { return u.value }
