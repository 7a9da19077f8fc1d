package resource

import (
	"unicode/utf8"

	"github.com/xraph/scimcore/scimerr"
)

// GroupMember is a weak reference to a User or Group held by a Group's
// "members" attribute. Ref is populated by the tenant ref builder, not
// at construction time, and is therefore left out of the value object's
// own validation.
type GroupMember struct {
	Value   string `json:"value"`
	Type    string `json:"type,omitempty"`
	Display string `json:"display,omitempty"`
	Ref     string `json:"$ref,omitempty"`
}

var groupMemberTypes = map[string]bool{"User": true, "Group": true}

func NewGroupMember(m GroupMember) (GroupMember, error) {
	if m.Value == "" {
		return GroupMember{}, scimerr.MissingRequired("members.value")
	}
	if m.Type != "" && !groupMemberTypes[m.Type] {
		return GroupMember{}, scimerr.InvalidCanonicalValue("members.type", m.Type, []string{"User", "Group"})
	}
	if utf8.RuneCountInString(m.Display) > 256 {
		return GroupMember{}, scimerr.MalformedRequest("members.display exceeds 256 characters")
	}
	return m, nil
}
