package resource

import (
	"github.com/xraph/scimcore/internal/structvalidate"
	"github.com/xraph/scimcore/scimerr"
)

// EmailAddress is one element of the multi-valued "emails" attribute.
type EmailAddress struct {
	Value   string `json:"value"   validate:"required,email"`
	Type    string `json:"type,omitempty"    validate:"omitempty,oneof=work home other"`
	Primary bool   `json:"primary,omitempty"`
	Display string `json:"display,omitempty" validate:"omitempty,max=256"`
}

func NewEmailAddress(e EmailAddress) (EmailAddress, error) {
	if e.Value == "" {
		return EmailAddress{}, scimerr.MissingRequired("emails.value")
	}
	if msg := structvalidate.Struct(e); msg != "" {
		return EmailAddress{}, scimerr.MalformedRequest("emails: " + msg)
	}
	return e, nil
}
