package resource

import (
	"strings"

	"github.com/xraph/scimcore/internal/structvalidate"
	"github.com/xraph/scimcore/scimerr"
)

// PhoneNumber is one element of the multi-valued "phoneNumbers"
// attribute (RFC 7643 §4.1.2). Value must contain at least one digit
// and only characters a phone number or an RFC 3966 "tel:" URI would
// plausibly contain.
type PhoneNumber struct {
	Value   string `json:"value"`
	Type    string `json:"type,omitempty"`
	Primary bool   `json:"primary,omitempty"`
	Display string `json:"display,omitempty" validate:"omitempty,max=256"`
}

var phoneTypes = map[string]bool{
	"work": true, "home": true, "mobile": true,
	"fax": true, "pager": true, "other": true,
}

func NewPhoneNumber(p PhoneNumber) (PhoneNumber, error) {
	if err := validatePhoneValue(p.Value); err != nil {
		return PhoneNumber{}, err
	}
	if p.Type != "" && !phoneTypes[p.Type] {
		return PhoneNumber{}, scimerr.InvalidCanonicalValue("phoneNumbers.type", p.Type, phoneTypeList())
	}
	if msg := structvalidate.Struct(p); msg != "" {
		return PhoneNumber{}, scimerr.MalformedRequest("phoneNumbers: " + msg)
	}
	return p, nil
}

func validatePhoneValue(value string) error {
	if strings.TrimSpace(value) == "" {
		return scimerr.MissingRequired("phoneNumbers.value")
	}
	if len(value) > 50 {
		return scimerr.MalformedRequest("phoneNumbers.value exceeds 50 characters")
	}
	if strings.HasPrefix(value, "tel:") && value == "tel:" {
		return scimerr.MalformedRequest("phoneNumbers.value has an empty tel: body")
	}

	// letters only occur in a "tel:" scheme prefix
	body := strings.TrimPrefix(value, "tel:")
	hasDigit := false
	for _, r := range body {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r == '+' || r == '-' || r == '(' || r == ')' || r == ' ' || r == '.' || r == ':':
			// punctuation allowed in both plain and RFC 3966 forms
		default:
			return scimerr.MalformedRequest("phoneNumbers.value contains an invalid character")
		}
	}
	if !hasDigit {
		return scimerr.MalformedRequest("phoneNumbers.value must contain at least one digit")
	}
	return nil
}

func phoneTypeList() []string {
	return []string{"work", "home", "mobile", "fax", "pager", "other"}
}
