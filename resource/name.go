package resource

import (
	"unicode"
	"unicode/utf8"

	"github.com/xraph/scimcore/scimerr"
)

// Name is the SCIM User "name" complex attribute (RFC 7643 §4.1.1).
// At least one component must be set; each provided component is
// capped at 256 characters and may not contain control characters
// other than tab and newline.
type Name struct {
	Formatted       string `json:"formatted,omitempty"`
	FamilyName      string `json:"familyName,omitempty"`
	GivenName       string `json:"givenName,omitempty"`
	MiddleName      string `json:"middleName,omitempty"`
	HonorificPrefix string `json:"honorificPrefix,omitempty"`
	HonorificSuffix string `json:"honorificSuffix,omitempty"`
}

func NewName(n Name) (Name, error) {
	for field, value := range map[string]string{
		"name.formatted":       n.Formatted,
		"name.familyName":      n.FamilyName,
		"name.givenName":       n.GivenName,
		"name.middleName":      n.MiddleName,
		"name.honorificPrefix": n.HonorificPrefix,
		"name.honorificSuffix": n.HonorificSuffix,
	} {
		if value == "" {
			continue
		}
		if err := validateNameComponent(field, value); err != nil {
			return Name{}, err
		}
	}

	if n.Formatted == "" && n.FamilyName == "" && n.GivenName == "" &&
		n.MiddleName == "" && n.HonorificPrefix == "" && n.HonorificSuffix == "" {
		return Name{}, scimerr.MissingRequired("name")
	}

	return n, nil
}

func validateNameComponent(field, value string) error {
	if utf8.RuneCountInString(value) > 256 {
		return scimerr.MalformedRequest(field + " exceeds 256 characters")
	}
	for _, r := range value {
		if unicode.IsControl(r) && r != '\t' && r != '\n' {
			return scimerr.MalformedRequest(field + " contains an invalid control character")
		}
	}
	return nil
}

// IsZero reports whether no component was ever set (the attribute was
// absent entirely, as opposed to present-but-invalid).
func (n Name) IsZero() bool {
	return n == Name{}
}
