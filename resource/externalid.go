package resource

import (
	"strings"

	"github.com/xraph/scimcore/scimerr"
)

// ExternalId is the IdP-assigned identifier carried alongside the
// server's own ResourceId, unchanged by scimcore across requests.
type ExternalId struct {
	value string
}

func NewExternalId(value string) (ExternalId, error) {
	if strings.TrimSpace(value) == "" {
		return ExternalId{}, scimerr.MissingRequired("externalId")
	}
	return ExternalId{value: value}, nil
}

func (e ExternalId) String() string { return e.value }
