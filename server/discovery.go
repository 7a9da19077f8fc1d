package server

// ServiceProviderConfig is the capabilities document the /ServiceProviderConfig
// discovery endpoint returns (spec.md §6.4). etag is always true: every
// resource returned by this engine carries a content-hash version.
type ServiceProviderConfig struct {
	Schemas        []string         `json:"schemas"`
	Patch          SupportedFeature `json:"patch"`
	Bulk           SupportedFeature `json:"bulk"`
	Filter         SupportedFeature `json:"filter"`
	Sort           SupportedFeature `json:"sort"`
	ETag           SupportedFeature `json:"etag"`
	ChangePassword SupportedFeature `json:"changePassword"`
}

// SupportedFeature marks one ServiceProviderConfig capability.
type SupportedFeature struct {
	Supported bool `json:"supported"`
}

// ResourceTypeDocument is one entry of the /ResourceTypes discovery
// listing, derived from a resource type's registration.
type ResourceTypeDocument struct {
	Schemas  []string `json:"schemas"`
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Endpoint string   `json:"endpoint"`
	Schema   string   `json:"schema"`
}

// ServiceProviderConfig reports the capabilities this engine advertises.
// Bulk and changePassword are unsupported: neither has a provider or
// handler code path in this engine. Filter and sort are unsupported as
// well: the storage drivers ignore Query.Filter and Query.SortBy.
func (s *Server) ServiceProviderConfig() ServiceProviderConfig {
	return ServiceProviderConfig{
		Schemas:        []string{"urn:ietf:params:scim:schemas:core:2.0:ServiceProviderConfig"},
		Patch:          SupportedFeature{Supported: true},
		Bulk:           SupportedFeature{Supported: false},
		Filter:         SupportedFeature{Supported: false},
		Sort:           SupportedFeature{Supported: false},
		ETag:           SupportedFeature{Supported: true},
		ChangePassword: SupportedFeature{Supported: false},
	}
}

// ResourceTypeDocuments derives the /ResourceTypes listing from every
// registered resource type's schema and allowed operations.
func (s *Server) ResourceTypeDocuments() []ResourceTypeDocument {
	out := make([]ResourceTypeDocument, 0, len(s.registrations))
	for resourceType, reg := range s.registrations {
		out = append(out, ResourceTypeDocument{
			Schemas:  []string{"urn:ietf:params:scim:schemas:core:2.0:ResourceType"},
			ID:       resourceType,
			Name:     resourceType,
			Endpoint: "/v2/" + resourceType + "s",
			Schema:   reg.schema.ID,
		})
	}
	return out
}
