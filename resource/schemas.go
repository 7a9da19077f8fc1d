package resource

// Core SCIM 2.0 schema URNs (RFC 7643), used as the default primary
// schema when a caller's JSON body omits the `schemas` array.
const (
	SchemaUserCore    = "urn:ietf:params:scim:schemas:core:2.0:User"
	SchemaGroupCore   = "urn:ietf:params:scim:schemas:core:2.0:Group"
	SchemaEnterprise  = "urn:ietf:params:scim:schemas:extension:enterprise:2.0:User"
	SchemaServiceCfg  = "urn:ietf:params:scim:schemas:core:2.0:ServiceProviderConfig"
	SchemaResourceTyp = "urn:ietf:params:scim:schemas:core:2.0:ResourceType"
	SchemaSchema      = "urn:ietf:params:scim:schemas:core:2.0:Schema"
	SchemaListResp    = "urn:ietf:params:scim:api:messages:2.0:ListResponse"
	SchemaError       = "urn:ietf:params:scim:api:messages:2.0:Error"
	SchemaPatchOp     = "urn:ietf:params:scim:api:messages:2.0:PatchOp"
)

// defaultSchemaFor returns the schema URN injected when a resource
// document's `schemas` array is absent (spec.md §4.2).
func defaultSchemaFor(resourceType string) string {
	switch resourceType {
	case "Group":
		return SchemaGroupCore
	default:
		return SchemaUserCore
	}
}
