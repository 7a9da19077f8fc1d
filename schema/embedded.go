package schema

// UserCoreSchema returns the bundled RFC 7643 §4.1 User schema.
func UserCoreSchema() Schema {
	return Schema{
		ID:          "urn:ietf:params:scim:schemas:core:2.0:User",
		Name:        "User",
		Description: "User Account",
		Attributes: []AttributeDefinition{
			{Name: "userName", Type: DataTypeString, Required: true, Uniqueness: UniquenessServer, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "name", Type: DataTypeComplex, Mutability: MutabilityReadWrite, Returned: ReturnedDefault, SubAttributes: []AttributeDefinition{
				{Name: "formatted", Type: DataTypeString, Mutability: MutabilityReadWrite},
				{Name: "familyName", Type: DataTypeString, Mutability: MutabilityReadWrite},
				{Name: "givenName", Type: DataTypeString, Mutability: MutabilityReadWrite},
				{Name: "middleName", Type: DataTypeString, Mutability: MutabilityReadWrite},
				{Name: "honorificPrefix", Type: DataTypeString, Mutability: MutabilityReadWrite},
				{Name: "honorificSuffix", Type: DataTypeString, Mutability: MutabilityReadWrite},
			}},
			{Name: "displayName", Type: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "nickName", Type: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "profileUrl", Type: DataTypeReference, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "title", Type: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "userType", Type: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "preferredLanguage", Type: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "locale", Type: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "timezone", Type: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "active", Type: DataTypeBoolean, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "password", Type: DataTypeString, Mutability: MutabilityWriteOnly, Returned: ReturnedNever},
			{Name: "emails", Type: DataTypeComplex, MultiValued: true, Mutability: MutabilityReadWrite, Returned: ReturnedDefault, SubAttributes: []AttributeDefinition{
				{Name: "value", Type: DataTypeString, Required: true},
				{Name: "type", Type: DataTypeString, CanonicalValues: []string{"work", "home", "other"}},
				{Name: "primary", Type: DataTypeBoolean},
				{Name: "display", Type: DataTypeString},
			}},
			{Name: "phoneNumbers", Type: DataTypeComplex, MultiValued: true, Mutability: MutabilityReadWrite, Returned: ReturnedDefault, SubAttributes: []AttributeDefinition{
				{Name: "value", Type: DataTypeString, Required: true},
				{Name: "type", Type: DataTypeString, CanonicalValues: []string{"work", "home", "mobile", "fax", "pager", "other"}},
				{Name: "primary", Type: DataTypeBoolean},
				{Name: "display", Type: DataTypeString},
			}},
			{Name: "addresses", Type: DataTypeComplex, MultiValued: true, Mutability: MutabilityReadWrite, Returned: ReturnedDefault, SubAttributes: []AttributeDefinition{
				{Name: "formatted", Type: DataTypeString},
				{Name: "streetAddress", Type: DataTypeString},
				{Name: "locality", Type: DataTypeString},
				{Name: "region", Type: DataTypeString},
				{Name: "postalCode", Type: DataTypeString},
				{Name: "country", Type: DataTypeString},
				{Name: "type", Type: DataTypeString, CanonicalValues: []string{"work", "home", "other"}},
				{Name: "primary", Type: DataTypeBoolean},
			}},
			{Name: "externalId", Type: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "id", Type: DataTypeString, Mutability: MutabilityReadOnly, Returned: ReturnedAlways, Uniqueness: UniquenessServer},
			{Name: "meta", Type: DataTypeComplex, Mutability: MutabilityReadOnly, Returned: ReturnedDefault},
			{Name: "schemas", Type: DataTypeString, MultiValued: true, Required: true, Mutability: MutabilityReadOnly, Returned: ReturnedAlways},
		},
	}
}

// GroupCoreSchema returns the bundled RFC 7643 §4.2 Group schema.
func GroupCoreSchema() Schema {
	return Schema{
		ID:          "urn:ietf:params:scim:schemas:core:2.0:Group",
		Name:        "Group",
		Description: "Group",
		Attributes: []AttributeDefinition{
			{Name: "displayName", Type: DataTypeString, Required: true, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "members", Type: DataTypeComplex, MultiValued: true, Mutability: MutabilityReadWrite, Returned: ReturnedDefault, SubAttributes: []AttributeDefinition{
				{Name: "value", Type: DataTypeString, Required: true, Mutability: MutabilityImmutable},
				{Name: "$ref", Type: DataTypeReference, Mutability: MutabilityImmutable},
				{Name: "type", Type: DataTypeString, CanonicalValues: []string{"User", "Group"}, Mutability: MutabilityImmutable},
				{Name: "display", Type: DataTypeString},
			}},
			{Name: "externalId", Type: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "id", Type: DataTypeString, Mutability: MutabilityReadOnly, Returned: ReturnedAlways, Uniqueness: UniquenessServer},
			{Name: "meta", Type: DataTypeComplex, Mutability: MutabilityReadOnly, Returned: ReturnedDefault},
			{Name: "schemas", Type: DataTypeString, MultiValued: true, Required: true, Mutability: MutabilityReadOnly, Returned: ReturnedAlways},
		},
	}
}

// EnterpriseUserSchema returns the bundled RFC 7643 §4.3 Enterprise User
// extension schema. It is registered by URN only: it rides alongside
// the core User schema inside a resource's "schemas" array rather than
// being looked up by resource type.
func EnterpriseUserSchema() Schema {
	return Schema{
		ID:          "urn:ietf:params:scim:schemas:extension:enterprise:2.0:User",
		Name:        "EnterpriseUser",
		Description: "Enterprise User",
		Attributes: []AttributeDefinition{
			{Name: "employeeNumber", Type: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "costCenter", Type: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "organization", Type: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "division", Type: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "department", Type: DataTypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault},
			{Name: "manager", Type: DataTypeComplex, Mutability: MutabilityReadWrite, Returned: ReturnedDefault, SubAttributes: []AttributeDefinition{
				{Name: "value", Type: DataTypeString},
				{Name: "$ref", Type: DataTypeReference},
				{Name: "displayName", Type: DataTypeString, Mutability: MutabilityReadOnly},
			}},
		},
	}
}

// ServiceProviderConfigSchema returns the bundled RFC 7643 §5 schema,
// used only for discovery document shape, not resource validation.
func ServiceProviderConfigSchema() Schema {
	return Schema{
		ID:          "urn:ietf:params:scim:schemas:core:2.0:ServiceProviderConfig",
		Name:        "ServiceProviderConfig",
		Description: "Service Provider Configuration",
	}
}

// ResourceTypeSchema returns the bundled RFC 7643 §6 schema, used only
// for discovery document shape.
func ResourceTypeSchema() Schema {
	return Schema{
		ID:          "urn:ietf:params:scim:schemas:core:2.0:ResourceType",
		Name:        "ResourceType",
		Description: "Resource Type",
	}
}
