// Package resource implements the SCIM Resource model: parsing raw JSON
// into a Resource guaranteed to have already passed every
// non-storage-dependent validation rule, and serialising it back to
// the wire shape (spec.md §4.2).
package resource

import (
	"encoding/json"
	"time"

	"github.com/xraph/scimcore/scimerr"
)

// Resource is a validated document of one resource type. Schema-aware
// validation (presence, mutability, uniqueness) happens in the schema
// package; Resource itself only enforces the value-object contracts
// that hold independent of any particular schema definition.
type Resource struct {
	ResourceType string
	ID           ResourceId
	HasID        bool
	Schemas      []string
	ExternalID   ExternalId
	HasExternal  bool
	UserName     UserName
	HasUserName  bool
	Name         Name
	HasName      bool
	Meta         Meta
	HasMeta      bool
	Emails       []EmailAddress
	PhoneNumbers []PhoneNumber
	Addresses    []Address
	Members      []GroupMember

	// Extension holds every top-level member not recognised as one of
	// the typed slots above (resource-type-specific core attributes
	// such as "active" or "displayName", and schema extensions such as
	// the enterprise User namespace). The schema registry, not
	// Resource, is responsible for rejecting members it doesn't
	// declare.
	Extension map[string]any
}

var coreKeys = map[string]bool{
	"schemas": true, "id": true, "externalId": true, "userName": true,
	"meta": true, "name": true, "emails": true, "phoneNumbers": true,
	"addresses": true, "members": true,
}

// FromJSON parses raw into a Resource tagged with resourceType, running
// every value-object constructor along the way. The first validation
// failure is returned unchanged (spec.md §4.2).
func FromJSON(resourceType string, raw []byte) (*Resource, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, scimerr.InvalidMetaStructure(err.Error())
	}
	return FromMap(resourceType, doc)
}

// FromMap is the map-based counterpart of FromJSON, for callers that
// already hold a decoded JSON object.
func FromMap(resourceType string, doc map[string]any) (*Resource, error) {
	r := &Resource{ResourceType: resourceType, Extension: map[string]any{}}

	if err := r.parseSchemas(doc, resourceType); err != nil {
		return nil, err
	}
	if err := r.parseID(doc); err != nil {
		return nil, err
	}
	if err := r.parseExternalID(doc); err != nil {
		return nil, err
	}
	if err := r.parseUserName(doc); err != nil {
		return nil, err
	}
	if err := r.parseName(doc); err != nil {
		return nil, err
	}
	if err := r.parseMeta(doc); err != nil {
		return nil, err
	}
	if err := r.parseEmails(doc); err != nil {
		return nil, err
	}
	if err := r.parsePhoneNumbers(doc); err != nil {
		return nil, err
	}
	if err := r.parseAddresses(doc); err != nil {
		return nil, err
	}
	if err := r.parseMembers(doc); err != nil {
		return nil, err
	}

	for key, value := range doc {
		if coreKeys[key] {
			continue
		}
		r.Extension[key] = value
	}

	return r, nil
}

func (r *Resource) parseSchemas(doc map[string]any, resourceType string) error {
	raw, ok := doc["schemas"]
	if !ok || raw == nil {
		r.Schemas = []string{defaultSchemaFor(resourceType)}
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return scimerr.InvalidType("schemas", "array")
	}
	if len(list) == 0 {
		return scimerr.EmptySchemas()
	}
	schemas := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return scimerr.InvalidType("schemas", "string")
		}
		uri, err := NewSchemaUri(s)
		if err != nil {
			return err
		}
		schemas = append(schemas, uri.String())
	}
	r.Schemas = schemas
	return nil
}

func (r *Resource) parseID(doc map[string]any) error {
	raw, ok := doc["id"]
	if !ok || raw == nil {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		return scimerr.InvalidType("id", "string")
	}
	id, err := NewResourceId(s)
	if err != nil {
		return err
	}
	r.ID, r.HasID = id, true
	return nil
}

func (r *Resource) parseExternalID(doc map[string]any) error {
	raw, ok := doc["externalId"]
	if !ok || raw == nil {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		return scimerr.InvalidType("externalId", "string")
	}
	ext, err := NewExternalId(s)
	if err != nil {
		return err
	}
	r.ExternalID, r.HasExternal = ext, true
	return nil
}

func (r *Resource) parseUserName(doc map[string]any) error {
	raw, ok := doc["userName"]
	if !ok || raw == nil {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		return scimerr.InvalidType("userName", "string")
	}
	un, err := NewUserName(s)
	if err != nil {
		return err
	}
	r.UserName, r.HasUserName = un, true
	return nil
}

func (r *Resource) parseName(doc map[string]any) error {
	raw, ok := doc["name"]
	if !ok || raw == nil {
		return nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return scimerr.InvalidType("name", "object")
	}
	n := Name{
		Formatted:       stringField(obj, "formatted"),
		FamilyName:      stringField(obj, "familyName"),
		GivenName:       stringField(obj, "givenName"),
		MiddleName:      stringField(obj, "middleName"),
		HonorificPrefix: stringField(obj, "honorificPrefix"),
		HonorificSuffix: stringField(obj, "honorificSuffix"),
	}
	n, err := NewName(n)
	if err != nil {
		return err
	}
	r.Name, r.HasName = n, true
	return nil
}

func (r *Resource) parseMeta(doc map[string]any) error {
	raw, ok := doc["meta"]
	if !ok || raw == nil {
		return nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return scimerr.InvalidMetaStructure("meta must be a JSON object")
	}

	m := Meta{
		ResourceType: stringField(obj, "resourceType"),
		Location:     stringField(obj, "location"),
		Version:      stringField(obj, "version"),
	}
	if m.ResourceType == "" {
		m.ResourceType = r.ResourceType
	}

	if v, ok := obj["created"]; ok && v != nil {
		s, _ := v.(string)
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return scimerr.InvalidCreatedDateTime(s)
		}
		m.Created = t
	}
	if v, ok := obj["lastModified"]; ok && v != nil {
		s, _ := v.(string)
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return scimerr.InvalidLastModifiedDateTime(s)
		}
		m.LastModified = t
	} else {
		m.LastModified = m.Created
	}

	m, err := NewMeta(m)
	if err != nil {
		return err
	}
	r.Meta, r.HasMeta = m, true
	return nil
}

func (r *Resource) parseEmails(doc map[string]any) error {
	raw, ok := doc["emails"]
	if !ok || raw == nil {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return scimerr.ExpectedMultiValue("emails")
	}
	emails := make([]EmailAddress, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return scimerr.InvalidType("emails", "object")
		}
		e, err := NewEmailAddress(EmailAddress{
			Value:   stringField(obj, "value"),
			Type:    stringField(obj, "type"),
			Primary: boolField(obj, "primary"),
			Display: stringField(obj, "display"),
		})
		if err != nil {
			return err
		}
		emails = append(emails, e)
	}
	if err := ValidateAtMostOnePrimary("emails", emails, func(e EmailAddress) bool { return e.Primary }); err != nil {
		return err
	}
	r.Emails = emails
	return nil
}

func (r *Resource) parsePhoneNumbers(doc map[string]any) error {
	raw, ok := doc["phoneNumbers"]
	if !ok || raw == nil {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return scimerr.ExpectedMultiValue("phoneNumbers")
	}
	phones := make([]PhoneNumber, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return scimerr.InvalidType("phoneNumbers", "object")
		}
		p, err := NewPhoneNumber(PhoneNumber{
			Value:   stringField(obj, "value"),
			Type:    stringField(obj, "type"),
			Primary: boolField(obj, "primary"),
			Display: stringField(obj, "display"),
		})
		if err != nil {
			return err
		}
		phones = append(phones, p)
	}
	if err := ValidateAtMostOnePrimary("phoneNumbers", phones, func(p PhoneNumber) bool { return p.Primary }); err != nil {
		return err
	}
	r.PhoneNumbers = phones
	return nil
}

func (r *Resource) parseAddresses(doc map[string]any) error {
	raw, ok := doc["addresses"]
	if !ok || raw == nil {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return scimerr.ExpectedMultiValue("addresses")
	}
	addrs := make([]Address, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return scimerr.InvalidType("addresses", "object")
		}
		a, err := NewAddress(Address{
			Formatted:     stringField(obj, "formatted"),
			StreetAddress: stringField(obj, "streetAddress"),
			Locality:      stringField(obj, "locality"),
			Region:        stringField(obj, "region"),
			PostalCode:    stringField(obj, "postalCode"),
			Country:       stringField(obj, "country"),
			Type:          stringField(obj, "type"),
			Primary:       boolField(obj, "primary"),
		})
		if err != nil {
			return err
		}
		addrs = append(addrs, a)
	}
	if err := ValidateAtMostOnePrimary("addresses", addrs, func(a Address) bool { return a.Primary }); err != nil {
		return err
	}
	r.Addresses = addrs
	return nil
}

func (r *Resource) parseMembers(doc map[string]any) error {
	raw, ok := doc["members"]
	if !ok || raw == nil {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return scimerr.ExpectedMultiValue("members")
	}
	members := make([]GroupMember, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return scimerr.InvalidType("members", "object")
		}
		m, err := NewGroupMember(GroupMember{
			Value:   stringField(obj, "value"),
			Type:    stringField(obj, "type"),
			Display: stringField(obj, "display"),
			Ref:     stringField(obj, "$ref"),
		})
		if err != nil {
			return err
		}
		members = append(members, m)
	}
	r.Members = members
	return nil
}

func stringField(obj map[string]any, key string) string {
	if v, ok := obj[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func boolField(obj map[string]any, key string) bool {
	if v, ok := obj[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// ToMap serialises the Resource back to its canonical JSON-object shape
// (spec.md §4.2): core fields at their fixed keys, merged with the
// extension map. Object key order is not semantically significant in
// JSON; callers needing a byte-stable order for hashing should use
// CanonicalJSON instead.
func (r *Resource) ToMap() map[string]any {
	out := make(map[string]any, len(r.Extension)+8)
	for k, v := range r.Extension {
		out[k] = v
	}

	out["schemas"] = r.Schemas
	if r.HasID {
		out["id"] = r.ID.String()
	}
	if r.HasExternal {
		out["externalId"] = r.ExternalID.String()
	}
	if r.HasUserName {
		out["userName"] = r.UserName.String()
	}
	if r.HasMeta {
		out["meta"] = metaToMap(r.Meta)
	}
	if r.HasName {
		out["name"] = r.Name
	}
	if len(r.Emails) > 0 {
		out["emails"] = r.Emails
	}
	if len(r.PhoneNumbers) > 0 {
		out["phoneNumbers"] = r.PhoneNumbers
	}
	if len(r.Addresses) > 0 {
		out["addresses"] = r.Addresses
	}
	if len(r.Members) > 0 {
		out["members"] = r.Members
	}
	return out
}

// ToJSON marshals the result of ToMap.
func (r *Resource) ToJSON() ([]byte, error) {
	return json.Marshal(r.ToMap())
}

func metaToMap(m Meta) map[string]any {
	out := map[string]any{
		"resourceType": m.ResourceType,
		"created":      m.Created.UTC().Format(time.RFC3339Nano),
		"lastModified": m.LastModified.UTC().Format(time.RFC3339Nano),
	}
	if m.Location != "" {
		out["location"] = m.Location
	}
	if m.Version != "" {
		out["version"] = m.Version
	}
	return out
}
