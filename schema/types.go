// Package schema implements the SCIM schema registry and the
// validation algorithm that checks a resource document against a
// registered Schema (spec.md §4.1).
package schema

// DataType enumerates the SCIM attribute data types (RFC 7643 §2.3).
type DataType string

const (
	DataTypeString    DataType = "string"
	DataTypeBoolean   DataType = "boolean"
	DataTypeDecimal   DataType = "decimal"
	DataTypeInteger   DataType = "integer"
	DataTypeDateTime  DataType = "dateTime"
	DataTypeReference DataType = "reference"
	DataTypeComplex   DataType = "complex"
	DataTypeBinary    DataType = "binary"
)

// Mutability enumerates RFC 7643 §2.2 mutability values.
type Mutability string

const (
	MutabilityReadWrite Mutability = "readWrite"
	MutabilityReadOnly  Mutability = "readOnly"
	MutabilityImmutable Mutability = "immutable"
	MutabilityWriteOnly Mutability = "writeOnly"
)

// Returned enumerates RFC 7643 §2.2 "returned" policy values.
type Returned string

const (
	ReturnedAlways  Returned = "always"
	ReturnedNever   Returned = "never"
	ReturnedDefault Returned = "default"
	ReturnedRequest Returned = "request"
)

// Uniqueness enumerates RFC 7643 §2.2 uniqueness values.
type Uniqueness string

const (
	UniquenessNone   Uniqueness = "none"
	UniquenessServer Uniqueness = "server"
	UniquenessGlobal Uniqueness = "global"
)

// AttributeDefinition describes one attribute of a Schema, including
// its sub-attributes when Type is complex.
type AttributeDefinition struct {
	Name            string
	Type            DataType
	MultiValued     bool
	Required        bool
	CaseExact       bool
	Mutability      Mutability
	Returned        Returned
	Uniqueness      Uniqueness
	CanonicalValues []string
	SubAttributes   []AttributeDefinition
}

// Schema is a registered resource-type schema: a primary schema URN
// plus its flat list of top-level attribute definitions.
type Schema struct {
	ID          string
	Name        string
	Description string
	Attributes  []AttributeDefinition
}

// AttributeByName looks up a top-level attribute, case-insensitively
// per RFC 7643 attribute-name comparison rules.
func (s Schema) AttributeByName(name string) (AttributeDefinition, bool) {
	for _, a := range s.Attributes {
		if equalFold(a.Name, name) {
			return a, true
		}
	}
	return AttributeDefinition{}, false
}

func (a AttributeDefinition) SubAttributeByName(name string) (AttributeDefinition, bool) {
	for _, sub := range a.SubAttributes {
		if equalFold(sub.Name, name) {
			return sub, true
		}
	}
	return AttributeDefinition{}, false
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
