package schema

import (
	"encoding/json"

	"github.com/xraph/scimcore/scimerr"
)

// Operation identifies which lifecycle operation a validation pass is
// running under, since mutability and uniqueness rules are contextual
// (spec.md §4.1).
type Operation string

const (
	OperationCreate  Operation = "create"
	OperationReplace Operation = "replace"
	OperationPatch   Operation = "patch"
)

// UniquenessChecker is implemented by the storage layer so the
// validator can enforce server- and global-uniqueness without owning
// storage concerns itself.
type UniquenessChecker interface {
	// Exists reports whether a resource other than excludeID already
	// has the given value at the given dotted attribute path.
	Exists(attributePath, value, excludeID string) (bool, error)
}

// Context carries the information a single Validate call needs beyond
// the document itself: which operation is running, the document's
// previous state (for immutable-attribute comparison on replace), and
// the resource's own id (excluded from its own uniqueness checks).
type Context struct {
	Operation  Operation
	ResourceID string
	Previous   map[string]any
	Uniqueness UniquenessChecker
}

// Validator runs the seven-step SCIM attribute validation algorithm
// against a registered Schema (spec.md §4.1): presence, cardinality,
// type, canonical values, mutability, uniqueness, then recursion into
// complex/multi-valued sub-attributes. It fails fast on the first
// violation encountered, in attribute-declaration order.
type Validator struct {
	registry *Registry
}

func NewValidator(registry *Registry) *Validator {
	return &Validator{registry: registry}
}

// Validate checks doc's top-level members against s, and against any
// extension schemas named in doc's "schemas" array that are registered
// by URN (e.g. the enterprise User extension). An extension's
// attributes are read from the member of doc keyed by its URN.
func (v *Validator) Validate(s Schema, doc map[string]any, ctx Context) error {
	if err := checkUnknownAttributes(s, doc, v.extensionSchemas(s.ID, doc)); err != nil {
		return err
	}
	for _, attr := range s.Attributes {
		if err := v.validateAttribute(attr.Name, attr, doc[attr.Name], doc, ctx); err != nil {
			return err
		}
	}
	for _, ext := range v.extensionSchemas(s.ID, doc) {
		extDoc, _ := doc[ext.ID].(map[string]any)
		for _, attr := range ext.Attributes {
			var value any
			if extDoc != nil {
				value = extDoc[attr.Name]
			}
			if err := v.validateAttribute(attr.Name, attr, value, extDoc, ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

func (v *Validator) extensionSchemas(primaryID string, doc map[string]any) []Schema {
	var out []Schema
	list, _ := doc["schemas"].([]any)
	for _, item := range list {
		urn, ok := item.(string)
		if !ok || urn == primaryID {
			continue
		}
		if s, ok := v.registry.ByURN(urn); ok && len(s.Attributes) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// checkUnknownAttributes rejects any top-level key in doc that is
// neither a core schema member, a declared attribute of s, nor one of
// the extension schema URN keys.
func checkUnknownAttributes(s Schema, doc map[string]any, extensions []Schema) error {
	known := map[string]bool{"schemas": true, "id": true, "meta": true, "externalId": true}
	for _, a := range s.Attributes {
		known[a.Name] = true
	}
	for _, ext := range extensions {
		known[ext.ID] = true
	}
	for key := range doc {
		if !known[key] {
			return scimerr.UnknownAttributeForSchema(key)
		}
	}
	return nil
}

func (v *Validator) validateAttribute(path string, attr AttributeDefinition, value any, parent map[string]any, ctx Context) error {
	// 1. Presence.
	missing := value == nil
	if !missing && attr.MultiValued {
		if list, ok := value.([]any); ok && len(list) == 0 {
			missing = true
		}
	}
	if attr.Required && missing && ctx.Operation == OperationCreate {
		return scimerr.MissingRequired(path)
	}
	if missing {
		return nil
	}

	// 2. Cardinality.
	list, isList := value.([]any)
	if attr.MultiValued && !isList {
		return scimerr.ExpectedMultiValue(path)
	}
	if !attr.MultiValued && isList {
		return scimerr.ExpectedSingleValue(path)
	}

	// 3/4/6/7: per-value type, canonical value, and complex recursion.
	if attr.MultiValued {
		primaryCount := 0
		for _, item := range list {
			if err := v.validateScalarOrComplex(path, attr, item, ctx); err != nil {
				return err
			}
			if obj, ok := item.(map[string]any); ok {
				if p, _ := obj["primary"].(bool); p {
					primaryCount++
				}
			}
		}
		if primaryCount > 1 {
			return scimerr.MultiplePrimaryValues(path)
		}
	} else {
		if err := v.validateScalarOrComplex(path, attr, value, ctx); err != nil {
			return err
		}
	}

	// 5. Mutability (contextual).
	if err := checkMutability(path, attr, value, ctx); err != nil {
		return err
	}

	// 6. Uniqueness (contextual, storage-backed).
	if err := v.checkUniqueness(path, attr, value, ctx); err != nil {
		return err
	}

	return nil
}

func (v *Validator) validateScalarOrComplex(path string, attr AttributeDefinition, value any, ctx Context) error {
	switch attr.Type {
	case DataTypeComplex:
		obj, ok := value.(map[string]any)
		if !ok {
			return scimerr.InvalidType(path, "complex")
		}
		for _, sub := range attr.SubAttributes {
			subValue := obj[sub.Name]
			if err := v.validateAttribute(path+"."+sub.Name, sub, subValue, obj, ctx); err != nil {
				return err
			}
		}
		return nil
	case DataTypeBoolean:
		if _, ok := value.(bool); !ok {
			return scimerr.InvalidType(path, "boolean")
		}
	case DataTypeInteger:
		n, ok := value.(float64)
		if !ok || n != float64(int64(n)) {
			return scimerr.InvalidType(path, "integer")
		}
	case DataTypeDecimal:
		if _, ok := value.(float64); !ok {
			return scimerr.InvalidType(path, "decimal")
		}
	case DataTypeString, DataTypeDateTime, DataTypeReference, DataTypeBinary:
		s, ok := value.(string)
		if !ok {
			return scimerr.InvalidType(path, "string")
		}
		if len(attr.CanonicalValues) > 0 && s != "" {
			if !contains(attr.CanonicalValues, s) {
				return scimerr.InvalidCanonicalValue(path, s, attr.CanonicalValues)
			}
		}
	}
	return nil
}

// checkMutability enforces RFC 7643 §2.2 mutability for a single
// attribute already known to be present in the incoming document.
// value is the incoming value at path; ctx.Previous, when set, is the
// resource's prior document state (absent on create).
func checkMutability(path string, attr AttributeDefinition, value any, ctx Context) error {
	switch attr.Mutability {
	case MutabilityReadOnly:
		if ctx.Operation == OperationCreate || ctx.Previous == nil {
			return nil
		}
		prior := valueAtPath(ctx.Previous, path)
		if prior == nil || deepEqual(prior, value) {
			return nil
		}
		return scimerr.ReadOnlyViolation(path)
	case MutabilityImmutable:
		if ctx.Operation == OperationCreate || ctx.Previous == nil {
			return nil
		}
		prior := valueAtPath(ctx.Previous, path)
		if prior == nil {
			return nil
		}
		if !deepEqual(prior, value) {
			return scimerr.ImmutableViolation(path)
		}
	}
	return nil
}

func (v *Validator) checkUniqueness(path string, attr AttributeDefinition, value any, ctx Context) error {
	if attr.Uniqueness == UniquenessNone || attr.Uniqueness == "" || ctx.Uniqueness == nil {
		return nil
	}
	s, ok := value.(string)
	if !ok || s == "" {
		return nil
	}
	exists, err := ctx.Uniqueness.Exists(path, s, ctx.ResourceID)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	if attr.Uniqueness == UniquenessGlobal {
		return scimerr.GlobalUniquenessViolation(path, s)
	}
	return scimerr.ServerUniquenessViolation(path, s)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func deepEqual(a, b any) bool {
	ab, _ := json.Marshal(a)
	bb, _ := json.Marshal(b)
	return string(ab) == string(bb)
}

func valueAtPath(doc map[string]any, path string) any {
	return doc[path]
}
