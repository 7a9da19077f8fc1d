package schema

import "github.com/xraph/scimcore/scimerr"

// StripWriteOnly returns a copy of doc with every writeOnly attribute
// (e.g. password) removed, recursing into complex and multi-valued
// attributes. This runs on every document leaving the engine toward a
// caller (spec.md §4.1 rule 5: "in responses, writeOnly attributes
// being emitted -> WriteOnlyReturned, checked at serialisation, not
// input"). The stripped copy is re-walked afterward as a defensive
// check; a writeOnly value surviving that second pass indicates the
// walk itself missed a case, not a client error, hence the 500-class
// WriteOnlyReturned rather than a SchemaViolation.
func StripWriteOnly(s Schema, doc map[string]any) (map[string]any, error) {
	out := stripWriteOnlyAttrs(s.Attributes, doc)
	if v, attr := firstWriteOnlyValue(s.Attributes, out); v {
		return nil, scimerr.WriteOnlyReturned(attr)
	}
	return out, nil
}

func stripWriteOnlyAttrs(attrs []AttributeDefinition, doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	for _, attr := range attrs {
		if attr.Mutability == MutabilityWriteOnly {
			delete(out, attr.Name)
			continue
		}
		if attr.Type != DataTypeComplex || len(attr.SubAttributes) == 0 {
			continue
		}
		if attr.MultiValued {
			items, ok := out[attr.Name].([]any)
			if !ok {
				continue
			}
			cleaned := make([]any, 0, len(items))
			for _, item := range items {
				m, ok := item.(map[string]any)
				if !ok {
					cleaned = append(cleaned, item)
					continue
				}
				cleaned = append(cleaned, stripWriteOnlyAttrs(attr.SubAttributes, m))
			}
			out[attr.Name] = cleaned
		} else if m, ok := out[attr.Name].(map[string]any); ok {
			out[attr.Name] = stripWriteOnlyAttrs(attr.SubAttributes, m)
		}
	}
	return out
}

func firstWriteOnlyValue(attrs []AttributeDefinition, doc map[string]any) (bool, string) {
	for _, attr := range attrs {
		v, present := doc[attr.Name]
		if !present {
			continue
		}
		if attr.Mutability == MutabilityWriteOnly {
			return true, attr.Name
		}
		if attr.Type != DataTypeComplex || len(attr.SubAttributes) == 0 {
			continue
		}
		if attr.MultiValued {
			items, ok := v.([]any)
			if !ok {
				continue
			}
			for _, item := range items {
				m, ok := item.(map[string]any)
				if !ok {
					continue
				}
				if found, name := firstWriteOnlyValue(attr.SubAttributes, m); found {
					return true, attr.Name + "." + name
				}
			}
		} else if m, ok := v.(map[string]any); ok {
			if found, name := firstWriteOnlyValue(attr.SubAttributes, m); found {
				return true, attr.Name + "." + name
			}
		}
	}
	return false, ""
}
