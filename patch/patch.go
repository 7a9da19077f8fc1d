// Package patch implements SCIM PATCH request parsing and in-memory
// application (spec.md §6.3). Patch application always runs against a
// deep clone of the stored document; the result is routed through the
// normal Replace path for schema validation, version bump, and If-Match
// enforcement.
package patch

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/xraph/scimcore/scimerr"
)

// Op identifies one PATCH operation kind (RFC 7644 §3.5.2).
type Op string

const (
	OpAdd     Op = "add"
	OpRemove  Op = "remove"
	OpReplace Op = "replace"
)

// Operation is one element of a PatchRequest's Operations array.
type Operation struct {
	Op    Op
	Path  string
	Value any
}

// Request is the parsed body of a SCIM PATCH request.
type Request struct {
	Schemas    []string
	Operations []Operation
}

const patchSchemaURN = "urn:ietf:params:scim:api:messages:2.0:PatchOp"

// Parse decodes raw into a Request, validating the PatchOp schema URN
// and that every operation's "op" is one of add/replace/remove.
func Parse(raw []byte) (*Request, error) {
	var body struct {
		Schemas    []string `json:"schemas"`
		Operations []struct {
			Op    string `json:"op"`
			Path  string `json:"path"`
			Value any    `json:"value"`
		} `json:"Operations"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, scimerr.MalformedRequest("patch body is not valid JSON: " + err.Error())
	}
	if len(body.Schemas) == 0 {
		return nil, scimerr.EmptySchemas()
	}
	found := false
	for _, s := range body.Schemas {
		if s == patchSchemaURN {
			found = true
			break
		}
	}
	if !found {
		return nil, scimerr.MalformedRequest("patch body must declare the PatchOp schema")
	}
	if len(body.Operations) == 0 {
		return nil, scimerr.MalformedRequest("patch body must contain at least one operation")
	}

	req := &Request{Schemas: body.Schemas}
	for _, raw := range body.Operations {
		op := Op(strings.ToLower(raw.Op))
		switch op {
		case OpAdd, OpRemove, OpReplace:
		default:
			return nil, scimerr.MalformedRequest("unsupported patch op: " + raw.Op)
		}
		if op != OpRemove && raw.Value == nil {
			return nil, scimerr.MalformedRequest("patch op " + string(op) + " requires a value")
		}
		if op == OpRemove && raw.Path == "" {
			return nil, scimerr.MalformedRequest("remove requires a path")
		}
		req.Operations = append(req.Operations, Operation{Op: op, Path: raw.Path, Value: raw.Value})
	}
	return req, nil
}

// Apply runs every operation of req against a deep clone of doc and
// returns the resulting document. doc is never mutated.
func Apply(doc map[string]any, req *Request) (map[string]any, error) {
	result := deepClone(doc)
	for _, op := range req.Operations {
		var err error
		switch op.Op {
		case OpAdd, OpReplace:
			err = applySet(result, op.Path, op.Value)
		case OpRemove:
			err = applyRemove(result, op.Path)
		}
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// applySet implements add/replace for a SCIM filter path: either a
// bare attribute/sub-attribute dotted path, or a multi-valued filter
// of the form attribute[subAttr eq "value"].replacementSubAttr.
func applySet(doc map[string]any, path string, value any) error {
	if path == "" {
		// No path: value is a map of top-level attributes to merge.
		obj, ok := value.(map[string]any)
		if !ok {
			return scimerr.MalformedRequest("add/replace without a path requires an object value")
		}
		for k, v := range obj {
			doc[k] = v
		}
		return nil
	}

	attr, filter, subPath := splitFilterPath(path)
	if filter == "" {
		return setDotted(doc, path, value)
	}

	list, ok := doc[attr].([]any)
	if !ok {
		return scimerr.MalformedRequest("filtered path targets a non-array attribute: " + attr)
	}
	matched := false
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if !matchesFilter(obj, filter) {
			continue
		}
		matched = true
		if subPath == "" {
			merged, ok := value.(map[string]any)
			if !ok {
				return scimerr.MalformedRequest("filtered replace without a sub-path requires an object value")
			}
			for k, v := range merged {
				obj[k] = v
			}
		} else {
			obj[subPath] = value
		}
	}
	if !matched {
		return scimerr.MalformedRequest("no element of " + attr + " matched filter " + filter)
	}
	return nil
}

func applyRemove(doc map[string]any, path string) error {
	attr, filter, subPath := splitFilterPath(path)
	if filter == "" {
		return removeDotted(doc, path)
	}

	list, ok := doc[attr].([]any)
	if !ok {
		return scimerr.MalformedRequest("filtered path targets a non-array attribute: " + attr)
	}
	if subPath != "" {
		for _, item := range list {
			if obj, ok := item.(map[string]any); ok && matchesFilter(obj, filter) {
				delete(obj, subPath)
			}
		}
		return nil
	}

	kept := make([]any, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok && matchesFilter(obj, filter) {
			continue
		}
		kept = append(kept, item)
	}
	doc[attr] = kept
	return nil
}

// splitFilterPath splits "members[value eq \"x\"].display" into
// attr="members", filter=`value eq "x"`, subPath="display". filter is
// empty when path carries no bracket expression.
func splitFilterPath(path string) (attr, filter, subPath string) {
	open := strings.Index(path, "[")
	if open < 0 {
		return path, "", ""
	}
	closeIdx := strings.Index(path[open:], "]")
	if closeIdx < 0 {
		return path, "", ""
	}
	closeIdx += open
	attr = path[:open]
	filter = path[open+1 : closeIdx]
	rest := path[closeIdx+1:]
	subPath = strings.TrimPrefix(rest, ".")
	return attr, filter, subPath
}

// matchesFilter evaluates a single "attr op value" filter expression
// against obj. Only the equality operator is supported, which covers
// every PATCH filter example in RFC 7644.
func matchesFilter(obj map[string]any, filter string) bool {
	parts := strings.SplitN(filter, " ", 3)
	if len(parts) != 3 || parts[1] != "eq" {
		return false
	}
	attr := parts[0]
	want := strings.Trim(parts[2], `"`)
	got, ok := obj[attr]
	if !ok {
		return false
	}
	switch v := got.(type) {
	case string:
		return v == want
	case bool:
		b, err := strconv.ParseBool(want)
		return err == nil && v == b
	default:
		return false
	}
}

func setDotted(doc map[string]any, path string, value any) error {
	parts := strings.Split(path, ".")
	cursor := doc
	for i, part := range parts {
		if i == len(parts)-1 {
			cursor[part] = value
			return nil
		}
		next, ok := cursor[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			cursor[part] = next
		}
		cursor = next
	}
	return nil
}

func removeDotted(doc map[string]any, path string) error {
	parts := strings.Split(path, ".")
	cursor := doc
	for i, part := range parts {
		if i == len(parts)-1 {
			delete(cursor, part)
			return nil
		}
		next, ok := cursor[part].(map[string]any)
		if !ok {
			return nil
		}
		cursor = next
	}
	return nil
}

func deepClone(doc map[string]any) map[string]any {
	b, err := json.Marshal(doc)
	if err != nil {
		return map[string]any{}
	}
	var out map[string]any
	_ = json.Unmarshal(b, &out)
	return out
}
