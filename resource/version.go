package resource

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// CanonicalJSON renders doc with object keys sorted and no insignificant
// whitespace, excluding meta.version from the hashed form: a resource's
// version must not depend on its own previous version string. This is a
// hashing-only serialisation; wire responses use ToJSON/ToMap instead,
// where JSON's usual "key order carries no meaning" applies.
func CanonicalJSON(doc map[string]any) ([]byte, error) {
	clean := stripVersion(doc)
	return canonicalEncode(clean)
}

func stripVersion(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == "meta" {
			if m, ok := v.(map[string]any); ok {
				mm := make(map[string]any, len(m))
				for mk, mv := range m {
					if mk == "version" {
						continue
					}
					mm[mk] = mv
				}
				out[k] = mm
				continue
			}
		}
		out[k] = v
	}
	return out
}

// canonicalEncode produces deterministic JSON by recursively sorting
// object keys. Values are first round-tripped through encoding/json so
// that struct-typed fields (Name, EmailAddress, ...) participate using
// their normal json tags.
func canonicalEncode(v any) ([]byte, error) {
	normalized, err := normalize(v)
	if err != nil {
		return nil, err
	}
	return encodeCanonical(normalized)
}

func normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeCanonical(v any) ([]byte, error) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf := []byte{'{'}
		for i, k := range keys {
			if i > 0 {
				buf = append(buf, ',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf = append(buf, kb...)
			buf = append(buf, ':')
			vb, err := encodeCanonical(val[k])
			if err != nil {
				return nil, err
			}
			buf = append(buf, vb...)
		}
		buf = append(buf, '}')
		return buf, nil
	case []any:
		buf := []byte{'['}
		for i, item := range val {
			if i > 0 {
				buf = append(buf, ',')
			}
			ib, err := encodeCanonical(item)
			if err != nil {
				return nil, err
			}
			buf = append(buf, ib...)
		}
		buf = append(buf, ']')
		return buf, nil
	default:
		return json.Marshal(val)
	}
}

// ComputeVersion hashes the canonical form of doc with xxhash (64-bit),
// hex-encoded to 16 characters. The result is a raw hash, as
// meta.version is always stored and emitted (spec.md §4.3, §6.2);
// callers producing an HTTP ETag header wrap it themselves, e.g.
// `"` + version + `"`.
func ComputeVersion(doc map[string]any) (string, error) {
	b, err := CanonicalJSON(doc)
	if err != nil {
		return "", err
	}
	sum := xxhash.Sum64(b)
	return fmt.Sprintf("%016x", sum), nil
}

// ETag wraps a raw version hash as a strong HTTP ETag header value.
func ETag(version string) string {
	return `"` + version + `"`
}
