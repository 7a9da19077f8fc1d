package resource

import "github.com/xraph/scimcore/scimerr"

// ValidateAtMostOnePrimary enforces the SCIM multi-valued-attribute
// invariant (spec.md §3, §8 invariant 5): at most one element of a
// multi-valued attribute may be flagged primary.
func ValidateAtMostOnePrimary[T any](attribute string, items []T, isPrimary func(T) bool) error {
	count := 0
	for _, item := range items {
		if isPrimary(item) {
			count++
		}
	}
	if count > 1 {
		return scimerr.MultiplePrimaryValues(attribute)
	}
	return nil
}
