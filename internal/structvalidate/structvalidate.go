// Package structvalidate backstops the purely-syntactic, struct-tag
// shaped checks inside value-object constructors (length ceilings,
// oneof enums) with github.com/go-playground/validator/v10, so those
// checks aren't hand-rolled a second time. The schema-contract checks
// in the schema package (presence, cardinality, mutability, uniqueness)
// stay hand-written against the registry; this package never sees a
// Schema.
package structvalidate

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
	})
	return instance
}

// Struct validates v against its `validate` struct tags and returns a
// flattened, field-qualified error message for the first failing field,
// or "" if v passes.
func Struct(v any) string {
	if err := get().Struct(v); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return strings.ToLower(fe.Field()) + ": " + fe.Tag()
		}
		return err.Error()
	}
	return ""
}

// Var validates a single value against a validator tag expression (e.g.
// "max=256" or "oneof=work home other").
func Var(value any, tag string) bool {
	return get().Var(value, tag) == nil
}
