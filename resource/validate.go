package resource

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/broady/restdata/typeindex"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// A TypeRef validates as its string form. References to unbound type
	// parameters validate as empty, so "required" rejects them.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		ref, ok := field.Interface().(typeindex.TypeRef)
		if !ok || ref.Param {
			return ""
		}
		return ref.String()
	}, typeindex.TypeRef{})

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that every type reference in d is concrete and that the
// path is a single non-empty segment.
func Validate(d Descriptor) error {
	if d == nil {
		return errors.New("nil descriptor")
	}
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return fmt.Errorf("invalid %s descriptor for %s: %s", d.Kind(), d.DeclaringInterface(), strings.Join(msgs, "; "))
}

// formatFieldError converts a validator.FieldError to a short message.
func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Field() == "path" {
			return "path must not be empty"
		}
		return fe.Field() + " must be a concrete type"
	case "excludesall":
		return fe.Field() + " must be a single path segment"
	default:
		return fe.Field() + " failed " + fe.Tag()
	}
}
