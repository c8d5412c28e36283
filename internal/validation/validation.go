// Package validation wraps go-playground/validator and renders violations the
// way the store APIs report them: one message per field, sorted, joined with ",".
package validation

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error is returned when a document fails validation.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	return strings.Join(e.Messages, ",")
}

// Validator validates domain documents against their `validate` tags.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that names fields after their json tag.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates s. messages maps a json field name to the message reported
// for any violation on that field; fields without an entry fall back to the
// validator's own text. The returned error is nil or a *Error.
func (v *Validator) Struct(ctx context.Context, s interface{}, messages map[string]string) error {
	err := v.validate.StructCtx(ctx, s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	seen := make(map[string]struct{}, len(fieldErrs))
	out := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := messages[baseField(fe.Field())]
		if !ok {
			msg = fe.Error()
		}
		if _, dup := seen[msg]; dup {
			continue
		}
		seen[msg] = struct{}{}
		out = append(out, msg)
	}
	sort.Strings(out)
	return &Error{Messages: out}
}

// baseField strips a slice index, so "cast[1]" reports as "cast".
func baseField(field string) string {
	if i := strings.IndexByte(field, '['); i >= 0 {
		return field[:i]
	}
	return field
}
