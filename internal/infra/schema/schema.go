// Package schema is the validation boundary for data entering the service,
// both decoded request bodies and records scanned from the store.
package schema

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrMalformedRecord marks a stored record that does not satisfy its type.
var ErrMalformedRecord = errors.New("malformed record")

var phonePattern = regexp.MustCompile(`^\+?[0-9]{6,15}$`)

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())

		// Mobile wallet sender numbers, local or international form.
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
	})

	return v
}

// Validate checks s against its `validate` struct tags. The returned error
// lists every failing field as "field: rule".
func Validate(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}

		parts = append(parts, fmt.Sprintf("%s: %s", fe.Namespace(), rule))
	}

	return &Error{Fields: parts}
}

// CheckRecord validates a record scanned from the store. Failures wrap
// ErrMalformedRecord together with the validation details.
func CheckRecord(kind, id string, rec any) error {
	err := Validate(rec)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrMalformedRecord, kind, id, err)
	}

	return nil
}

// Error reports which fields failed validation.
type Error struct {
	Fields []string
}

func (e *Error) Error() string {
	return "invalid " + strings.Join(e.Fields, ", ")
}
