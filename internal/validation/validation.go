// Package validation checks request payloads and reports violations with human-readable messages.
package validation

import (
	"github.com/go-playground/validator/v10"
	"github.com/intinc/platformexplorer/internal/errors"
	"log/slog"
	"math"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

var ErrInvalidInput = errors.NewSentinel("invalid input")

// Violation is a single failed rule.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error lists every violation of a validated value. It matches ErrInvalidInput with errors.Is.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	messages := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		messages[i] = v.Message
	}
	return strings.Join(messages, "; ")
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalidInput
}

// Validator validates the request types of this package. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator. departments is the set of names accepted for Department.Name.
func New(departments []string) (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	departments = slices.Clone(departments)
	custom := map[string]validator.Func{
		"whole": func(fl validator.FieldLevel) bool {
			f := fl.Field().Float()
			return f == math.Trunc(f)
		},
		"trimmedmin": func(fl validator.FieldLevel) bool {
			n, err := strconv.Atoi(fl.Param())
			if err != nil {
				return false
			}
			return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
		},
		"department": func(fl validator.FieldLevel) bool {
			return slices.Contains(departments, fl.Field().String())
		},
	}
	for tag, fn := range custom {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			return nil, errors.Wrap(err, "register validation", slog.String("tag", tag))
		}
	}
	return &Validator{validate: validate}, nil
}

// Struct validates s and returns an *Error describing every violation.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return errors.Wrap(err, "validate struct")
	}
	out := &Error{Violations: make([]Violation, 0, len(fieldErrors))}
	for _, fe := range fieldErrors {
		field := fieldPath(fe.Namespace())
		out.Violations = append(out.Violations, Violation{Field: field, Message: message(field, fe.Tag())})
	}
	return out
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// fieldPath strips the struct type name from a namespace such as "Assessment.departments[0].name".
func fieldPath(namespace string) string {
	_, path, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return path
}

var indexPattern = regexp.MustCompile(`\[\d+]`)

func message(field, tag string) string {
	key := indexPattern.ReplaceAllString(field, "[]") + "." + tag
	if msg, ok := messages[key]; ok {
		return msg
	}
	return field + " is invalid"
}
