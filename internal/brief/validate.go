// Package brief implements the multi-step brief submission wizard, its draft
// persistence and the hand-off to a submission backend.
package brief

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/copydesk/internal/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError maps json field names to messages for the user.
type ValidationError struct {
	Form   string // "brief" when empty
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %s", name, e.Fields[name])
	}
	form := e.Form
	if form == "" {
		form = "brief"
	}
	return "invalid " + form + ": " + strings.Join(parts, "; ")
}

// Validate checks the whole brief.
func Validate(b types.Brief) error {
	return toValidationError(validate.Struct(b))
}

// ValidateContact checks a contact form submission.
func ValidateContact(r types.ContactRequest) error {
	err := toValidationError(validate.Struct(r))
	var verr *ValidationError
	if errors.As(err, &verr) {
		verr.Form = "contact request"
	}
	return err
}

// validateFields checks only the named struct fields of b.
func validateFields(b types.Brief, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return toValidationError(validate.StructPartial(b, fields...))
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		name := fieldName(fe)
		if _, seen := out.Fields[name]; seen {
			continue
		}
		out.Fields[name] = fieldMessage(fe)
	}
	return out
}

var labels = map[string]string{
	"projectTitle":   "Project title",
	"contentType":    "Content type",
	"targetAudience": "Target audience",
	"goals":          "Goals",
	"tone":           "Tone",
	"keywords":       "Keywords",
	"wordCount":      "Word count",
	"deadline":       "Deadline",
	"references":     "References",
	"notes":          "Notes",
	"contactEmail":   "Contact email",
	"name":           "Name",
	"company":        "Company",
	"message":        "Message",
}

// Label returns the display name of a brief or contact field.
func Label(field string) string {
	if label, ok := labels[field]; ok {
		return label
	}
	return field
}

// fieldName is the json name of the failing field; list elements report
// against the list itself.
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}

func fieldMessage(fe validator.FieldError) string {
	label := Label(fieldName(fe))

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Enter a valid email address"
	case "oneof":
		return "Choose one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "url":
		return "References must be full URLs"
	case "datetime":
		return "Use the format YYYY-MM-DD"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	default:
		return label + " is invalid"
	}
}
