package form

import (
	"fmt"
	"strings"

	"github.com/ytget/qr-generator/internal/model"
)

// Reason names the constraint a field failed, after the browser ValidityState flags
type Reason string

const (
	ReasonValueMissing    Reason = "valueMissing"
	ReasonTypeMismatch    Reason = "typeMismatch"
	ReasonPatternMismatch Reason = "patternMismatch"
)

// FieldError reports one invalid field
type FieldError struct {
	Field  string
	Label  string
	Reason Reason
}

func (e *FieldError) Error() string {
	switch e.Reason {
	case ReasonValueMissing:
		return fmt.Sprintf("%s is required", e.Label)
	case ReasonTypeMismatch:
		return fmt.Sprintf("%s is not a valid email address", e.Label)
	default:
		return fmt.Sprintf("%s has an invalid format", e.Label)
	}
}

// Report is the outcome of validating a whole form
type Report struct {
	Kind    model.Kind
	Invalid []FieldError // schema order
}

// OK reports whether every field passed
func (r Report) OK() bool {
	return len(r.Invalid) == 0
}

// IsInvalid reports whether the named field failed
func (r Report) IsInvalid(name string) bool {
	_, found := r.FieldError(name)
	return found
}

// FieldError returns the failure for the named field, if any
func (r Report) FieldError(name string) (FieldError, bool) {
	for _, fe := range r.Invalid {
		if fe.Field == name {
			return fe, true
		}
	}
	return FieldError{}, false
}

// ValidationError is returned when a submission is blocked client-side
type ValidationError struct {
	Report Report
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Report.Invalid))
	for _, fe := range e.Report.Invalid {
		names = append(names, fe.Field)
	}
	return fmt.Sprintf("form: %s form has invalid fields: %s", e.Report.Kind, strings.Join(names, ", "))
}

// ValidateField checks a single value against its descriptor. It returns nil
// when the value satisfies every constraint.
func ValidateField(field model.FieldDescriptor, value string) *FieldError {
	fail := func(reason Reason) *FieldError {
		return &FieldError{Field: field.Name, Label: field.Label, Reason: reason}
	}

	if value == "" {
		if field.Required {
			return fail(ReasonValueMissing)
		}
		return nil
	}
	if field.Input == model.InputEmail && !IsEmail(value) {
		return fail(ReasonTypeMismatch)
	}
	if field.Pattern != nil && !field.Pattern.MatchString(value) {
		return fail(ReasonPatternMismatch)
	}
	return nil
}

// Validate checks every field of schema against values. Missing keys count as empty.
func Validate(schema model.FieldSchema, values model.FormValues) Report {
	report := Report{Kind: schema.Kind}
	for _, field := range schema.Fields {
		if fe := ValidateField(field, values[field.Name]); fe != nil {
			report.Invalid = append(report.Invalid, *fe)
		}
	}
	return report
}

// IsValid is shorthand for Validate(...).OK()
func IsValid(schema model.FieldSchema, values model.FormValues) bool {
	return Validate(schema, values).OK()
}
