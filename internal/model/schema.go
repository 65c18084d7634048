package model

import "regexp"

// InputKind mirrors the input types the forms use
type InputKind string

const (
	InputText     InputKind = "text"
	InputEmail    InputKind = "email"
	InputTel      InputKind = "tel"
	InputPassword InputKind = "password"
)

// FieldDescriptor describes one form field
type FieldDescriptor struct {
	Name        string
	Label       string
	Input       InputKind
	Required    bool
	Pattern     *regexp.Regexp // anchored; nil when unconstrained
	Placeholder string
	Default     string
}

// FieldSchema is the ordered field list of one kind
type FieldSchema struct {
	Kind   Kind
	Fields []FieldDescriptor
}

// Field looks up a descriptor by name
func (s FieldSchema) Field(name string) (FieldDescriptor, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// Names returns field names in schema order
func (s FieldSchema) Names() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

// FormValues maps field name to its current string value
type FormValues map[string]string

// NewFormValues creates values for every field of the schema, defaults applied
func NewFormValues(schema FieldSchema) FormValues {
	values := make(FormValues, len(schema.Fields))
	for _, f := range schema.Fields {
		values[f.Name] = f.Default
	}
	return values
}

// Clone returns an independent copy
func (v FormValues) Clone() FormValues {
	out := make(FormValues, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}
