package form

import (
	"fmt"
	"regexp"

	"github.com/ytget/qr-generator/internal/model"
)

// Field names shared with the backend payload
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldSSID      = "ssid"
	FieldPassword  = "password"
	FieldURL       = "url"
	FieldText      = "text"
)

// Raw constraint patterns. They are anchored when compiled, the way a
// browser applies the pattern attribute to the whole value.
const (
	PhonePattern = `(\d{10}|\(\d{3}\) \d{3}-\d{4})`
	URLPattern   = `http(s?)://([a-zA-Z0-9\-_]+\.)*[a-zA-Z0-9\-_]+\.[a-zA-Z]{2,}([/?].*)?`

	// DefaultURLValue pre-fills the link form
	DefaultURLValue = "https://"
)

var (
	phoneRegexp = anchored(PhonePattern)
	urlRegexp   = anchored(URLPattern)
)

var schemas = map[model.Kind]model.FieldSchema{
	model.KindContact: {
		Kind: model.KindContact,
		Fields: []model.FieldDescriptor{
			{Name: FieldFirstName, Label: "First Name", Input: model.InputText, Required: true, Placeholder: "First Name"},
			{Name: FieldLastName, Label: "Last Name", Input: model.InputText, Required: true, Placeholder: "Last Name"},
			{Name: FieldEmail, Label: "Email", Input: model.InputEmail, Required: true, Placeholder: "Email"},
			{Name: FieldPhone, Label: "Phone", Input: model.InputTel, Required: true, Pattern: phoneRegexp, Placeholder: "Phone"},
		},
	},
	model.KindWifi: {
		Kind: model.KindWifi,
		Fields: []model.FieldDescriptor{
			{Name: FieldSSID, Label: "SSID", Input: model.InputText, Required: true, Placeholder: "SSID"},
			{Name: FieldPassword, Label: "Password", Input: model.InputPassword, Required: true, Placeholder: "Password"},
		},
	},
	model.KindLink: {
		Kind: model.KindLink,
		Fields: []model.FieldDescriptor{
			{Name: FieldURL, Label: "URL", Input: model.InputText, Required: true, Pattern: urlRegexp, Placeholder: "URL", Default: DefaultURLValue},
			{Name: FieldText, Label: "Text", Input: model.InputText, Placeholder: "Optional"},
		},
	},
}

// SchemaFor returns the field schema of kind. It panics on a kind outside
// the enumeration, which the UI cannot produce.
func SchemaFor(kind model.Kind) model.FieldSchema {
	schema, ok := schemas[kind]
	if !ok {
		panic(fmt.Sprintf("form: no schema for %s", kind))
	}
	fields := make([]model.FieldDescriptor, len(schema.Fields))
	copy(fields, schema.Fields)
	return model.FieldSchema{Kind: schema.Kind, Fields: fields}
}

func anchored(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`^(?:` + pattern + `)$`)
}
