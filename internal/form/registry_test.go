package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ytget/qr-generator/internal/model"
)

func TestSchemaFor_Fields(t *testing.T) {
	tests := []struct {
		kind     model.Kind
		names    []string
		required []string
	}{
		{model.KindContact, []string{"firstName", "lastName", "email", "phone"}, []string{"firstName", "lastName", "email", "phone"}},
		{model.KindWifi, []string{"ssid", "password"}, []string{"ssid", "password"}},
		{model.KindLink, []string{"url", "text"}, []string{"url"}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			schema := SchemaFor(tt.kind)
			if schema.Kind != tt.kind {
				t.Errorf("schema.Kind = %s, expected %s", schema.Kind, tt.kind)
			}
			if diff := cmp.Diff(tt.names, schema.Names()); diff != "" {
				t.Errorf("field names mismatch (-want +got):\n%s", diff)
			}
			var required []string
			for _, f := range schema.Fields {
				if f.Required {
					required = append(required, f.Name)
				}
			}
			if diff := cmp.Diff(tt.required, required); diff != "" {
				t.Errorf("required fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSchemaFor_InputKinds(t *testing.T) {
	want := map[string]model.InputKind{
		"firstName": model.InputText,
		"lastName":  model.InputText,
		"email":     model.InputEmail,
		"phone":     model.InputTel,
	}
	got := map[string]model.InputKind{}
	for _, f := range SchemaFor(model.KindContact).Fields {
		got[f.Name] = f.Input
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("contact input kinds mismatch (-want +got):\n%s", diff)
	}

	password, _ := SchemaFor(model.KindWifi).Field(FieldPassword)
	if password.Input != model.InputPassword {
		t.Errorf("Expected password input, got %s", password.Input)
	}
}

func TestSchemaFor_ReturnsCopy(t *testing.T) {
	schema := SchemaFor(model.KindWifi)
	schema.Fields[0].Required = false

	again := SchemaFor(model.KindWifi)
	if !again.Fields[0].Required {
		t.Error("Mutating a returned schema must not affect the registry")
	}
}

func TestSchemaFor_UnknownKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for unknown kind")
		}
	}()
	SchemaFor(model.Kind(42))
}

func TestSchemaFor_LinkDefaults(t *testing.T) {
	url, ok := SchemaFor(model.KindLink).Field(FieldURL)
	if !ok {
		t.Fatal("link schema has no url field")
	}
	if url.Default != "https://" {
		t.Errorf("Expected url default 'https://', got '%s'", url.Default)
	}
}
