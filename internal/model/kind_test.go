package model

import (
	"regexp"
	"testing"
)

func TestKind_PayloadTypeAndFilename(t *testing.T) {
	tests := []struct {
		kind     Kind
		payload  string
		filename string
	}{
		{KindContact, "contact-qr", "contact-qr.png"},
		{KindWifi, "wifi-qr", "wifi-qr.png"},
		{KindLink, "link-qr", "link-qr.png"},
	}

	for _, test := range tests {
		if got := test.kind.PayloadType(); got != test.payload {
			t.Errorf("Kind(%s).PayloadType() = %s, expected %s", test.kind, got, test.payload)
		}
		if got := test.kind.Filename(); got != test.filename {
			t.Errorf("Kind(%s).Filename() = %s, expected %s", test.kind, got, test.filename)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, kind := range Kinds() {
		parsed, err := ParseKind(kind.String())
		if err != nil {
			t.Fatalf("ParseKind(%q) returned error: %v", kind.String(), err)
		}
		if parsed != kind {
			t.Errorf("ParseKind(%q) = %s, expected %s", kind.String(), parsed, kind)
		}
	}

	if parsed, err := ParseKind(" WiFi "); err != nil || parsed != KindWifi {
		t.Errorf("ParseKind should be case-insensitive, got %s, %v", parsed, err)
	}

	if _, err := ParseKind("vcard"); err == nil {
		t.Error("Expected error for unknown kind")
	}
}

func TestKind_Valid(t *testing.T) {
	if Kind(-1).Valid() || Kind(3).Valid() {
		t.Error("Out-of-range kinds should not be valid")
	}
	for _, kind := range Kinds() {
		if !kind.Valid() {
			t.Errorf("Kind(%s) should be valid", kind)
		}
	}
}

func TestNewFormValues(t *testing.T) {
	schema := FieldSchema{
		Kind: KindLink,
		Fields: []FieldDescriptor{
			{Name: "url", Required: true, Default: "https://", Pattern: regexp.MustCompile(`^x$`)},
			{Name: "text"},
		},
	}

	values := NewFormValues(schema)
	if len(values) != 2 {
		t.Fatalf("Expected 2 values, got %d", len(values))
	}
	if values["url"] != "https://" {
		t.Errorf("Expected url default 'https://', got '%s'", values["url"])
	}
	if v, ok := values["text"]; !ok || v != "" {
		t.Errorf("Expected empty text value to be present, got '%s' (present=%v)", v, ok)
	}

	clone := values.Clone()
	clone["text"] = "changed"
	if values["text"] != "" {
		t.Error("Clone should not share storage with the original")
	}
}

func TestArtifact_Variant(t *testing.T) {
	artifact := Artifact{Caption: "AA==", NoCaption: "AQ=="}

	if got := artifact.DataURI(true); got != "data:image/png;base64,AA==" {
		t.Errorf("DataURI(true) = %s", got)
	}
	if got := artifact.DataURI(false); got != "data:image/png;base64,AQ==" {
		t.Errorf("DataURI(false) = %s", got)
	}
	if !artifact.HasDistinctVariants() {
		t.Error("Expected distinct variants")
	}
}
