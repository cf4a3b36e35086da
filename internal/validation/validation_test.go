package validation

import (
	"encoding/json"
	"testing"
)

type sampleRequest struct {
	Category string `json:"category" validate:"required"`
	MimeType string `json:"mime_type" validate:"required"`
	FileName string `json:"file_name"`
}

func TestValidateStruct(t *testing.T) {
	valid := sampleRequest{Category: "services", MimeType: "image/png"}
	if err := ValidateStruct(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	invalid := sampleRequest{FileName: "photo.png"}
	if err := ValidateStruct(invalid); err == nil {
		t.Fatal("expected error for missing required fields")
	}
}

func TestErrorsToJson(t *testing.T) {
	err := ValidateStruct(sampleRequest{})
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	out, jsonErr := ErrorsToJson(err)
	if jsonErr != nil {
		t.Fatalf("ErrorsToJson: %v", jsonErr)
	}

	var got map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	// field names come from the JSON tags, not the Go field names
	if got["category"] != "required" || got["mime_type"] != "required" {
		t.Errorf("errors = %v; want category and mime_type flagged as required", got)
	}
	if _, ok := got["file_name"]; ok {
		t.Errorf("optional field was flagged: %v", got)
	}
}
