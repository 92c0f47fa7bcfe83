package validator_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgvalidator "github.com/ghuser/stockroom/pkg/validator"
)

type sampleStruct struct {
	Name     string `json:"name"     validate:"required,max=10"`
	Quantity string `json:"quantity" validate:"max=5"`
}

func TestValidate_valid(t *testing.T) {
	s := sampleStruct{Name: "Widget", Quantity: "3"}
	if err := pkgvalidator.Validate(&s); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidate_missingRequired(t *testing.T) {
	s := sampleStruct{Quantity: "3"}
	if err := pkgvalidator.Validate(&s); err == nil {
		t.Fatal("expected validation error for missing name")
	}
}

func TestFormatValidationErrors_required(t *testing.T) {
	s := sampleStruct{}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	// field names come from json tags, not Go names
	if m["name"] != "This field is required" {
		t.Errorf("unexpected name message: %q", m["name"])
	}
}

func TestFormatValidationErrors_max(t *testing.T) {
	s := sampleStruct{Name: "12345678901", Quantity: "3"} // 11 chars > max=10
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["name"] != "Maximum length is 10" {
		t.Errorf("unexpected name message: %q", m["name"])
	}
}

func TestFormatValidationErrors_nonValidationError(t *testing.T) {
	m := pkgvalidator.FormatValidationErrors(http.ErrNoCookie)
	if len(m) != 0 {
		t.Errorf("expected empty map for non-validation error, got %v", m)
	}
}

func TestValidateRequest(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Widget","quantity":"3"}`))
		w := httptest.NewRecorder()

		got, ok := pkgvalidator.ValidateRequest[sampleStruct](w, req)
		if !ok {
			t.Fatalf("expected success, response: %s", w.Body.String())
		}
		if got.Name != "Widget" || got.Quantity != "3" {
			t.Errorf("parsed struct: %+v", got)
		}
	})

	t.Run("malformed JSON answers 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		w := httptest.NewRecorder()

		if _, ok := pkgvalidator.ValidateRequest[sampleStruct](w, req); ok {
			t.Fatal("expected failure for malformed JSON")
		}
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("failing validation answers 422", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity":"toolong"}`))
		w := httptest.NewRecorder()

		if _, ok := pkgvalidator.ValidateRequest[sampleStruct](w, req); ok {
			t.Fatal("expected failure for invalid struct")
		}
		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", w.Code)
		}
	})
}
