package validator

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type sampleRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required,phone"`
}

func TestCustomValidator_ValidateReturnsValidationError(t *testing.T) {
	cv := New()

	req := sampleRequest{
		// Name and Phone left empty to trigger validation errors
	}

	err := cv.Validate(req)
	if err == nil {
		t.Fatalf("expected validation error, got nil")
	}

	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}

	if len(ve.Errors) == 0 {
		t.Fatalf("expected at least one validation error, got none")
	}

	if _, exists := ve.Errors["name"]; !exists {
		t.Errorf("expected 'name' to be in validation errors")
	}
	if _, exists := ve.Errors["phone"]; !exists {
		t.Errorf("expected 'phone' to be in validation errors")
	}
}

func TestHandleValidationError_Returns422WithDetails(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	c := e.NewContext(req, rec)

	cv := New()
	err := cv.Validate(sampleRequest{})

	if err == nil {
		t.Fatalf("expected validation error, got nil")
	}

	if err := HandleValidationError(c, err); err != nil {
		t.Fatalf("HandleValidationError returned error: %v", err)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}

	var body ValidationErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if body.Success {
		t.Errorf("expected Success=false, got true")
	}
	if body.Error != "Validation failed" {
		t.Errorf("expected error='Validation failed', got %q", body.Error)
	}
	if len(body.Details) == 0 {
		t.Fatalf("expected details in validation response, got none")
	}
}

func TestCustomValidator_PhoneTag(t *testing.T) {
	cv := New()

	if err := cv.Validate(sampleRequest{Name: "Jane", Phone: "+1 (415) 555-0100"}); err != nil {
		t.Fatalf("expected formatted phone to be valid, got %v", err)
	}

	err := cv.Validate(sampleRequest{Name: "Jane", Phone: "555-0100"})
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if got := ve.Errors["phone"]; got != "phone must be a valid phone number" {
		t.Errorf("unexpected phone message %q", got)
	}
}

func TestValidationError_MessageIsSorted(t *testing.T) {
	ve := &ValidationError{Errors: map[string]string{
		"tenant":   "tenant is a required field",
		"message":  "message is a required field",
		"receiver": "receiver is a required field",
	}}

	want := "message: message is a required field; receiver: receiver is a required field; tenant: tenant is a required field"
	for i := 0; i < 5; i++ {
		if got := ve.Error(); got != want {
			t.Fatalf("unexpected message %q", got)
		}
	}
}
