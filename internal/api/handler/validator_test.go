package handler

import (
	"strings"
	"testing"
)

func TestValidatorUsesWireFieldNames(t *testing.T) {
	type req struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		Email           string `json:"email" validate:"required,email"`
	}

	err := NewValidator().Validate(&req{Email: "not-an-email"})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "current_password is required") {
		t.Fatalf("message %q should use the json field name", msg)
	}
	if !strings.Contains(msg, "email must be a valid email") {
		t.Fatalf("message %q missing email error", msg)
	}
}

func TestValidatorPassesValidInput(t *testing.T) {
	type req struct {
		Rating int `json:"rating" validate:"min=1,max=5"`
	}
	if err := NewValidator().Validate(&req{Rating: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := NewValidator().Validate(&req{Rating: 9}); err == nil || !strings.Contains(err.Error(), "rating must be at most 5") {
		t.Fatalf("got %v, want max violation on rating", err)
	}
}
