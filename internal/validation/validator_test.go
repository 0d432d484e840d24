// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/sobershot/internal/models"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

// ===================================================================================================
// Singleton
// ===================================================================================================

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil {
		t.Fatal("GetValidator() returned nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same instance")
	}
}

// ===================================================================================================
// AddDrinkRequest
// ===================================================================================================

func validAddDrink() models.AddDrinkRequest {
	return models.AddDrinkRequest{
		Name:         "Mojito",
		Category:     "Cocktail",
		Ingredients:  map[string]string{"White rum": "2 oz", "Mint": "6 leaves"},
		Glass:        strPtr("Highball glass"),
		Instructions: strPtr("Muddle mint, add rum, top with soda."),
		Image:        strPtr(""),
	}
}

func TestValidateStruct_AddDrinkValid(t *testing.T) {
	t.Parallel()

	req := validAddDrink()
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("ValidateStruct() = %v, want nil", err)
	}

	req.Ingredients = map[string]string{}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("empty ingredients map should be accepted, got %v", err)
	}
}

func TestValidateStruct_AddDrinkInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(r *models.AddDrinkRequest)
		wantField string
		wantTag   string
	}{
		{"empty name", func(r *models.AddDrinkRequest) { r.Name = "" }, "name", "notblank"},
		{"blank name", func(r *models.AddDrinkRequest) { r.Name = "   " }, "name", "notblank"},
		{"blank category", func(r *models.AddDrinkRequest) { r.Category = "\t" }, "category", "notblank"},
		{"missing ingredients", func(r *models.AddDrinkRequest) { r.Ingredients = nil }, "ingredients", "required"},
		{"missing glass", func(r *models.AddDrinkRequest) { r.Glass = nil }, "glass", "required"},
		{"missing instructions", func(r *models.AddDrinkRequest) { r.Instructions = nil }, "instructions", "required"},
		{"missing image", func(r *models.AddDrinkRequest) { r.Image = nil }, "image", "required"},
		{"name too long", func(r *models.AddDrinkRequest) { r.Name = strings.Repeat("a", 201) }, "name", "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := validAddDrink()
			tt.mutate(&req)

			err := ValidateStruct(&req)
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), err)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
		})
	}
}

// ===================================================================================================
// RecommendRequest
// ===================================================================================================

func TestValidateStruct_Recommend(t *testing.T) {
	t.Parallel()

	if err := ValidateStruct(&models.RecommendRequest{DrinkIndex: intPtr(0)}); err != nil {
		t.Errorf("index 0 with default top_n should be valid, got %v", err)
	}

	err := ValidateStruct(&models.RecommendRequest{TopN: intPtr(5)})
	if err == nil {
		t.Fatal("missing drink_index should fail")
	}
	if got := err.Error(); got != "drink_index is required" {
		t.Errorf("Error() = %q, want %q", got, "drink_index is required")
	}
}

// ===================================================================================================
// Messages
// ===================================================================================================

func TestRequestValidationError_Messages(t *testing.T) {
	t.Parallel()

	req := validAddDrink()
	req.Name = ""
	req.Category = strings.Repeat("c", 101)

	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"name must not be blank", "category must be at most 100 characters"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
	if !strings.Contains(msg, "; ") {
		t.Errorf("multiple errors should be joined with '; ', got %q", msg)
	}
}

func TestRequestValidationError_Empty(t *testing.T) {
	t.Parallel()

	ve := &RequestValidationError{}
	if ve.Error() != "validation failed" {
		t.Errorf("Error() = %q, want %q", ve.Error(), "validation failed")
	}
}
