package domain_test

import (
	"fmt"
	"testing"

	"github.com/vladislavdragonenkov/ecommerce/internal/domain"
)

func TestIsNotFound(t *testing.T) {
	if !domain.IsNotFound(domain.ErrOrderNotFound) {
		t.Fatal("ErrOrderNotFound must classify as not found")
	}
	if !domain.IsNotFound(fmt.Errorf("product 42: %w", domain.ErrProductNotFound)) {
		t.Fatal("wrapped ErrProductNotFound must classify as not found")
	}
	if domain.IsNotFound(domain.ErrItemsRequired) {
		t.Fatal("validation error must not classify as not found")
	}
}

func TestIsValidation(t *testing.T) {
	if !domain.IsValidation(domain.ErrItemQtyInvalid) {
		t.Fatal("ErrItemQtyInvalid must classify as validation")
	}
	if domain.IsValidation(domain.ErrIntegrity) {
		t.Fatal("integrity error must not classify as validation")
	}
}

func TestIsIntegrity(t *testing.T) {
	wrapped := fmt.Errorf("order 7 references customer 3: %w", domain.ErrIntegrity)
	if !domain.IsIntegrity(wrapped) {
		t.Fatal("wrapped ErrIntegrity must classify as integrity")
	}
	if domain.IsIntegrity(domain.ErrOrderNotFound) {
		t.Fatal("not-found error must not classify as integrity")
	}
}

func TestIsConflict(t *testing.T) {
	if !domain.IsConflict(domain.ErrEmailTaken) {
		t.Fatal("ErrEmailTaken must classify as conflict")
	}
	if domain.IsConflict(domain.ErrUsernameRequired) {
		t.Fatal("validation error must not classify as conflict")
	}
}
