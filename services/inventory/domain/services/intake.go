package services

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ghuser/stockroom/services/inventory/domain"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// NewItemInput is a validated add-item request, ready for the repository.
type NewItemInput struct {
	Name     models.ItemName
	Quantity int
	Price    decimal.Decimal
}

// RejectionError reports why add-item input was refused. The caller is free
// to swallow it (the UI policy is "nothing happens"), but the reason is kept
// so logs and tests can see it. Matches domain.ErrItemRejected via errors.Is.
type RejectionError struct {
	Field  string
	Reason string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("item rejected: %s: %s", e.Field, e.Reason)
}

func (e *RejectionError) Unwrap() error {
	return domain.ErrItemRejected
}

// ValidateNewItem checks raw add-item form input before any store call is
// made. Name must be non-empty, quantity text must parse as an integer > 0,
// and price text must parse as a number > 0. The store itself performs no
// validation; a rejection here means no insert happens at all.
func ValidateNewItem(name, quantityText, priceText string) (NewItemInput, error) {
	itemName, err := models.NewItemName(name)
	if err != nil {
		return NewItemInput{}, &RejectionError{Field: "name", Reason: err.Error()}
	}

	qty, err := strconv.Atoi(quantityText)
	if err != nil {
		return NewItemInput{}, &RejectionError{Field: "quantity", Reason: "not an integer"}
	}
	if qty <= 0 {
		return NewItemInput{}, &RejectionError{Field: "quantity", Reason: "must be greater than zero"}
	}

	price, err := decimal.NewFromString(priceText)
	if err != nil {
		return NewItemInput{}, &RejectionError{Field: "price", Reason: "not a number"}
	}
	if !price.IsPositive() {
		return NewItemInput{}, &RejectionError{Field: "price", Reason: "must be greater than zero"}
	}

	return NewItemInput{Name: itemName, Quantity: qty, Price: price}, nil
}
