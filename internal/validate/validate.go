// Package validate holds the pure field validators run before any
// entity is constructed or persisted.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"shopapi/internal/apperr"
	"shopapi/internal/models"
)

var fieldValidator = validator.New()

// Accepts an optional country prefix followed by digits, spaces,
// dashes and parens, 7 to 20 characters of it.
var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s\-()]{6,19}$`)

// User checks the registration fields. The first violation wins.
// The password is checked pre-hash; phone is optional.
func User(name, email, password, phone, role string) error {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 50 {
		return &apperr.ValidationError{Field: "name", Message: "name must be between 2 and 50 characters"}
	}
	if err := fieldValidator.Var(email, "required,email"); err != nil {
		return &apperr.ValidationError{Field: "email", Message: "please provide a valid email"}
	}
	if utf8.RuneCountInString(password) < 6 {
		return &apperr.ValidationError{Field: "password", Message: "password must be at least 6 characters long"}
	}
	if phone = strings.TrimSpace(phone); phone != "" && !phonePattern.MatchString(phone) {
		return &apperr.ValidationError{Field: "phone", Message: "please provide a valid phone number"}
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return &apperr.ValidationError{Field: "role", Message: "role must be user or admin"}
	}
	return nil
}

// OrderItems rejects the whole order on the first invalid item.
func OrderItems(items []models.OrderItem) error {
	if len(items) == 0 {
		return &apperr.ValidationError{Field: "items", Message: "items must be a non-empty array"}
	}
	for _, item := range items {
		if strings.TrimSpace(item.ProductName) == "" {
			return &apperr.ValidationError{Field: "productName", Message: "product name is required"}
		}
		if item.Quantity < 1 {
			return &apperr.ValidationError{Field: "quantity", Message: "quantity must be at least 1"}
		}
		if item.Price < 0 {
			return &apperr.ValidationError{Field: "price", Message: "price cannot be negative"}
		}
	}
	return nil
}

func PaymentMethod(method string) error {
	if !models.ValidPaymentMethod(method) {
		return &apperr.ValidationError{Field: "paymentMethod", Message: "invalid payment method"}
	}
	return nil
}
