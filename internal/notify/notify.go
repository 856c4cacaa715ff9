// Package notify is the outbound notification port. Deliveries are
// best-effort: callers log failures and carry on.
package notify

import "shopapi/internal/models"

type Notifier interface {
	SendWelcome(email, name string) error
	SendOrderConfirmation(email, name string, order *models.Order) error
}

// Noop satisfies Notifier without sending anything.
type Noop struct{}

func (Noop) SendWelcome(email, name string) error { return nil }

func (Noop) SendOrderConfirmation(email, name string, order *models.Order) error { return nil }
