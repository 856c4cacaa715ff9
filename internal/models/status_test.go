package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionForwardOnly(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusConfirmed))
	assert.True(t, CanTransition(StatusConfirmed, StatusProcessing))
	assert.True(t, CanTransition(StatusProcessing, StatusShipped))
	assert.True(t, CanTransition(StatusShipped, StatusDelivered))

	// No skips, no going back.
	assert.False(t, CanTransition(StatusPending, StatusProcessing))
	assert.False(t, CanTransition(StatusConfirmed, StatusPending))
	assert.False(t, CanTransition(StatusDelivered, StatusShipped))
}

func TestCancellationWindow(t *testing.T) {
	assert.True(t, StatusPending.CanCancel())
	assert.True(t, StatusConfirmed.CanCancel())

	for _, s := range []Status{StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.False(t, s.CanCancel(), "expected %s to reject cancellation", s)
	}
}

func TestTerminalStates(t *testing.T) {
	for to := range validNext {
		assert.False(t, CanTransition(StatusCancelled, to))
		assert.False(t, CanTransition(StatusDelivered, to))
	}
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, Status("unknown").Valid())
	assert.False(t, Status("").Valid())
}
