package models

// Status is the order fulfillment state. Forward progression is driven
// by external fulfillment events; the only transition this service
// performs itself is cancellation.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

var validNext = map[Status]map[Status]bool{
	StatusPending:    {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed:  {StatusProcessing: true, StatusCancelled: true},
	StatusProcessing: {StatusShipped: true},
	StatusShipped:    {StatusDelivered: true},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

// CanCancel reports whether an order in this state may still be
// cancelled. Past confirmation, cancellation needs a reversal process
// outside this system.
func (s Status) CanCancel() bool {
	return CanTransition(s, StatusCancelled)
}

func (s Status) Valid() bool {
	_, ok := validNext[s]
	return ok
}
