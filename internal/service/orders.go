package service

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopapi/internal/apperr"
	"shopapi/internal/models"
	"shopapi/internal/notify"
	"shopapi/internal/sequence"
	"shopapi/internal/validate"
)

// OrderStore is the persistence the order service needs.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	FindOne(ctx context.Context, id primitive.ObjectID, owner *primitive.ObjectID) (*models.Order, error)
	FindPage(ctx context.Context, owner *primitive.ObjectID, status models.Status, page, limit int64) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.Status) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

type Orders struct {
	orders   OrderStore
	users    UserStore
	sequence sequence.Store
	notifier notify.Notifier
}

func NewOrders(orders OrderStore, users UserStore, seq sequence.Store, notifier notify.Notifier) *Orders {
	return &Orders{
		orders:   orders,
		users:    users,
		sequence: seq,
		notifier: notifier,
	}
}

type CreateOrderInput struct {
	Items           []models.OrderItem
	ShippingAddress models.Address
	PaymentMethod   string
}

// Create validates the items, derives the total, assigns the order
// number and persists the order in pending state. The confirmation
// email is best-effort; the order stands either way.
func (s *Orders) Create(ctx context.Context, userID primitive.ObjectID, in CreateOrderInput) (*models.Order, error) {
	if err := validate.OrderItems(in.Items); err != nil {
		return nil, err
	}
	if err := validate.PaymentMethod(in.PaymentMethod); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, item := range in.Items {
		total += item.Price * float64(item.Quantity)
	}

	number, err := s.sequence.NextSeq(ctx, sequence.OrderSequence)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &models.Order{
		UserID:          user.ID,
		OrderNumber:     number,
		Items:           in.Items,
		TotalAmount:     total,
		Status:          models.StatusPending,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   models.PaymentStatusPending,
		OrderDate:       now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	log.Printf("[ORDER] [INFO] order %d created for user %s", order.OrderNumber, user.Email)

	if err := s.notifier.SendOrderConfirmation(user.Email, user.Name, order); err != nil {
		log.Println("[MAIL] [ERROR] order confirmation email failed:", err)
	}
	return order, nil
}

type ListQuery struct {
	// Owner restricts the listing to one user's orders; nil means all.
	Owner  *primitive.ObjectID
	Status models.Status
	Page   int64
	Limit  int64
}

type Pagination struct {
	CurrentPage int64 `json:"currentPage"`
	TotalPages  int64 `json:"totalPages"`
	TotalOrders int64 `json:"totalOrders"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

func (s *Orders) List(ctx context.Context, q ListQuery) ([]models.Order, Pagination, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	if q.Status != "" && !q.Status.Valid() {
		return nil, Pagination{}, &apperr.ValidationError{Field: "status", Message: "unknown status"}
	}

	orders, total, err := s.orders.FindPage(ctx, q.Owner, q.Status, q.Page, q.Limit)
	if err != nil {
		return nil, Pagination{}, err
	}

	p := Pagination{
		CurrentPage: q.Page,
		TotalPages:  (total + q.Limit - 1) / q.Limit,
		TotalOrders: total,
		HasNext:     q.Page*q.Limit < total,
		HasPrev:     q.Page > 1,
	}
	return orders, p, nil
}

func (s *Orders) Get(ctx context.Context, id primitive.ObjectID, owner *primitive.ObjectID) (*models.Order, error) {
	return s.orders.FindOne(ctx, id, owner)
}

// Cancel moves an order to cancelled if its current state still allows
// it. Cancellation is one-way.
func (s *Orders) Cancel(ctx context.Context, id primitive.ObjectID, owner *primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.FindOne(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanCancel() {
		return nil, &apperr.StateError{Message: "order cannot be cancelled at this stage"}
	}

	if err := s.orders.UpdateStatus(ctx, order.ID, models.StatusCancelled); err != nil {
		return nil, err
	}

	order.Status = models.StatusCancelled
	log.Printf("[ORDER] [INFO] order %d cancelled", order.OrderNumber)
	return order, nil
}

// Delete removes an order unconditionally. Administrative operation;
// ownership is enforced at the route.
func (s *Orders) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.orders.DeleteByID(ctx, id)
}
