package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopapi/internal/apperr"
	"shopapi/internal/models"
)

// In-memory doubles for the store and notifier ports. They honor the
// same contracts as the Mongo implementations: unique emails, atomic
// counters, ownership filtering, newest-first pages.

type memUsers struct {
	mu    sync.Mutex
	users []*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{}
}

func (s *memUsers) Insert(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return &apperr.DuplicateError{Field: "email"}
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	stored := *user
	s.users = append(s.users, &stored)
	return nil
}

func (s *memUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			found := *user
			return &found, nil
		}
	}
	return nil, &apperr.NotFoundError{Entity: "user"}
}

func (s *memUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.ID == id {
			found := *user
			return &found, nil
		}
	}
	return nil, &apperr.NotFoundError{Entity: "user"}
}

func (s *memUsers) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

type memOrders struct {
	mu     sync.Mutex
	orders []*models.Order
}

func newMemOrders() *memOrders {
	return &memOrders{}
}

func (s *memOrders) Insert(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	stored := *order
	s.orders = append(s.orders, &stored)
	return nil
}

func (s *memOrders) FindOne(ctx context.Context, id primitive.ObjectID, owner *primitive.ObjectID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.ID != id {
			continue
		}
		if owner != nil && order.UserID != *owner {
			break
		}
		found := *order
		return &found, nil
	}
	return nil, &apperr.NotFoundError{Entity: "order"}
}

func (s *memOrders) FindPage(ctx context.Context, owner *primitive.ObjectID, status models.Status, page, limit int64) ([]models.Order, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]models.Order, 0)
	for _, order := range s.orders {
		if owner != nil && order.UserID != *owner {
			continue
		}
		if status != "" && order.Status != status {
			continue
		}
		matched = append(matched, *order)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (page - 1) * limit
	if start >= total {
		return []models.Order{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (s *memOrders) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.ID == id {
			order.Status = status
			return nil
		}
	}
	return &apperr.NotFoundError{Entity: "order"}
}

func (s *memOrders) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, order := range s.orders {
		if order.ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return nil
		}
	}
	return &apperr.NotFoundError{Entity: "order"}
}

type memSequence struct {
	mu   sync.Mutex
	seqs map[string]int64
}

func newMemSequence() *memSequence {
	return &memSequence{seqs: make(map[string]int64)}
}

func (s *memSequence) NextSeq(ctx context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seqs[name]++
	return s.seqs[name], nil
}

type recordingNotifier struct {
	mu            sync.Mutex
	welcomes      int
	confirmations int
	fail          bool
}

func (n *recordingNotifier) SendWelcome(email, name string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("smtp unreachable")
	}
	n.welcomes++
	return nil
}

func (n *recordingNotifier) SendOrderConfirmation(email, name string, order *models.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("smtp unreachable")
	}
	n.confirmations++
	return nil
}
