package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shopapi/internal/apperr"
	"shopapi/internal/models"
)

type Orders struct {
	col *mongo.Collection
}

func NewOrders(db *mongo.Database) *Orders {
	return &Orders{col: db.Collection("orders")}
}

func (s *Orders) Insert(ctx context.Context, order *models.Order) error {
	res, err := s.col.InsertOne(ctx, order)
	if err != nil {
		return &apperr.StoreError{Op: "orders.insert", Err: err}
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return nil
}

// FindOne loads an order by id, constrained to the owner when one is
// given. An order filtered out by ownership looks exactly like a
// missing one.
func (s *Orders) FindOne(ctx context.Context, id primitive.ObjectID, owner *primitive.ObjectID) (*models.Order, error) {
	filter := bson.M{"_id": id}
	if owner != nil {
		filter["userId"] = *owner
	}

	var order models.Order
	err := s.col.FindOne(ctx, filter).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, &apperr.NotFoundError{Entity: "order"}
	}
	if err != nil {
		return nil, &apperr.StoreError{Op: "orders.findOne", Err: err}
	}
	return &order, nil
}

// FindPage returns one page of orders sorted newest first, plus the
// total count matching the filter.
func (s *Orders) FindPage(ctx context.Context, owner *primitive.ObjectID, status models.Status, page, limit int64) ([]models.Order, int64, error) {
	filter := bson.M{}
	if owner != nil {
		filter["userId"] = *owner
	}
	if status != "" {
		filter["status"] = status
	}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, &apperr.StoreError{Op: "orders.count", Err: err}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, &apperr.StoreError{Op: "orders.find", Err: err}
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, &apperr.StoreError{Op: "orders.decode", Err: err}
	}
	return orders, total, nil
}

func (s *Orders) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.Status) error {
	res, err := s.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return &apperr.StoreError{Op: "orders.updateStatus", Err: err}
	}
	if res.MatchedCount == 0 {
		return &apperr.NotFoundError{Entity: "order"}
	}
	return nil
}

func (s *Orders) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return &apperr.StoreError{Op: "orders.delete", Err: err}
	}
	if res.DeletedCount == 0 {
		return &apperr.NotFoundError{Entity: "order"}
	}
	return nil
}
