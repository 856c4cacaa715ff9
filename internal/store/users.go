// Package store implements the Mongo persistence behind the service
// interfaces. Services own no data between requests; everything lives
// in the users, orders and counters collections.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"shopapi/internal/apperr"
	"shopapi/internal/models"
)

type Users struct {
	col *mongo.Collection
}

func NewUsers(db *mongo.Database) *Users {
	return &Users{col: db.Collection("users")}
}

// Insert persists the user and fills in the generated ID. The unique
// email index resolves concurrent registrations with the same address;
// the resulting duplicate-key error comes back as a DuplicateError.
func (s *Users) Insert(ctx context.Context, user *models.User) error {
	res, err := s.col.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return &apperr.DuplicateError{Field: "email"}
	}
	if err != nil {
		return &apperr.StoreError{Op: "users.insert", Err: err}
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (s *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, &apperr.NotFoundError{Entity: "user"}
	}
	if err != nil {
		return nil, &apperr.StoreError{Op: "users.findByEmail", Err: err}
	}
	return &user, nil
}

func (s *Users) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, &apperr.NotFoundError{Entity: "user"}
	}
	if err != nil {
		return nil, &apperr.StoreError{Op: "users.findByID", Err: err}
	}
	return &user, nil
}
