// Package user resolves farmer and admin principals against the users
// collection. Account creation and OTP login live in the auth service;
// the chat service only reads.
package user

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"kisaanchat/internal/dbmongo"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	FindByID(ctx context.Context, userID string) (*dbmongo.User, error)
}

type userRepo struct {
	users *mongo.Collection
}

func NewUserRepository(mongoClient *dbmongo.MongoClient) UserRepository {
	return &userRepo{
		users: mongoClient.Database.Collection(dbmongo.CollectionUsers),
	}
}

func (r *userRepo) FindByID(ctx context.Context, userID string) (*dbmongo.User, error) {
	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id %q", ErrUserNotFound, userID)
	}

	var user dbmongo.User
	err = r.users.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	return &user, nil
}
