package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"coffeeshop/internal/models"
)

// ErrUserNotFound is returned when no user document matches the email.
var ErrUserNotFound = errors.New("user not found")

// UserRoles resolves a user's role by email for the admin guard. Every
// request re-queries the store; roles are never cached.
type UserRoles struct {
	col *mongo.Collection
}

func NewUserRoles(db *mongo.Database) *UserRoles {
	return &UserRoles{col: db.Collection(UsersCollection)}
}

func (r *UserRoles) RoleFor(ctx context.Context, email string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return user.Role, nil
}
