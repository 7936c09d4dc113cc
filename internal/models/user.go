package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role / status values stored on a user document. A user starts with no
// role; "Requested" marks a pending host request and "admin" unlocks the
// admin-only routes.
const (
	RoleAdmin       = "admin"
	StatusRequested = "Requested"
)

// User is the account document keyed by email. Email uniqueness is
// maintained by the upsert-by-email write path, not by an index.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Photo     string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Role      string             `bson:"role,omitempty" json:"role,omitempty"`
	Status    string             `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
