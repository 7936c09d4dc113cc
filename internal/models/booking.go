package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GuestInfo identifies the booking guest for queries and notifications.
type GuestInfo struct {
	Email string `bson:"email" json:"email"`
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Photo string `bson:"photo,omitempty" json:"photo,omitempty"`
}

// Booking records one paid reservation of a menu item. CoffeeID is a weak
// reference: the referenced item may have been deleted since, and deleting
// a booking does not clear the item's booked flag.
type Booking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CoffeeID      string             `bson:"coffeeId" json:"coffeeId"`
	CoffeeName    string             `bson:"coffeeName,omitempty" json:"coffeeName,omitempty"`
	Guest         GuestInfo          `bson:"guest" json:"guest"`
	Host          HostInfo           `bson:"host" json:"host"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Price         float64            `bson:"price" json:"price"`
	Date          time.Time          `bson:"date,omitempty" json:"date,omitempty"`
}
