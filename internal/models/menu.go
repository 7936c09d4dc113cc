package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// HostInfo is the embedded host sub-document carried on menu items and
// bookings.
type HostInfo struct {
	Email string `bson:"email" json:"email"`
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Photo string `bson:"photo,omitempty" json:"photo,omitempty"`
}

// MenuItem is a coffee listing. Booked flips to true when a booking is
// created against the item; nothing ever flips it back.
type MenuItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Booked      bool               `bson:"booked" json:"booked"`
	Host        HostInfo           `bson:"host" json:"host"`
}
