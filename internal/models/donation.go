package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Donation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`

	// Reference is an opaque id handed to payment/receipt flows.
	Reference string `bson:"reference" json:"reference"`

	FromEmail string `bson:"from_email" json:"from_email"`
	ToEmail   string `bson:"to_email" json:"to_email"`
	Amount    int64  `bson:"amount" json:"amount"`
	Message   string `bson:"message,omitempty" json:"message,omitempty"`
}
