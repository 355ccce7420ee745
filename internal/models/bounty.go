package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	BountyStatusOpen      = "open"
	BountyStatusCompleted = "completed"
)

type Bounty struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Title       string `bson:"title" json:"title"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Reward      int64  `bson:"reward" json:"reward"`
	PosterEmail string `bson:"poster_email" json:"poster_email"`

	Status      string `bson:"status" json:"status"`
	CompletedBy string `bson:"completed_by,omitempty" json:"completed_by,omitempty"`
}

// BountyApplication links a creator to a bounty they applied for. One
// application per (bounty, applicant) pair, enforced by a unique index.
type BountyApplication struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`

	BountyID       primitive.ObjectID `bson:"bounty_id" json:"bounty_id"`
	ApplicantEmail string             `bson:"applicant_email" json:"applicant_email"`
	Message        string             `bson:"message,omitempty" json:"message,omitempty"`
}
