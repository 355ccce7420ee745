package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity types recorded by the points engine and the action handlers.
const (
	ActivityProfileUpdate     = "profile_update"
	ActivityProfileCompletion = "profile_completion"
	ActivityBountyPosted      = "bounty_posted"
	ActivityBountyApplication = "bounty_application"
	ActivityBountyCompletion  = "bounty_completion"
	ActivityDailyLogin        = "daily_login"
	ActivityDonationReceived  = "donation_received"
)

// Activity is an append-only record of a notable user action. Records are
// never updated or deleted once inserted.
type Activity struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`

	Email       string                 `bson:"email" json:"email"`
	Type        string                 `bson:"type" json:"type"`
	Description string                 `bson:"description,omitempty" json:"description,omitempty"`
	Metadata    map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`

	// Day is set only on daily_login records ("2006-01-02", server-local).
	// A unique index on (email, type, day) makes the daily award
	// insert-if-absent instead of a racy read-then-write check.
	Day string `bson:"day,omitempty" json:"day,omitempty"`
}
