package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeaderboardEntry is the denormalized per-creator summary used for ranked
// display. It exists only for users with the creator role, at most one entry
// per user. It is a derived view of the user document: a failed update here
// never rolls back a point award, and the rebuild pass can recompute it.
type LeaderboardEntry struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`

	// Display fields copied from the user document.
	Username string `bson:"username" json:"username"`
	Name     string `bson:"name,omitempty" json:"name,omitempty"`
	Avatar   string `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Email    string `bson:"email" json:"email"`

	TotalPoints       int64 `bson:"total_points" json:"total_points"`
	BountyPoints      int64 `bson:"bounty_points" json:"bounty_points"`
	ActivityPoints    int64 `bson:"activity_points" json:"activity_points"`
	DonationPoints    int64 `bson:"donation_points" json:"donation_points"`
	CompletedBounties int64 `bson:"completed_bounties" json:"completed_bounties"`

	// Rank is a display cache only. Every read path that needs a rank
	// recomputes it live from point totals.
	Rank int64 `bson:"rank,omitempty" json:"rank,omitempty"`

	LastUpdated time.Time `bson:"last_updated" json:"last_updated"`
}
