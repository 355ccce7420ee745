package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talentaworks/talenta-backend/internal/models"
)

// LeaderboardDelta is one incremental update to a creator's entry.
type LeaderboardDelta struct {
	TotalPoints       int64
	BountyPoints      int64
	ActivityPoints    int64
	DonationPoints    int64
	CompletedBounties int64
}

type LeaderboardStore interface {
	// ApplyDelta upserts the entry for user, seeding display fields and
	// zeroed counters on first touch, then applies the increments.
	ApplyDelta(ctx context.Context, user *models.User, delta LeaderboardDelta) error
	// Ensure creates a zeroed entry for user if none exists.
	Ensure(ctx context.Context, user *models.User) error
	// Replace overwrites the entry, used by the rebuild pass.
	Replace(ctx context.Context, entry *models.LeaderboardEntry) error
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.LeaderboardEntry, error)
	// Top returns entries ordered by total points descending.
	Top(ctx context.Context, limit int64) ([]models.LeaderboardEntry, error)
}

type mongoLeaderboardStore struct {
	col *mongo.Collection
}

func NewLeaderboardStore(db *mongo.Database) LeaderboardStore {
	return &mongoLeaderboardStore{col: db.Collection("leaderboard")}
}

func (s *mongoLeaderboardStore) ApplyDelta(ctx context.Context, user *models.User, delta LeaderboardDelta) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"user_id": user.ID},
		bson.M{
			"$inc": bson.M{
				"total_points":       delta.TotalPoints,
				"bounty_points":      delta.BountyPoints,
				"activity_points":    delta.ActivityPoints,
				"donation_points":    delta.DonationPoints,
				"completed_bounties": delta.CompletedBounties,
			},
			"$set": bson.M{
				"username":     user.Username,
				"name":         user.Name,
				"avatar":       user.Avatar,
				"email":        user.Email,
				"last_updated": time.Now(),
			},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *mongoLeaderboardStore) Ensure(ctx context.Context, user *models.User) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"user_id": user.ID},
		bson.M{
			"$setOnInsert": bson.M{
				"username":           user.Username,
				"name":               user.Name,
				"avatar":             user.Avatar,
				"email":              user.Email,
				"total_points":       int64(0),
				"bounty_points":      int64(0),
				"activity_points":    int64(0),
				"donation_points":    int64(0),
				"completed_bounties": int64(0),
				"last_updated":       time.Now(),
			},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *mongoLeaderboardStore) Replace(ctx context.Context, entry *models.LeaderboardEntry) error {
	entry.LastUpdated = time.Now()
	_, err := s.col.ReplaceOne(ctx,
		bson.M{"user_id": entry.UserID},
		entry,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *mongoLeaderboardStore) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.LeaderboardEntry, error) {
	var entry models.LeaderboardEntry
	err := s.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *mongoLeaderboardStore) Top(ctx context.Context, limit int64) ([]models.LeaderboardEntry, error) {
	findOptions := options.Find().
		SetSort(bson.M{"total_points": -1}).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []models.LeaderboardEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
