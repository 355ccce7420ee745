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

// TypeSummary aggregates recorded activities of one type for a user.
type TypeSummary struct {
	Points int64
	Count  int64
}

type ActivityStore interface {
	Insert(ctx context.Context, activity *models.Activity) error
	// InsertDailyLogin inserts a daily_login record; the unique index on
	// (email, type, day) turns a second claim on the same day into
	// ErrDuplicate.
	InsertDailyLogin(ctx context.Context, activity *models.Activity) error
	// List returns the newest records first, optionally filtered by email.
	List(ctx context.Context, email string, limit, offset int64) ([]models.Activity, error)
	// SummarizeByType sums metadata.points and counts records per activity
	// type for one user. Used by the leaderboard rebuild pass.
	SummarizeByType(ctx context.Context, email string) (map[string]TypeSummary, error)
}

type mongoActivityStore struct {
	col *mongo.Collection
}

func NewActivityStore(db *mongo.Database) ActivityStore {
	return &mongoActivityStore{col: db.Collection("activities")}
}

func (s *mongoActivityStore) Insert(ctx context.Context, activity *models.Activity) error {
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}
	res, err := s.col.InsertOne(ctx, activity)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		activity.ID = oid
	}
	return nil
}

func (s *mongoActivityStore) InsertDailyLogin(ctx context.Context, activity *models.Activity) error {
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}
	activity.Type = models.ActivityDailyLogin
	if activity.Day == "" {
		activity.Day = activity.CreatedAt.Format("2006-01-02")
	}
	res, err := s.col.InsertOne(ctx, activity)
	if err != nil {
		return wrapDup(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		activity.ID = oid
	}
	return nil
}

func (s *mongoActivityStore) List(ctx context.Context, email string, limit, offset int64) ([]models.Activity, error) {
	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}

	findOptions := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	activities := []models.Activity{}
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

func (s *mongoActivityStore) SummarizeByType(ctx context.Context, email string) (map[string]TypeSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"email": email}}},
		{{Key: "$group", Value: bson.M{
			"_id":    "$type",
			"points": bson.M{"$sum": bson.M{"$ifNull": bson.A{"$metadata.points", 0}}},
			"count":  bson.M{"$sum": 1},
		}}},
	}

	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Type   string `bson:"_id"`
		Points int64  `bson:"points"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	summary := make(map[string]TypeSummary, len(rows))
	for _, row := range rows {
		summary[row.Type] = TypeSummary{Points: row.Points, Count: row.Count}
	}
	return summary, nil
}
