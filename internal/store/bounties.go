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

type BountyStore interface {
	Create(ctx context.Context, bounty *models.Bounty) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Bounty, error)
	// List returns bounties newest first, optionally filtered by status.
	List(ctx context.Context, status string, limit int64) ([]models.Bounty, error)
	// Complete flips an open bounty to completed and records who finished
	// it. Returns ErrNotFound when the bounty is missing or already closed.
	Complete(ctx context.Context, id primitive.ObjectID, completedBy string) (*models.Bounty, error)
	Apply(ctx context.Context, application *models.BountyApplication) error
}

type mongoBountyStore struct {
	col  *mongo.Collection
	apps *mongo.Collection
}

func NewBountyStore(db *mongo.Database) BountyStore {
	return &mongoBountyStore{
		col:  db.Collection("bounties"),
		apps: db.Collection("bounty_applications"),
	}
}

func (s *mongoBountyStore) Create(ctx context.Context, bounty *models.Bounty) error {
	now := time.Now()
	bounty.CreatedAt = now
	bounty.UpdatedAt = now
	bounty.Status = models.BountyStatusOpen
	res, err := s.col.InsertOne(ctx, bounty)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		bounty.ID = oid
	}
	return nil
}

func (s *mongoBountyStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Bounty, error) {
	var bounty models.Bounty
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&bounty)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &bounty, nil
}

func (s *mongoBountyStore) List(ctx context.Context, status string, limit int64) ([]models.Bounty, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	// "open" sorts after "completed", so descending status puts open
	// bounties first.
	findOptions := options.Find().
		SetSort(bson.D{{Key: "status", Value: -1}, {Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bounties := []models.Bounty{}
	if err := cursor.All(ctx, &bounties); err != nil {
		return nil, err
	}
	return bounties, nil
}

func (s *mongoBountyStore) Complete(ctx context.Context, id primitive.ObjectID, completedBy string) (*models.Bounty, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var bounty models.Bounty
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": models.BountyStatusOpen},
		bson.M{"$set": bson.M{
			"status":       models.BountyStatusCompleted,
			"completed_by": completedBy,
			"updated_at":   time.Now(),
		}},
		opts,
	).Decode(&bounty)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &bounty, nil
}

func (s *mongoBountyStore) Apply(ctx context.Context, application *models.BountyApplication) error {
	if application.CreatedAt.IsZero() {
		application.CreatedAt = time.Now()
	}
	res, err := s.apps.InsertOne(ctx, application)
	if err != nil {
		return wrapDup(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		application.ID = oid
	}
	return nil
}
