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

type DonationStore interface {
	Create(ctx context.Context, donation *models.Donation) error
	// ListByRecipient returns a recipient's donations newest first.
	ListByRecipient(ctx context.Context, toEmail string, limit int64) ([]models.Donation, error)
}

type mongoDonationStore struct {
	col *mongo.Collection
}

func NewDonationStore(db *mongo.Database) DonationStore {
	return &mongoDonationStore{col: db.Collection("donations")}
}

func (s *mongoDonationStore) Create(ctx context.Context, donation *models.Donation) error {
	if donation.CreatedAt.IsZero() {
		donation.CreatedAt = time.Now()
	}
	res, err := s.col.InsertOne(ctx, donation)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		donation.ID = oid
	}
	return nil
}

func (s *mongoDonationStore) ListByRecipient(ctx context.Context, toEmail string, limit int64) ([]models.Donation, error) {
	findOptions := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, bson.M{"to_email": toEmail}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	donations := []models.Donation{}
	if err := cursor.All(ctx, &donations); err != nil {
		return nil, err
	}
	return donations, nil
}
