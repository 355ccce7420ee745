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

// ProfileUpdate carries the mutable profile fields. Nil means "leave as is".
type ProfileUpdate struct {
	Name             *string
	Bio              *string
	Avatar           *string
	ProfileCompleted *bool
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// IncrementPoints atomically adds delta to the user's point total and
	// returns the new total. This is the only write path for points.
	IncrementPoints(ctx context.Context, email string, delta int64) (int64, error)
	// CountWithMorePoints counts users with strictly more points.
	CountWithMorePoints(ctx context.Context, points int64) (int64, error)
	UpdateRole(ctx context.Context, email, role string) (*models.User, error)
	UpdateProfile(ctx context.Context, email string, update ProfileUpdate) (*models.User, error)
	ListCreators(ctx context.Context) ([]models.User, error)
}

type mongoUserStore struct {
	col *mongo.Collection
}

func NewUserStore(db *mongo.Database) UserStore {
	return &mongoUserStore{col: db.Collection("users")}
}

func (s *mongoUserStore) Create(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	res, err := s.col.InsertOne(ctx, user)
	if err != nil {
		return wrapDup(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (s *mongoUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *mongoUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *mongoUserStore) IncrementPoints(ctx context.Context, email string, delta int64) (int64, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"email": email},
		bson.M{
			"$inc": bson.M{"points": delta},
			"$set": bson.M{"updated_at": time.Now()},
		},
		opts,
	).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return user.Points, nil
}

func (s *mongoUserStore) CountWithMorePoints(ctx context.Context, points int64) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"points": bson.M{"$gt": points}})
}

func (s *mongoUserStore) UpdateRole(ctx context.Context, email, role string) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"role": role, "updated_at": time.Now()}},
		opts,
	).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *mongoUserStore) UpdateProfile(ctx context.Context, email string, update ProfileUpdate) (*models.User, error) {
	set := bson.M{"updated_at": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Bio != nil {
		set["bio"] = *update.Bio
	}
	if update.Avatar != nil {
		set["avatar"] = *update.Avatar
	}
	if update.ProfileCompleted != nil {
		set["profile_completed"] = *update.ProfileCompleted
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := s.col.FindOneAndUpdate(ctx, bson.M{"email": email}, bson.M{"$set": set}, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *mongoUserStore) ListCreators(ctx context.Context) ([]models.User, error) {
	cursor, err := s.col.Find(ctx, bson.M{"role": models.RoleCreator})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
