package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/talentaworks/talenta-backend/internal/models"
	"github.com/talentaworks/talenta-backend/internal/store"
)

const (
	// DefaultActivityLimit is used when a list request does not set one.
	DefaultActivityLimit = 10
	// MaxActivityLimit caps a single page.
	MaxActivityLimit = 100
)

// ActivityService records and lists the append-only activity log.
type ActivityService struct {
	activities store.ActivityStore
	feed       *FeedService
}

func NewActivityService(activities store.ActivityStore, feed *FeedService) *ActivityService {
	return &ActivityService{activities: activities, feed: feed}
}

// Record inserts one activity. Validation is presence-only: email and type
// must be set, description and metadata are free-form.
func (s *ActivityService) Record(ctx context.Context, email, activityType, description string, metadata map[string]interface{}) (*models.Activity, error) {
	if email == "" || activityType == "" {
		return nil, fmt.Errorf("%w: email and type are required", ErrInvalidAward)
	}

	activity := &models.Activity{
		Email:       email,
		Type:        activityType,
		Description: description,
		Metadata:    metadata,
		CreatedAt:   time.Now(),
	}
	if err := s.activities.Insert(ctx, activity); err != nil {
		return nil, err
	}

	if s.feed != nil {
		event := FeedEvent{
			Type:        activity.Type,
			Email:       activity.Email,
			Description: activity.Description,
			Timestamp:   activity.CreatedAt,
		}
		if err := s.feed.Publish(ctx, event); err != nil {
			log.Printf("failed to publish activity feed event: %v", err)
		}
	}

	return activity, nil
}

// List returns the most recent activities, newest first, optionally filtered
// by user email.
func (s *ActivityService) List(ctx context.Context, email string, limit, offset int64) ([]models.Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		limit = MaxActivityLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.activities.List(ctx, email, limit, offset)
}
