package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/talentaworks/talenta-backend/internal/models"
	"github.com/talentaworks/talenta-backend/internal/store"
)

var (
	// ErrNotBountyPoster is returned when a non-poster tries to manage bounties.
	ErrNotBountyPoster = errors.New("only bounty posters can do this")
	// ErrBountyNotFound is returned for a missing bounty id.
	ErrBountyNotFound = errors.New("bounty not found")
	// ErrBountyClosed is returned when acting on a bounty that is no longer open.
	ErrBountyClosed = errors.New("bounty is not open")
	// ErrAlreadyApplied is returned on a second application to the same bounty.
	ErrAlreadyApplied = errors.New("already applied to this bounty")
)

// BountyService handles bounty posting, applications, and completion. Point
// awards ride on the points engine so the leaderboard and activity log stay
// consistent with every other award path.
type BountyService struct {
	bounties   store.BountyStore
	users      store.UserStore
	points     *PointsService
	activities *ActivityService
}

func NewBountyService(bounties store.BountyStore, users store.UserStore, points *PointsService, activities *ActivityService) *BountyService {
	return &BountyService{bounties: bounties, users: users, points: points, activities: activities}
}

// Create posts a new bounty. The poster must exist and hold the
// bounty_poster role.
func (s *BountyService) Create(ctx context.Context, posterEmail, title, description string, reward int64) (*models.Bounty, error) {
	if posterEmail == "" || title == "" {
		return nil, fmt.Errorf("%w: email and title are required", ErrInvalidAward)
	}
	if reward <= 0 {
		return nil, fmt.Errorf("%w: reward must be a positive integer", ErrInvalidAward)
	}

	poster, err := s.users.GetByEmail(ctx, posterEmail)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if poster.Role != models.RoleBountyPoster {
		return nil, ErrNotBountyPoster
	}

	bounty := &models.Bounty{
		Title:       title,
		Description: description,
		Reward:      reward,
		PosterEmail: posterEmail,
	}
	if err := s.bounties.Create(ctx, bounty); err != nil {
		return nil, err
	}

	if s.activities != nil {
		if _, err := s.activities.Record(ctx, posterEmail, models.ActivityBountyPosted,
			fmt.Sprintf("Posted bounty %q", title),
			map[string]interface{}{"bounty_id": bounty.ID.Hex(), "reward": reward},
		); err != nil {
			log.Printf("failed to record bounty_posted activity: %v", err)
		}
	}

	return bounty, nil
}

// List returns bounties newest first, optionally filtered by status.
func (s *BountyService) List(ctx context.Context, status string, limit int64) ([]models.Bounty, error) {
	if limit <= 0 || limit > MaxActivityLimit {
		limit = 50
	}
	return s.bounties.List(ctx, status, limit)
}

// Apply registers a creator's application for an open bounty and awards the
// application points.
func (s *BountyService) Apply(ctx context.Context, bountyID, applicantEmail, message string) (*models.BountyApplication, error) {
	if bountyID == "" || applicantEmail == "" {
		return nil, fmt.Errorf("%w: bountyId and email are required", ErrInvalidAward)
	}
	id, err := primitive.ObjectIDFromHex(bountyID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid bounty id", ErrInvalidAward)
	}

	applicant, err := s.users.GetByEmail(ctx, applicantEmail)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !applicant.IsCreator() {
		return nil, ErrNotCreator
	}

	bounty, err := s.bounties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrBountyNotFound
		}
		return nil, err
	}
	if bounty.Status != models.BountyStatusOpen {
		return nil, ErrBountyClosed
	}

	application := &models.BountyApplication{
		BountyID:       id,
		ApplicantEmail: applicantEmail,
		Message:        message,
	}
	if err := s.bounties.Apply(ctx, application); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}

	if _, err := s.points.Award(ctx, applicantEmail, models.ActivityBountyApplication, BountyApplicationPoints,
		fmt.Sprintf("Applied to bounty %q", bounty.Title), bounty.ID.Hex()); err != nil {
		log.Printf("bounty application award failed for %s: %v", applicantEmail, err)
	}

	return application, nil
}

// Complete lets the poster mark their bounty finished by a creator. The
// bounty's reward is granted as bounty completion points, which feeds both
// the creator's total and the bounty bucket on the leaderboard.
func (s *BountyService) Complete(ctx context.Context, bountyID, posterEmail, completedBy string) (*models.Bounty, error) {
	if bountyID == "" || posterEmail == "" || completedBy == "" {
		return nil, fmt.Errorf("%w: bountyId, email, and completedBy are required", ErrInvalidAward)
	}
	id, err := primitive.ObjectIDFromHex(bountyID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid bounty id", ErrInvalidAward)
	}

	bounty, err := s.bounties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrBountyNotFound
		}
		return nil, err
	}
	if bounty.PosterEmail != posterEmail {
		return nil, ErrNotBountyPoster
	}

	completed, err := s.bounties.Complete(ctx, id, completedBy)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrBountyClosed
		}
		return nil, err
	}

	if _, err := s.points.Award(ctx, completedBy, models.ActivityBountyCompletion, completed.Reward,
		fmt.Sprintf("Completed bounty %q", completed.Title), completed.ID.Hex()); err != nil {
		log.Printf("bounty completion award failed for %s: %v", completedBy, err)
		return completed, nil
	}

	return completed, nil
}
