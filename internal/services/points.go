package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/talentaworks/talenta-backend/internal/models"
	"github.com/talentaworks/talenta-backend/internal/store"
)

// Point amounts for the standard awards. Only the daily amount and the
// catch-up bonus are load-bearing; the rest are product defaults.
const (
	DailyLoginPoints        = 1
	ProfileCompletionPoints = 10
	BountyApplicationPoints = 5
	DonationReceivedPoints  = 5
)

var (
	// ErrInvalidAward is returned when an award request fails validation.
	ErrInvalidAward = errors.New("invalid award")
	// ErrUserNotFound is returned when the award target does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// DailyLoginResult reports what a daily-login call granted.
type DailyLoginResult struct {
	DailyPoints    int64 `json:"dailyPoints"`
	BonusPoints    int64 `json:"bonusPoints"`
	TotalPoints    int64 `json:"totalPoints"`
	AlreadyClaimed bool  `json:"alreadyClaimed"`
}

// PointsRank is the live points + rank snapshot for one user.
type PointsRank struct {
	Email  string `json:"email"`
	Points int64  `json:"points"`
	Rank   int64  `json:"rank"`
}

// leaderboardSink receives best-effort projection updates. Implementations
// must swallow their own failures; a broken projection never fails an award.
type leaderboardSink interface {
	ApplyAward(ctx context.Context, user *models.User, activityType string, points int64)
}

// PointsService is the points engine: it decides what an action is worth,
// applies the atomic increment, appends the activity record, and nudges the
// leaderboard projection.
type PointsService struct {
	users      store.UserStore
	activities store.ActivityStore
	board      leaderboardSink
	feed       *FeedService
}

func NewPointsService(users store.UserStore, activities store.ActivityStore, board leaderboardSink, feed *FeedService) *PointsService {
	return &PointsService{users: users, activities: activities, board: board, feed: feed}
}

// Award grants points points of type activityType to the user with the given
// email and returns the new cumulative total. The user increment, the
// activity insert, and the leaderboard update are three separate writes; a
// failure after the increment leaves the advisory records stale rather than
// rolling the points back.
func (s *PointsService) Award(ctx context.Context, email, activityType string, points int64, description, contextID string) (int64, error) {
	if email == "" || activityType == "" || description == "" {
		return 0, fmt.Errorf("%w: email, type, and description are required", ErrInvalidAward)
	}
	if points <= 0 {
		return 0, fmt.Errorf("%w: points must be a positive integer", ErrInvalidAward)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	total, err := s.users.IncrementPoints(ctx, email, points)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	activity := &models.Activity{
		Email:       email,
		Type:        activityType,
		Description: description,
		Metadata:    awardMetadata(points, contextID),
		CreatedAt:   time.Now(),
	}
	if err := s.activities.Insert(ctx, activity); err != nil {
		// Points are already applied; surface the failure without undoing them.
		return 0, fmt.Errorf("record activity: %w", err)
	}

	if user.IsCreator() && s.board != nil {
		s.board.ApplyAward(ctx, user, activityType, points)
	}

	s.publish(ctx, user, activity, points)

	return total, nil
}

// AwardDailyLogin grants the once-per-day login point. The day boundary is
// local midnight and idempotency comes from the storage layer: the insert of
// the daily_login record is rejected by a unique index when today's record
// already exists, so concurrent claims cannot both win.
//
// Independently of the daily state, a creator with a username and exactly
// zero points gets a one-time 10 point catch-up bonus (repairs accounts
// created before profile-completion awards existed). The bonus rides on the
// same increment and does not get its own activity record.
func (s *PointsService) AwardDailyLogin(ctx context.Context, email string) (*DailyLoginResult, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidAward)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var bonus int64
	if user.IsCreator() && user.Username != "" && user.Points == 0 {
		bonus = ProfileCompletionPoints
	}

	now := time.Now()
	activity := &models.Activity{
		Email:       email,
		Type:        models.ActivityDailyLogin,
		Description: "Daily login reward",
		Metadata:    awardMetadata(DailyLoginPoints, ""),
		Day:         now.Format("2006-01-02"),
		CreatedAt:   now,
	}

	var daily int64
	switch err := s.activities.InsertDailyLogin(ctx, activity); {
	case err == nil:
		daily = DailyLoginPoints
	case errors.Is(err, store.ErrDuplicate):
		daily = 0
	default:
		return nil, err
	}

	combined := daily + bonus
	if combined == 0 {
		return &DailyLoginResult{TotalPoints: user.Points, AlreadyClaimed: true}, nil
	}

	total, err := s.users.IncrementPoints(ctx, email, combined)
	if err != nil {
		return nil, err
	}

	if user.IsCreator() && s.board != nil {
		s.board.ApplyAward(ctx, user, models.ActivityDailyLogin, combined)
	}

	if daily > 0 {
		s.publish(ctx, user, activity, daily)
	}

	return &DailyLoginResult{DailyPoints: daily, BonusPoints: bonus, TotalPoints: total}, nil
}

// PointsAndRank returns the user's current points and 1-based competition
// rank, recomputed live. Unknown users report rank 0 and points 0.
func (s *PointsService) PointsAndRank(ctx context.Context, email string) (*PointsRank, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &PointsRank{Email: email}, nil
		}
		return nil, err
	}

	higher, err := s.users.CountWithMorePoints(ctx, user.Points)
	if err != nil {
		return nil, err
	}

	return &PointsRank{Email: email, Points: user.Points, Rank: higher + 1}, nil
}

func (s *PointsService) publish(ctx context.Context, user *models.User, activity *models.Activity, points int64) {
	if s.feed == nil {
		return
	}
	event := FeedEvent{
		Type:        activity.Type,
		Email:       user.Email,
		Username:    user.Username,
		Description: activity.Description,
		Points:      points,
		Timestamp:   activity.CreatedAt,
	}
	if err := s.feed.Publish(ctx, event); err != nil {
		log.Printf("failed to publish activity feed event: %v", err)
	}
}

func awardMetadata(points int64, contextID string) map[string]interface{} {
	metadata := map[string]interface{}{"points": points}
	if contextID != "" {
		metadata["context_id"] = contextID
	}
	return metadata
}
