package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/talentaworks/talenta-backend/internal/models"
	"github.com/talentaworks/talenta-backend/internal/store"
)

// ErrNotCreator is returned when a leaderboard operation targets a user who
// does not hold the creator role.
var ErrNotCreator = errors.New("user is not a creator")

// LeaderboardService maintains the denormalized per-creator ranking view.
// Incremental updates are best-effort: the projection is advisory and a
// failed upsert is logged, never propagated to the action that triggered it.
// The rebuild pass recomputes an entry from scratch so missed deltas heal.
type LeaderboardService struct {
	entries    store.LeaderboardStore
	users      store.UserStore
	activities store.ActivityStore
}

func NewLeaderboardService(entries store.LeaderboardStore, users store.UserStore, activities store.ActivityStore) *LeaderboardService {
	return &LeaderboardService{entries: entries, users: users, activities: activities}
}

// ApplyAward folds one award into the creator's entry. Total points always
// grow by the award; bounty completions also bump the bounty bucket and the
// completed count, donations go to the donation bucket, everything else to
// the activity bucket.
func (s *LeaderboardService) ApplyAward(ctx context.Context, user *models.User, activityType string, points int64) {
	delta := store.LeaderboardDelta{TotalPoints: points}
	switch activityType {
	case models.ActivityBountyCompletion:
		delta.BountyPoints = points
		delta.CompletedBounties = 1
	case models.ActivityDonationReceived:
		delta.DonationPoints = points
	default:
		delta.ActivityPoints = points
	}

	if err := s.entries.ApplyDelta(ctx, user, delta); err != nil {
		log.Printf("leaderboard update failed for %s: %v", user.Email, err)
	}
}

// EnsureEntry lazily creates a zeroed entry when a user first becomes a
// creator. Best-effort: a failure here never fails the role change.
func (s *LeaderboardService) EnsureEntry(ctx context.Context, user *models.User) {
	if err := s.entries.Ensure(ctx, user); err != nil {
		log.Printf("leaderboard seed failed for %s: %v", user.Email, err)
	}
}

// Top returns up to limit entries ordered by total points with live
// competition ranks: ties share a rank and the next distinct total skips the
// tied positions.
func (s *LeaderboardService) Top(ctx context.Context, limit int64) ([]models.LeaderboardEntry, error) {
	entries, err := s.entries.Top(ctx, limit)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		if i > 0 && entries[i].TotalPoints == entries[i-1].TotalPoints {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = int64(i + 1)
	}
	return entries, nil
}

// Rebuild recomputes one creator's entry from the source of truth: total
// points come from the user document, the per-type buckets from an activity
// aggregation. Idempotent, safe to run at any time.
func (s *LeaderboardService) Rebuild(ctx context.Context, email string) (*models.LeaderboardEntry, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsCreator() {
		return nil, ErrNotCreator
	}

	summary, err := s.activities.SummarizeByType(ctx, email)
	if err != nil {
		return nil, err
	}

	bounty := summary[models.ActivityBountyCompletion]
	donation := summary[models.ActivityDonationReceived]

	entry := &models.LeaderboardEntry{
		UserID:            user.ID,
		Username:          user.Username,
		Name:              user.Name,
		Avatar:            user.Avatar,
		Email:             user.Email,
		TotalPoints:       user.Points,
		BountyPoints:      bounty.Points,
		DonationPoints:    donation.Points,
		ActivityPoints:    user.Points - bounty.Points - donation.Points,
		CompletedBounties: bounty.Count,
	}
	if entry.ActivityPoints < 0 {
		entry.ActivityPoints = 0
	}

	if err := s.entries.Replace(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// StartReconciler launches a background goroutine that periodically rebuilds
// every creator's entry so the projection recovers from missed incremental
// updates. Runs once immediately, then on every tick until ctx is done.
func (s *LeaderboardService) StartReconciler(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		s.reconcileAll(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.reconcileAll(ctx)
			}
		}
	}()
}

func (s *LeaderboardService) reconcileAll(ctx context.Context) {
	creators, err := s.users.ListCreators(ctx)
	if err != nil {
		log.Printf("leaderboard reconcile: list creators failed: %v", err)
		return
	}

	for i := range creators {
		if _, err := s.Rebuild(ctx, creators[i].Email); err != nil {
			log.Printf("leaderboard reconcile: rebuild %s failed: %v", creators[i].Email, err)
		}
	}
}
