package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/talentaworks/talenta-backend/internal/models"
	"github.com/talentaworks/talenta-backend/internal/store"
)

// fakeUserStore is an in-memory UserStore keyed by email.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User

	incrementErr error
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]*models.User)}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		s.users[u.Email] = u
	}
	return s
}

func (s *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Email]; ok {
		return store.ErrDuplicate
	}
	for _, u := range s.users {
		if u.Username == user.Username {
			return store.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	s.users[user.Email] = user
	return nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	copy := *u
	return &copy, nil
}

func (s *fakeUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			copy := *u
			return &copy, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *fakeUserStore) IncrementPoints(ctx context.Context, email string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.incrementErr != nil {
		return 0, s.incrementErr
	}
	u, ok := s.users[email]
	if !ok {
		return 0, store.ErrNotFound
	}
	u.Points += delta
	return u.Points, nil
}

func (s *fakeUserStore) CountWithMorePoints(ctx context.Context, points int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, u := range s.users {
		if u.Points > points {
			n++
		}
	}
	return n, nil
}

func (s *fakeUserStore) UpdateRole(ctx context.Context, email, role string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	u.Role = role
	copy := *u
	return &copy, nil
}

func (s *fakeUserStore) UpdateProfile(ctx context.Context, email string, update store.ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Bio != nil {
		u.Bio = *update.Bio
	}
	if update.Avatar != nil {
		u.Avatar = *update.Avatar
	}
	if update.ProfileCompleted != nil {
		u.ProfileCompleted = *update.ProfileCompleted
	}
	copy := *u
	return &copy, nil
}

func (s *fakeUserStore) ListCreators(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, u := range s.users {
		if u.IsCreator() {
			out = append(out, *u)
		}
	}
	return out, nil
}

// fakeActivityStore records activities in memory and enforces the
// one-daily-login-per-day rule the way the unique index does.
type fakeActivityStore struct {
	mu      sync.Mutex
	records []models.Activity

	insertErr error
}

func newFakeActivityStore() *fakeActivityStore {
	return &fakeActivityStore{}
}

func (s *fakeActivityStore) Insert(ctx context.Context, activity *models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	activity.ID = primitive.NewObjectID()
	s.records = append(s.records, *activity)
	return nil
}

func (s *fakeActivityStore) InsertDailyLogin(ctx context.Context, activity *models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.Email == activity.Email && rec.Type == models.ActivityDailyLogin && rec.Day == activity.Day {
			return store.ErrDuplicate
		}
	}
	activity.ID = primitive.NewObjectID()
	s.records = append(s.records, *activity)
	return nil
}

func (s *fakeActivityStore) List(ctx context.Context, email string, limit, offset int64) ([]models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []models.Activity
	for i := len(s.records) - 1; i >= 0; i-- {
		if email == "" || s.records[i].Email == email {
			matched = append(matched, s.records[i])
		}
	}
	if offset >= int64(len(matched)) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit > 0 && int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *fakeActivityStore) SummarizeByType(ctx context.Context, email string) (map[string]store.TypeSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]store.TypeSummary)
	for _, rec := range s.records {
		if rec.Email != email {
			continue
		}
		summary := out[rec.Type]
		if p, ok := rec.Metadata["points"].(int64); ok {
			summary.Points += p
		}
		summary.Count++
		out[rec.Type] = summary
	}
	return out, nil
}

func (s *fakeActivityStore) byType(activityType string) []models.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Activity
	for _, rec := range s.records {
		if rec.Type == activityType {
			out = append(out, rec)
		}
	}
	return out
}

// fakeLeaderboardStore holds entries keyed by email.
type fakeLeaderboardStore struct {
	mu      sync.Mutex
	entries map[string]*models.LeaderboardEntry

	applyErr error
}

func newFakeLeaderboardStore() *fakeLeaderboardStore {
	return &fakeLeaderboardStore{entries: make(map[string]*models.LeaderboardEntry)}
}

func (s *fakeLeaderboardStore) ApplyDelta(ctx context.Context, user *models.User, delta store.LeaderboardDelta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.applyErr != nil {
		return s.applyErr
	}
	entry, ok := s.entries[user.Email]
	if !ok {
		entry = &models.LeaderboardEntry{
			UserID:   user.ID,
			Username: user.Username,
			Name:     user.Name,
			Avatar:   user.Avatar,
			Email:    user.Email,
		}
		s.entries[user.Email] = entry
	}
	entry.TotalPoints += delta.TotalPoints
	entry.BountyPoints += delta.BountyPoints
	entry.ActivityPoints += delta.ActivityPoints
	entry.DonationPoints += delta.DonationPoints
	entry.CompletedBounties += delta.CompletedBounties
	return nil
}

func (s *fakeLeaderboardStore) Ensure(ctx context.Context, user *models.User) error {
	return s.ApplyDelta(ctx, user, store.LeaderboardDelta{})
}

func (s *fakeLeaderboardStore) Replace(ctx context.Context, entry *models.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := *entry
	s.entries[entry.Email] = &copy
	return nil
}

func (s *fakeLeaderboardStore) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.LeaderboardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.entries {
		if entry.UserID == userID {
			copy := *entry
			return &copy, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *fakeLeaderboardStore) Top(ctx context.Context, limit int64) ([]models.LeaderboardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.LeaderboardEntry
	for _, entry := range s.entries {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalPoints != out[j].TotalPoints {
			return out[i].TotalPoints > out[j].TotalPoints
		}
		return strings.Compare(out[i].Email, out[j].Email) < 0
	})
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeLeaderboardStore) get(email string) *models.LeaderboardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.entries[email]; ok {
		copy := *entry
		return &copy
	}
	return nil
}

// fakeBountyStore keeps bounties and applications in memory.
type fakeBountyStore struct {
	mu       sync.Mutex
	bounties map[primitive.ObjectID]*models.Bounty
	apps     []models.BountyApplication
}

func newFakeBountyStore() *fakeBountyStore {
	return &fakeBountyStore{bounties: make(map[primitive.ObjectID]*models.Bounty)}
}

func (s *fakeBountyStore) Create(ctx context.Context, bounty *models.Bounty) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bounty.ID = primitive.NewObjectID()
	if bounty.Status == "" {
		bounty.Status = models.BountyStatusOpen
	}
	copy := *bounty
	s.bounties[bounty.ID] = &copy
	return nil
}

func (s *fakeBountyStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Bounty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bounties[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copy := *b
	return &copy, nil
}

func (s *fakeBountyStore) List(ctx context.Context, status string, limit int64) ([]models.Bounty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Bounty
	for _, b := range s.bounties {
		if status == "" || b.Status == status {
			out = append(out, *b)
		}
	}
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeBountyStore) Complete(ctx context.Context, id primitive.ObjectID, completedBy string) (*models.Bounty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bounties[id]
	if !ok || b.Status != models.BountyStatusOpen {
		return nil, store.ErrNotFound
	}
	b.Status = models.BountyStatusCompleted
	b.CompletedBy = completedBy
	copy := *b
	return &copy, nil
}

func (s *fakeBountyStore) Apply(ctx context.Context, application *models.BountyApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.apps {
		if a.BountyID == application.BountyID && a.ApplicantEmail == application.ApplicantEmail {
			return store.ErrDuplicate
		}
	}
	application.ID = primitive.NewObjectID()
	s.apps = append(s.apps, *application)
	return nil
}

// fakeDonationStore keeps donations in memory, newest first.
type fakeDonationStore struct {
	mu        sync.Mutex
	donations []models.Donation
}

func newFakeDonationStore() *fakeDonationStore {
	return &fakeDonationStore{}
}

func (s *fakeDonationStore) Create(ctx context.Context, donation *models.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	donation.ID = primitive.NewObjectID()
	s.donations = append([]models.Donation{*donation}, s.donations...)
	return nil
}

func (s *fakeDonationStore) ListByRecipient(ctx context.Context, toEmail string, limit int64) ([]models.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Donation
	for _, d := range s.donations {
		if d.ToEmail == toEmail {
			out = append(out, d)
		}
	}
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

var errStoreDown = errors.New("store unavailable")
