package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/talentaworks/talenta-backend/internal/models"
	"github.com/talentaworks/talenta-backend/internal/store"
	"github.com/talentaworks/talenta-backend/pkg/utils"
)

var (
	// ErrInvalidCredentials is returned on a failed signin.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when a signup email already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidRole is returned for a role outside the allowed set.
	ErrInvalidRole = errors.New("role must be creator or bounty_poster")
	// ErrInvalidSignup is returned when a signup request fails validation.
	ErrInvalidSignup = errors.New("invalid signup")
)

// UserService owns account lifecycle: signup, signin, role selection, and
// profile management. Point-worthy side effects (profile completion, the
// creator leaderboard seed) are delegated to the points and leaderboard
// services.
type UserService struct {
	users  store.UserStore
	points *PointsService
	board  *LeaderboardService
}

func NewUserService(users store.UserStore, points *PointsService, board *LeaderboardService) *UserService {
	return &UserService{users: users, points: points, board: board}
}

// Register creates an account. When no username is supplied one is derived
// from the email's local part; either way the username must be unique.
func (s *UserService) Register(ctx context.Context, name, username, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidSignup)
	}

	if username == "" {
		username = utils.UsernameFromEmail(email)
	} else {
		username = utils.NormalizeUsername(username)
		if err := utils.ValidateUsername(username); err != nil {
			return nil, err
		}
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Username: username,
		Name:     name,
		Password: hashed,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Authenticate verifies email + password.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	valid, err := utils.VerifyPassword(password, user.Password)
	if err != nil || !valid {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Get fetches a user by email.
func (s *UserService) Get(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateRole sets the user's role. The first switch to creator lazily seeds
// the leaderboard entry; the role change succeeds even when that seed fails.
func (s *UserService) UpdateRole(ctx context.Context, email, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	user, err := s.users.UpdateRole(ctx, email, role)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.IsCreator() && s.board != nil {
		s.board.EnsureEntry(ctx, user)
	}
	return user, nil
}

// UpdateProfile applies profile edits. When name, bio, and avatar are all
// present for the first time the profile counts as completed: the flag flips
// on and the one-time completion bonus is awarded.
func (s *UserService) UpdateProfile(ctx context.Context, email string, update store.ProfileUpdate) (*models.User, error) {
	current, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	name := pick(update.Name, current.Name)
	bio := pick(update.Bio, current.Bio)
	avatar := pick(update.Avatar, current.Avatar)

	firstCompletion := false
	if !current.ProfileCompleted && name != "" && bio != "" && avatar != "" {
		firstCompletion = true
		completed := true
		update.ProfileCompleted = &completed
	}

	user, err := s.users.UpdateProfile(ctx, email, update)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if firstCompletion && s.points != nil {
		if _, err := s.points.Award(ctx, email, models.ActivityProfileCompletion, ProfileCompletionPoints, "Completed profile", ""); err != nil {
			// Profile save already succeeded; the award is advisory here.
			log.Printf("profile completion award failed for %s: %v", email, err)
		}
	}

	return user, nil
}

func pick(override *string, fallback string) string {
	if override != nil {
		return *override
	}
	return fallback
}
