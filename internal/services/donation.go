package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/talentaworks/talenta-backend/internal/models"
	"github.com/talentaworks/talenta-backend/internal/store"
)

// DonationService records donations and credits the recipient. Creators get
// the donation bonus through the points engine; other recipients get the
// activity record only, since points accrual is a creator feature.
type DonationService struct {
	donations  store.DonationStore
	users      store.UserStore
	points     *PointsService
	activities *ActivityService
}

func NewDonationService(donations store.DonationStore, users store.UserStore, points *PointsService, activities *ActivityService) *DonationService {
	return &DonationService{donations: donations, users: users, points: points, activities: activities}
}

// Create records a donation from one user to another.
func (s *DonationService) Create(ctx context.Context, fromEmail, toEmail string, amount int64, message string) (*models.Donation, error) {
	if fromEmail == "" || toEmail == "" {
		return nil, fmt.Errorf("%w: fromEmail and toEmail are required", ErrInvalidAward)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be a positive integer", ErrInvalidAward)
	}

	recipient, err := s.users.GetByEmail(ctx, toEmail)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	donation := &models.Donation{
		Reference: uuid.NewString(),
		FromEmail: fromEmail,
		ToEmail:   toEmail,
		Amount:    amount,
		Message:   message,
	}
	if err := s.donations.Create(ctx, donation); err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Received a donation from %s", fromEmail)
	if recipient.IsCreator() {
		if _, err := s.points.Award(ctx, toEmail, models.ActivityDonationReceived, DonationReceivedPoints, description, donation.Reference); err != nil {
			log.Printf("donation award failed for %s: %v", toEmail, err)
		}
	} else if s.activities != nil {
		if _, err := s.activities.Record(ctx, toEmail, models.ActivityDonationReceived, description,
			map[string]interface{}{"amount": amount, "reference": donation.Reference},
		); err != nil {
			log.Printf("failed to record donation activity: %v", err)
		}
	}

	return donation, nil
}

// ListByRecipient returns a recipient's donations newest first.
func (s *DonationService) ListByRecipient(ctx context.Context, toEmail string, limit int64) ([]models.Donation, error) {
	if toEmail == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidAward)
	}
	if limit <= 0 || limit > MaxActivityLimit {
		limit = 50
	}
	return s.donations.ListByRecipient(ctx, toEmail, limit)
}
