package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/talentaworks/talenta-backend/internal/models"
)

func newBountyFixture(users ...*models.User) (*BountyService, *fakeBountyStore, *fakeUserStore, *fakeLeaderboardStore) {
	userStore := newFakeUserStore(users...)
	activityStore := newFakeActivityStore()
	bountyStore := newFakeBountyStore()
	boardStore := newFakeLeaderboardStore()
	board := NewLeaderboardService(boardStore, userStore, activityStore)
	points := NewPointsService(userStore, activityStore, board, nil)
	activitySvc := NewActivityService(activityStore, nil)
	svc := NewBountyService(bountyStore, userStore, points, activitySvc)
	return svc, bountyStore, userStore, boardStore
}

func TestCreateBountyRequiresPosterRole(t *testing.T) {
	svc, _, _, _ := newBountyFixture(
		&models.User{Email: "poster@example.com", Username: "poster", Role: models.RoleBountyPoster},
		&models.User{Email: "alice@example.com", Username: "alice", Role: models.RoleCreator},
	)
	ctx := context.Background()

	bounty, err := svc.Create(ctx, "poster@example.com", "Design a logo", "SVG preferred", 50)
	require.NoError(t, err)
	assert.Equal(t, models.BountyStatusOpen, bounty.Status)
	assert.False(t, bounty.ID.IsZero())

	_, err = svc.Create(ctx, "alice@example.com", "Design a logo", "", 50)
	assert.ErrorIs(t, err, ErrNotBountyPoster)

	_, err = svc.Create(ctx, "ghost@example.com", "Design a logo", "", 50)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Create(ctx, "poster@example.com", "Design a logo", "", 0)
	assert.ErrorIs(t, err, ErrInvalidAward)
}

func TestApplyAwardsApplicationPoints(t *testing.T) {
	svc, _, userStore, _ := newBountyFixture(
		&models.User{Email: "poster@example.com", Username: "poster", Role: models.RoleBountyPoster},
		&models.User{Email: "alice@example.com", Username: "alice", Role: models.RoleCreator},
	)
	ctx := context.Background()

	bounty, err := svc.Create(ctx, "poster@example.com", "Design a logo", "", 50)
	require.NoError(t, err)

	app, err := svc.Apply(ctx, bounty.ID.Hex(), "alice@example.com", "I can do this")
	require.NoError(t, err)
	assert.Equal(t, bounty.ID, app.BountyID)

	alice, err := userStore.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(BountyApplicationPoints), alice.Points)

	// Second application to the same bounty is rejected and not re-awarded.
	_, err = svc.Apply(ctx, bounty.ID.Hex(), "alice@example.com", "again")
	assert.ErrorIs(t, err, ErrAlreadyApplied)

	alice, err = userStore.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(BountyApplicationPoints), alice.Points)
}

func TestApplyRejectsNonCreators(t *testing.T) {
	svc, _, _, _ := newBountyFixture(
		&models.User{Email: "poster@example.com", Username: "poster", Role: models.RoleBountyPoster},
		&models.User{Email: "other@example.com", Username: "other", Role: models.RoleBountyPoster},
	)
	ctx := context.Background()

	bounty, err := svc.Create(ctx, "poster@example.com", "Design a logo", "", 50)
	require.NoError(t, err)

	_, err = svc.Apply(ctx, bounty.ID.Hex(), "other@example.com", "")
	assert.ErrorIs(t, err, ErrNotCreator)
}

func TestApplyUnknownBounty(t *testing.T) {
	svc, _, _, _ := newBountyFixture(
		&models.User{Email: "alice@example.com", Username: "alice", Role: models.RoleCreator},
	)

	_, err := svc.Apply(context.Background(), primitive.NewObjectID().Hex(), "alice@example.com", "")
	assert.ErrorIs(t, err, ErrBountyNotFound)

	_, err = svc.Apply(context.Background(), "not-a-hex-id", "alice@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidAward)
}

func TestCompleteAwardsRewardToCreator(t *testing.T) {
	svc, _, userStore, boardStore := newBountyFixture(
		&models.User{Email: "poster@example.com", Username: "poster", Role: models.RoleBountyPoster},
		&models.User{Email: "alice@example.com", Username: "alice", Role: models.RoleCreator},
	)
	ctx := context.Background()

	bounty, err := svc.Create(ctx, "poster@example.com", "Design a logo", "", 50)
	require.NoError(t, err)

	completed, err := svc.Complete(ctx, bounty.ID.Hex(), "poster@example.com", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.BountyStatusCompleted, completed.Status)
	assert.Equal(t, "alice@example.com", completed.CompletedBy)

	alice, err := userStore.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(50), alice.Points)

	entry := boardStore.get("alice@example.com")
	require.NotNil(t, entry)
	assert.Equal(t, int64(50), entry.BountyPoints)
	assert.Equal(t, int64(1), entry.CompletedBounties)

	// A second completion of the same bounty must fail.
	_, err = svc.Complete(ctx, bounty.ID.Hex(), "poster@example.com", "alice@example.com")
	assert.ErrorIs(t, err, ErrBountyClosed)
}

func TestCompleteRequiresOwnership(t *testing.T) {
	svc, _, _, _ := newBountyFixture(
		&models.User{Email: "poster@example.com", Username: "poster", Role: models.RoleBountyPoster},
		&models.User{Email: "alice@example.com", Username: "alice", Role: models.RoleCreator},
	)
	ctx := context.Background()

	bounty, err := svc.Create(ctx, "poster@example.com", "Design a logo", "", 50)
	require.NoError(t, err)

	_, err = svc.Complete(ctx, bounty.ID.Hex(), "someone-else@example.com", "alice@example.com")
	assert.ErrorIs(t, err, ErrNotBountyPoster)
}
