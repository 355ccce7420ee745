package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentaworks/talenta-backend/internal/models"
)

func newPointsFixture(users ...*models.User) (*PointsService, *fakeUserStore, *fakeActivityStore, *fakeLeaderboardStore) {
	userStore := newFakeUserStore(users...)
	activityStore := newFakeActivityStore()
	boardStore := newFakeLeaderboardStore()
	board := NewLeaderboardService(boardStore, userStore, activityStore)
	svc := NewPointsService(userStore, activityStore, board, nil)
	return svc, userStore, activityStore, boardStore
}

func TestAwardIncrementsAndRecordsActivity(t *testing.T) {
	svc, _, activities, board := newPointsFixture(&models.User{
		Email:    "alice@example.com",
		Username: "alice",
		Role:     models.RoleCreator,
		Points:   20,
	})

	total, err := svc.Award(context.Background(), "alice@example.com", models.ActivityBountyApplication, 5, "Applied to a bounty", "")
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)

	recs := activities.byType(models.ActivityBountyApplication)
	require.Len(t, recs, 1)
	assert.Equal(t, "alice@example.com", recs[0].Email)
	assert.Equal(t, int64(5), recs[0].Metadata["points"])

	entry := board.get("alice@example.com")
	require.NotNil(t, entry)
	assert.Equal(t, int64(5), entry.TotalPoints)
	assert.Equal(t, int64(5), entry.ActivityPoints)
	assert.Equal(t, int64(0), entry.BountyPoints)
}

func TestAwardValidation(t *testing.T) {
	svc, _, _, _ := newPointsFixture(&models.User{Email: "alice@example.com", Role: models.RoleCreator})

	cases := []struct {
		name        string
		email       string
		kind        string
		points      int64
		description string
	}{
		{"missing email", "", models.ActivityDailyLogin, 1, "login"},
		{"missing type", "alice@example.com", "", 1, "login"},
		{"missing description", "alice@example.com", models.ActivityDailyLogin, 1, ""},
		{"zero points", "alice@example.com", models.ActivityDailyLogin, 0, "login"},
		{"negative points", "alice@example.com", models.ActivityDailyLogin, -3, "login"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Award(context.Background(), tc.email, tc.kind, tc.points, tc.description, "")
			assert.ErrorIs(t, err, ErrInvalidAward)
		})
	}
}

func TestAwardUnknownUser(t *testing.T) {
	svc, _, _, _ := newPointsFixture()

	_, err := svc.Award(context.Background(), "ghost@example.com", models.ActivityDailyLogin, 1, "login", "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAwardBountyCompletionBuckets(t *testing.T) {
	svc, _, _, board := newPointsFixture(&models.User{
		Email:    "alice@example.com",
		Username: "alice",
		Role:     models.RoleCreator,
	})

	_, err := svc.Award(context.Background(), "alice@example.com", models.ActivityBountyCompletion, 50, "Completed a bounty", "")
	require.NoError(t, err)

	entry := board.get("alice@example.com")
	require.NotNil(t, entry)
	assert.Equal(t, int64(50), entry.TotalPoints)
	assert.Equal(t, int64(50), entry.BountyPoints)
	assert.Equal(t, int64(1), entry.CompletedBounties)
	assert.Equal(t, int64(0), entry.ActivityPoints)
}

func TestAwardNonCreatorSkipsLeaderboard(t *testing.T) {
	svc, users, _, board := newPointsFixture(&models.User{
		Email:    "bob@example.com",
		Username: "bob",
		Role:     models.RoleBountyPoster,
	})

	total, err := svc.Award(context.Background(), "bob@example.com", models.ActivityProfileUpdate, 5, "Updated profile", "")
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	assert.Nil(t, board.get("bob@example.com"))

	u, err := users.GetByEmail(context.Background(), "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(5), u.Points)
}

func TestAwardLeaderboardFailureDoesNotFailAward(t *testing.T) {
	svc, _, _, board := newPointsFixture(&models.User{
		Email:    "alice@example.com",
		Username: "alice",
		Role:     models.RoleCreator,
	})
	board.applyErr = errStoreDown

	total, err := svc.Award(context.Background(), "alice@example.com", models.ActivityProfileUpdate, 5, "Updated profile", "")
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
}

func TestDailyLoginFirstClaimWithCatchUpBonus(t *testing.T) {
	svc, _, activities, _ := newPointsFixture(&models.User{
		Email:    "alice@example.com",
		Username: "alice",
		Role:     models.RoleCreator,
		Points:   0,
	})

	res, err := svc.AwardDailyLogin(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.DailyPoints)
	assert.Equal(t, int64(10), res.BonusPoints)
	assert.Equal(t, int64(11), res.TotalPoints)
	assert.False(t, res.AlreadyClaimed)

	// The bonus rides on the increment; only the daily claim is recorded.
	assert.Len(t, activities.byType(models.ActivityDailyLogin), 1)
}

func TestDailyLoginSecondClaimSameDay(t *testing.T) {
	svc, _, activities, _ := newPointsFixture(&models.User{
		Email:    "alice@example.com",
		Username: "alice",
		Role:     models.RoleCreator,
	})

	first, err := svc.AwardDailyLogin(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.False(t, first.AlreadyClaimed)

	second, err := svc.AwardDailyLogin(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.True(t, second.AlreadyClaimed)
	assert.Equal(t, int64(0), second.DailyPoints)
	assert.Equal(t, int64(0), second.BonusPoints)
	assert.Equal(t, first.TotalPoints, second.TotalPoints)

	assert.Len(t, activities.byType(models.ActivityDailyLogin), 1)
}

func TestDailyLoginBonusWithoutNewClaim(t *testing.T) {
	// A zero-point creator whose daily claim is already recorded still gets
	// the one-time catch-up bonus.
	svc, users, activities, _ := newPointsFixture(&models.User{
		Email:    "alice@example.com",
		Username: "alice",
		Role:     models.RoleCreator,
		Points:   0,
	})

	first, err := svc.AwardDailyLogin(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, int64(1), first.DailyPoints)

	// Roll points back to zero to simulate an account repaired out of band.
	_, err = users.IncrementPoints(context.Background(), "alice@example.com", -11)
	require.NoError(t, err)

	res, err := svc.AwardDailyLogin(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.DailyPoints)
	assert.Equal(t, int64(10), res.BonusPoints)
	assert.Equal(t, int64(10), res.TotalPoints)
	assert.False(t, res.AlreadyClaimed)

	assert.Len(t, activities.byType(models.ActivityDailyLogin), 1)
}

func TestDailyLoginNonCreatorGetsNoBonus(t *testing.T) {
	svc, _, _, board := newPointsFixture(&models.User{
		Email:    "bob@example.com",
		Username: "bob",
		Role:     models.RoleBountyPoster,
		Points:   0,
	})

	res, err := svc.AwardDailyLogin(context.Background(), "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.DailyPoints)
	assert.Equal(t, int64(0), res.BonusPoints)
	assert.Equal(t, int64(1), res.TotalPoints)

	assert.Nil(t, board.get("bob@example.com"))
}

func TestDailyLoginUnknownUser(t *testing.T) {
	svc, _, _, _ := newPointsFixture()

	_, err := svc.AwardDailyLogin(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPointsAndRankCompetitionRanking(t *testing.T) {
	svc, _, _, _ := newPointsFixture(
		&models.User{Email: "a@example.com", Username: "a", Role: models.RoleCreator, Points: 100},
		&models.User{Email: "b@example.com", Username: "b", Role: models.RoleCreator, Points: 100},
		&models.User{Email: "c@example.com", Username: "c", Role: models.RoleCreator, Points: 50},
	)

	for email, want := range map[string]int64{
		"a@example.com": 1,
		"b@example.com": 1,
		"c@example.com": 3,
	} {
		pr, err := svc.PointsAndRank(context.Background(), email)
		require.NoError(t, err)
		assert.Equal(t, want, pr.Rank, "rank for %s", email)
	}
}

func TestPointsAndRankUnknownUser(t *testing.T) {
	svc, _, _, _ := newPointsFixture()

	pr, err := svc.PointsAndRank(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(0), pr.Points)
	assert.Equal(t, int64(0), pr.Rank)
}
