package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/talentaworks/talenta-backend/internal/handlers"
)

// Handlers groups everything the router needs.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Users       *handlers.UsersHandler
	Points      *handlers.PointsHandler
	Activities  *handlers.ActivitiesHandler
	Leaderboard *handlers.LeaderboardHandler
	Bounties    *handlers.BountiesHandler
	Donations   *handlers.DonationsHandler
	Upload      *handlers.UploadHandler
	Feed        *handlers.FeedHandler
}

func SetupRoutes(r *chi.Mux, h Handlers) {
	// Auth routes
	r.Post("/api/auth/signup", h.Auth.Signup)
	r.Post("/api/auth/signin", h.Auth.Signin)
	r.Get("/api/auth/me", h.Auth.Me)
	r.Post("/api/auth/signout", h.Auth.Signout)

	// User routes
	r.Put("/api/users/role", h.Users.UpdateRole)
	r.Get("/api/users/profile", h.Users.GetProfile)
	r.Put("/api/users/profile", h.Users.UpdateProfile)

	// Points routes
	r.Post("/api/points", h.Points.Award)
	r.Get("/api/points", h.Points.Get)
	r.Post("/api/points/daily-login", h.Points.DailyLogin)

	// Activity routes
	r.Post("/api/activities", h.Activities.Record)
	r.Get("/api/activities", h.Activities.List)

	// Leaderboard routes
	r.Get("/api/leaderboard", h.Leaderboard.Top)
	r.Post("/api/leaderboard/rebuild", h.Leaderboard.Rebuild)

	// Bounty routes
	r.Post("/api/bounties", h.Bounties.Create)
	r.Get("/api/bounties", h.Bounties.List)
	r.Post("/api/bounties/apply", h.Bounties.Apply)
	r.Post("/api/bounties/complete", h.Bounties.Complete)

	// Donation routes
	r.Post("/api/donations", h.Donations.Create)
	r.Get("/api/donations", h.Donations.List)

	// File upload routes
	r.Post("/api/upload", h.Upload.Upload)

	// Live activity feed (WebSocket)
	r.Get("/ws/feed", h.Feed.Stream)
}
