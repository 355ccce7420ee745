package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can pick once after signup. Role stays empty until chosen.
const (
	RoleCreator      = "creator"
	RoleBountyPoster = "bounty_poster"
)

// ValidRole reports whether role is one of the selectable roles.
func ValidRole(role string) bool {
	return role == RoleCreator || role == RoleBountyPoster
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Email    string `bson:"email" json:"email"`
	Username string `bson:"username" json:"username"`
	Name     string `bson:"name,omitempty" json:"name,omitempty"`
	Bio      string `bson:"bio,omitempty" json:"bio,omitempty"`
	Avatar   string `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Password string `bson:"password" json:"-"` // Don't return password in JSON

	// Empty until the user picks creator or bounty_poster.
	Role string `bson:"role,omitempty" json:"role,omitempty"`

	ProfileCompleted bool `bson:"profile_completed" json:"profile_completed"`

	// Cumulative point total. Only the points engine touches this, always
	// through an atomic $inc.
	Points int64 `bson:"points" json:"points"`
}

// IsCreator reports whether the user accrues points toward the leaderboard.
func (u *User) IsCreator() bool {
	return u.Role == RoleCreator
}

// Summary is the safe subset of a user returned by API responses.
func (u *User) Summary() map[string]interface{} {
	return map[string]interface{}{
		"id":                u.ID.Hex(),
		"email":             u.Email,
		"username":          u.Username,
		"name":              u.Name,
		"bio":               u.Bio,
		"avatar":            u.Avatar,
		"role":              u.Role,
		"profile_completed": u.ProfileCompleted,
		"points":            u.Points,
		"created_at":        u.CreatedAt,
	}
}
