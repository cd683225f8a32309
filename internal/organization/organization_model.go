package organization

import (
	"gorm.io/gorm"

	"github.com/tourneo/tourneo/internal/models"
)

// Membership roles within an organization.
const (
	RoleSuperManager = "super_manager"
	RoleManager      = "manager"
	RoleFollower     = "follower"
)

// IsManagerRole reports whether a role carries tournament management rights.
func IsManagerRole(role string) bool {
	return role == RoleManager || role == RoleSuperManager
}

// Organization is a tenant grouping tournaments and memberships.
type Organization struct {
	gorm.Model
	Name          string         `json:"name" gorm:"not null"`
	Slug          string         `json:"slug" gorm:"uniqueIndex;not null"`
	DefaultGameID *uint          `json:"default_game_id,omitempty" gorm:"index"`
	Branding      models.JSONMap `json:"branding,omitempty" gorm:"type:json"`

	Memberships []Membership `json:"memberships,omitempty" gorm:"foreignKey:OrgID"`
}

// Membership is a user's standing within one organization. One row per
// (org, user) pair; the organization creator is seeded as super_manager.
type Membership struct {
	gorm.Model
	OrgID  uint   `json:"org_id" gorm:"uniqueIndex:idx_org_user;not null"`
	UserID uint   `json:"user_id" gorm:"uniqueIndex:idx_org_user;not null"`
	Role   string `json:"role" gorm:"not null;default:'follower'"`
}
