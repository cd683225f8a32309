package registration

import (
	"gorm.io/gorm"

	"github.com/tourneo/tourneo/internal/models"
)

const (
	StatusRegistered = "registered"
	StatusCancelled  = "cancelled"
)

// Registration enrolls a user (optionally via a team) in a category. At most
// one registered row may exist per (tournament, category, user); cancelled
// rows do not count against that.
type Registration struct {
	gorm.Model
	TournamentID uint           `gorm:"not null;index" json:"tournament_id"`
	CategoryID   uint           `gorm:"not null;index" json:"category_id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`
	TeamID       *uint          `json:"team_id,omitempty"`
	Status       string         `gorm:"not null;default:'registered'" json:"status"`
	Paid         bool           `gorm:"not null;default:false" json:"paid"`
	PaymentInfo  models.JSONMap `gorm:"type:json" json:"payment_info,omitempty"`
	PaymentRef   string         `json:"payment_ref,omitempty"`
}
