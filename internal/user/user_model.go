package user

import (
	"gorm.io/gorm"

	"github.com/tourneo/tourneo/internal/models"
)

// User is an account holder. Identity (email) is immutable after registration;
// profile fields are mutable.
type User struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null"`
	Email     string `json:"email" gorm:"uniqueIndex;not null"`
	Password  string `json:"-" gorm:"not null"`
	Phone     string `json:"phone,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// PlayerProfile is a user's per-game competitive profile.
type PlayerProfile struct {
	gorm.Model
	UserID uint           `json:"user_id" gorm:"uniqueIndex:idx_user_game;not null"`
	GameID uint           `json:"game_id" gorm:"uniqueIndex:idx_user_game;not null"`
	Rating int            `json:"rating" gorm:"default:1000"`
	Meta   models.JSONMap `json:"meta,omitempty" gorm:"type:json"`
}
