package game

import "gorm.io/gorm"

// Game is a playable discipline (e.g. pickleball, badminton) referenced by
// tournaments and player profiles.
type Game struct {
	gorm.Model
	Key  string `json:"key" gorm:"uniqueIndex;not null"`
	Name string `json:"name" gorm:"not null"`
}
