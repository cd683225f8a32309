package team

import (
	"time"

	"gorm.io/gorm"
)

const (
	MemberStatusInvited  = "invited"
	MemberStatusAccepted = "accepted"
)

// Team belongs to one TEAM-typed category. The captain is not a TeamMember
// row; occupancy counts the captain plus every invited or accepted member.
type Team struct {
	gorm.Model
	TournamentID uint         `gorm:"not null;index" json:"tournament_id"`
	CategoryID   uint         `gorm:"not null;index" json:"category_id"`
	Name         string       `gorm:"not null" json:"name"`
	CaptainID    uint         `gorm:"not null;index" json:"captain_id"`
	Members      []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}

// TeamMember tracks a roster slot. Status moves invited to accepted on
// accept; reject, remove, and leave delete the row outright.
type TeamMember struct {
	gorm.Model
	TeamID      uint       `gorm:"not null;uniqueIndex:idx_team_user" json:"team_id"`
	UserID      uint       `gorm:"not null;uniqueIndex:idx_team_user" json:"user_id"`
	Status      string     `gorm:"not null;default:'invited'" json:"status"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	Team        *Team      `gorm:"foreignKey:TeamID" json:"team,omitempty"`
}
