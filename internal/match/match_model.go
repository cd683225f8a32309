package match

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusScheduled = "scheduled"
	StatusLive      = "live"
	StatusFinished  = "finished"
	StatusCancelled = "cancelled"
)

// Match is a recorded fixture between two teams. This service only reads
// matches; scheduling and scoring happen elsewhere.
type Match struct {
	gorm.Model
	TournamentID *uint      `gorm:"index" json:"tournament_id,omitempty"`
	CategoryID   *uint      `gorm:"index" json:"category_id,omitempty"`
	TeamAID      uint       `gorm:"not null;index" json:"team_a_id"`
	TeamBID      uint       `gorm:"not null;index" json:"team_b_id"`
	ScoreA       *int       `json:"score_a,omitempty"`
	ScoreB       *int       `json:"score_b,omitempty"`
	Status       string     `gorm:"not null;default:'scheduled'" json:"status"`
	ScheduledAt  *time.Time `json:"scheduled_at,omitempty"`
}

// ResultFor derives won or lost from the perspective of the given teams.
// Returns nil unless the match is finished with both scores recorded and a
// decided outcome.
func (m *Match) ResultFor(teamIDs map[uint]bool) *string {
	if m.Status != StatusFinished || m.ScoreA == nil || m.ScoreB == nil {
		return nil
	}
	var mine, theirs int
	switch {
	case teamIDs[m.TeamAID]:
		mine, theirs = *m.ScoreA, *m.ScoreB
	case teamIDs[m.TeamBID]:
		mine, theirs = *m.ScoreB, *m.ScoreA
	default:
		return nil
	}
	if mine == theirs {
		return nil
	}
	result := "lost"
	if mine > theirs {
		result = "won"
	}
	return &result
}
