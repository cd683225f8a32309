package match

import (
	"gorm.io/gorm"
)

// MatchRepository defines the interface for match history reads.
type MatchRepository interface {
	// GetUserTeamIDs returns the teams where the user is captain or an
	// accepted member.
	GetUserTeamIDs(userID uint) ([]uint, error)
	GetMatchesForTeams(teamIDs []uint, limit int) ([]Match, error)
	GetTournamentMatchesForTeams(teamIDs []uint, tournamentID uint) ([]Match, error)
}

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new instance of MatchRepository.
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

// Team membership is read from the team tables by name; this package never
// mutates them.
func (r *matchRepository) GetUserTeamIDs(userID uint) ([]uint, error) {
	var captained []uint
	err := r.db.Table("teams").
		Where("captain_id = ? AND deleted_at IS NULL", userID).
		Pluck("id", &captained).Error
	if err != nil {
		return nil, err
	}

	var joined []uint
	err = r.db.Table("team_members").
		Where("user_id = ? AND status = ? AND deleted_at IS NULL", userID, "accepted").
		Pluck("team_id", &joined).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(captained)+len(joined))
	ids := make([]uint, 0, len(captained)+len(joined))
	for _, id := range append(captained, joined...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *matchRepository) GetMatchesForTeams(teamIDs []uint, limit int) ([]Match, error) {
	if len(teamIDs) == 0 {
		return []Match{}, nil
	}
	var matches []Match
	q := r.db.Where("team_a_id IN ? OR team_b_id IN ?", teamIDs, teamIDs).
		Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepository) GetTournamentMatchesForTeams(teamIDs []uint, tournamentID uint) ([]Match, error) {
	if len(teamIDs) == 0 {
		return []Match{}, nil
	}
	var matches []Match
	err := r.db.Where("tournament_id = ? AND (team_a_id IN ? OR team_b_id IN ?)", tournamentID, teamIDs, teamIDs).
		Order("created_at desc").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}
