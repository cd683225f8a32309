package team

import (
	"errors"

	"gorm.io/gorm"
)

// TeamRepository defines the interface for team and roster data operations.
type TeamRepository interface {
	CreateTeam(t *Team) error
	GetTeamByID(id uint) (*Team, error)

	// FindUserTeamInCategory returns the team, if any, where the user is
	// captain or holds a member row (invited or accepted) in the category.
	FindUserTeamInCategory(categoryID, userID uint) (*Team, error)

	GetMember(teamID, userID uint) (*TeamMember, error)
	CreateMember(m *TeamMember) error
	UpdateMember(m *TeamMember) error
	DeleteMember(m *TeamMember) error
	CountRoster(teamID uint) (int64, error)

	GetCaptainedTeams(userID uint) ([]Team, error)
	GetMemberTeams(userID uint) ([]Team, error)
	GetPendingInvites(userID uint) ([]TeamMember, error)

	// HasPaidRegistration reports whether the team has an active paid
	// registration, which locks the roster.
	HasPaidRegistration(teamID uint) (bool, error)
	HasActiveRegistration(teamID uint) (bool, error)

	WithTransaction(txFunc func(TeamRepository) error) error
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new instance of TeamRepository.
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) CreateTeam(t *Team) error {
	return r.db.Create(t).Error
}

func (r *teamRepository) GetTeamByID(id uint) (*Team, error) {
	var t Team
	if err := r.db.Preload("Members").First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *teamRepository) FindUserTeamInCategory(categoryID, userID uint) (*Team, error) {
	var t Team
	err := r.db.Where("category_id = ? AND captain_id = ?", categoryID, userID).First(&t).Error
	if err == nil {
		return &t, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = r.db.Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("teams.category_id = ? AND team_members.user_id = ? AND team_members.deleted_at IS NULL", categoryID, userID).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *teamRepository) GetMember(teamID, userID uint) (*TeamMember, error) {
	var m TeamMember
	if err := r.db.Where("team_id = ? AND user_id = ?", teamID, userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *teamRepository) CreateMember(m *TeamMember) error {
	return r.db.Create(m).Error
}

func (r *teamRepository) UpdateMember(m *TeamMember) error {
	return r.db.Save(m).Error
}

// DeleteMember removes the row permanently so the (team, user) slot can be
// re-invited later.
func (r *teamRepository) DeleteMember(m *TeamMember) error {
	return r.db.Unscoped().Delete(m).Error
}

// CountRoster counts invited plus accepted members. The captain is not a row
// and must be added by the caller when comparing against the team size.
func (r *teamRepository) CountRoster(teamID uint) (int64, error) {
	var count int64
	err := r.db.Model(&TeamMember{}).Where("team_id = ?", teamID).Count(&count).Error
	return count, err
}

func (r *teamRepository) GetCaptainedTeams(userID uint) ([]Team, error) {
	var teams []Team
	err := r.db.Preload("Members").
		Where("captain_id = ?", userID).
		Order("created_at desc").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepository) GetMemberTeams(userID uint) ([]Team, error) {
	var teams []Team
	err := r.db.Preload("Members").
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ? AND team_members.status = ? AND team_members.deleted_at IS NULL", userID, MemberStatusAccepted).
		Order("teams.created_at desc").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepository) GetPendingInvites(userID uint) ([]TeamMember, error) {
	var invites []TeamMember
	err := r.db.Preload("Team").
		Where("user_id = ? AND status = ?", userID, MemberStatusInvited).
		Order("created_at desc").
		Find(&invites).Error
	if err != nil {
		return nil, err
	}
	return invites, nil
}

func (r *teamRepository) HasPaidRegistration(teamID uint) (bool, error) {
	var exists bool
	err := r.db.Table("registrations").
		Select("count(*) > 0").
		Where("team_id = ? AND status = ? AND paid = ? AND deleted_at IS NULL", teamID, "registered", true).
		Find(&exists).Error
	return exists, err
}

func (r *teamRepository) HasActiveRegistration(teamID uint) (bool, error) {
	var exists bool
	err := r.db.Table("registrations").
		Select("count(*) > 0").
		Where("team_id = ? AND status = ? AND deleted_at IS NULL", teamID, "registered").
		Find(&exists).Error
	return exists, err
}

func (r *teamRepository) WithTransaction(txFunc func(TeamRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&teamRepository{db: tx})
	})
}
