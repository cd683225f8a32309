package tournament

import (
	"errors"

	"gorm.io/gorm"
)

// CategoryCounts are the aggregate counts attached to catalog reads.
type CategoryCounts struct {
	Registrations int64
	Teams         int64
}

// TournamentCounts are the aggregate counts attached to catalog reads.
type TournamentCounts struct {
	Registrations int64
	Matches       int64
}

// TournamentRepository defines the interface for tournament and category data
// operations.
type TournamentRepository interface {
	CreateTournament(t *Tournament) error
	GetTournamentByID(id uint) (*Tournament, error)
	GetTournamentBySlug(orgID uint, slug string) (*Tournament, error)
	UpdateTournament(t *Tournament) error
	GetOrganizationTournaments(orgID uint) ([]Tournament, error)
	GetHostedTournaments(userID uint) ([]Tournament, error)

	CreateCategory(c *Category) error
	GetCategoryByID(id uint) (*Category, error)
	GetCategoryByKey(tournamentID uint, key string) (*Category, error)
	UpdateCategory(c *Category) error
	DeleteCategory(id uint) error

	GetTournamentCounts(tournamentID uint) (*TournamentCounts, error)
	GetCategoryCounts(categoryID uint) (*CategoryCounts, error)

	WithTransaction(txFunc func(TournamentRepository) error) error
}

type tournamentRepository struct {
	db *gorm.DB
}

// NewTournamentRepository creates a new instance of TournamentRepository.
func NewTournamentRepository(db *gorm.DB) TournamentRepository {
	return &tournamentRepository{db: db}
}

func (r *tournamentRepository) CreateTournament(t *Tournament) error {
	return r.db.Create(t).Error
}

func (r *tournamentRepository) GetTournamentByID(id uint) (*Tournament, error) {
	var t Tournament
	if err := r.db.Preload("Categories").First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *tournamentRepository) GetTournamentBySlug(orgID uint, slug string) (*Tournament, error) {
	var t Tournament
	if err := r.db.Where("org_id = ? AND slug = ?", orgID, slug).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *tournamentRepository) UpdateTournament(t *Tournament) error {
	return r.db.Save(t).Error
}

func (r *tournamentRepository) GetOrganizationTournaments(orgID uint) ([]Tournament, error) {
	var tournaments []Tournament
	err := r.db.Preload("Categories").
		Where("org_id = ?", orgID).
		Order("created_at desc").
		Find(&tournaments).Error
	if err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *tournamentRepository) GetHostedTournaments(userID uint) ([]Tournament, error) {
	var tournaments []Tournament
	err := r.db.Preload("Categories").
		Where("created_by = ?", userID).
		Order("created_at desc").
		Find(&tournaments).Error
	if err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *tournamentRepository) CreateCategory(c *Category) error {
	return r.db.Create(c).Error
}

func (r *tournamentRepository) GetCategoryByID(id uint) (*Category, error) {
	var c Category
	if err := r.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *tournamentRepository) GetCategoryByKey(tournamentID uint, key string) (*Category, error) {
	var c Category
	if err := r.db.Where("tournament_id = ? AND key = ?", tournamentID, key).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *tournamentRepository) UpdateCategory(c *Category) error {
	return r.db.Save(c).Error
}

// DeleteCategory hard-deletes; the guard against attached registrations or
// teams lives in the controller.
func (r *tournamentRepository) DeleteCategory(id uint) error {
	return r.db.Unscoped().Delete(&Category{}, id).Error
}

// Aggregate counts query the registration, team, and match tables by name so
// the catalog does not depend on the packages that own those models.

func (r *tournamentRepository) GetTournamentCounts(tournamentID uint) (*TournamentCounts, error) {
	var counts TournamentCounts
	err := r.db.Table("registrations").
		Where("tournament_id = ? AND deleted_at IS NULL", tournamentID).
		Count(&counts.Registrations).Error
	if err != nil {
		return nil, err
	}
	err = r.db.Table("matches").
		Where("tournament_id = ? AND deleted_at IS NULL", tournamentID).
		Count(&counts.Matches).Error
	if err != nil {
		return nil, err
	}
	return &counts, nil
}

func (r *tournamentRepository) GetCategoryCounts(categoryID uint) (*CategoryCounts, error) {
	var counts CategoryCounts
	err := r.db.Table("registrations").
		Where("category_id = ? AND deleted_at IS NULL", categoryID).
		Count(&counts.Registrations).Error
	if err != nil {
		return nil, err
	}
	err = r.db.Table("teams").
		Where("category_id = ? AND deleted_at IS NULL", categoryID).
		Count(&counts.Teams).Error
	if err != nil {
		return nil, err
	}
	return &counts, nil
}

func (r *tournamentRepository) WithTransaction(txFunc func(TournamentRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&tournamentRepository{db: tx})
	})
}
