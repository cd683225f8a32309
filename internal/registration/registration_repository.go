package registration

import (
	"errors"

	"gorm.io/gorm"
)

// RegistrationRepository defines the interface for registration data
// operations.
type RegistrationRepository interface {
	Create(r *Registration) error
	GetByID(id uint) (*Registration, error)
	Update(r *Registration) error

	// GetActive returns the registered-status row for the triple, if any.
	GetActive(tournamentID, categoryID, userID uint) (*Registration, error)
	GetUserRegistrations(userID uint) ([]Registration, error)

	WithTransaction(txFunc func(RegistrationRepository) error) error
}

type registrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository creates a new instance of RegistrationRepository.
func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Create(reg *Registration) error {
	return r.db.Create(reg).Error
}

func (r *registrationRepository) GetByID(id uint) (*Registration, error) {
	var reg Registration
	if err := r.db.First(&reg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) Update(reg *Registration) error {
	return r.db.Save(reg).Error
}

func (r *registrationRepository) GetActive(tournamentID, categoryID, userID uint) (*Registration, error) {
	var reg Registration
	err := r.db.Where(
		"tournament_id = ? AND category_id = ? AND user_id = ? AND status = ?",
		tournamentID, categoryID, userID, StatusRegistered,
	).First(&reg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) GetUserRegistrations(userID uint) ([]Registration, error) {
	var regs []Registration
	err := r.db.Where("user_id = ? AND status = ?", userID, StatusRegistered).
		Order("created_at desc").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *registrationRepository) WithTransaction(txFunc func(RegistrationRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&registrationRepository{db: tx})
	})
}
