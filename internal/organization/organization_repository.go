package organization

import (
	"errors"

	"gorm.io/gorm"
)

// OrganizationRepository defines the interface for organization and membership
// data operations.
type OrganizationRepository interface {
	CreateWithOwner(org *Organization, ownerID uint) error
	GetByID(id uint) (*Organization, error)
	GetBySlug(slug string) (*Organization, error)

	CreateMembership(membership *Membership) error
	GetMembership(orgID, userID uint) (*Membership, error)
	GetUserMemberships(userID uint) ([]Membership, error)
	GetUserOrganizations(userID uint) ([]Organization, error)

	// CurrentRole re-derives the caller's role from the memberships table.
	// Returns "" when the user is not a member.
	CurrentRole(orgID, userID uint) (string, error)

	WithTransaction(txFunc func(OrganizationRepository) error) error
}

type organizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new instance of OrganizationRepository.
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

// CreateWithOwner creates the organization and seeds the creator's
// super_manager membership in one transaction.
func (r *organizationRepository) CreateWithOwner(org *Organization, ownerID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}
		membership := Membership{
			OrgID:  org.ID,
			UserID: ownerID,
			Role:   RoleSuperManager,
		}
		if err := tx.Create(&membership).Error; err != nil {
			return err
		}
		org.Memberships = []Membership{membership}
		return nil
	})
}

func (r *organizationRepository) GetByID(id uint) (*Organization, error) {
	var org Organization
	if err := r.db.First(&org, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) GetBySlug(slug string) (*Organization, error) {
	var org Organization
	if err := r.db.Where("slug = ?", slug).First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) CreateMembership(membership *Membership) error {
	return r.db.Create(membership).Error
}

func (r *organizationRepository) GetMembership(orgID, userID uint) (*Membership, error) {
	var m Membership
	if err := r.db.Where("org_id = ? AND user_id = ?", orgID, userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *organizationRepository) GetUserMemberships(userID uint) ([]Membership, error) {
	var memberships []Membership
	if err := r.db.Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *organizationRepository) GetUserOrganizations(userID uint) ([]Organization, error) {
	var orgs []Organization
	err := r.db.Joins("JOIN memberships ON memberships.org_id = organizations.id").
		Where("memberships.user_id = ? AND memberships.deleted_at IS NULL", userID).
		Order("organizations.created_at desc").
		Find(&orgs).Error
	if err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *organizationRepository) CurrentRole(orgID, userID uint) (string, error) {
	m, err := r.GetMembership(orgID, userID)
	if err != nil {
		return "", err
	}
	if m == nil {
		return "", nil
	}
	return m.Role, nil
}

func (r *organizationRepository) WithTransaction(txFunc func(OrganizationRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&organizationRepository{db: tx})
	})
}
