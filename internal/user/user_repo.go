package user

import (
	"errors"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user and player profile data operations.
type UserRepository interface {
	CreateUser(user *User) error
	GetUserByID(id uint) (*User, error)
	GetUserByEmail(email string) (*User, error)
	UpdateUser(user *User) error

	CreatePlayerProfile(profile *PlayerProfile) error
	GetPlayerProfile(userID, gameID uint) (*PlayerProfile, error)
	GetPlayerProfiles(userID uint) ([]PlayerProfile, error)
	UpdatePlayerProfile(profile *PlayerProfile) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(user *User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetUserByID(id uint) (*User, error) {
	var u User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetUserByEmail(email string) (*User, error) {
	var u User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) UpdateUser(user *User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) CreatePlayerProfile(profile *PlayerProfile) error {
	return r.db.Create(profile).Error
}

func (r *userRepository) GetPlayerProfile(userID, gameID uint) (*PlayerProfile, error) {
	var p PlayerProfile
	if err := r.db.Where("user_id = ? AND game_id = ?", userID, gameID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *userRepository) GetPlayerProfiles(userID uint) ([]PlayerProfile, error) {
	var profiles []PlayerProfile
	if err := r.db.Where("user_id = ?", userID).Order("created_at asc").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *userRepository) UpdatePlayerProfile(profile *PlayerProfile) error {
	return r.db.Save(profile).Error
}
