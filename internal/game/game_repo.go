package game

import (
	"errors"

	"gorm.io/gorm"
)

// GameRepository defines the interface for game data operations.
type GameRepository interface {
	Create(game *Game) error
	GetByID(id uint) (*Game, error)
	GetByKey(key string) (*Game, error)
	GetAll() ([]Game, error)
}

type gameRepository struct {
	db *gorm.DB
}

// NewGameRepository creates a new instance of GameRepository.
func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(game *Game) error {
	return r.db.Create(game).Error
}

func (r *gameRepository) GetByID(id uint) (*Game, error) {
	var g Game
	if err := r.db.First(&g, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *gameRepository) GetByKey(key string) (*Game, error) {
	var g Game
	if err := r.db.Where("key = ?", key).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *gameRepository) GetAll() ([]Game, error) {
	var games []Game
	if err := r.db.Order("name asc").Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}
