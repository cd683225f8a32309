package notification

import (
	"errors"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification data operations.
type NotificationRepository interface {
	Create(notification *Notification) error
	GetByID(id uint) (*Notification, error)
	GetByUserID(userID uint) ([]Notification, error)
	Update(notification *Notification) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *Notification) error {
	return r.db.Create(notification).Error
}

func (r *notificationRepository) GetByID(id uint) (*Notification, error) {
	var n Notification
	if err := r.db.First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) GetByUserID(userID uint) ([]Notification, error) {
	var notifications []Notification
	if err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) Update(notification *Notification) error {
	return r.db.Save(notification).Error
}
