package notification

import (
	"gorm.io/gorm"

	"github.com/tourneo/tourneo/internal/models"
)

// Notification types emitted by lifecycle operations.
const (
	TypeOrgJoined             = "orgJoined"
	TypeTeamInvite            = "teamInvite"
	TypeTeamUpdate            = "teamUpdate"
	TypeRegistrationConfirmed = "registrationConfirmed"
	TypePaymentConfirmed      = "paymentConfirmed"
)

// Notification is a per-user message created by the dispatcher. Delivered is
// the read flag, initially false.
type Notification struct {
	gorm.Model
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	Type      string         `json:"type" gorm:"index;not null"`
	Payload   models.JSONMap `json:"payload,omitempty" gorm:"type:json"`
	Delivered bool           `json:"delivered" gorm:"default:false"`
}

// Event is a domain event emitted by a lifecycle operation after its primary
// write commits. The dispatcher translates events into notification rows;
// dispatch failure never rolls back the primary mutation.
type Event struct {
	UserID  uint
	Type    string
	Payload models.JSONMap
}
