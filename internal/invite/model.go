// File: internal/invite/model.go
package invite

import (
	"time"

	"climatework_backend/internal/common"

	"github.com/google/uuid"
)

// InviteStatus tracks a team invite's lifecycle.
type InviteStatus string

const (
	StatusPending  InviteStatus = "PENDING"
	StatusAccepted InviteStatus = "ACCEPTED"
	StatusExpired  InviteStatus = "EXPIRED"
)

// ExpiryDays is how long an invite token stays redeemable.
const ExpiryDays = 7

// TeamInvite is one pending invitation into an organization.
type TeamInvite struct {
	common.BaseModel
	OrganizationID uuid.UUID    `gorm:"type:uuid;not null;index"`
	InviterID      uuid.UUID    `gorm:"type:uuid;not null"`
	Email          string       `gorm:"type:varchar(255);not null"`
	Role           *string      `gorm:"type:varchar(50)"`
	Token          string       `gorm:"type:varchar(255);not null;uniqueIndex"`
	Status         InviteStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	ExpiresAt      time.Time    `gorm:"not null"`
}

func (TeamInvite) TableName() string {
	return "team_invites"
}
