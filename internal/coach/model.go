// File: internal/coach/model.go
package coach

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"climatework_backend/internal/common"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ApplicationStatus tracks a coach's vetting state. New profiles always start
// PENDING; the onboarding flow never changes status afterwards.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationApproved ApplicationStatus = "APPROVED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// DefaultBufferMinutes applies when the availability blob carries no usable
// buffer-time setting.
const DefaultBufferMinutes = 15

// AvailabilityBlob stores the coach's free-form availability document as JSON.
type AvailabilityBlob map[string]interface{}

// Value implements driver.Valuer.
func (b AvailabilityBlob) Value() (driver.Value, error) {
	if b == nil {
		return nil, nil
	}
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (b *AvailabilityBlob) Scan(value interface{}) error {
	if value == nil {
		*b = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	default:
		return errors.New("failed to scan AvailabilityBlob: unsupported type")
	}
}

// CoachProfile is the coach-shell profile, one-to-one with an account.
type CoachProfile struct {
	common.BaseModel
	AccountID         uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex"`
	FirstName         *string           `gorm:"type:varchar(100)"`
	LastName          *string           `gorm:"type:varchar(100)"`
	Bio               *string           `gorm:"type:text"`
	Headline          *string           `gorm:"type:varchar(255)"`
	PhotoURL          *string           `gorm:"type:text"`
	Sectors           pq.StringArray    `gorm:"type:text[]"`
	Expertise         pq.StringArray    `gorm:"type:text[]"`
	SessionTypes      pq.StringArray    `gorm:"type:text[]"`
	SessionRate       *int              // minor currency units
	YearsInClimate    *int
	Availability      AvailabilityBlob  `gorm:"type:jsonb"`
	BufferTimeMinutes int               `gorm:"not null;default:15"`
	ApplicationStatus ApplicationStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	AppliedAt         time.Time         `gorm:"not null"`
}

func (CoachProfile) TableName() string {
	return "coach_profiles"
}
