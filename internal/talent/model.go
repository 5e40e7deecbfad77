// File: internal/talent/model.go
package talent

import (
	"time"

	"climatework_backend/internal/common"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// SeekerProfile is the talent-shell profile, one-to-one with an account.
type SeekerProfile struct {
	common.BaseModel
	AccountID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	TargetSectors     pq.StringArray `gorm:"type:text[]"`
	Headline          *string        `gorm:"type:varchar(255)"`
	Skills            pq.StringArray `gorm:"type:text[]"`
	GreenSkills       pq.StringArray `gorm:"type:text[]"`
	CareerStage       *string        `gorm:"type:varchar(50)"`
	YearsOfExperience *int
	// Motivations is a flat, filterable tag set assembled from the optional
	// preference inputs, each prefixed with a category label
	// (e.g. "remote:hybrid", "salary:60000-90000").
	Motivations     pq.StringArray `gorm:"type:text[]"`
	OpenToMentoring bool           `gorm:"not null;default:false"`
	MentorTopics    pq.StringArray `gorm:"type:text[]"`
	Summary         *string        `gorm:"type:text"`

	PathwayLinks []PathwayLink    `gorm:"foreignKey:ProfileID;references:ID;constraint:OnDelete:CASCADE;"`
	Experience   []WorkExperience `gorm:"foreignKey:ProfileID;references:ID;constraint:OnDelete:CASCADE;"`
}

func (SeekerProfile) TableName() string {
	return "seeker_profiles"
}

// PathwayLink is an ordered, priority-ranked pathway attached to a profile.
// The set is replaced wholesale on each submission.
type PathwayLink struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;index"`
	Pathway   string    `gorm:"type:varchar(150);not null"`
	Priority  int       `gorm:"not null"`
	CreatedAt time.Time
}

func (PathwayLink) TableName() string {
	return "seeker_pathway_links"
}

// WorkExperience is one employment entry on a profile. Entries are replaced
// wholesale on each submission, not merged item by item.
type WorkExperience struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProfileID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title       string     `gorm:"type:varchar(150);not null"`
	Company     string     `gorm:"type:varchar(150);not null"`
	StartDate   *time.Time
	EndDate     *time.Time
	IsCurrent   bool    `gorm:"not null;default:false"`
	Description *string `gorm:"type:text"`
	CreatedAt   time.Time
}

func (WorkExperience) TableName() string {
	return "seeker_work_experience"
}
