// File: internal/org/model.go
package org

import (
	"climatework_backend/internal/common"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Organization is an employer tenant created by employer onboarding.
type Organization struct {
	common.BaseModel
	Name        string         `gorm:"type:varchar(200);not null"`
	Slug        string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	Description *string        `gorm:"type:text"`
	Website     *string        `gorm:"type:varchar(255)"`
	Location    *string        `gorm:"type:varchar(255)"`
	Size        *string        `gorm:"type:varchar(50)"`
	Industries  pq.StringArray `gorm:"type:text[]"`
	HiringGoal  *string        `gorm:"type:varchar(255)"`
}

func (Organization) TableName() string {
	return "organizations"
}

// MembershipRole is the role an account holds inside an organization.
type MembershipRole string

const (
	MembershipOwner  MembershipRole = "OWNER"
	MembershipAdmin  MembershipRole = "ADMIN"
	MembershipMember MembershipRole = "MEMBER"
)

// Membership links an account to an organization. The onboarding flow creates
// at most one membership per account; repeat submissions update the existing
// organization instead.
type Membership struct {
	common.BaseModel
	AccountID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Organization   *Organization  `gorm:"foreignKey:OrganizationID;references:ID;constraint:OnDelete:CASCADE;"`
	Role           MembershipRole `gorm:"type:varchar(20);not null"`
	Title          *string        `gorm:"type:varchar(150)"`
}

func (Membership) TableName() string {
	return "organization_memberships"
}

// WorkType is the closed enumeration mapped from free-text work arrangements.
type WorkType string

const (
	WorkRemote WorkType = "REMOTE"
	WorkHybrid WorkType = "HYBRID"
	WorkOnSite WorkType = "ON_SITE"
)

// EmploymentType is the closed enumeration mapped from free-text contract kinds.
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "FULL_TIME"
	EmploymentPartTime   EmploymentType = "PART_TIME"
	EmploymentContract   EmploymentType = "CONTRACT"
	EmploymentInternship EmploymentType = "INTERNSHIP"
)

// JobDraftStatus — drafts created during onboarding stay DRAFT until the
// employer publishes them elsewhere.
type JobDraftStatus string

const JobDraftDraft JobDraftStatus = "DRAFT"

// JobDraft is the optional first role captured alongside a new organization.
type JobDraft struct {
	common.BaseModel
	OrganizationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title          string          `gorm:"type:varchar(200);not null"`
	Slug           string          `gorm:"type:varchar(255);not null"`
	Description    *string         `gorm:"type:text"`
	Location       *string         `gorm:"type:varchar(255)"`
	WorkType       *WorkType       `gorm:"type:varchar(20)"`
	EmploymentType *EmploymentType `gorm:"type:varchar(20)"`
	Status         JobDraftStatus  `gorm:"type:varchar(20);not null;default:'DRAFT'"`
}

func (JobDraft) TableName() string {
	return "job_drafts"
}

// MapWorkType maps free text to the WorkType enumeration. Unrecognized values
// pass through as unset rather than erroring.
func MapWorkType(raw string) *WorkType {
	var wt WorkType
	switch normalizeEnum(raw) {
	case "remote":
		wt = WorkRemote
	case "hybrid":
		wt = WorkHybrid
	case "onsite", "on-site", "in-person", "office":
		wt = WorkOnSite
	default:
		return nil
	}
	return &wt
}

// MapEmploymentType maps free text to the EmploymentType enumeration.
// Unrecognized values pass through as unset.
func MapEmploymentType(raw string) *EmploymentType {
	var et EmploymentType
	switch normalizeEnum(raw) {
	case "full-time", "fulltime", "full_time":
		et = EmploymentFullTime
	case "part-time", "parttime", "part_time":
		et = EmploymentPartTime
	case "contract", "contractor", "freelance":
		et = EmploymentContract
	case "internship", "intern":
		et = EmploymentInternship
	default:
		return nil
	}
	return &et
}
