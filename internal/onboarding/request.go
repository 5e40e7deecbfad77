// File: internal/onboarding/request.go
package onboarding

import "climatework_backend/internal/shared"

// Action is the discriminator on modern onboarding payloads.
type Action string

const (
	ActionSetIntent    Action = "set-intent"
	ActionBaseProfile  Action = "base-profile"
	ActionCompleteRole Action = "complete-role"
)

// IntentRequest declares the first shell an account wants to pursue.
type IntentRequest struct {
	EntryIntent string `json:"entryIntent" validate:"required,oneof=talent coach employer"`
}

// BaseProfileRequest completes the cross-shell identity step.
type BaseProfileRequest struct {
	FirstName string  `json:"firstName" validate:"required,min=1,max=100"`
	LastName  string  `json:"lastName" validate:"required,min=1,max=100"`
	Location  *string `json:"location" validate:"omitempty,max=255"`
}

// SalaryRange is a min/max pair in whole currency units.
type SalaryRange struct {
	Min *int `json:"min" validate:"omitempty,min=0"`
	Max *int `json:"max" validate:"omitempty,min=0"`
}

// WorkExperienceEntry is one employment record in a talent submission.
// Dates are "YYYY-MM" strings normalized to the first of the month on write.
type WorkExperienceEntry struct {
	Title       string  `json:"title" validate:"required,min=1,max=150"`
	Company     string  `json:"company" validate:"required,min=1,max=150"`
	StartDate   *string `json:"startDate" validate:"omitempty,datetime=2006-01"`
	EndDate     *string `json:"endDate" validate:"omitempty,datetime=2006-01"`
	IsCurrent   bool    `json:"isCurrent"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// TalentRequest completes the talent shell.
type TalentRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`

	Sectors     []string `json:"sectors" validate:"omitempty,dive,min=1,max=100"`
	Pathways    []string `json:"pathways" validate:"omitempty,dive,min=1,max=150"`
	Skills      []string `json:"skills" validate:"omitempty,dive,min=1,max=100"`
	GreenSkills []string `json:"greenSkills" validate:"omitempty,dive,min=1,max=100"`
	CareerStage *string  `json:"careerStage" validate:"omitempty,max=50"`
	Experience  *string  `json:"experience" validate:"omitempty,oneof=less-than-1 1-3 3-7 7-10 10+"`
	JobTitle    *string  `json:"jobTitle" validate:"omitempty,max=255"`

	Goals              []string     `json:"goals" validate:"omitempty,dive,min=1,max=150"`
	RemotePreference   *string      `json:"remotePreference" validate:"omitempty,max=50"`
	LocationPreference *string      `json:"locationPreference" validate:"omitempty,max=150"`
	TransitionTimeline *string      `json:"transitionTimeline" validate:"omitempty,max=50"`
	RoleTypes          []string     `json:"roleTypes" validate:"omitempty,dive,min=1,max=100"`
	JobTypes           []string     `json:"jobTypes" validate:"omitempty,dive,min=1,max=100"`
	SalaryRange        *SalaryRange `json:"salaryRange" validate:"omitempty"`

	OpenToMentoring *bool    `json:"openToMentoring"`
	MentorTopics    []string `json:"mentorTopics" validate:"omitempty,dive,min=1,max=100"`
	Summary         *string  `json:"summary" validate:"omitempty,max=2000"`

	WorkExperience []WorkExperienceEntry `json:"workExperience" validate:"omitempty,dive"`
}

// CoachRequest completes the coach shell. Availability is a free-form blob;
// an embedded numeric bufferTime is extracted, defaulting to 15 minutes.
type CoachRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`

	Bio      *string `json:"bio" validate:"omitempty,max=5000"`
	Headline *string `json:"headline" validate:"omitempty,max=255"`
	PhotoURL *string `json:"photoUrl" validate:"omitempty,url"`

	Sectors      []string `json:"sectors" validate:"omitempty,dive,min=1,max=100"`
	Expertise    []string `json:"expertise" validate:"omitempty,dive,min=1,max=100"`
	SessionTypes []string `json:"sessionTypes" validate:"omitempty,dive,min=1,max=100"`

	SessionRate    *int                   `json:"sessionRate" validate:"omitempty,min=0"` // minor currency units
	YearsInClimate *int                   `json:"yearsInClimate" validate:"omitempty,min=0,max=80"`
	Availability   map[string]interface{} `json:"availability"`
}

// FirstJobRequest is the optional first role captured during employer
// onboarding. Work and employment types are free text here, mapped to closed
// enumerations on write.
type FirstJobRequest struct {
	Title          string  `json:"title" validate:"required,min=1,max=200"`
	Description    *string `json:"description" validate:"omitempty,max=5000"`
	Location       *string `json:"location" validate:"omitempty,max=255"`
	WorkType       *string `json:"workType" validate:"omitempty,max=50"`
	EmploymentType *string `json:"employmentType" validate:"omitempty,max=50"`
}

// InviteRequest is one teammate email to invite.
type InviteRequest struct {
	Email string  `json:"email" validate:"required,email"`
	Role  *string `json:"role" validate:"omitempty,max=50"`
}

// EmployerRequest completes the employer shell.
type EmployerRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`

	CompanyName string   `json:"companyName" validate:"required,min=1,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	Website     *string  `json:"website" validate:"omitempty,url"`
	Location    *string  `json:"location" validate:"omitempty,max=255"`
	Size        *string  `json:"size" validate:"omitempty,max=50"`
	Industries  []string `json:"industries" validate:"omitempty,dive,min=1,max=100"`
	HiringGoal  *string  `json:"hiringGoal" validate:"omitempty,max=255"`
	Title       *string  `json:"title" validate:"omitempty,max=150"` // the member's own title

	FirstJob *FirstJobRequest `json:"firstJob" validate:"omitempty"`
	Invites  []InviteRequest  `json:"invites" validate:"omitempty,dive"`
}

// LegacyRequest is the pre-shell onboarding shape, distinguished by a `role`
// field and no `action` field. It carries a reduced field set.
type LegacyRequest struct {
	Role      string  `json:"role" validate:"required,oneof=seeker mentor coach"`
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`

	Sectors    []string `json:"sectors" validate:"omitempty,dive,min=1,max=100"`
	Skills     []string `json:"skills" validate:"omitempty,dive,min=1,max=100"`
	Goals      []string `json:"goals" validate:"omitempty,dive,min=1,max=150"`
	Experience *string  `json:"experience" validate:"omitempty,oneof=less-than-1 1-3 3-7 7-10 10+"`
	Summary    *string  `json:"summary" validate:"omitempty,max=2000"`

	Bio          *string                `json:"bio" validate:"omitempty,max=5000"`
	Expertise    []string               `json:"expertise" validate:"omitempty,dive,min=1,max=100"`
	Availability map[string]interface{} `json:"availability"`
}

// Request is the classified outcome: exactly one payload field is set,
// matching Action (and Shell for role completion).
type Request struct {
	Action Action
	Shell  shared.Shell

	Intent      *IntentRequest
	BaseProfile *BaseProfileRequest
	Talent      *TalentRequest
	Coach       *CoachRequest
	Employer    *EmployerRequest
}
