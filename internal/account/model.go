// File: internal/account/model.go
package account

import (
	"time"

	"climatework_backend/internal/common"
	"climatework_backend/internal/shared"

	"github.com/lib/pq"
)

// Account is the single row owned per authenticated subject. It is created on
// first touch and mutated by every onboarding action, never deleted here.
type Account struct {
	common.BaseModel
	FirebaseUID string             `gorm:"type:varchar(255);not null;uniqueIndex"`
	Email       *string            `gorm:"type:varchar(255);uniqueIndex"`
	FirstName   *string            `gorm:"type:varchar(100)"`
	LastName    *string            `gorm:"type:varchar(100)"`
	DisplayName *string            `gorm:"type:varchar(200)"`
	Location    *string            `gorm:"type:varchar(255)"`
	EntryIntent *shared.Shell      `gorm:"type:varchar(20)"`
	PrimaryRole *shared.Shell      `gorm:"type:varchar(20)"`
	ActiveRoles pq.StringArray     `gorm:"type:text[]"`
	Progress    OnboardingProgress `gorm:"type:jsonb"`
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}

// HasRole reports whether the shell is already in ActiveRoles.
func (a *Account) HasRole(shell shared.Shell) bool {
	for _, r := range a.ActiveRoles {
		if r == string(shell) {
			return true
		}
	}
	return false
}

// NameKnown reports whether identity data (a first name) is stored on the
// account. Role completion derives base-profile completeness from it.
func (a *Account) NameKnown() bool {
	return a.FirstName != nil && *a.FirstName != ""
}

// Patch is the single pending write accumulated for an account during one
// onboarding action. It is built once per request and applied in one update,
// so no branch can clobber another branch's pending change.
type Patch struct {
	Email       *string
	FirstName   *string
	LastName    *string
	DisplayName *string
	Location    *string
	EntryIntent *shared.Shell
	PrimaryRole *shared.Shell
	ActiveRoles []shared.Shell
	Progress    *OnboardingProgress
}

// Columns renders the patch as a GORM update map. Nil fields are omitted so
// stored values survive.
func (p *Patch) Columns(now time.Time) map[string]interface{} {
	cols := map[string]interface{}{"updated_at": now}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.FirstName != nil {
		cols["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		cols["last_name"] = *p.LastName
	}
	if p.DisplayName != nil {
		cols["display_name"] = *p.DisplayName
	}
	if p.Location != nil {
		cols["location"] = *p.Location
	}
	if p.EntryIntent != nil {
		cols["entry_intent"] = string(*p.EntryIntent)
	}
	if p.PrimaryRole != nil {
		cols["primary_role"] = string(*p.PrimaryRole)
	}
	if p.ActiveRoles != nil {
		roles := make(pq.StringArray, 0, len(p.ActiveRoles))
		for _, r := range p.ActiveRoles {
			roles = append(roles, string(r))
		}
		cols["active_roles"] = roles
	}
	if p.Progress != nil {
		cols["progress"] = *p.Progress
	}
	return cols
}
