// File: internal/platform/database/migrate.go
package database

import (
	"climatework_backend/internal/account"
	"climatework_backend/internal/coach"
	"climatework_backend/internal/invite"
	"climatework_backend/internal/org"
	"climatework_backend/internal/talent"

	"gorm.io/gorm"
)

// Migrate applies the schema for every model the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&account.Account{},
		&talent.SeekerProfile{},
		&talent.PathwayLink{},
		&talent.WorkExperience{},
		&coach.CoachProfile{},
		&org.Organization{},
		&org.Membership{},
		&org.JobDraft{},
		&invite.TeamInvite{},
	)
}
