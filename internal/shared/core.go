// File: internal/shared/core.go
package shared

import "context"

// Shell is a top-level role context an account can activate. Each shell
// maps to a distinct product experience and data schema.
type Shell string

const (
	ShellTalent   Shell = "talent"
	ShellCoach    Shell = "coach"
	ShellEmployer Shell = "employer"
)

// AllShells lists every shell the platform knows about.
var AllShells = []Shell{ShellTalent, ShellCoach, ShellEmployer}

// IsValid reports whether s is a recognized shell.
func (s Shell) IsValid() bool {
	switch s {
	case ShellTalent, ShellCoach, ShellEmployer:
		return true
	}
	return false
}

// Identity is the verified caller identity supplied by the identity
// provider. Email may be absent for some auth providers.
type Identity struct {
	SubjectUID string
	Email      *string
	Name       *string
}

// TokenVerifier verifies a bearer credential and resolves the caller identity.
// Implemented by the Firebase service; abstracted here so middleware and
// handlers can be tested without the Admin SDK.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*Identity, error)
}
