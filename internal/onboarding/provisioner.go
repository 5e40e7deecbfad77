// File: internal/onboarding/provisioner.go
package onboarding

import (
	"context"

	"climatework_backend/internal/account"
	"climatework_backend/internal/shared"
)

// Outcome is what a provisioner reports back to the orchestrator: name parts
// supplied inside the role payload, so the shared finish step can patch the
// account and derive base-profile completeness.
type Outcome struct {
	FirstName *string
	LastName  *string
}

// RoleProvisioner performs the transactional creation or update of one
// shell's downstream records. Implementations must be safe to re-run for the
// same account.
type RoleProvisioner interface {
	Shell() shared.Shell
	Provision(ctx context.Context, acct *account.Account, req *Request) (Outcome, error)
}
