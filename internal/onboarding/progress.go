// File: internal/onboarding/progress.go
package onboarding

import (
	"time"

	"climatework_backend/internal/account"
	"climatework_backend/internal/shared"
)

// State is the in-memory onboarding position of one account: the progress
// document plus the role fields living directly on the Account row. Values
// are immutable; every transition returns a new State.
type State struct {
	Progress    account.OnboardingProgress
	ActiveRoles []shared.Shell
	EntryIntent *shared.Shell
	PrimaryRole *shared.Shell
}

// NewState snapshots the account's current onboarding position.
func NewState(acct *account.Account) State {
	st := State{
		Progress:    acct.Progress.Clone(),
		EntryIntent: acct.EntryIntent,
		PrimaryRole: acct.PrimaryRole,
	}
	for _, r := range acct.ActiveRoles {
		st.ActiveRoles = append(st.ActiveRoles, shared.Shell(r))
	}
	return st
}

func (s State) clone() State {
	out := State{
		Progress:    s.Progress.Clone(),
		EntryIntent: s.EntryIntent,
		PrimaryRole: s.PrimaryRole,
	}
	out.ActiveRoles = append(out.ActiveRoles, s.ActiveRoles...)
	return out
}

func (s State) hasRole(shell shared.Shell) bool {
	for _, r := range s.ActiveRoles {
		if r == shell {
			return true
		}
	}
	return false
}

// ensureRole lazily creates the shell's progress entry, moving NOT_STARTED to
// IN_PROGRESS. Started and complete entries are left untouched.
func (s *State) ensureRole(shell shared.Shell, now time.Time) {
	if s.Progress.Roles == nil {
		s.Progress.Roles = make(map[shared.Shell]account.RoleOnboardingState)
	}
	if st, ok := s.Progress.Roles[shell]; ok && st.Status != account.RoleNotStarted {
		return
	}
	started := now
	s.Progress.Roles[shell] = account.RoleOnboardingState{
		Status:    account.RoleInProgress,
		StartedAt: &started,
	}
}

// adoptRole adds the shell to the active set and claims entryIntent and
// primaryRole if still unset. activeRoles only ever grows here.
func (s *State) adoptRole(shell shared.Shell) {
	if !s.hasRole(shell) {
		s.ActiveRoles = append(s.ActiveRoles, shell)
	}
	if s.EntryIntent == nil {
		intent := shell
		s.EntryIntent = &intent
	}
	if s.PrimaryRole == nil {
		primary := shell
		s.PrimaryRole = &primary
	}
}

// ApplyIntent records the account's chosen first shell. Repeating the same
// intent is a no-op.
func (s State) ApplyIntent(shell shared.Shell, now time.Time) State {
	next := s.clone()
	next.ensureRole(shell, now)
	next.adoptRole(shell)
	return next
}

// ApplyBaseProfile marks the cross-shell identity step complete.
func (s State) ApplyBaseProfile() State {
	next := s.clone()
	next.Progress.BaseProfileComplete = true
	return next
}

// ApplyRoleCompletion marks the shell COMPLETE. The transition is monotonic:
// re-completing keeps the original completion timestamp. When a name is
// already known, base-profile completeness is derived as a side effect.
func (s State) ApplyRoleCompletion(shell shared.Shell, nameKnown bool, now time.Time) State {
	next := s.clone()
	next.ensureRole(shell, now)
	next.adoptRole(shell)

	st := next.Progress.Roles[shell]
	if st.Status != account.RoleComplete {
		completed := now
		st.Status = account.RoleComplete
		st.CompletedAt = &completed
		next.Progress.Roles[shell] = st
	}

	if nameKnown {
		next.Progress.BaseProfileComplete = true
	}
	return next
}

// Patch renders the transition from the account's stored position to this
// state as a single account write. Unchanged role fields stay nil so the
// stored values survive.
func (s State) Patch(acct *account.Account) *account.Patch {
	p := &account.Patch{Progress: &s.Progress}

	if len(s.ActiveRoles) != len(acct.ActiveRoles) {
		p.ActiveRoles = s.ActiveRoles
	}
	if s.EntryIntent != nil && acct.EntryIntent == nil {
		p.EntryIntent = s.EntryIntent
	}
	if s.PrimaryRole != nil && acct.PrimaryRole == nil {
		p.PrimaryRole = s.PrimaryRole
	}
	return p
}
