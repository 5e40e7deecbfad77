package onboarding

import (
	"testing"
	"time"

	"climatework_backend/internal/account"
	"climatework_backend/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyIntentIsIdempotent(t *testing.T) {
	acct := &account.Account{}
	now := time.Now().UTC()

	first := NewState(acct).ApplyIntent(shared.ShellTalent, now)
	second := first.ApplyIntent(shared.ShellTalent, now.Add(time.Hour))

	assert.Equal(t, []shared.Shell{shared.ShellTalent}, second.ActiveRoles)
	require.NotNil(t, second.PrimaryRole)
	assert.Equal(t, shared.ShellTalent, *second.PrimaryRole)
	assert.Equal(t, account.RoleInProgress, second.Progress.Role(shared.ShellTalent).Status)
	// The original start timestamp survives a repeated intent.
	assert.Equal(t, first.Progress.Role(shared.ShellTalent).StartedAt, second.Progress.Role(shared.ShellTalent).StartedAt)
}

func TestPrimaryRoleIsSetOnce(t *testing.T) {
	acct := &account.Account{}
	now := time.Now().UTC()

	state := NewState(acct).ApplyIntent(shared.ShellCoach, now).ApplyIntent(shared.ShellEmployer, now)

	require.NotNil(t, state.PrimaryRole)
	assert.Equal(t, shared.ShellCoach, *state.PrimaryRole)
	require.NotNil(t, state.EntryIntent)
	assert.Equal(t, shared.ShellCoach, *state.EntryIntent)
	assert.Equal(t, []shared.Shell{shared.ShellCoach, shared.ShellEmployer}, state.ActiveRoles)
}

func TestRoleCompletionIsMonotonic(t *testing.T) {
	acct := &account.Account{}
	now := time.Now().UTC()

	first := NewState(acct).ApplyRoleCompletion(shared.ShellTalent, false, now)
	second := first.ApplyRoleCompletion(shared.ShellTalent, false, now.Add(time.Hour))

	firstState := first.Progress.Role(shared.ShellTalent)
	secondState := second.Progress.Role(shared.ShellTalent)
	assert.Equal(t, account.RoleComplete, secondState.Status)
	assert.Equal(t, firstState.CompletedAt, secondState.CompletedAt)
	assert.Equal(t, []shared.Shell{shared.ShellTalent}, second.ActiveRoles)
}

func TestRoleCompletionDerivesBaseProfile(t *testing.T) {
	acct := &account.Account{}
	now := time.Now().UTC()

	withoutName := NewState(acct).ApplyRoleCompletion(shared.ShellCoach, false, now)
	assert.False(t, withoutName.Progress.BaseProfileComplete)

	withName := NewState(acct).ApplyRoleCompletion(shared.ShellCoach, true, now)
	assert.True(t, withName.Progress.BaseProfileComplete)
}

func TestApplyBaseProfile(t *testing.T) {
	acct := &account.Account{}
	state := NewState(acct).ApplyBaseProfile()
	assert.True(t, state.Progress.BaseProfileComplete)
	assert.Empty(t, state.ActiveRoles)
}

func TestTransitionsDoNotMutateInput(t *testing.T) {
	acct := &account.Account{}
	base := NewState(acct)
	_ = base.ApplyIntent(shared.ShellTalent, time.Now().UTC())

	assert.Empty(t, base.ActiveRoles)
	assert.Empty(t, base.Progress.Roles)
}

func TestPatchOmitsUnchangedRoleFields(t *testing.T) {
	primary := shared.ShellTalent
	acct := &account.Account{
		EntryIntent: &primary,
		PrimaryRole: &primary,
		ActiveRoles: []string{"talent"},
		Progress: account.OnboardingProgress{
			Version: account.ProgressSchemaVersion,
			Roles: map[shared.Shell]account.RoleOnboardingState{
				shared.ShellTalent: {Status: account.RoleInProgress},
			},
		},
	}

	state := NewState(acct).ApplyIntent(shared.ShellTalent, time.Now().UTC())
	patch := state.Patch(acct)

	assert.Nil(t, patch.EntryIntent)
	assert.Nil(t, patch.PrimaryRole)
	assert.Nil(t, patch.ActiveRoles)
	require.NotNil(t, patch.Progress)
}

func TestPatchCarriesNewRoles(t *testing.T) {
	acct := &account.Account{}
	state := NewState(acct).ApplyRoleCompletion(shared.ShellEmployer, true, time.Now().UTC())
	patch := state.Patch(acct)

	assert.Equal(t, []shared.Shell{shared.ShellEmployer}, patch.ActiveRoles)
	require.NotNil(t, patch.PrimaryRole)
	assert.Equal(t, shared.ShellEmployer, *patch.PrimaryRole)
	require.NotNil(t, patch.Progress)
	assert.True(t, patch.Progress.BaseProfileComplete)
}
