// File: internal/onboarding/service.go
package onboarding

import (
	"context"
	"fmt"
	"time"

	"climatework_backend/internal/account"
	"climatework_backend/internal/common"
	"climatework_backend/internal/shared"

	"go.uber.org/zap"
)

// Result is the success envelope for one onboarding action.
type Result struct {
	Success bool         `json:"success"`
	Action  Action       `json:"action"`
	Shell   shared.Shell `json:"shell,omitempty"`
}

// ProgressView is the read model for the wizard-resume endpoint.
type ProgressView struct {
	ActiveRoles         []string                                     `json:"activeRoles"`
	EntryIntent         *shared.Shell                                `json:"entryIntent,omitempty"`
	PrimaryRole         *shared.Shell                                `json:"primaryRole,omitempty"`
	BaseProfileComplete bool                                         `json:"baseProfileComplete"`
	Roles               map[shared.Shell]account.RoleOnboardingState `json:"roles,omitempty"`
}

// Service orchestrates one onboarding action: classify, resolve the account,
// provision the shell, advance progress, persist the account patch.
type Service interface {
	HandleAction(ctx context.Context, identity *shared.Identity, body []byte) (*Result, error)
	Progress(ctx context.Context, identity *shared.Identity) (*ProgressView, error)
}

// ServiceImplementation provides the onboarding orchestration logic.
type ServiceImplementation struct {
	classifier   *Classifier
	resolver     *account.Resolver
	accounts     account.Repository
	provisioners map[shared.Shell]RoleProvisioner
	logger       *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new onboarding service.
func NewService(
	classifier *Classifier,
	resolver *account.Resolver,
	accounts account.Repository,
	talentProv *TalentProvisioner,
	coachProv *CoachProvisioner,
	employerProv *EmployerProvisioner,
	logger *zap.Logger,
) *ServiceImplementation {
	provisioners := map[shared.Shell]RoleProvisioner{
		talentProv.Shell():   talentProv,
		coachProv.Shell():    coachProv,
		employerProv.Shell(): employerProv,
	}
	return &ServiceImplementation{
		classifier:   classifier,
		resolver:     resolver,
		accounts:     accounts,
		provisioners: provisioners,
		logger:       logger,
	}
}

// HandleAction runs one onboarding action end to end. Classification happens
// strictly before any mutation, so a rejected request never partially
// provisions anything.
func (s *ServiceImplementation) HandleAction(ctx context.Context, identity *shared.Identity, body []byte) (*Result, error) {
	req, err := s.classifier.Classify(body)
	if err != nil {
		return nil, err
	}

	acct, err := s.resolver.Resolve(ctx, identity)
	if err != nil {
		return nil, err
	}

	switch req.Action {
	case ActionSetIntent:
		return s.handleIntent(ctx, acct, req)
	case ActionBaseProfile:
		return s.handleBaseProfile(ctx, acct, req)
	case ActionCompleteRole:
		return s.handleRoleCompletion(ctx, acct, req)
	default:
		return nil, common.ErrInternalServer
	}
}

func (s *ServiceImplementation) handleIntent(ctx context.Context, acct *account.Account, req *Request) (*Result, error) {
	shell := shared.Shell(req.Intent.EntryIntent)
	state := NewState(acct).ApplyIntent(shell, time.Now().UTC())

	if err := s.accounts.ApplyPatch(ctx, acct.ID, state.Patch(acct)); err != nil {
		s.logger.Error("Failed to persist intent",
			zap.Error(err), zap.String("accountID", acct.ID.String()))
		return nil, err
	}
	s.logger.Info("Onboarding intent set",
		zap.String("accountID", acct.ID.String()), zap.String("shell", string(shell)))
	return &Result{Success: true, Action: ActionSetIntent}, nil
}

func (s *ServiceImplementation) handleBaseProfile(ctx context.Context, acct *account.Account, req *Request) (*Result, error) {
	in := req.BaseProfile
	state := NewState(acct).ApplyBaseProfile()

	patch := state.Patch(acct)
	patch.FirstName = &in.FirstName
	patch.LastName = &in.LastName
	displayName := fmt.Sprintf("%s %s", in.FirstName, in.LastName)
	patch.DisplayName = &displayName
	if in.Location != nil && *in.Location != "" {
		patch.Location = in.Location
	}

	if err := s.accounts.ApplyPatch(ctx, acct.ID, patch); err != nil {
		s.logger.Error("Failed to persist base profile",
			zap.Error(err), zap.String("accountID", acct.ID.String()))
		return nil, err
	}
	s.logger.Info("Base profile completed", zap.String("accountID", acct.ID.String()))
	return &Result{Success: true, Action: ActionBaseProfile}, nil
}

func (s *ServiceImplementation) handleRoleCompletion(ctx context.Context, acct *account.Account, req *Request) (*Result, error) {
	provisioner, ok := s.provisioners[req.Shell]
	if !ok {
		return nil, common.ErrInternalServer
	}

	outcome, err := provisioner.Provision(ctx, acct, req)
	if err != nil {
		return nil, err
	}

	nameKnown := acct.NameKnown() || nonEmpty(outcome.FirstName)
	state := NewState(acct).ApplyRoleCompletion(req.Shell, nameKnown, time.Now().UTC())

	patch := state.Patch(acct)
	if nonEmpty(outcome.FirstName) {
		patch.FirstName = outcome.FirstName
	}
	if nonEmpty(outcome.LastName) {
		patch.LastName = outcome.LastName
	}
	if nonEmpty(outcome.FirstName) && nonEmpty(outcome.LastName) && acct.DisplayName == nil {
		displayName := fmt.Sprintf("%s %s", *outcome.FirstName, *outcome.LastName)
		patch.DisplayName = &displayName
	}

	if err := s.accounts.ApplyPatch(ctx, acct.ID, patch); err != nil {
		s.logger.Error("Failed to persist role completion",
			zap.Error(err), zap.String("accountID", acct.ID.String()),
			zap.String("shell", string(req.Shell)))
		return nil, err
	}
	s.logger.Info("Shell onboarding completed",
		zap.String("accountID", acct.ID.String()), zap.String("shell", string(req.Shell)))
	return &Result{Success: true, Action: ActionCompleteRole, Shell: req.Shell}, nil
}

// Progress returns the caller's onboarding position without creating an
// account for first-time subjects.
func (s *ServiceImplementation) Progress(ctx context.Context, identity *shared.Identity) (*ProgressView, error) {
	acct, err := s.accounts.FindByFirebaseUID(ctx, identity.SubjectUID)
	if err != nil {
		if apiErr, ok := common.IsAPIError(err); ok && apiErr.StatusCode == common.ErrNotFound.StatusCode {
			return &ProgressView{ActiveRoles: []string{}}, nil
		}
		return nil, err
	}

	view := &ProgressView{
		ActiveRoles:         acct.ActiveRoles,
		EntryIntent:         acct.EntryIntent,
		PrimaryRole:         acct.PrimaryRole,
		BaseProfileComplete: acct.Progress.BaseProfileComplete,
		Roles:               acct.Progress.Roles,
	}
	if view.ActiveRoles == nil {
		view.ActiveRoles = []string{}
	}
	return view, nil
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}
