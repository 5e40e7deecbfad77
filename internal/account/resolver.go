// File: internal/account/resolver.go
package account

import (
	"context"

	"climatework_backend/internal/common"
	"climatework_backend/internal/shared"

	"go.uber.org/zap"
)

// Resolver maps a verified subject identity to its account, creating the
// account on first touch.
type Resolver struct {
	repo   Repository
	logger *zap.Logger
}

// NewResolver creates a new account resolver.
func NewResolver(repo Repository, logger *zap.Logger) *Resolver {
	return &Resolver{repo: repo, logger: logger}
}

// Resolve finds the account for the identity's subject or creates it. A
// brand-new subject without an email is rejected: creating an account with no
// contact address would signal a misconfigured upstream identity flow.
func (r *Resolver) Resolve(ctx context.Context, identity *shared.Identity) (*Account, error) {
	acct, err := r.repo.FindByFirebaseUID(ctx, identity.SubjectUID)
	if err == nil {
		return acct, nil
	}
	if apiErr, ok := common.IsAPIError(err); !ok || apiErr.StatusCode != common.ErrNotFound.StatusCode {
		r.logger.Error("Failed to look up account by subject",
			zap.Error(err), zap.String("subjectUID", identity.SubjectUID))
		return nil, err
	}

	if identity.Email == nil || *identity.Email == "" {
		r.logger.Warn("First-time account creation without email on auth user",
			zap.String("subjectUID", identity.SubjectUID))
		return nil, common.ErrNoAuthEmail
	}

	acct, err = r.repo.EnsureBySubject(ctx, identity.SubjectUID, *identity.Email)
	if err != nil {
		r.logger.Error("Failed to ensure account for subject",
			zap.Error(err), zap.String("subjectUID", identity.SubjectUID))
		return nil, err
	}
	r.logger.Info("Account resolved", zap.String("accountID", acct.ID.String()),
		zap.String("subjectUID", identity.SubjectUID))
	return acct, nil
}
