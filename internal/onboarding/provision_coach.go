// File: internal/onboarding/provision_coach.go
package onboarding

import (
	"context"
	"strconv"
	"time"

	"climatework_backend/internal/account"
	"climatework_backend/internal/coach"
	"climatework_backend/internal/common"
	"climatework_backend/internal/shared"

	"go.uber.org/zap"
)

// CoachProvisioner creates or updates the coach profile for a coach-shell
// completion.
type CoachProvisioner struct {
	repo   coach.Repository
	logger *zap.Logger
}

// NewCoachProvisioner creates a new coach provisioner.
func NewCoachProvisioner(repo coach.Repository, logger *zap.Logger) *CoachProvisioner {
	return &CoachProvisioner{repo: repo, logger: logger}
}

func (p *CoachProvisioner) Shell() shared.Shell {
	return shared.ShellCoach
}

func (p *CoachProvisioner) Provision(ctx context.Context, acct *account.Account, req *Request) (Outcome, error) {
	in := req.Coach

	profile, err := p.repo.FindByAccountID(ctx, acct.ID)
	created := false
	if err != nil {
		if apiErr, ok := common.IsAPIError(err); !ok || apiErr.StatusCode != common.ErrNotFound.StatusCode {
			return Outcome{}, err
		}
		created = true
		// Applications start PENDING; onboarding never changes status later.
		profile = &coach.CoachProfile{
			AccountID:         acct.ID,
			ApplicationStatus: coach.ApplicationPending,
			AppliedAt:         time.Now().UTC(),
		}
	}

	profile.FirstName = pickString(in.FirstName, profile.FirstName)
	profile.LastName = pickString(in.LastName, profile.LastName)
	profile.Bio = pickString(in.Bio, profile.Bio)
	profile.Headline = pickString(in.Headline, profile.Headline)
	profile.PhotoURL = pickString(in.PhotoURL, profile.PhotoURL)
	profile.Sectors = pickStrings(in.Sectors, profile.Sectors)
	profile.Expertise = pickStrings(in.Expertise, profile.Expertise)
	profile.SessionTypes = pickStrings(in.SessionTypes, profile.SessionTypes)
	profile.SessionRate = pickInt(in.SessionRate, profile.SessionRate)
	profile.YearsInClimate = pickInt(in.YearsInClimate, profile.YearsInClimate)

	if in.Availability != nil {
		profile.Availability = coach.AvailabilityBlob(in.Availability)
		profile.BufferTimeMinutes = extractBufferTime(in.Availability)
	} else if created {
		profile.BufferTimeMinutes = coach.DefaultBufferMinutes
	}

	if err := p.repo.Save(ctx, profile); err != nil {
		p.logger.Error("Failed to provision coach profile",
			zap.Error(err), zap.String("accountID", acct.ID.String()))
		return Outcome{}, err
	}
	return Outcome{FirstName: in.FirstName, LastName: in.LastName}, nil
}

// extractBufferTime pulls an optional numeric bufferTime out of the free-form
// availability blob, defaulting to 15 minutes when absent or unparsable.
func extractBufferTime(availability map[string]interface{}) int {
	raw, ok := availability["bufferTime"]
	if !ok {
		return coach.DefaultBufferMinutes
	}
	switch v := raw.(type) {
	case float64:
		if v >= 0 {
			return int(v)
		}
	case string:
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return coach.DefaultBufferMinutes
}
