// File: internal/onboarding/provision_employer.go
package onboarding

import (
	"context"

	"climatework_backend/internal/account"
	"climatework_backend/internal/common"
	"climatework_backend/internal/invite"
	"climatework_backend/internal/org"
	"climatework_backend/internal/shared"

	"github.com/gosimple/slug"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// EmployerProvisioner creates or updates the organization for an
// employer-shell completion. An account holding a membership already gets its
// organization updated in place, which makes repeat submissions idempotent at
// the organization level.
type EmployerProvisioner struct {
	repo       org.Repository
	slugs      *org.SlugAllocator
	dispatcher *invite.Dispatcher
	logger     *zap.Logger
}

// NewEmployerProvisioner creates a new employer provisioner.
func NewEmployerProvisioner(repo org.Repository, slugs *org.SlugAllocator, dispatcher *invite.Dispatcher, logger *zap.Logger) *EmployerProvisioner {
	return &EmployerProvisioner{repo: repo, slugs: slugs, dispatcher: dispatcher, logger: logger}
}

func (p *EmployerProvisioner) Shell() shared.Shell {
	return shared.ShellEmployer
}

func (p *EmployerProvisioner) Provision(ctx context.Context, acct *account.Account, req *Request) (Outcome, error) {
	in := req.Employer

	membership, err := p.repo.FindMembershipByAccountID(ctx, acct.ID)
	if err != nil {
		if apiErr, ok := common.IsAPIError(err); !ok || apiErr.StatusCode != common.ErrNotFound.StatusCode {
			return Outcome{}, err
		}
		membership = nil
	}

	var organization *org.Organization
	if membership != nil {
		organization = membership.Organization
		if err := p.repo.UpdateOrganization(ctx, membership.OrganizationID, p.updateColumns(in)); err != nil {
			p.logger.Error("Failed to update organization",
				zap.Error(err), zap.String("organizationID", membership.OrganizationID.String()))
			return Outcome{}, err
		}
	} else {
		organization, err = p.create(ctx, acct, in)
		if err != nil {
			return Outcome{}, err
		}
	}

	// Invites run detached from the provisioning transaction; their outcome
	// never affects this request's response.
	if len(in.Invites) > 0 && organization != nil {
		invitees := make([]invite.Invitee, 0, len(in.Invites))
		for _, inv := range in.Invites {
			invitees = append(invitees, invite.Invitee{Email: inv.Email, Role: inv.Role})
		}
		p.dispatcher.Dispatch(invite.Batch{
			OrganizationID:   organization.ID,
			OrganizationName: organization.Name,
			InviterID:        acct.ID,
			Invitees:         invitees,
		})
	}

	return Outcome{FirstName: in.FirstName, LastName: in.LastName}, nil
}

func (p *EmployerProvisioner) create(ctx context.Context, acct *account.Account, in *EmployerRequest) (*org.Organization, error) {
	orgSlug, err := p.slugs.Allocate(ctx, in.CompanyName)
	if err != nil {
		return nil, err
	}

	organization := &org.Organization{
		Name:        in.CompanyName,
		Slug:        orgSlug,
		Description: in.Description,
		Website:     in.Website,
		Location:    in.Location,
		Size:        in.Size,
		Industries:  pq.StringArray(in.Industries),
		HiringGoal:  in.HiringGoal,
	}
	membership := &org.Membership{
		AccountID: acct.ID,
		Role:      org.MembershipOwner,
		Title:     in.Title,
	}

	var draft *org.JobDraft
	if in.FirstJob != nil {
		draft = &org.JobDraft{
			Title:       in.FirstJob.Title,
			Slug:        slug.Make(in.FirstJob.Title),
			Description: in.FirstJob.Description,
			Location:    in.FirstJob.Location,
			Status:      org.JobDraftDraft,
		}
		if in.FirstJob.WorkType != nil {
			draft.WorkType = org.MapWorkType(*in.FirstJob.WorkType)
		}
		if in.FirstJob.EmploymentType != nil {
			draft.EmploymentType = org.MapEmploymentType(*in.FirstJob.EmploymentType)
		}
	}

	if err := p.repo.ProvisionOwner(ctx, organization, membership, draft); err != nil {
		p.logger.Error("Failed to provision organization",
			zap.Error(err), zap.String("accountID", acct.ID.String()),
			zap.String("slug", orgSlug))
		return nil, err
	}
	p.logger.Info("Organization provisioned",
		zap.String("organizationID", organization.ID.String()),
		zap.String("slug", orgSlug))
	return organization, nil
}

// updateColumns builds the in-place organization update, keeping stored
// values for omitted or empty fields.
func (p *EmployerProvisioner) updateColumns(in *EmployerRequest) map[string]interface{} {
	cols := map[string]interface{}{}
	if in.CompanyName != "" {
		cols["name"] = in.CompanyName
	}
	if in.Description != nil && *in.Description != "" {
		cols["description"] = *in.Description
	}
	if in.Website != nil && *in.Website != "" {
		cols["website"] = *in.Website
	}
	if in.Location != nil && *in.Location != "" {
		cols["location"] = *in.Location
	}
	if in.Size != nil && *in.Size != "" {
		cols["size"] = *in.Size
	}
	if len(in.Industries) > 0 {
		cols["industries"] = pq.StringArray(in.Industries)
	}
	if in.HiringGoal != nil && *in.HiringGoal != "" {
		cols["hiring_goal"] = *in.HiringGoal
	}
	return cols
}
