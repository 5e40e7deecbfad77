// File: internal/onboarding/provision_talent.go
package onboarding

import (
	"context"
	"fmt"
	"time"

	"climatework_backend/internal/account"
	"climatework_backend/internal/common"
	"climatework_backend/internal/shared"
	"climatework_backend/internal/talent"

	"go.uber.org/zap"
)

// experienceYears maps the bucketed experience strings to representative
// integers for sortable storage.
var experienceYears = map[string]int{
	"less-than-1": 0,
	"1-3":         2,
	"3-7":         5,
	"7-10":        8,
	"10+":         10,
}

// TalentProvisioner creates or updates the seeker profile for a talent-shell
// completion.
type TalentProvisioner struct {
	repo   talent.Repository
	logger *zap.Logger
}

// NewTalentProvisioner creates a new talent provisioner.
func NewTalentProvisioner(repo talent.Repository, logger *zap.Logger) *TalentProvisioner {
	return &TalentProvisioner{repo: repo, logger: logger}
}

func (p *TalentProvisioner) Shell() shared.Shell {
	return shared.ShellTalent
}

func (p *TalentProvisioner) Provision(ctx context.Context, acct *account.Account, req *Request) (Outcome, error) {
	in := req.Talent

	profile, err := p.repo.FindByAccountID(ctx, acct.ID)
	if err != nil {
		if apiErr, ok := common.IsAPIError(err); !ok || apiErr.StatusCode != common.ErrNotFound.StatusCode {
			return Outcome{}, err
		}
		profile = &talent.SeekerProfile{AccountID: acct.ID}
	}

	profile.TargetSectors = pickStrings(targetSectors(in), profile.TargetSectors)
	profile.Headline = pickString(headline(in), profile.Headline)
	profile.Skills = pickStrings(in.Skills, profile.Skills)
	profile.GreenSkills = pickStrings(in.GreenSkills, profile.GreenSkills)
	profile.CareerStage = pickString(in.CareerStage, profile.CareerStage)
	profile.Summary = pickString(in.Summary, profile.Summary)
	profile.Motivations = pickStrings(motivationTags(in), profile.Motivations)
	profile.OpenToMentoring = pickBool(in.OpenToMentoring, profile.OpenToMentoring)
	profile.MentorTopics = pickStrings(in.MentorTopics, profile.MentorTopics)

	if in.Experience != nil {
		if years, ok := experienceYears[*in.Experience]; ok {
			profile.YearsOfExperience = &years
		}
	}

	var pathways []talent.PathwayLink
	if in.Pathways != nil {
		pathways = make([]talent.PathwayLink, 0, len(in.Pathways))
		for i, pw := range in.Pathways {
			pathways = append(pathways, talent.PathwayLink{Pathway: pw, Priority: i + 1})
		}
	}

	var experience []talent.WorkExperience
	if in.WorkExperience != nil {
		experience = make([]talent.WorkExperience, 0, len(in.WorkExperience))
		for _, entry := range in.WorkExperience {
			we := talent.WorkExperience{
				Title:       entry.Title,
				Company:     entry.Company,
				StartDate:   parseYearMonth(entry.StartDate),
				IsCurrent:   entry.IsCurrent,
				Description: entry.Description,
			}
			// A current role has no end date, even if one was supplied.
			if !entry.IsCurrent {
				we.EndDate = parseYearMonth(entry.EndDate)
			}
			experience = append(experience, we)
		}
	}

	if err := p.repo.Save(ctx, profile, pathways, experience); err != nil {
		p.logger.Error("Failed to provision seeker profile",
			zap.Error(err), zap.String("accountID", acct.ID.String()))
		return Outcome{}, err
	}
	return Outcome{FirstName: in.FirstName, LastName: in.LastName}, nil
}

// targetSectors prefers an explicit pathway list over the sector list.
func targetSectors(in *TalentRequest) []string {
	if len(in.Pathways) > 0 {
		return in.Pathways
	}
	return in.Sectors
}

// headline prefers an explicit job title over the first stated goal.
func headline(in *TalentRequest) *string {
	if in.JobTitle != nil && *in.JobTitle != "" {
		return in.JobTitle
	}
	if len(in.Goals) > 0 {
		return &in.Goals[0]
	}
	return nil
}

// motivationTags flattens the optional preference inputs into one filterable
// tag list, each value prefixed with its category label.
func motivationTags(in *TalentRequest) []string {
	var tags []string
	for _, g := range in.Goals {
		tags = append(tags, "goal:"+g)
	}
	if in.RemotePreference != nil && *in.RemotePreference != "" {
		tags = append(tags, "remote:"+*in.RemotePreference)
	}
	if in.LocationPreference != nil && *in.LocationPreference != "" {
		tags = append(tags, "location:"+*in.LocationPreference)
	}
	if in.TransitionTimeline != nil && *in.TransitionTimeline != "" {
		tags = append(tags, "timeline:"+*in.TransitionTimeline)
	}
	for _, rt := range in.RoleTypes {
		tags = append(tags, "role-type:"+rt)
	}
	for _, jt := range in.JobTypes {
		tags = append(tags, "job-type:"+jt)
	}
	if in.SalaryRange != nil && (in.SalaryRange.Min != nil || in.SalaryRange.Max != nil) {
		min, max := 0, 0
		if in.SalaryRange.Min != nil {
			min = *in.SalaryRange.Min
		}
		if in.SalaryRange.Max != nil {
			max = *in.SalaryRange.Max
		}
		tags = append(tags, fmt.Sprintf("salary:%d-%d", min, max))
	}
	return tags
}

// parseYearMonth normalizes a "YYYY-MM" string to the first day of that
// month, UTC. Invalid or absent input yields nil.
func parseYearMonth(raw *string) *time.Time {
	if raw == nil || *raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01", *raw)
	if err != nil {
		return nil
	}
	t = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return &t
}
