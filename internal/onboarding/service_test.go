package onboarding

import (
	"context"
	"fmt"
	"testing"

	"climatework_backend/internal/account"
	"climatework_backend/internal/coach"
	"climatework_backend/internal/common"
	"climatework_backend/internal/invite"
	"climatework_backend/internal/notification"
	"climatework_backend/internal/org"
	"climatework_backend/internal/shared"
	"climatework_backend/internal/talent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServiceTest(t *testing.T) (*ServiceImplementation, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "Failed to open test database")

	err = db.AutoMigrate(
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
	require.NoError(t, err, "Failed to migrate test database")

	logger := zap.NewNop()
	accounts := account.NewGORMRepository(db)
	resolver := account.NewResolver(accounts, logger)

	orgRepo := org.NewGORMRepository(db)
	dispatcher := invite.NewDispatcher(
		invite.NewGORMRepository(db),
		notification.NewLogSender(logger),
		"http://localhost:3000",
		logger,
	)

	svc := NewService(
		NewClassifier(),
		resolver,
		accounts,
		NewTalentProvisioner(talent.NewGORMRepository(db), logger),
		NewCoachProvisioner(coach.NewGORMRepository(db), logger),
		NewEmployerProvisioner(orgRepo, org.NewSlugAllocator(orgRepo, logger), dispatcher, logger),
		logger,
	)
	return svc, db
}

func testIdentity(uid, email string) *shared.Identity {
	return &shared.Identity{SubjectUID: uid, Email: &email}
}

func findAccount(t *testing.T, db *gorm.DB, uid string) *account.Account {
	t.Helper()
	var acct account.Account
	require.NoError(t, db.Where("firebase_uid = ?", uid).First(&acct).Error)
	return &acct
}

func TestSetIntentIsIdempotent(t *testing.T) {
	svc, db := setupServiceTest(t)
	identity := testIdentity("uid-intent", "intent@example.com")
	body := []byte(`{"action":"set-intent","entryIntent":"talent"}`)

	result, err := svc.HandleAction(context.Background(), identity, body)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, ActionSetIntent, result.Action)
	assert.Empty(t, result.Shell)

	result, err = svc.HandleAction(context.Background(), identity, body)
	require.NoError(t, err)
	assert.True(t, result.Success)

	acct := findAccount(t, db, "uid-intent")
	assert.Equal(t, []string{"talent"}, []string(acct.ActiveRoles))
	require.NotNil(t, acct.PrimaryRole)
	assert.Equal(t, shared.ShellTalent, *acct.PrimaryRole)
	require.NotNil(t, acct.EntryIntent)
	assert.Equal(t, shared.ShellTalent, *acct.EntryIntent)
	assert.Equal(t, account.RoleInProgress, acct.Progress.Role(shared.ShellTalent).Status)
}

func TestFirstTouchWithoutEmailIsRejected(t *testing.T) {
	svc, db := setupServiceTest(t)
	identity := &shared.Identity{SubjectUID: "uid-no-email"}

	_, err := svc.HandleAction(context.Background(), identity,
		[]byte(`{"action":"set-intent","entryIntent":"coach"}`))
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "No email on auth user", apiErr.Message)

	var count int64
	require.NoError(t, db.Model(&account.Account{}).Count(&count).Error)
	assert.Zero(t, count, "no account row may be created for a rejected first touch")
}

func TestTalentCompletionProvisionsProfile(t *testing.T) {
	svc, db := setupServiceTest(t)
	identity := testIdentity("uid-talent", "talent@example.com")
	body := []byte(`{
		"action": "complete-role",
		"shell": "talent",
		"firstName": "Noor",
		"lastName": "Haddad",
		"skills": ["React", "Node.js"],
		"experience": "3-7",
		"jobTitle": "Grid software engineer",
		"goals": ["Work on storage"],
		"remotePreference": "hybrid",
		"salaryRange": {"min": 60000, "max": 90000},
		"pathways": ["clean-energy", "grid-modernization"],
		"workExperience": [
			{"title": "Engineer", "company": "Acme", "startDate": "2019-03", "endDate": "2022-07"},
			{"title": "Senior Engineer", "company": "Volt", "startDate": "2022-08", "endDate": "2024-01", "isCurrent": true}
		]
	}`)

	result, err := svc.HandleAction(context.Background(), identity, body)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, ActionCompleteRole, result.Action)
	assert.Equal(t, shared.ShellTalent, result.Shell)

	acct := findAccount(t, db, "uid-talent")
	assert.Equal(t, account.RoleComplete, acct.Progress.Role(shared.ShellTalent).Status)
	assert.True(t, acct.Progress.BaseProfileComplete, "a supplied name derives base-profile completeness")
	require.NotNil(t, acct.FirstName)
	assert.Equal(t, "Noor", *acct.FirstName)

	var profile talent.SeekerProfile
	require.NoError(t, db.Preload("PathwayLinks").Preload("Experience").
		Where("account_id = ?", acct.ID).First(&profile).Error)
	assert.Equal(t, []string{"React", "Node.js"}, []string(profile.Skills))
	require.NotNil(t, profile.YearsOfExperience)
	assert.Equal(t, 5, *profile.YearsOfExperience)
	require.NotNil(t, profile.Headline)
	assert.Equal(t, "Grid software engineer", *profile.Headline)
	assert.Equal(t, []string{"clean-energy", "grid-modernization"}, []string(profile.TargetSectors))
	assert.Contains(t, []string(profile.Motivations), "goal:Work on storage")
	assert.Contains(t, []string(profile.Motivations), "remote:hybrid")
	assert.Contains(t, []string(profile.Motivations), "salary:60000-90000")

	require.Len(t, profile.PathwayLinks, 2)
	require.Len(t, profile.Experience, 2)
	for _, entry := range profile.Experience {
		if entry.IsCurrent {
			assert.Nil(t, entry.EndDate, "a current role carries no end date")
		} else {
			require.NotNil(t, entry.EndDate)
		}
		require.NotNil(t, entry.StartDate)
		assert.Equal(t, 1, entry.StartDate.Day())
	}
}

func TestTalentFallbackMerge(t *testing.T) {
	svc, db := setupServiceTest(t)
	identity := testIdentity("uid-merge", "merge@example.com")

	_, err := svc.HandleAction(context.Background(), identity,
		[]byte(`{"action":"complete-role","shell":"talent","skills":["React","Node.js"]}`))
	require.NoError(t, err)

	// An empty re-submission keeps the stored skills.
	_, err = svc.HandleAction(context.Background(), identity,
		[]byte(`{"action":"complete-role","shell":"talent","summary":"Ten years in SaaS"}`))
	require.NoError(t, err)

	acct := findAccount(t, db, "uid-merge")
	var profile talent.SeekerProfile
	require.NoError(t, db.Where("account_id = ?", acct.ID).First(&profile).Error)
	assert.Equal(t, []string{"React", "Node.js"}, []string(profile.Skills))
	require.NotNil(t, profile.Summary)
	assert.Equal(t, "Ten years in SaaS", *profile.Summary)

	// A non-empty list replaces wholesale.
	_, err = svc.HandleAction(context.Background(), identity,
		[]byte(`{"action":"complete-role","shell":"talent","skills":["GIS"]}`))
	require.NoError(t, err)

	require.NoError(t, db.Where("account_id = ?", acct.ID).First(&profile).Error)
	assert.Equal(t, []string{"GIS"}, []string(profile.Skills))

	var profileCount int64
	require.NoError(t, db.Model(&talent.SeekerProfile{}).Count(&profileCount).Error)
	assert.EqualValues(t, 1, profileCount)
}

func TestEmployerCompletionIsIdempotent(t *testing.T) {
	svc, db := setupServiceTest(t)
	identity := testIdentity("uid-employer", "employer@example.com")
	body := []byte(`{
		"action": "complete-role",
		"shell": "employer",
		"firstName": "Iris",
		"lastName": "Moreno",
		"companyName": "Solaris Energy Co.",
		"title": "Head of People",
		"industries": ["solar"],
		"firstJob": {"title": "Solar Installer", "workType": "On-Site", "employmentType": "Full-Time"}
	}`)

	result, err := svc.HandleAction(context.Background(), identity, body)
	require.NoError(t, err)
	assert.Equal(t, shared.ShellEmployer, result.Shell)

	acct := findAccount(t, db, "uid-employer")

	var organization org.Organization
	require.NoError(t, db.First(&organization).Error)
	assert.Equal(t, "Solaris Energy Co.", organization.Name)
	assert.Equal(t, "solaris-energy-co", organization.Slug)

	var membership org.Membership
	require.NoError(t, db.Where("account_id = ?", acct.ID).First(&membership).Error)
	assert.Equal(t, org.MembershipOwner, membership.Role)
	assert.Equal(t, organization.ID, membership.OrganizationID)

	var draft org.JobDraft
	require.NoError(t, db.Where("organization_id = ?", organization.ID).First(&draft).Error)
	assert.Equal(t, org.JobDraftDraft, draft.Status)
	require.NotNil(t, draft.WorkType)
	assert.Equal(t, org.WorkOnSite, *draft.WorkType)
	require.NotNil(t, draft.EmploymentType)
	assert.Equal(t, org.EmploymentFullTime, *draft.EmploymentType)

	// The second submission updates the organization in place.
	update := []byte(`{"action":"complete-role","shell":"employer","companyName":"Solaris Energy Co.","description":"Rooftop solar at scale"}`)
	_, err = svc.HandleAction(context.Background(), identity, update)
	require.NoError(t, err)

	var orgCount, membershipCount int64
	require.NoError(t, db.Model(&org.Organization{}).Count(&orgCount).Error)
	require.NoError(t, db.Model(&org.Membership{}).Count(&membershipCount).Error)
	assert.EqualValues(t, 1, orgCount)
	assert.EqualValues(t, 1, membershipCount)

	require.NoError(t, db.First(&organization).Error)
	require.NotNil(t, organization.Description)
	assert.Equal(t, "Rooftop solar at scale", *organization.Description)
	assert.Equal(t, "solaris-energy-co", organization.Slug, "update keeps the allocated slug")
}

func TestOrganizationSlugCollision(t *testing.T) {
	svc, db := setupServiceTest(t)

	_, err := svc.HandleAction(context.Background(), testIdentity("uid-acme-1", "one@acme.com"),
		[]byte(`{"action":"complete-role","shell":"employer","companyName":"Acme Co"}`))
	require.NoError(t, err)
	_, err = svc.HandleAction(context.Background(), testIdentity("uid-acme-2", "two@acme.com"),
		[]byte(`{"action":"complete-role","shell":"employer","companyName":"Acme Co"}`))
	require.NoError(t, err)

	var slugs []string
	require.NoError(t, db.Model(&org.Organization{}).Order("created_at ASC").Pluck("slug", &slugs).Error)
	assert.Equal(t, []string{"acme-co", "acme-co-2"}, slugs)
}

func TestLegacyCoachMatchesModernCoach(t *testing.T) {
	svc, db := setupServiceTest(t)

	legacyBody := []byte(`{"role":"coach","firstName":"Ada","bio":"20 years in wind","expertise":["offshore wind"],"availability":{"bufferTime":30}}`)
	modernBody := []byte(`{"action":"complete-role","shell":"coach","firstName":"Ada","bio":"20 years in wind","expertise":["offshore wind"],"availability":{"bufferTime":30}}`)

	_, err := svc.HandleAction(context.Background(), testIdentity("uid-legacy", "legacy@example.com"), legacyBody)
	require.NoError(t, err)
	_, err = svc.HandleAction(context.Background(), testIdentity("uid-modern", "modern@example.com"), modernBody)
	require.NoError(t, err)

	legacyAcct := findAccount(t, db, "uid-legacy")
	modernAcct := findAccount(t, db, "uid-modern")

	var legacyProfile, modernProfile coach.CoachProfile
	require.NoError(t, db.Where("account_id = ?", legacyAcct.ID).First(&legacyProfile).Error)
	require.NoError(t, db.Where("account_id = ?", modernAcct.ID).First(&modernProfile).Error)

	assert.Equal(t, legacyProfile.Bio, modernProfile.Bio)
	assert.Equal(t, legacyProfile.Expertise, modernProfile.Expertise)
	assert.Equal(t, legacyProfile.BufferTimeMinutes, modernProfile.BufferTimeMinutes)
	assert.Equal(t, 30, legacyProfile.BufferTimeMinutes)
	assert.Equal(t, coach.ApplicationPending, legacyProfile.ApplicationStatus)
	assert.Equal(t, coach.ApplicationPending, modernProfile.ApplicationStatus)
	assert.Equal(t, account.RoleComplete, legacyAcct.Progress.Role(shared.ShellCoach).Status)
}

func TestCoachBufferTimeDefault(t *testing.T) {
	svc, db := setupServiceTest(t)
	identity := testIdentity("uid-buffer", "buffer@example.com")

	_, err := svc.HandleAction(context.Background(), identity,
		[]byte(`{"action":"complete-role","shell":"coach","bio":"Here to help","availability":{"days":["mon","wed"]}}`))
	require.NoError(t, err)

	acct := findAccount(t, db, "uid-buffer")
	var profile coach.CoachProfile
	require.NoError(t, db.Where("account_id = ?", acct.ID).First(&profile).Error)
	assert.Equal(t, coach.DefaultBufferMinutes, profile.BufferTimeMinutes)
}

func TestCoachUpdateKeepsApplicationStatus(t *testing.T) {
	svc, db := setupServiceTest(t)
	identity := testIdentity("uid-status", "status@example.com")

	_, err := svc.HandleAction(context.Background(), identity,
		[]byte(`{"action":"complete-role","shell":"coach","bio":"First pass"}`))
	require.NoError(t, err)

	acct := findAccount(t, db, "uid-status")
	require.NoError(t, db.Model(&coach.CoachProfile{}).
		Where("account_id = ?", acct.ID).
		Update("application_status", coach.ApplicationApproved).Error)

	_, err = svc.HandleAction(context.Background(), identity,
		[]byte(`{"action":"complete-role","shell":"coach","bio":"Second pass"}`))
	require.NoError(t, err)

	var profile coach.CoachProfile
	require.NoError(t, db.Where("account_id = ?", acct.ID).First(&profile).Error)
	assert.Equal(t, coach.ApplicationApproved, profile.ApplicationStatus)
	require.NotNil(t, profile.Bio)
	assert.Equal(t, "Second pass", *profile.Bio)
}

func TestBaseProfileAction(t *testing.T) {
	svc, db := setupServiceTest(t)
	identity := testIdentity("uid-base", "base@example.com")

	result, err := svc.HandleAction(context.Background(), identity,
		[]byte(`{"action":"base-profile","firstName":"Sam","lastName":"Okoye","location":"Portland, OR"}`))
	require.NoError(t, err)
	assert.Equal(t, ActionBaseProfile, result.Action)

	acct := findAccount(t, db, "uid-base")
	assert.True(t, acct.Progress.BaseProfileComplete)
	require.NotNil(t, acct.DisplayName)
	assert.Equal(t, "Sam Okoye", *acct.DisplayName)
	require.NotNil(t, acct.Location)
	assert.Equal(t, "Portland, OR", *acct.Location)
}

func TestProgressView(t *testing.T) {
	svc, _ := setupServiceTest(t)

	// Unknown subjects get an empty view without an account being created.
	view, err := svc.Progress(context.Background(), testIdentity("uid-ghost", "ghost@example.com"))
	require.NoError(t, err)
	assert.Empty(t, view.ActiveRoles)
	assert.False(t, view.BaseProfileComplete)

	identity := testIdentity("uid-view", "view@example.com")
	_, err = svc.HandleAction(context.Background(), identity,
		[]byte(`{"action":"set-intent","entryIntent":"employer"}`))
	require.NoError(t, err)

	view, err = svc.Progress(context.Background(), identity)
	require.NoError(t, err)
	assert.Equal(t, []string{"employer"}, view.ActiveRoles)
	require.NotNil(t, view.PrimaryRole)
	assert.Equal(t, shared.ShellEmployer, *view.PrimaryRole)
	assert.Equal(t, account.RoleInProgress, view.Roles[shared.ShellEmployer].Status)
}

func TestValidationRejectsBeforeAnyWrite(t *testing.T) {
	svc, db := setupServiceTest(t)
	identity := testIdentity("uid-reject", "reject@example.com")

	_, err := svc.HandleAction(context.Background(), identity,
		[]byte(`{"action":"complete-role","shell":"employer"}`))
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Validation failed", apiErr.Message)

	var count int64
	require.NoError(t, db.Model(&account.Account{}).Count(&count).Error)
	assert.Zero(t, count, "classification failures must precede account creation")
}
