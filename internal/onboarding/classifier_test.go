package onboarding

import (
	"net/http"
	"testing"

	"climatework_backend/internal/common"
	"climatework_backend/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifyErr(t *testing.T, body string) *common.APIError {
	t.Helper()
	_, err := NewClassifier().Classify([]byte(body))
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok, "expected an APIError, got %v", err)
	return apiErr
}

func TestClassifyMalformedBody(t *testing.T) {
	apiErr := classifyErr(t, `not-valid-json{{{`)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Invalid JSON body", apiErr.Message)
	assert.Nil(t, apiErr.Details)
}

func TestClassifyMissingAction(t *testing.T) {
	apiErr := classifyErr(t, `{"entryIntent":"talent"}`)
	assert.Equal(t, "Validation failed", apiErr.Message)
	details := apiErr.Details.([]common.FieldError)
	require.Len(t, details, 1)
	assert.Equal(t, "action", details[0].Path)
}

func TestClassifyUnknownAction(t *testing.T) {
	apiErr := classifyErr(t, `{"action":"launch-rocket"}`)
	assert.Equal(t, "Validation failed", apiErr.Message)
	details := apiErr.Details.([]common.FieldError)
	require.Len(t, details, 1)
	assert.Equal(t, "action", details[0].Path)
}

func TestClassifySetIntent(t *testing.T) {
	req, err := NewClassifier().Classify([]byte(`{"action":"set-intent","entryIntent":"talent"}`))
	require.NoError(t, err)
	assert.Equal(t, ActionSetIntent, req.Action)
	require.NotNil(t, req.Intent)
	assert.Equal(t, "talent", req.Intent.EntryIntent)
}

func TestClassifySetIntentInvalidShell(t *testing.T) {
	apiErr := classifyErr(t, `{"action":"set-intent","entryIntent":"astronaut"}`)
	details := apiErr.Details.([]common.FieldError)
	require.Len(t, details, 1)
	assert.Equal(t, "entryIntent", details[0].Path)
}

func TestClassifyCompleteRoleRequiresShell(t *testing.T) {
	apiErr := classifyErr(t, `{"action":"complete-role"}`)
	details := apiErr.Details.([]common.FieldError)
	require.Len(t, details, 1)
	assert.Equal(t, "shell", details[0].Path)

	apiErr = classifyErr(t, `{"action":"complete-role","shell":"wizard"}`)
	details = apiErr.Details.([]common.FieldError)
	require.Len(t, details, 1)
	assert.Equal(t, "shell", details[0].Path)
}

func TestClassifyTalentCompletion(t *testing.T) {
	body := `{"action":"complete-role","shell":"talent","skills":["React","Node.js"],"experience":"3-7"}`
	req, err := NewClassifier().Classify([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, ActionCompleteRole, req.Action)
	assert.Equal(t, shared.ShellTalent, req.Shell)
	require.NotNil(t, req.Talent)
	assert.Equal(t, []string{"React", "Node.js"}, req.Talent.Skills)
	assert.Equal(t, "3-7", *req.Talent.Experience)
}

func TestClassifyEnumeratesEveryFieldError(t *testing.T) {
	body := `{"action":"complete-role","shell":"employer","invites":[{"email":"not-an-email"}]}`
	apiErr := classifyErr(t, body)
	assert.Equal(t, "Validation failed", apiErr.Message)

	details := apiErr.Details.([]common.FieldError)
	require.Len(t, details, 2)
	paths := []string{details[0].Path, details[1].Path}
	assert.Contains(t, paths, "companyName")
	assert.Contains(t, paths, "invites[0].email")
}

func TestClassifyLegacyBeforeModern(t *testing.T) {
	// A `role` field with no `action` selects the legacy shape even when the
	// body carries modern-looking fields.
	req, err := NewClassifier().Classify([]byte(`{"role":"seeker","skills":["GIS"]}`))
	require.NoError(t, err)
	assert.Equal(t, ActionCompleteRole, req.Action)
	assert.Equal(t, shared.ShellTalent, req.Shell)
	require.NotNil(t, req.Talent)
	assert.Equal(t, []string{"GIS"}, req.Talent.Skills)

	// A body carrying both role and action is classified as modern.
	req, err = NewClassifier().Classify([]byte(`{"role":"seeker","action":"set-intent","entryIntent":"coach"}`))
	require.NoError(t, err)
	assert.Equal(t, ActionSetIntent, req.Action)
}

func TestClassifyLegacyMentorMapsToTalent(t *testing.T) {
	req, err := NewClassifier().Classify([]byte(`{"role":"mentor","goals":["Transition to solar"]}`))
	require.NoError(t, err)
	assert.Equal(t, shared.ShellTalent, req.Shell)
	require.NotNil(t, req.Talent)
	assert.Equal(t, []string{"Transition to solar"}, req.Talent.Goals)
}

func TestClassifyLegacyCoach(t *testing.T) {
	body := `{"role":"coach","firstName":"Ada","bio":"20 years in wind","expertise":["offshore wind"]}`
	req, err := NewClassifier().Classify([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, shared.ShellCoach, req.Shell)
	require.NotNil(t, req.Coach)
	assert.Equal(t, "Ada", *req.Coach.FirstName)
	assert.Equal(t, "20 years in wind", *req.Coach.Bio)
	assert.Equal(t, []string{"offshore wind"}, req.Coach.Expertise)
}

func TestClassifyLegacyUnknownRole(t *testing.T) {
	apiErr := classifyErr(t, `{"role":"astronaut"}`)
	details := apiErr.Details.([]common.FieldError)
	require.Len(t, details, 1)
	assert.Equal(t, "role", details[0].Path)
}

func TestClassifyWorkExperienceDateFormat(t *testing.T) {
	body := `{"action":"complete-role","shell":"talent","workExperience":[{"title":"Analyst","company":"Acme","startDate":"March 2020"}]}`
	apiErr := classifyErr(t, body)
	details := apiErr.Details.([]common.FieldError)
	require.Len(t, details, 1)
	assert.Equal(t, "workExperience[0].startDate", details[0].Path)
}
