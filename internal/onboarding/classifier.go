// File: internal/onboarding/classifier.go
package onboarding

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"climatework_backend/internal/common"
	"climatework_backend/internal/shared"

	"github.com/go-playground/validator/v10"
)

// Classifier parses an inbound body into exactly one of the six recognized
// payload shapes, or rejects it. Classification and validation run strictly
// before any mutation.
type Classifier struct {
	validate *validator.Validate
}

// NewClassifier creates a classifier with a validator that reports JSON field
// names in error paths.
func NewClassifier() *Classifier {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Classifier{validate: v}
}

// envelope carries only the discriminator fields needed to pick a shape.
type envelope struct {
	Action *string `json:"action"`
	Role   *string `json:"role"`
	Shell  *string `json:"shell"`
}

// Classify returns the typed request for the body, or an APIError: malformed
// JSON fails before any schema validation; schema failures enumerate every
// offending field, not just the first.
func (c *Classifier) Classify(body []byte) (*Request, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, common.ErrMalformedBody
	}

	// The legacy shape carries `role` and no `action`. This ambiguity check
	// must run before the modern shapes.
	if env.Role != nil && env.Action == nil {
		return c.classifyLegacy(body)
	}

	if env.Action == nil {
		return nil, common.NewValidationAPIError([]common.FieldError{
			{Path: "action", Message: "This field is required"},
		})
	}

	switch Action(*env.Action) {
	case ActionSetIntent:
		var req IntentRequest
		if err := c.decode(body, &req); err != nil {
			return nil, err
		}
		return &Request{Action: ActionSetIntent, Intent: &req}, nil

	case ActionBaseProfile:
		var req BaseProfileRequest
		if err := c.decode(body, &req); err != nil {
			return nil, err
		}
		return &Request{Action: ActionBaseProfile, BaseProfile: &req}, nil

	case ActionCompleteRole:
		return c.classifyRoleCompletion(body, env.Shell)

	default:
		return nil, common.NewValidationAPIError([]common.FieldError{
			{Path: "action", Message: "Must be one of: set-intent, base-profile, complete-role"},
		})
	}
}

func (c *Classifier) classifyRoleCompletion(body []byte, rawShell *string) (*Request, error) {
	if rawShell == nil {
		return nil, common.NewValidationAPIError([]common.FieldError{
			{Path: "shell", Message: "This field is required"},
		})
	}
	shell := shared.Shell(*rawShell)
	if !shell.IsValid() {
		return nil, common.NewValidationAPIError([]common.FieldError{
			{Path: "shell", Message: "Must be one of: talent, coach, employer"},
		})
	}

	out := &Request{Action: ActionCompleteRole, Shell: shell}
	switch shell {
	case shared.ShellTalent:
		var req TalentRequest
		if err := c.decode(body, &req); err != nil {
			return nil, err
		}
		out.Talent = &req
	case shared.ShellCoach:
		var req CoachRequest
		if err := c.decode(body, &req); err != nil {
			return nil, err
		}
		out.Coach = &req
	case shared.ShellEmployer:
		var req EmployerRequest
		if err := c.decode(body, &req); err != nil {
			return nil, err
		}
		out.Employer = &req
	}
	return out, nil
}

// classifyLegacy validates the reduced legacy shape and re-expresses it as
// the equivalent modern role completion: seeker/mentor map to the talent
// shell, coach to the coach shell.
func (c *Classifier) classifyLegacy(body []byte) (*Request, error) {
	var req LegacyRequest
	if err := c.decode(body, &req); err != nil {
		return nil, err
	}

	switch req.Role {
	case "coach":
		return &Request{
			Action: ActionCompleteRole,
			Shell:  shared.ShellCoach,
			Coach: &CoachRequest{
				FirstName:    req.FirstName,
				LastName:     req.LastName,
				Bio:          req.Bio,
				Sectors:      req.Sectors,
				Expertise:    req.Expertise,
				Availability: req.Availability,
			},
		}, nil
	default: // seeker, mentor
		return &Request{
			Action: ActionCompleteRole,
			Shell:  shared.ShellTalent,
			Talent: &TalentRequest{
				FirstName:  req.FirstName,
				LastName:   req.LastName,
				Sectors:    req.Sectors,
				Skills:     req.Skills,
				Goals:      req.Goals,
				Experience: req.Experience,
				Summary:    req.Summary,
			},
		}, nil
	}
}

// decode unmarshals then validates, collecting one FieldError per violation.
func (c *Classifier) decode(body []byte, dst interface{}) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return common.ErrMalformedBody
	}
	if err := c.validate.Struct(dst); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return common.ErrInternalServer
		}
		details := make([]common.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, common.FieldError{
				Path:    fieldPath(fe),
				Message: fieldMessage(fe),
			})
		}
		return common.NewValidationAPIError(details)
	}
	return nil
}

// fieldPath strips the struct type name from the namespace, leaving the JSON
// path, e.g. "workExperience[0].title".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "url":
		return "Must be a valid URL"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.Join(strings.Fields(fe.Param()), ", "))
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "datetime":
		return "Must be a YYYY-MM date"
	default:
		return fmt.Sprintf("Failed validation on '%s'", fe.Tag())
	}
}
