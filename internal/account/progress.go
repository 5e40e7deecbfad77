// File: internal/account/progress.go
package account

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"climatework_backend/internal/shared"
)

// ProgressSchemaVersion is the current on-disk shape of the progress document.
const ProgressSchemaVersion = 1

// RoleStatus tracks a shell's onboarding progress. Transitions are monotonic:
// a COMPLETE shell is never reverted by this flow.
type RoleStatus string

const (
	RoleNotStarted RoleStatus = "NOT_STARTED"
	RoleInProgress RoleStatus = "IN_PROGRESS"
	RoleComplete   RoleStatus = "COMPLETE"
)

// RoleOnboardingState is the per-shell progress marker.
type RoleOnboardingState struct {
	Status      RoleStatus `json:"status"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// OnboardingProgress is the persisted per-account progress document, stored
// as a JSONB column. Shell entries are created lazily the first time a shell
// is touched.
type OnboardingProgress struct {
	Version             int                                     `json:"version"`
	BaseProfileComplete bool                                    `json:"baseProfileComplete"`
	Roles               map[shared.Shell]RoleOnboardingState    `json:"roles,omitempty"`
}

// Clone deep-copies the document so state transitions never alias the stored map.
func (p OnboardingProgress) Clone() OnboardingProgress {
	out := OnboardingProgress{
		Version:             p.Version,
		BaseProfileComplete: p.BaseProfileComplete,
	}
	if p.Roles != nil {
		out.Roles = make(map[shared.Shell]RoleOnboardingState, len(p.Roles))
		for k, v := range p.Roles {
			out.Roles[k] = v
		}
	}
	return out
}

// Role returns the state for a shell, defaulting to NOT_STARTED.
func (p OnboardingProgress) Role(shell shared.Shell) RoleOnboardingState {
	if p.Roles == nil {
		return RoleOnboardingState{Status: RoleNotStarted}
	}
	st, ok := p.Roles[shell]
	if !ok {
		return RoleOnboardingState{Status: RoleNotStarted}
	}
	return st
}

// Value implements driver.Valuer, serializing at the current schema version.
func (p OnboardingProgress) Value() (driver.Value, error) {
	doc := p
	doc.Version = ProgressSchemaVersion
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner, migrating stored documents written before the
// schema version field existed.
func (p *OnboardingProgress) Scan(value interface{}) error {
	if value == nil {
		*p = OnboardingProgress{Version: ProgressSchemaVersion}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("failed to scan OnboardingProgress: unsupported type")
	}
	if len(raw) == 0 {
		*p = OnboardingProgress{Version: ProgressSchemaVersion}
		return nil
	}

	var versioned struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(raw, &versioned); err != nil {
		return err
	}
	if versioned.Version == 0 {
		migrated, err := migrateV0Progress(raw)
		if err != nil {
			return err
		}
		*p = migrated
		return nil
	}
	return json.Unmarshal(raw, p)
}

// migrateV0Progress converts the legacy untyped blob, in which shells were ad
// hoc top-level keys carrying a bare completion flag, e.g.
//
//	{"baseProfileComplete":true,"talent":{"completed":true,"completedAt":"..."}}
func migrateV0Progress(raw []byte) (OnboardingProgress, error) {
	var legacy map[string]json.RawMessage
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return OnboardingProgress{}, err
	}

	out := OnboardingProgress{Version: ProgressSchemaVersion}
	if b, ok := legacy["baseProfileComplete"]; ok {
		_ = json.Unmarshal(b, &out.BaseProfileComplete)
	}

	for _, shell := range shared.AllShells {
		entry, ok := legacy[string(shell)]
		if !ok {
			continue
		}
		var v0 struct {
			Completed   bool       `json:"completed"`
			StartedAt   *time.Time `json:"startedAt"`
			CompletedAt *time.Time `json:"completedAt"`
		}
		if err := json.Unmarshal(entry, &v0); err != nil {
			continue
		}
		st := RoleOnboardingState{Status: RoleInProgress, StartedAt: v0.StartedAt}
		if v0.Completed {
			st.Status = RoleComplete
			st.CompletedAt = v0.CompletedAt
		}
		if out.Roles == nil {
			out.Roles = make(map[shared.Shell]RoleOnboardingState)
		}
		out.Roles[shell] = st
	}
	return out, nil
}
