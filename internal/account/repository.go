// File: internal/account/repository.go
package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"climatework_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for account data operations.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByFirebaseUID(ctx context.Context, firebaseUID string) (*Account, error)
	// EnsureBySubject creates the account for a subject if it does not exist
	// yet. Safe under concurrent first-touch requests: the create is a
	// no-op on conflict and the surviving row is returned to every caller.
	EnsureBySubject(ctx context.Context, firebaseUID string, email string) (*Account, error)
	// ApplyPatch persists one accumulated account patch in a single write.
	ApplyPatch(ctx context.Context, id uuid.UUID, patch *Patch) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM account repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	var acct Account
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&acct).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Account not found with this ID.")
		}
		return nil, err
	}
	return &acct, nil
}

func (r *gormRepository) FindByFirebaseUID(ctx context.Context, firebaseUID string) (*Account, error) {
	var acct Account
	err := r.db.WithContext(ctx).Where("firebase_uid = ?", firebaseUID).First(&acct).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Account not found for this subject.")
		}
		return nil, err
	}
	return &acct, nil
}

func (r *gormRepository) EnsureBySubject(ctx context.Context, firebaseUID string, email string) (*Account, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	acct := &Account{
		FirebaseUID: firebaseUID,
		Email:       &normalized,
		Progress:    OnboardingProgress{Version: ProgressSchemaVersion},
	}
	// The uniqueness constraint on firebase_uid is the authoritative guard;
	// two racing first-touch requests converge on one row without either
	// caller seeing a constraint error.
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "firebase_uid"}},
		DoNothing: true,
	}).Create(acct)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race or the row already existed; read it back.
		return r.FindByFirebaseUID(ctx, firebaseUID)
	}
	return acct, nil
}

func (r *gormRepository) ApplyPatch(ctx context.Context, id uuid.UUID, patch *Patch) error {
	cols := patch.Columns(time.Now().UTC())
	res := r.db.WithContext(ctx).Model(&Account{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Account not found for patch.")
	}
	return nil
}
