// File: internal/coach/repository.go
package coach

import (
	"context"
	"errors"

	"climatework_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for coach profile data operations.
type Repository interface {
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*CoachProfile, error)
	Save(ctx context.Context, profile *CoachProfile) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM coach profile repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*CoachProfile, error) {
	var profile CoachProfile
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Coach profile not found for this account.")
		}
		return nil, err
	}
	return &profile, nil
}

func (r *gormRepository) Save(ctx context.Context, profile *CoachProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(profile).Error
	})
}
