// File: internal/talent/repository.go
package talent

import (
	"context"
	"errors"
	"fmt"

	"climatework_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for seeker profile data operations.
type Repository interface {
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*SeekerProfile, error)
	// Save persists the profile and, when the slices are non-nil, replaces
	// the pathway links and work experience collections wholesale. All
	// writes happen in one transaction.
	Save(ctx context.Context, profile *SeekerProfile, pathways []PathwayLink, experience []WorkExperience) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM seeker profile repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*SeekerProfile, error) {
	var profile SeekerProfile
	err := r.db.WithContext(ctx).
		Preload("PathwayLinks", func(q *gorm.DB) *gorm.DB { return q.Order("priority ASC") }).
		Preload("Experience").
		Where("account_id = ?", accountID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Seeker profile not found for this account.")
		}
		return nil, err
	}
	return &profile, nil
}

func (r *gormRepository) Save(ctx context.Context, profile *SeekerProfile, pathways []PathwayLink, experience []WorkExperience) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("PathwayLinks", "Experience").Save(profile).Error; err != nil {
			return fmt.Errorf("failed to save seeker profile: %w", err)
		}

		// Delete-then-recreate keeps submission order authoritative.
		if pathways != nil {
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&PathwayLink{}).Error; err != nil {
				return fmt.Errorf("failed to clear pathway links: %w", err)
			}
			for i := range pathways {
				pathways[i].ProfileID = profile.ID
				if pathways[i].ID == uuid.Nil {
					pathways[i].ID = uuid.New()
				}
				if err := tx.Create(&pathways[i]).Error; err != nil {
					return fmt.Errorf("failed to create pathway link: %w", err)
				}
			}
		}

		if experience != nil {
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&WorkExperience{}).Error; err != nil {
				return fmt.Errorf("failed to clear work experience: %w", err)
			}
			for i := range experience {
				experience[i].ProfileID = profile.ID
				if experience[i].ID == uuid.Nil {
					experience[i].ID = uuid.New()
				}
				if err := tx.Create(&experience[i]).Error; err != nil {
					return fmt.Errorf("failed to create work experience entry: %w", err)
				}
			}
		}
		return nil
	})
}
