// File: internal/org/repository.go
package org

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"climatework_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for organization data operations.
type Repository interface {
	FindMembershipByAccountID(ctx context.Context, accountID uuid.UUID) (*Membership, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	// ProvisionOwner creates the organization, its OWNER membership and the
	// optional first job draft in one transaction.
	ProvisionOwner(ctx context.Context, organization *Organization, membership *Membership, draft *JobDraft) error
	UpdateOrganization(ctx context.Context, id uuid.UUID, cols map[string]interface{}) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM organization repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindMembershipByAccountID(ctx context.Context, accountID uuid.UUID) (*Membership, error) {
	var membership Membership
	err := r.db.WithContext(ctx).
		Preload("Organization").
		Where("account_id = ?", accountID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("No organization membership for this account.")
		}
		return nil, err
	}
	return &membership, nil
}

func (r *gormRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Organization{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormRepository) ProvisionOwner(ctx context.Context, organization *Organization, membership *Membership, draft *JobDraft) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(organization).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "unique constraint") {
				return common.ErrConflict.WithDetails("Organization slug already taken.")
			}
			return fmt.Errorf("failed to create organization: %w", err)
		}

		membership.OrganizationID = organization.ID
		if err := tx.Create(membership).Error; err != nil {
			return fmt.Errorf("failed to create organization membership: %w", err)
		}

		if draft != nil {
			draft.OrganizationID = organization.ID
			if err := tx.Create(draft).Error; err != nil {
				return fmt.Errorf("failed to create job draft: %w", err)
			}
		}
		return nil
	})
}

func (r *gormRepository) UpdateOrganization(ctx context.Context, id uuid.UUID, cols map[string]interface{}) error {
	cols["updated_at"] = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&Organization{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Organization not found for update.")
	}
	return nil
}
