// File: internal/invite/repository.go
package invite

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Repository defines the interface for team invite data operations.
type Repository interface {
	Create(ctx context.Context, inv *TeamInvite) error
	// ExpireStale marks PENDING invites past their expiry as EXPIRED and
	// returns how many rows changed.
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM team invite repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, inv *TeamInvite) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *gormRepository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&TeamInvite{}).
		Where("status = ? AND expires_at < ?", StatusPending, now).
		Updates(map[string]interface{}{"status": StatusExpired, "updated_at": now})
	return res.RowsAffected, res.Error
}
