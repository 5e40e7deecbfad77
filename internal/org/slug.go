// File: internal/org/slug.go
package org

import (
	"context"
	"fmt"

	"climatework_backend/internal/platform/crypto"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// maxSlugProbes bounds the numbered-suffix search before falling back to a
// random suffix, so allocation terminates under adversarial naming.
const maxSlugProbes = 100

// SlugChecker reports whether a candidate slug is already taken.
type SlugChecker interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// SlugAllocator derives a unique, human-readable identifier for a new
// organization, retrying on collision.
type SlugAllocator struct {
	checker SlugChecker
	logger  *zap.Logger
}

// NewSlugAllocator creates a slug allocator backed by the given checker.
func NewSlugAllocator(checker SlugChecker, logger *zap.Logger) *SlugAllocator {
	return &SlugAllocator{checker: checker, logger: logger}
}

// Allocate turns a free-text organization name into a free slug: the base
// candidate first, then "base-2" … "base-100", then the base with a short
// random suffix. The slug uniqueness constraint at the persistence layer is
// the authoritative backstop for the residual race between check and insert.
func (a *SlugAllocator) Allocate(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "organization"
	}

	taken, err := a.checker.SlugExists(ctx, base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	for i := 2; i <= maxSlugProbes; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		taken, err := a.checker.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	suffix, err := crypto.GenerateHexToken(3)
	if err != nil {
		return "", err
	}
	candidate := fmt.Sprintf("%s-%s", base, suffix)
	a.logger.Warn("Slug probe budget exhausted, using random suffix",
		zap.String("base", base), zap.String("candidate", candidate))
	return candidate, nil
}
