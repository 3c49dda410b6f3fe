// Package services – ProfileService
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/carryonhq/carryon-backend/internal/domain"
	"github.com/carryonhq/carryon-backend/internal/repo"
)

// ProfileService implements profile lookup for the authenticated user.
type ProfileService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// Get fetches a profile by ID, or ErrProfileNotFound.
func (s *ProfileService) Get(ctx context.Context, id string) (*domain.Profile, error) {
	p, err := repo.GetProfile(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	return p, err
}
