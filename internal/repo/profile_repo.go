// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Profile
// model. Email, nickname and phone number uniqueness are enforced by the
// database; CreateProfile maps violations to ErrDuplicate.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/carryonhq/carryon-backend/internal/domain"
)

// CreateProfile inserts a new profile row. Unique-constraint violations on
// email, nickname or phone number are mapped to ErrDuplicate.
func CreateProfile(ctx context.Context, db *gorm.DB, p *domain.Profile) error {
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetProfile fetches a profile by user ID, or ErrNotFound.
func GetProfile(ctx context.Context, db *gorm.DB, id string) (*domain.Profile, error) {
	var p domain.Profile
	if err := db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProfileByEmail fetches a profile by email, or ErrNotFound.
func GetProfileByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Profile, error) {
	var p domain.Profile
	if err := db.WithContext(ctx).First(&p, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// NicknameTaken reports whether any profile already uses the nickname.
// The signup form probes this live while the user types.
func NicknameTaken(ctx context.Context, db *gorm.DB, nickname string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("nickname = ?", nickname).
		Count(&n).Error
	return n > 0, err
}

// PhoneTaken reports whether any profile already uses the phone number.
func PhoneTaken(ctx context.Context, db *gorm.DB, phone string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("phone_number = ?", phone).
		Count(&n).Error
	return n > 0, err
}
