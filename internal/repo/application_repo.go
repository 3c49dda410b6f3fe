// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Application model (table carrier_requests).
//
// The single-application-per-carrier invariant is enforced by the database
// through the unique (carrier_id, request_id) index; CreateApplication maps
// violations to ErrDuplicate so the service layer can report them stably
// even when two writers race.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carryonhq/carryon-backend/internal/domain"
)

// ErrDuplicate indicates a uniqueness violation: the row for this natural
// key already exists.
var ErrDuplicate = errors.New("duplicate")

// CreateApplication inserts an application by carrierID for requestID. The
// ID is a randomly generated UUID and CreatedAt is set to UTC. A second
// application for the same (carrier, request) pair returns ErrDuplicate.
func CreateApplication(ctx context.Context, db *gorm.DB, carrierID string, requestID uint, carrierNickname string) (*domain.Application, error) {
	a := &domain.Application{
		ID:              uuid.NewString(),
		CarrierID:       carrierID,
		RequestID:       requestID,
		CarrierNickname: carrierNickname,
		CreatedAt:       time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return a, nil
}

// GetApplication fetches the application by its natural key, or ErrNotFound.
func GetApplication(ctx context.Context, db *gorm.DB, carrierID string, requestID uint) (*domain.Application, error) {
	var a domain.Application
	err := db.WithContext(ctx).
		Where("carrier_id = ? AND request_id = ?", carrierID, requestID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListApplicationsForRequest returns all applications for a request in
// application order (created_at ascending), the order buyers review them in.
func ListApplicationsForRequest(ctx context.Context, db *gorm.DB, requestID uint) ([]domain.Application, error) {
	var out []domain.Application
	err := db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}

// ListApplicationsByCarrier returns the applications made by carrierID,
// newest first, with the target Request preloaded. Applications whose
// request has been withdrawn are excluded: the carrier's dashboard only
// shows requests that can still be fulfilled.
func ListApplicationsByCarrier(ctx context.Context, db *gorm.DB, carrierID string) ([]domain.Application, error) {
	var out []domain.Application
	err := db.WithContext(ctx).
		Joins("JOIN requests ON requests.id = carrier_requests.request_id AND requests.status <> ?", domain.StatusWithdrawn).
		Preload("Request").
		Where("carrier_requests.carrier_id = ?", carrierID).
		Order("carrier_requests.created_at desc").
		Find(&out).Error
	return out, err
}

// isUniqueViolation detects unique-constraint failures across drivers that
// may not map to gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key")
}
