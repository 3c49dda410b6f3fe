// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Request
// model, including the optimistic status transitions that implement the
// matching lifecycle.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a request is not found, functions return ErrNotFound (an alias of
//     gorm.ErrRecordNotFound).
//   - Status transitions are conditional updates (UPDATE ... WHERE status =
//     expected). When the row exists but the precondition fails — another
//     writer won the race, or the lifecycle forbids the transition —
//     ErrStaleStatus is returned so callers can report a conflict instead of
//     silently losing the update.
package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/carryonhq/carryon-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrStaleStatus is returned when a conditional status transition matched the
// row by id but not by expected status: the request moved under the caller.
var ErrStaleStatus = errors.New("request status changed concurrently")

// CreateRequest inserts a new delivery request. The caller supplies a fully
// populated row (status open, match fields null); the auto-increment ID is
// filled in on return.
func CreateRequest(ctx context.Context, db *gorm.DB, r *domain.Request) error {
	return db.WithContext(ctx).Create(r).Error
}

// GetRequest fetches a single request by ID, or ErrNotFound.
func GetRequest(ctx context.Context, db *gorm.DB, id uint) (*domain.Request, error) {
	var r domain.Request
	if err := db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// ListOpenRequests returns every request currently open for applications,
// ordered by creation surrogate ascending. Discovery filtering and ranking
// happen in memory on top of this list (see the match package).
func ListOpenRequests(ctx context.Context, db *gorm.DB) ([]domain.Request, error) {
	var out []domain.Request
	err := db.WithContext(ctx).
		Where("status = ?", domain.StatusOpen).
		Order("id asc").
		Find(&out).Error
	return out, err
}

// ListRequestsByBuyer returns the buyer's requests, newest first, excluding
// withdrawn rows. When status is non-empty the list is narrowed to it.
func ListRequestsByBuyer(ctx context.Context, db *gorm.DB, buyerID string, status domain.Status) ([]domain.Request, error) {
	q := db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Where("status <> ?", domain.StatusWithdrawn)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []domain.Request
	err := q.Order("created_at desc").Find(&out).Error
	return out, err
}

// ListMatchedForCarrier returns the requests currently matched to carrierID.
func ListMatchedForCarrier(ctx context.Context, db *gorm.DB, carrierID string) ([]domain.Request, error) {
	var out []domain.Request
	err := db.WithContext(ctx).
		Where("matched_carrier_id = ? AND status = ?", carrierID, domain.StatusMatched).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// transition performs a conditional update of a request owned by buyerID,
// applying updates only while the row still holds the expected status.
// Distinguishes "row missing / not owned" (ErrNotFound) from "row present
// but status moved" (ErrStaleStatus) with a follow-up existence probe.
func transition(ctx context.Context, db *gorm.DB, id uint, buyerID string, expect domain.Status, updates map[string]any) error {
	res := db.WithContext(ctx).
		Model(&domain.Request{}).
		Where("id = ? AND buyer_id = ? AND status = ?", id, buyerID, expect).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	var n int64
	if err := db.WithContext(ctx).
		Model(&domain.Request{}).
		Where("id = ? AND buyer_id = ?", id, buyerID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrStaleStatus
}

// MatchRequest transitions an open request to matched, recording the carrier
// identity and nickname atomically with the status change.
func MatchRequest(ctx context.Context, db *gorm.DB, id uint, buyerID, carrierID, carrierNickname string) error {
	return transition(ctx, db, id, buyerID, domain.StatusOpen, map[string]any{
		"status":             domain.StatusMatched,
		"matched_carrier_id": carrierID,
		"carrier_nickname":   carrierNickname,
	})
}

// ClearMatch transitions a matched request back to open, clearing both
// carrier fields. Application rows are untouched.
func ClearMatch(ctx context.Context, db *gorm.DB, id uint, buyerID string) error {
	return transition(ctx, db, id, buyerID, domain.StatusMatched, map[string]any{
		"status":             domain.StatusOpen,
		"matched_carrier_id": nil,
		"carrier_nickname":   nil,
	})
}

// WithdrawRequest transitions an open request to withdrawn. The row is kept;
// no transition out of withdrawn exists.
func WithdrawRequest(ctx context.Context, db *gorm.DB, id uint, buyerID string) error {
	return transition(ctx, db, id, buyerID, domain.StatusOpen, map[string]any{
		"status": domain.StatusWithdrawn,
	})
}
