// Package services – ApplicationService
//
// This file implements carrier applications to open requests. Applying is
// gated on eligibility: the carrier must hold at least one registered
// itinerary whose city matches the request and whose departure date falls
// inside the delivery window. Duplicate applications are rejected by the
// unique (carrier, request) index rather than a read-then-write check.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/carryonhq/carryon-backend/internal/domain"
	"github.com/carryonhq/carryon-backend/internal/match"
	"github.com/carryonhq/carryon-backend/internal/repo"
)

// ApplicationService implements applying to requests and applicant listings.
type ApplicationService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// Apply records the carrier's application to an open request.
//
// Fails with ErrRequestNotFound when the request does not exist,
// ErrRequestNotOpen when it is already matched or withdrawn, ErrOwnRequest
// when the carrier posted it, ErrNotEligible when no itinerary matches, and
// ErrAlreadyApplied on a duplicate.
func (s *ApplicationService) Apply(ctx context.Context, carrierID, carrierNickname string, requestID uint) (*domain.Application, error) {
	r, err := repo.GetRequest(ctx, s.DB, requestID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if r.Status != domain.StatusOpen {
		return nil, ErrRequestNotOpen
	}
	if r.BuyerID == carrierID {
		return nil, ErrOwnRequest
	}

	trips, err := repo.ListTripsByCarrier(ctx, s.DB, carrierID)
	if err != nil {
		return nil, err
	}
	if !match.Eligible(trips, *r) {
		return nil, ErrNotEligible
	}

	app, err := repo.CreateApplication(ctx, s.DB, carrierID, requestID, carrierNickname)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}
	return app, nil
}

// ListForRequest returns the applicants for a request, oldest first. Only
// the request's owner may see the list.
func (s *ApplicationService) ListForRequest(ctx context.Context, buyerID string, requestID uint) ([]domain.Application, error) {
	r, err := repo.GetRequest(ctx, s.DB, requestID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if r.BuyerID != buyerID {
		return nil, ErrNotRequestOwner
	}
	return repo.ListApplicationsForRequest(ctx, s.DB, requestID)
}

// ListForCarrier returns the carrier's own applications, newest first, each
// with its target request attached. Applications whose request has been
// withdrawn are excluded from the listing.
func (s *ApplicationService) ListForCarrier(ctx context.Context, carrierID string) ([]domain.Application, error) {
	return repo.ListApplicationsByCarrier(ctx, s.DB, carrierID)
}

// HasApplied reports whether the carrier already applied to the request.
func (s *ApplicationService) HasApplied(ctx context.Context, carrierID string, requestID uint) (bool, error) {
	_, err := repo.GetApplication(ctx, s.DB, carrierID, requestID)
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Eligibility reports whether the carrier could apply to the request based
// on their registered itineraries. Used by the detail view to drive the
// apply button state without a write.
func (s *ApplicationService) Eligibility(ctx context.Context, carrierID string, r *domain.Request) (bool, error) {
	trips, err := repo.ListTripsByCarrier(ctx, s.DB, carrierID)
	if err != nil {
		return false, err
	}
	return match.Eligible(trips, *r), nil
}
