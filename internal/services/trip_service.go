// Package services – TripService
//
// This file implements carrier itinerary registration and listing. An
// itinerary is what makes a carrier eligible to apply: destination city plus
// departure date, backed by a reservation code kept server-side as a trust
// signal and never echoed through the API.
package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/carryonhq/carryon-backend/internal/domain"
	"github.com/carryonhq/carryon-backend/internal/repo"
)

// TripService implements itinerary registration and lookup.
type TripService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// RegisterTripInput carries the itinerary form fields.
type RegisterTripInput struct {
	Destination     string
	DepartureDate   string
	ReservationCode string
}

// Register validates and stores a carrier itinerary. The origin is fixed;
// only the destination and departure date vary.
func (s *TripService) Register(ctx context.Context, carrierID, carrierNickname string, in RegisterTripInput) (*domain.CarrierTrip, error) {
	dest, ok := domain.ParseCity(in.Destination)
	if !ok {
		return nil, ErrInvalidCity
	}
	if !validISODate(in.DepartureDate) {
		return nil, ErrInvalidDepartureDate
	}
	code := strings.TrimSpace(in.ReservationCode)
	if code == "" {
		return nil, ErrReservationCodeRequired
	}

	t := &domain.CarrierTrip{
		CarrierID:       carrierID,
		CarrierNickname: carrierNickname,
		Origin:          domain.Origin,
		Destination:     dest,
		DepartureDate:   in.DepartureDate,
		ReservationCode: code,
	}
	if err := repo.CreateTrip(ctx, s.DB, t); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns the carrier's itineraries ordered by departure date.
func (s *TripService) List(ctx context.Context, carrierID string) ([]domain.CarrierTrip, error) {
	return repo.ListTripsByCarrier(ctx, s.DB, carrierID)
}
