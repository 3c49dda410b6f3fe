// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// CarrierTrip model.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/carryonhq/carryon-backend/internal/domain"
)

// CreateTrip inserts a new itinerary row for a carrier.
func CreateTrip(ctx context.Context, db *gorm.DB, t *domain.CarrierTrip) error {
	return db.WithContext(ctx).Create(t).Error
}

// ListTripsByCarrier returns every itinerary registered by carrierID,
// upcoming departures first.
func ListTripsByCarrier(ctx context.Context, db *gorm.DB, carrierID string) ([]domain.CarrierTrip, error) {
	var out []domain.CarrierTrip
	err := db.WithContext(ctx).
		Where("carrier_id = ?", carrierID).
		Order("departure_date asc").
		Find(&out).Error
	return out, err
}
