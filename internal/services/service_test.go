package services

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/carryonhq/carryon-backend/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("svc_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := db.AutoMigrate(
		&domain.Profile{},
		&domain.Request{},
		&domain.CarrierTrip{},
		&domain.Application{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func mustCreate(t *testing.T, svc *RequestService, buyerID, nickname string, in CreateRequestInput) *domain.Request {
	t.Helper()
	r, err := svc.Create(context.Background(), buyerID, nickname, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return r
}

func validRequestInput(city string) CreateRequestInput {
	return CreateRequestInput{
		City:      city,
		StartDate: "2025-06-05",
		EndDate:   "2025-06-15",
		Reward:    "10000",
		Items:     []domain.Item{{Name: "serum", Size: "small"}},
		ChatLink:  "https://open.kakao.com/o/abc",
	}
}

func mustTrip(t *testing.T, svc *TripService, carrierID, city, date string) *domain.CarrierTrip {
	t.Helper()
	trip, err := svc.Register(context.Background(), carrierID, carrierID+"-nick", RegisterTripInput{
		Destination:     city,
		DepartureDate:   date,
		ReservationCode: "PNR-123",
	})
	if err != nil {
		t.Fatalf("Register trip: %v", err)
	}
	return trip
}
