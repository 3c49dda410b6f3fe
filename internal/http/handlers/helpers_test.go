package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/carryonhq/carryon-backend/internal/domain"
	"github.com/carryonhq/carryon-backend/internal/services"
)

// ---------- test DB + handler harness ----------

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique DSN per call to avoid cross-test contamination
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	db.Exec("PRAGMA foreign_keys=ON;")
	if err := db.AutoMigrate(&domain.Profile{}, &domain.Request{}, &domain.CarrierTrip{}, &domain.Application{}, &domain.Idempotency{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// harness bundles the concrete services and handlers over one database.
type harness struct {
	db      *gorm.DB
	reqSvc  *services.RequestService
	appSvc  *services.ApplicationService
	tripSvc *services.TripService
	h       *Handlers
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := newHandlerDB(t)
	authSvc := &services.AuthService{DB: db, TokenSecret: "test-secret", TokenTTL: time.Hour}
	reqSvc := &services.RequestService{DB: db}
	appSvc := &services.ApplicationService{DB: db}
	tripSvc := &services.TripService{DB: db}
	profileSvc := &services.ProfileService{DB: db}
	return &harness{
		db:      db,
		reqSvc:  reqSvc,
		appSvc:  appSvc,
		tripSvc: tripSvc,
		h:       New(authSvc, reqSvc, appSvc, tripSvc, profileSvc),
	}
}

// asUser injects an authenticated identity the way the auth middleware does.
func asUser(id, nickname string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", id)
		c.Set("nickname", nickname)
		c.Next()
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewBuffer(b)
}

func doJSON(r *gin.Engine, method, path string, body *bytes.Buffer) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	r.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json: %v body=%s", err, w.Body.String())
	}
	return out
}

// validDiscoveryInput builds a well-formed request input for discovery tests.
func validDiscoveryInput(city, reward string) services.CreateRequestInput {
	return services.CreateRequestInput{
		City:      city,
		StartDate: "2025-06-05",
		EndDate:   "2025-06-15",
		Reward:    reward,
		Items:     []domain.Item{{Name: "serum", Size: "small"}},
		ChatLink:  "https://open.kakao.com/o/abc",
	}
}

// seedRequest creates an open London request owned by the given buyer.
func seedRequest(t *testing.T, hn *harness, buyerID string) *domain.Request {
	t.Helper()
	r, err := hn.reqSvc.Create(context.Background(), buyerID, buyerID+"-nick", services.CreateRequestInput{
		City:      "London",
		StartDate: "2025-06-05",
		EndDate:   "2025-06-15",
		Reward:    "10000",
		Items:     []domain.Item{{Name: "serum", Size: "small"}},
		ChatLink:  "https://open.kakao.com/o/abc",
	})
	if err != nil {
		t.Fatalf("seed request: %v", err)
	}
	return r
}

// seedTrip registers a matching itinerary so the carrier becomes eligible.
func seedTrip(t *testing.T, hn *harness, carrierID, city, date string) {
	t.Helper()
	if _, err := hn.tripSvc.Register(context.Background(), carrierID, carrierID+"-nick", services.RegisterTripInput{
		Destination:     city,
		DepartureDate:   date,
		ReservationCode: "PNR-123",
	}); err != nil {
		t.Fatalf("seed trip: %v", err)
	}
}
