package handlers

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/carryonhq/carryon-backend/internal/domain"
)

func TestRegisterTrip_BadJSON_Validation_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hn := newHarness(t)
	r := gin.New()
	r.POST("/trips", asUser("carrier-1", "c1-nick"), hn.h.RegisterTrip)

	// Bad JSON -> 400
	if w := doJSON(r, http.MethodPost, "/trips", bytes.NewBufferString("{bad")); w.Code != http.StatusBadRequest {
		t.Fatalf("bad json -> %d", w.Code)
	}

	// Unsupported destination -> 400
	w := doJSON(r, http.MethodPost, "/trips", jsonBody(t, RegisterTripPayload{
		Destination: "Tokyo", DepartureDate: "2025-06-10", ReservationCode: "PNR-1",
	}))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad city -> %d", w.Code)
	}

	// Malformed date -> 400
	w = doJSON(r, http.MethodPost, "/trips", jsonBody(t, RegisterTripPayload{
		Destination: "London", DepartureDate: "June 10th", ReservationCode: "PNR-1",
	}))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad date -> %d", w.Code)
	}

	// Korean city alias works and the origin is fixed
	w = doJSON(r, http.MethodPost, "/trips", jsonBody(t, RegisterTripPayload{
		Destination: "뉴욕", DepartureDate: "2025-06-10", ReservationCode: "PNR-42",
	}))
	if w.Code != http.StatusCreated {
		t.Fatalf("register -> %d body=%s", w.Code, w.Body.String())
	}
	trip := decodeBody[domain.CarrierTrip](t, w)
	if trip.Destination != domain.CityNewYork || trip.Origin != domain.Origin {
		t.Fatalf("unexpected trip: %#v", trip)
	}
	if trip.CarrierID != "carrier-1" || trip.ID == 0 {
		t.Fatalf("unexpected trip identity: %#v", trip)
	}

	// The reservation code is never serialized back out
	if bytes.Contains(w.Body.Bytes(), []byte("PNR-42")) {
		t.Fatalf("reservation code leaked: %s", w.Body.String())
	}
}
