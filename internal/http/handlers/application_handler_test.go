package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/carryonhq/carryon-backend/internal/domain"
	"github.com/carryonhq/carryon-backend/internal/http/middleware"
)

func TestApply_EligibilityGateAndConflicts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hn := newHarness(t)
	req := seedRequest(t, hn, "buyer-1")
	path := fmt.Sprintf("/requests/%d/applications", req.ID)

	carrier := gin.New()
	carrier.POST("/requests/:id/applications", asUser("carrier-1", "c1-nick"), hn.h.Apply)

	// Missing request -> 404
	if w := doJSON(carrier, http.MethodPost, "/requests/999/applications", nil); w.Code != http.StatusNotFound {
		t.Fatalf("missing request -> %d", w.Code)
	}

	// No itinerary yet -> 422 with the eligibility code
	w := doJSON(carrier, http.MethodPost, path, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("ineligible -> %d body=%s", w.Code, w.Body.String())
	}
	if body := decodeBody[ErrorResponse](t, w); body.Code != ErrCodeNotEligible {
		t.Fatalf("unexpected code %q", body.Code)
	}

	// With a matching trip -> 201
	seedTrip(t, hn, "carrier-1", "London", "2025-06-10")
	if w := doJSON(carrier, http.MethodPost, path, nil); w.Code != http.StatusCreated {
		t.Fatalf("apply -> %d body=%s", w.Code, w.Body.String())
	}

	// Applying twice -> 409 with the duplicate code
	w = doJSON(carrier, http.MethodPost, path, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate apply -> %d", w.Code)
	}
	if body := decodeBody[ErrorResponse](t, w); body.Code != ErrCodeAlreadyApplied {
		t.Fatalf("unexpected code %q", body.Code)
	}

	// Buyers cannot apply to their own request -> 409
	ownerR := gin.New()
	ownerR.POST("/requests/:id/applications", asUser("buyer-1", "minnie"), hn.h.Apply)
	seedTrip(t, hn, "buyer-1", "London", "2025-06-10")
	if w := doJSON(ownerR, http.MethodPost, path, nil); w.Code != http.StatusConflict {
		t.Fatalf("own request -> %d", w.Code)
	}
}

func TestApply_IdempotentReplay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hn := newHarness(t)
	req := seedRequest(t, hn, "buyer-1")
	seedTrip(t, hn, "carrier-1", "London", "2025-06-10")
	path := fmt.Sprintf("/requests/%d/applications", req.ID)

	r := gin.New()
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, nil))
	r.POST("/requests/:id/applications", asUser("carrier-1", "c1-nick"), hn.h.Apply)

	post := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		httpReq := httptest.NewRequest(http.MethodPost, path, nil)
		httpReq.Header.Set(middleware.HeaderIdempotencyKey, "retry-1")
		r.ServeHTTP(w, httpReq)
		return w
	}

	w := post()
	if w.Code != http.StatusCreated {
		t.Fatalf("first apply -> %d body=%s", w.Code, w.Body.String())
	}
	first := decodeBody[domain.Application](t, w)

	// Same key again: replayed, not a duplicate conflict
	w = post()
	if w.Code != http.StatusOK {
		t.Fatalf("replay -> %d body=%s", w.Code, w.Body.String())
	}
	if w.Header().Get("Idempotency-Replayed") != "true" {
		t.Fatalf("expected replay header")
	}
	if replayed := decodeBody[domain.Application](t, w); replayed.ID != first.ID {
		t.Fatalf("replay returned a different application: %q vs %q", replayed.ID, first.ID)
	}
}

func TestListApplications_OwnerOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hn := newHarness(t)
	req := seedRequest(t, hn, "buyer-1")
	seedTrip(t, hn, "carrier-1", "London", "2025-06-10")
	path := fmt.Sprintf("/requests/%d/applications", req.ID)

	carrier := gin.New()
	carrier.POST("/requests/:id/applications", asUser("carrier-1", "c1-nick"), hn.h.Apply)
	if w := doJSON(carrier, http.MethodPost, path, nil); w.Code != http.StatusCreated {
		t.Fatalf("apply -> %d", w.Code)
	}

	// Owner sees the applicant list
	owner := gin.New()
	owner.GET("/requests/:id/applications", asUser("buyer-1", "minnie"), hn.h.ListApplications)
	w := doJSON(owner, http.MethodGet, path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("owner list -> %d body=%s", w.Code, w.Body.String())
	}
	out := decodeBody[ListApplicationsResponse](t, w)
	if out.Total != 1 || len(out.Applications) != 1 || out.Applications[0].CarrierID != "carrier-1" {
		t.Fatalf("unexpected applicants: %#v", out)
	}

	// Anyone else -> 403
	other := gin.New()
	other.GET("/requests/:id/applications", asUser("carrier-1", "c1-nick"), hn.h.ListApplications)
	if w := doJSON(other, http.MethodGet, path, nil); w.Code != http.StatusForbidden {
		t.Fatalf("non-owner list -> %d", w.Code)
	}

	// Missing request -> 404
	if w := doJSON(owner, http.MethodGet, "/requests/999/applications", nil); w.Code != http.StatusNotFound {
		t.Fatalf("missing request -> %d", w.Code)
	}
}
