// Application HTTP handlers.
//
// This file exposes REST endpoints for carrier applications:
//   - POST /requests/{id}/applications  (apply as carrier)
//   - GET  /requests/{id}/applications  (applicant list, owner only)
//
// Applying is gated server-side on itinerary eligibility; the handler only
// translates service verdicts into status codes.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carryonhq/carryon-backend/internal/domain"
	"github.com/carryonhq/carryon-backend/internal/http/middleware"
	"github.com/carryonhq/carryon-backend/internal/repo"
	"github.com/carryonhq/carryon-backend/internal/services"
)

// ListApplicationsResponse wraps a request's applicant list.
type ListApplicationsResponse struct {
	Applications []domain.Application `json:"applications"`
	Total        int                  `json:"total"`
}

// Apply godoc
// @ID          applyToRequest
// @Summary     Apply to a request
// @Description Records the authenticated carrier's application. Requires a registered itinerary matching the request's city and date window.
// @Tags        Applications
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  int  true  "Request ID"  example(42)
//
// @Success     201  {object}  domain.Application
// @Success     200  {object}  domain.Application      "Idempotent replay"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "Request not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Not open, own request, or duplicate"
// @Failure     422  {object}  handlers.ErrorResponse  "No matching itinerary"
// @Router      /requests/{id}/applications [post]
func (h *Handlers) Apply(c *gin.Context) {
	id, valid := parseRequestID(c)
	if !valid {
		return
	}
	ctx := c.Request.Context()
	carrierID := middleware.UserID(c)

	var db *gorm.DB
	if svc, isConcrete := h.appSvc.(*services.ApplicationService); isConcrete {
		db = svc.DB
	}

	// Idempotency (replay path) – return the previously created application.
	idemKey, _ := middleware.GetIdempotencyKey(c)
	if idemKey != "" && db != nil {
		scope := middleware.IdempotencyScope(c)
		if rec, err := repo.GetIdempotency(ctx, db, carrierID, scope, idemKey, time.Now().UTC()); err == nil && rec != nil {
			if prev, err2 := repo.GetApplication(ctx, db, carrierID, id); err2 == nil {
				c.Header("Idempotency-Replayed", "true")
				ok(c, http.StatusOK, prev)
				return
			}
		}
	}

	app, err := h.appSvc.Apply(ctx, carrierID, middleware.Nickname(c), id)
	switch {
	case err == nil:
		// Idempotency (store path) – best effort.
		if idemKey != "" && db != nil {
			ttl := 24 * time.Hour
			_, _ = repo.CreateIdempotency(ctx, db, carrierID, middleware.IdempotencyScope(c), idemKey, app.ID, http.StatusCreated, ttl)
		}
		ok(c, http.StatusCreated, app)
	case errors.Is(err, services.ErrRequestNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "request not found")
	case errors.Is(err, services.ErrRequestNotOpen):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, services.ErrOwnRequest):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, services.ErrAlreadyApplied):
		fail(c, http.StatusConflict, ErrCodeAlreadyApplied, err.Error())
	case errors.Is(err, services.ErrNotEligible):
		fail(c, http.StatusUnprocessableEntity, ErrCodeNotEligible, err.Error())
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not apply")
	}
}

// ListApplications godoc
// @ID          listApplications
// @Summary     List a request's applicants
// @Description Returns the applications for a request, oldest first. Only the request's owner may call this.
// @Tags        Applications
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  int  true  "Request ID"  example(42)
//
// @Success     200  {object}  handlers.ListApplicationsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     403  {object}  handlers.ErrorResponse  "Not the owner"
// @Failure     404  {object}  handlers.ErrorResponse  "Request not found"
// @Router      /requests/{id}/applications [get]
func (h *Handlers) ListApplications(c *gin.Context) {
	id, valid := parseRequestID(c)
	if !valid {
		return
	}

	apps, err := h.appSvc.ListForRequest(c.Request.Context(), middleware.UserID(c), id)
	switch {
	case err == nil:
		ok(c, http.StatusOK, ListApplicationsResponse{Applications: apps, Total: len(apps)})
	case errors.Is(err, services.ErrRequestNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "request not found")
	case errors.Is(err, services.ErrNotRequestOwner):
		fail(c, http.StatusForbidden, ErrCodeForbidden, err.Error())
	default:
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list applications")
	}
}
