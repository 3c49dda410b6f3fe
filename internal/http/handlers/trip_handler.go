// Itinerary HTTP handlers.
//
//   - POST /trips  (register an itinerary)
//
// The reservation code is accepted on input as a trust signal but never
// serialized back out; listing lives under /me/trips (see profile_handler.go).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carryonhq/carryon-backend/internal/http/middleware"
	"github.com/carryonhq/carryon-backend/internal/services"
)

// RegisterTripPayload is the JSON payload for registering an itinerary.
type RegisterTripPayload struct {
	Destination     string `json:"destination"      binding:"required" example:"London"`
	DepartureDate   string `json:"departure_date"   binding:"required" example:"2025-06-10"`
	ReservationCode string `json:"reservation_code" binding:"required" example:"PNR-48291"`
}

// RegisterTrip godoc
// @ID          registerTrip
// @Summary     Register an itinerary
// @Description Stores a departure from Seoul to a destination city on one date. Itineraries are what make a carrier eligible to apply.
// @Tags        Trips
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.RegisterTripPayload  true  "Itinerary payload"
//
// @Success     201  {object}  domain.CarrierTrip
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /trips [post]
func (h *Handlers) RegisterTrip(c *gin.Context) {
	var req RegisterTripPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	trip, err := h.tripSvc.Register(c.Request.Context(), middleware.UserID(c), middleware.Nickname(c), services.RegisterTripInput{
		Destination:     req.Destination,
		DepartureDate:   req.DepartureDate,
		ReservationCode: req.ReservationCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCity),
			errors.Is(err, services.ErrInvalidDepartureDate),
			errors.Is(err, services.ErrReservationCodeRequired):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, "could not register trip")
		}
		return
	}
	ok(c, http.StatusCreated, trip)
}
