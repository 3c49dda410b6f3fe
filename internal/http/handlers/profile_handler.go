// Profile ("my page") HTTP handlers.
//
//   - GET /me               (own profile)
//   - GET /me/requests      (requests I posted, optionally by status)
//   - GET /me/applications  (requests I applied to)
//   - GET /me/deliveries    (requests matched to me)
//   - GET /me/trips         (my registered itineraries)
//
// All /me endpoints require authentication; the subject is always the token
// holder, never a path parameter.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carryonhq/carryon-backend/internal/domain"
	"github.com/carryonhq/carryon-backend/internal/http/middleware"
	"github.com/carryonhq/carryon-backend/internal/services"
)

// ListTripsResponse wraps the carrier's itineraries.
type ListTripsResponse struct {
	Trips []domain.CarrierTrip `json:"trips"`
	Total int                  `json:"total"`
}

// AppliedRequestView pairs an application with the request it targets, so
// the carrier's dashboard can render the listing without a second lookup.
type AppliedRequestView struct {
	domain.Application
	Request RequestView `json:"request"`
}

// ListMyApplicationsResponse wraps the caller's applications together with
// their target requests.
type ListMyApplicationsResponse struct {
	Applications []AppliedRequestView `json:"applications"`
	Total        int                  `json:"total"`
}

// Me godoc
// @ID          me
// @Summary     Own profile
// @Tags        Me
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  domain.Profile
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "Profile not found"
// @Router      /me [get]
func (h *Handlers) Me(c *gin.Context) {
	p, err := h.profileSvc.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "profile not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load profile")
		return
	}
	ok(c, http.StatusOK, p)
}

// MyRequests godoc
// @ID          myRequests
// @Summary     Requests I posted
// @Description Returns the caller's requests, newest first, withdrawn hidden. The optional status filter accepts open or matched.
// @Tags        Me
// @Produce     json
// @Security    BearerAuth
//
// @Param       status  query  string  false  "open | matched"  example(open)
//
// @Success     200  {object}  handlers.ListRequestsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad status filter"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Router      /me/requests [get]
func (h *Handlers) MyRequests(c *gin.Context) {
	var status domain.Status
	switch c.Query("status") {
	case "":
	case string(domain.StatusOpen):
		status = domain.StatusOpen
	case string(domain.StatusMatched):
		status = domain.StatusMatched
	default:
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status must be open or matched")
		return
	}

	items, err := h.reqSvc.ListByBuyer(c.Request.Context(), middleware.UserID(c), status)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list requests")
		return
	}
	views := make([]RequestView, 0, len(items))
	for _, r := range items {
		v := viewOf(r)
		v.ChatLink = r.ChatLink // own requests keep the link
		views = append(views, v)
	}
	page, pageSize := clampPagination(c)
	ok(c, http.StatusOK, paginate(views, page, pageSize))
}

// MyApplications godoc
// @ID          myApplications
// @Summary     Requests I applied to
// @Description Returns the caller's applications with their target requests, withdrawn requests excluded. The chat link is included: applicants are entitled to it.
// @Tags        Me
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  handlers.ListMyApplicationsResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Router      /me/applications [get]
func (h *Handlers) MyApplications(c *gin.Context) {
	apps, err := h.appSvc.ListForCarrier(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list applications")
		return
	}
	views := make([]AppliedRequestView, 0, len(apps))
	for _, a := range apps {
		v := viewOf(a.Request)
		v.ChatLink = a.Request.ChatLink
		views = append(views, AppliedRequestView{Application: a, Request: v})
	}
	ok(c, http.StatusOK, ListMyApplicationsResponse{Applications: views, Total: len(views)})
}

// MyDeliveries godoc
// @ID          myDeliveries
// @Summary     Requests matched to me
// @Description Returns the requests the caller currently carries. The chat link is included: a matched carrier is always entitled to it.
// @Tags        Me
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  handlers.ListRequestsResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Router      /me/deliveries [get]
func (h *Handlers) MyDeliveries(c *gin.Context) {
	items, err := h.reqSvc.ListDeliveries(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list deliveries")
		return
	}
	views := make([]RequestView, 0, len(items))
	for _, r := range items {
		v := viewOf(r)
		v.ChatLink = r.ChatLink
		views = append(views, v)
	}
	page, pageSize := clampPagination(c)
	ok(c, http.StatusOK, paginate(views, page, pageSize))
}

// MyTrips godoc
// @ID          myTrips
// @Summary     My registered itineraries
// @Tags        Me
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  handlers.ListTripsResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Router      /me/trips [get]
func (h *Handlers) MyTrips(c *gin.Context) {
	trips, err := h.tripSvc.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list trips")
		return
	}
	ok(c, http.StatusOK, ListTripsResponse{Trips: trips, Total: len(trips)})
}
