// Delivery request HTTP handlers.
//
// This file exposes REST endpoints for the request resource and its matching
// lifecycle:
//   - POST   /requests            (post a request)
//   - GET    /requests            (discovery: filter + sort, ETag support)
//   - GET    /requests/{id}       (detail, viewer-aware)
//   - DELETE /requests/{id}       (withdraw)
//   - POST   /requests/{id}/match (confirm a carrier)
//   - DELETE /requests/{id}/match (cancel the match)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
// The buyer's contact link is withheld from viewers who have not applied and
// are not the matched carrier.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carryonhq/carryon-backend/internal/domain"
	"github.com/carryonhq/carryon-backend/internal/http/middleware"
	"github.com/carryonhq/carryon-backend/internal/match"
	"github.com/carryonhq/carryon-backend/internal/repo"
	"github.com/carryonhq/carryon-backend/internal/services"
	"github.com/carryonhq/carryon-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// RequestService defines delivery-request operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type RequestService interface {
	// Create validates and persists a new request owned by the buyer.
	Create(ctx context.Context, buyerID, buyerNickname string, in services.CreateRequestInput) (*domain.Request, error)
	// Get fetches a request by ID.
	Get(ctx context.Context, id uint) (*domain.Request, error)
	// Discover returns open requests matching the criteria, ranked by policy.
	Discover(ctx context.Context, c match.Criteria, policy match.SortPolicy) ([]domain.Request, error)
	// ListByBuyer returns the buyer's requests, optionally narrowed by status.
	ListByBuyer(ctx context.Context, buyerID string, status domain.Status) ([]domain.Request, error)
	// ListDeliveries returns the requests currently matched to a carrier.
	ListDeliveries(ctx context.Context, carrierID string) ([]domain.Request, error)
	// Confirm transitions an open request to matched with an applicant.
	Confirm(ctx context.Context, buyerID string, requestID uint, carrierID string) error
	// CancelMatch transitions a matched request back to open.
	CancelMatch(ctx context.Context, buyerID string, requestID uint) error
	// Withdraw retires an open request permanently.
	Withdraw(ctx context.Context, buyerID string, requestID uint) error
}

// ApplicationService defines application operations consumed by HTTP handlers.
type ApplicationService interface {
	// Apply records a carrier's application to an open request.
	Apply(ctx context.Context, carrierID, carrierNickname string, requestID uint) (*domain.Application, error)
	// ListForRequest returns a request's applicants (owner only).
	ListForRequest(ctx context.Context, buyerID string, requestID uint) ([]domain.Application, error)
	// ListForCarrier returns the carrier's own applications.
	ListForCarrier(ctx context.Context, carrierID string) ([]domain.Application, error)
	// HasApplied reports whether the carrier already applied to the request.
	HasApplied(ctx context.Context, carrierID string, requestID uint) (bool, error)
	// Eligibility reports whether the carrier's itineraries qualify for the request.
	Eligibility(ctx context.Context, carrierID string, r *domain.Request) (bool, error)
}

// TripService defines itinerary operations consumed by HTTP handlers.
type TripService interface {
	// Register validates and stores a carrier itinerary.
	Register(ctx context.Context, carrierID, carrierNickname string, in services.RegisterTripInput) (*domain.CarrierTrip, error)
	// List returns the carrier's itineraries ordered by departure date.
	List(ctx context.Context, carrierID string) ([]domain.CarrierTrip, error)
}

// ProfileService defines profile lookup consumed by HTTP handlers.
type ProfileService interface {
	// Get fetches a profile by ID.
	Get(ctx context.Context, id string) (*domain.Profile, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for accounts, requests, trips, applications,
// and the matching lifecycle. It depends on abstract service interfaces to
// keep transport concerns separate from business logic.
type Handlers struct {
	authSvc    AuthService
	reqSvc     RequestService
	appSvc     ApplicationService
	tripSvc    TripService
	profileSvc ProfileService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(authSvc AuthService, reqSvc RequestService, appSvc ApplicationService, tripSvc TripService, profileSvc ProfileService) *Handlers {
	return &Handlers{
		authSvc:    authSvc,
		reqSvc:     reqSvc,
		appSvc:     appSvc,
		tripSvc:    tripSvc,
		profileSvc: profileSvc,
	}
}

//
// DTOs
//

// ItemPayload is one item inside a request payload.
type ItemPayload struct {
	Name  string `json:"name"  binding:"required" example:"vitamin serum"`
	URL   string `json:"url"   example:"https://shop.example.com/serum"`
	Price string `json:"price" example:"25,000"`
	Size  string `json:"size"  example:"small"`
}

// CreateRequestPayload is the JSON payload for posting a delivery request.
type CreateRequestPayload struct {
	City      string        `json:"city"       binding:"required" example:"London"`
	StartDate string        `json:"start_date" binding:"required" example:"2025-06-05"`
	EndDate   string        `json:"end_date"   binding:"required" example:"2025-06-15"`
	Reward    string        `json:"reward"     binding:"required" example:"10,000"`
	Items     []ItemPayload `json:"items"      binding:"required"`
	Notes     string        `json:"notes"      example:"fragile, keep upright"`
	ChatLink  string        `json:"chat_link"  binding:"required" example:"https://open.kakao.com/o/abc"`
}

// RequestView is the viewer-aware projection of a request. The chat link is
// present only when the viewer is the buyer, has applied, or is the matched
// carrier; Applied and Eligible are filled for authenticated non-owners.
type RequestView struct {
	domain.Request
	// BulkScore is the summed size score of the items (small=1, medium=3, large=6).
	BulkScore int `json:"bulk_score"`
	// Applied reports whether the viewer already applied (authenticated non-owners).
	Applied *bool `json:"applied,omitempty"`
	// Eligible reports whether the viewer's itineraries qualify (authenticated non-owners).
	Eligible *bool `json:"eligible,omitempty"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// ListRequestsResponse wraps a page of requests and pagination information.
type ListRequestsResponse struct {
	Requests   []RequestView `json:"requests"`
	Pagination Pagination    `json:"pagination"`
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// paginate slices a ranked view list into one page plus metadata. Filtering
// and ranking run over the full open set, so the page window is applied last.
func paginate(views []RequestView, page, pageSize int) ListRequestsResponse {
	total := len(views)
	totalPages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return ListRequestsResponse{
		Requests: views[start:end],
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	}
}

// viewOf projects a request for an anonymous viewer: chat link withheld.
func viewOf(r domain.Request) RequestView {
	v := RequestView{Request: r, BulkScore: match.SizeScore(r.Items)}
	v.ChatLink = ""
	return v
}

//
// Handlers
//

// parseRequestID parses the :id path parameter, failing the request on junk.
func parseRequestID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "request id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// CreateRequest godoc
// @ID          createRequest
// @Summary     Post a delivery request
// @Description Creates an open request owned by the authenticated buyer.
// @Tags        Requests
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CreateRequestPayload  true  "Request payload"
//
// @Success     201  {object}  domain.Request
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /requests [post]
func (h *Handlers) CreateRequest(c *gin.Context) {
	var req CreateRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	items := make([]domain.Item, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.Item{Name: it.Name, URL: it.URL, Price: it.Price, Size: it.Size})
	}

	r, err := h.reqSvc.Create(c.Request.Context(), middleware.UserID(c), middleware.Nickname(c), services.CreateRequestInput{
		City:      req.City,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reward:    req.Reward,
		Items:     items,
		Notes:     req.Notes,
		ChatLink:  req.ChatLink,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCity),
			errors.Is(err, services.ErrInvalidDateWindow),
			errors.Is(err, services.ErrInvalidReward),
			errors.Is(err, services.ErrNoItems),
			errors.Is(err, services.ErrInvalidChatLink):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, "could not create request")
		}
		return
	}
	ok(c, http.StatusCreated, r)
}

// ListRequests godoc
// @ID          listRequests
// @Summary     Discover open requests
// @Description Returns open requests filtered by destination city and travel date, ordered by the selected policy. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Requests
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       city           query   string  false "Destination city (exact)"    example(London)
// @Param       date           query   string  false "Travel date probe (YYYY-MM-DD)" example(2025-06-10)
// @Param       sort           query   string  false "latest | reward_desc | bulk_asc | reward_then_bulk" default(latest)
// @Param       page           query   int     false "Page number"     minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListRequestsResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /requests [get]
func (h *Handlers) ListRequests(c *gin.Context) {
	ctx := c.Request.Context()
	page, pageSize := clampPagination(c)

	criteria := match.Criteria{TravelDate: c.Query("date")}
	if raw := c.Query("city"); raw != "" {
		city, valid := domain.ParseCity(raw)
		if !valid {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unsupported destination city")
			return
		}
		criteria.City = city
	}

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, isConcrete := h.reqSvc.(*services.RequestService); isConcrete {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.OpenRequestsStats(ctx, db)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"requests:%s:%s:%s:%d:%d:%d:%d"`, criteria.City, criteria.TravelDate, c.Query("sort"), page, pageSize, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, err := h.reqSvc.Discover(ctx, criteria, match.ParsePolicy(c.Query("sort")))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list requests")
		return
	}

	views := make([]RequestView, 0, len(items))
	for _, r := range items {
		views = append(views, viewOf(r))
	}
	ok(c, http.StatusOK, paginate(views, page, pageSize))
}

// GetRequest godoc
// @ID          getRequest
// @Summary     Request detail
// @Description Returns one request. For authenticated non-owners the response carries applied/eligible flags; the chat link appears only for the buyer, applicants, and the matched carrier.
// @Tags        Requests
// @Produce     json
//
// @Param       id  path  int  true  "Request ID"  example(42)
//
// @Success     200  {object} handlers.RequestView
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Request not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /requests/{id} [get]
func (h *Handlers) GetRequest(c *gin.Context) {
	id, valid := parseRequestID(c)
	if !valid {
		return
	}
	ctx := c.Request.Context()

	r, err := h.reqSvc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "request not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load request")
		return
	}

	view := viewOf(*r)
	uid := middleware.UserID(c)
	switch {
	case uid == "":
		// Anonymous: bare view.
	case uid == r.BuyerID:
		view.ChatLink = r.ChatLink
	default:
		applied, err := h.appSvc.HasApplied(ctx, uid, id)
		if err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load request")
			return
		}
		eligible, err := h.appSvc.Eligibility(ctx, uid, r)
		if err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load request")
			return
		}
		view.Applied, view.Eligible = &applied, &eligible
		matched := r.MatchedCarrierID != nil && *r.MatchedCarrierID == uid
		if applied || matched {
			view.ChatLink = r.ChatLink
		}
	}
	ok(c, http.StatusOK, view)
}

// WithdrawRequest godoc
// @ID          withdrawRequest
// @Summary     Withdraw a request
// @Description Retires an open request permanently. Only the owner may withdraw, and only while the request is open.
// @Tags        Requests
// @Security    BearerAuth
//
// @Param       id  path  int  true  "Request ID"  example(42)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     404  {object} handlers.ErrorResponse "Request not found"
// @Failure     409  {object} handlers.ErrorResponse "Request is not open"
// @Router      /requests/{id} [delete]
func (h *Handlers) WithdrawRequest(c *gin.Context) {
	id, valid := parseRequestID(c)
	if !valid {
		return
	}
	err := h.reqSvc.Withdraw(c.Request.Context(), middleware.UserID(c), id)
	switch {
	case err == nil:
		noContent(c)
	case errors.Is(err, services.ErrRequestNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "request not found")
	case errors.Is(err, services.ErrRequestNotOpen):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not withdraw request")
	}
}

// ConfirmMatchRequest is the JSON payload for confirming a carrier.
type ConfirmMatchRequest struct {
	CarrierID string `json:"carrier_id" binding:"required" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
}

// ConfirmMatch godoc
// @ID          confirmMatch
// @Summary     Confirm a carrier
// @Description Transitions an open request to matched with one of its applicants. Exactly one carrier can hold the match.
// @Tags        Matching
// @Accept      json
// @Security    BearerAuth
//
// @Param       id    path  int                            true  "Request ID"  example(42)
// @Param       body  body  handlers.ConfirmMatchRequest  true  "Chosen applicant"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     404  {object} handlers.ErrorResponse "Request not found"
// @Failure     409  {object} handlers.ErrorResponse "Request is not open / carrier never applied"
// @Router      /requests/{id}/match [post]
func (h *Handlers) ConfirmMatch(c *gin.Context) {
	id, valid := parseRequestID(c)
	if !valid {
		return
	}
	var req ConfirmMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	err := h.reqSvc.Confirm(c.Request.Context(), middleware.UserID(c), id, req.CarrierID)
	switch {
	case err == nil:
		noContent(c)
	case errors.Is(err, services.ErrRequestNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "request not found")
	case errors.Is(err, services.ErrApplicantNotFound):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, services.ErrRequestNotOpen):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not confirm match")
	}
}

// CancelMatch godoc
// @ID          cancelMatch
// @Summary     Cancel a match
// @Description Transitions a matched request back to open. Applications survive and can be re-confirmed.
// @Tags        Matching
// @Security    BearerAuth
//
// @Param       id  path  int  true  "Request ID"  example(42)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     404  {object} handlers.ErrorResponse "Request not found"
// @Failure     409  {object} handlers.ErrorResponse "Request is not matched"
// @Router      /requests/{id}/match [delete]
func (h *Handlers) CancelMatch(c *gin.Context) {
	id, valid := parseRequestID(c)
	if !valid {
		return
	}
	err := h.reqSvc.CancelMatch(c.Request.Context(), middleware.UserID(c), id)
	switch {
	case err == nil:
		noContent(c)
	case errors.Is(err, services.ErrRequestNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "request not found")
	case errors.Is(err, services.ErrRequestNotMatched):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not cancel match")
	}
}
