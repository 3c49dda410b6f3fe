// Package services – RequestService
//
// This file implements the delivery-request use-cases: posting, discovery
// (filter + rank over the open list), buyer dashboards, and the matching
// lifecycle (confirm, cancel match, withdraw). Lifecycle transitions are
// optimistic: the repository applies them as conditional updates on the
// expected prior status, and a lost race surfaces as ErrRequestNotOpen /
// ErrRequestNotMatched instead of silently overwriting the other writer.
package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gorm.io/gorm"

	"github.com/carryonhq/carryon-backend/internal/domain"
	"github.com/carryonhq/carryon-backend/internal/match"
	"github.com/carryonhq/carryon-backend/internal/repo"
)

// rewardPrinter renders integer amounts with thousands separators, the
// display format the reward column stores ("10,000").
var rewardPrinter = message.NewPrinter(language.English)

// FormatAmount renders a non-negative integer as a grouped decimal string.
func FormatAmount(n int64) string {
	return rewardPrinter.Sprintf("%d", n)
}

// RequestService implements the use-cases around delivery requests.
type RequestService struct {
	// DB is the GORM handle used for all request operations.
	DB *gorm.DB
}

// CreateRequestInput carries the request-posting form fields. Reward and
// item prices may arrive with or without thousands separators.
type CreateRequestInput struct {
	City      string
	StartDate string
	EndDate   string
	Reward    string
	Items     []domain.Item
	Notes     string
	ChatLink  string
}

// Create validates and persists a new request owned by the buyer. The
// status starts open with both match fields null; the stored reward is
// normalized to the canonical grouped format.
func (s *RequestService) Create(ctx context.Context, buyerID, buyerNickname string, in CreateRequestInput) (*domain.Request, error) {
	city, ok := domain.ParseCity(in.City)
	if !ok {
		return nil, ErrInvalidCity
	}
	if !validISODate(in.StartDate) || !validISODate(in.EndDate) || in.StartDate > in.EndDate {
		return nil, ErrInvalidDateWindow
	}
	reward := strings.TrimSpace(in.Reward)
	if reward == "" {
		return nil, ErrInvalidReward
	}
	amount := match.ParseReward(reward)
	if amount < 0 || (amount == 0 && strings.Trim(reward, "0,") != "") {
		return nil, ErrInvalidReward
	}
	if len(in.Items) == 0 {
		return nil, ErrNoItems
	}
	if err := validChatLink(in.ChatLink); err != nil {
		return nil, err
	}

	r := &domain.Request{
		BuyerID:       buyerID,
		BuyerNickname: buyerNickname,
		City:          city,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		Reward:        FormatAmount(amount),
		Items:         in.Items,
		Notes:         strings.TrimSpace(in.Notes),
		ChatLink:      in.ChatLink,
		Status:        domain.StatusOpen,
	}
	if err := repo.CreateRequest(ctx, s.DB, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Get fetches a request by ID, or ErrRequestNotFound.
func (s *RequestService) Get(ctx context.Context, id uint) (*domain.Request, error) {
	r, err := repo.GetRequest(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrRequestNotFound
	}
	return r, err
}

// Discover returns the open requests matching the criteria, ordered by the
// given policy. Filtering and ranking run in memory over the fetched open
// list, mirroring the client-side pipeline of the original application.
func (s *RequestService) Discover(ctx context.Context, c match.Criteria, policy match.SortPolicy) ([]domain.Request, error) {
	open, err := repo.ListOpenRequests(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	return match.Rank(match.Filter(open, c), policy), nil
}

// ListByBuyer returns the buyer's dashboard view: their requests newest
// first, withdrawn rows hidden, optionally narrowed to one status.
func (s *RequestService) ListByBuyer(ctx context.Context, buyerID string, status domain.Status) ([]domain.Request, error) {
	return repo.ListRequestsByBuyer(ctx, s.DB, buyerID, status)
}

// ListDeliveries returns the requests currently matched to a carrier.
func (s *RequestService) ListDeliveries(ctx context.Context, carrierID string) ([]domain.Request, error) {
	return repo.ListMatchedForCarrier(ctx, s.DB, carrierID)
}

// Confirm transitions an open request to matched with the chosen carrier.
//
// The carrier must actually have applied: the application row is loaded and
// its recorded nickname is what gets stamped on the request, so a buyer
// cannot attach an arbitrary identity. The request is resolved first, scoped
// to the buyer, so a missing or foreign request reports ErrRequestNotFound
// rather than a misleading applicant error. Runs in a transaction so the
// applicant check and the conditional status update are atomic.
func (s *RequestService) Confirm(ctx context.Context, buyerID string, requestID uint, carrierID string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := repo.GetRequest(ctx, tx, requestID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if r.BuyerID != buyerID {
			return ErrRequestNotFound
		}
		app, err := repo.GetApplication(ctx, tx, carrierID, requestID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrApplicantNotFound
			}
			return err
		}
		err = repo.MatchRequest(ctx, tx, requestID, buyerID, app.CarrierID, app.CarrierNickname)
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return ErrRequestNotFound
		case errors.Is(err, repo.ErrStaleStatus):
			return ErrRequestNotOpen
		}
		return err
	})
}

// CancelMatch transitions a matched request back to open, clearing both
// carrier fields. Existing applications are untouched and remain
// re-confirmable.
func (s *RequestService) CancelMatch(ctx context.Context, buyerID string, requestID uint) error {
	err := repo.ClearMatch(ctx, s.DB, requestID, buyerID)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return ErrRequestNotFound
	case errors.Is(err, repo.ErrStaleStatus):
		return ErrRequestNotMatched
	}
	return err
}

// Withdraw soft-deletes an open request: the status moves to withdrawn and
// the row never surfaces in discovery or dashboards again. One-way.
func (s *RequestService) Withdraw(ctx context.Context, buyerID string, requestID uint) error {
	err := repo.WithdrawRequest(ctx, s.DB, requestID, buyerID)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return ErrRequestNotFound
	case errors.Is(err, repo.ErrStaleStatus):
		return ErrRequestNotOpen
	}
	return err
}

// validISODate reports whether s is a real calendar date in the fixed-width
// YYYY-MM-DD format the comparison logic depends on.
func validISODate(s string) bool {
	if len(s) != 10 {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// validChatLink accepts only well-formed absolute http(s) URLs; the link is
// stored verbatim and rendered as a navigation target.
func validChatLink(link string) error {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidChatLink
	}
	return nil
}
