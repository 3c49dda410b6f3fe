// Authentication HTTP handlers.
//
// This file exposes REST endpoints for account management:
//   - POST /auth/signup              (register, returns profile + token)
//   - POST /auth/login               (login, returns profile + token)
//   - GET  /auth/nickname-available  (live signup-form probe)
//   - GET  /auth/phone-available     (live signup-form probe)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carryonhq/carryon-backend/internal/domain"
	"github.com/carryonhq/carryon-backend/internal/services"
)

// AuthService defines the account operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AuthService interface {
	// SignUp validates the form, creates a profile, and returns it with a
	// session token.
	SignUp(ctx context.Context, in services.SignUpInput) (*domain.Profile, string, error)
	// SignIn verifies credentials and returns the profile with a fresh token.
	SignIn(ctx context.Context, email, password string) (*domain.Profile, string, error)
	// NicknameAvailable reports whether a nickname is free to register.
	NicknameAvailable(ctx context.Context, nickname string) (bool, error)
	// PhoneAvailable reports whether a phone number is free to register.
	PhoneAvailable(ctx context.Context, countryCode, number string) (bool, error)
}

// SignUpRequest is the JSON payload for registering an account.
type SignUpRequest struct {
	Email           string `json:"email"            binding:"required" example:"minnie@example.com"`
	Password        string `json:"password"         binding:"required" example:"hunter22"`
	PasswordConfirm string `json:"password_confirm" binding:"required" example:"hunter22"`
	FullName        string `json:"full_name"        example:"Minnie Park"`
	Nickname        string `json:"nickname"         binding:"required" example:"minnie"`
	CountryCode     string `json:"country_code"     binding:"required" example:"KR"`
	PhoneNumber     string `json:"phone_number"     binding:"required" example:"01012345678"`
}

// LoginRequest is the JSON payload for logging in.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required" example:"minnie@example.com"`
	Password string `json:"password" binding:"required" example:"hunter22"`
}

// SessionResponse wraps a profile and its session token.
type SessionResponse struct {
	Profile *domain.Profile `json:"profile"`
	Token   string          `json:"token"`
}

// AvailabilityResponse reports the result of a signup-form probe.
type AvailabilityResponse struct {
	Available bool `json:"available"`
}

// SignUp godoc
// @ID          signUp
// @Summary     Register an account
// @Description Creates a profile and returns it together with a session token.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.SignUpRequest  true  "Signup payload"
//
// @Success     201  {object}  handlers.SessionResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     409  {object}  handlers.ErrorResponse  "Email, nickname, or phone taken"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /auth/signup [post]
func (h *Handlers) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	p, token, err := h.authSvc.SignUp(c.Request.Context(), services.SignUpInput{
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		FullName:        req.FullName,
		Nickname:        req.Nickname,
		CountryCode:     req.CountryCode,
		PhoneNumber:     req.PhoneNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken),
			errors.Is(err, services.ErrNicknameTaken),
			errors.Is(err, services.ErrPhoneTaken):
			fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
		case errors.Is(err, services.ErrInvalidEmail),
			errors.Is(err, services.ErrPasswordTooShort),
			errors.Is(err, services.ErrPasswordMismatch),
			errors.Is(err, services.ErrInvalidNickname),
			errors.Is(err, services.ErrInvalidPhone):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "signup failed")
		}
		return
	}
	ok(c, http.StatusCreated, SessionResponse{Profile: p, Token: token})
}

// Login godoc
// @ID          login
// @Summary     Log in
// @Description Verifies credentials and returns the profile with a session token.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.LoginRequest  true  "Login payload"
//
// @Success     200  {object}  handlers.SessionResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Invalid credentials"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	p, token, err := h.authSvc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "login failed")
		return
	}
	ok(c, http.StatusOK, SessionResponse{Profile: p, Token: token})
}

// NicknameAvailable godoc
// @ID          nicknameAvailable
// @Summary     Check nickname availability
// @Description Live probe used by the signup form. Nicknames are immutable after signup.
// @Tags        Auth
// @Produce     json
//
// @Param       nickname  query  string  true  "Nickname to check"  example(minnie)
//
// @Success     200  {object}  handlers.AvailabilityResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing nickname"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /auth/nickname-available [get]
func (h *Handlers) NicknameAvailable(c *gin.Context) {
	nickname := c.Query("nickname")
	if nickname == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "nickname query parameter required")
		return
	}
	available, err := h.authSvc.NicknameAvailable(c.Request.Context(), nickname)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "availability check failed")
		return
	}
	ok(c, http.StatusOK, AvailabilityResponse{Available: available})
}

// PhoneAvailable godoc
// @ID          phoneAvailable
// @Summary     Check phone number availability
// @Description Live probe used by the signup form. The number is normalized with its country prefix before lookup.
// @Tags        Auth
// @Produce     json
//
// @Param       country_code  query  string  true  "ISO country code"  example(KR)
// @Param       number        query  string  true  "National number"   example(01012345678)
//
// @Success     200  {object}  handlers.AvailabilityResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid phone number"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /auth/phone-available [get]
func (h *Handlers) PhoneAvailable(c *gin.Context) {
	available, err := h.authSvc.PhoneAvailable(c.Request.Context(), c.Query("country_code"), c.Query("number"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidPhone) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "availability check failed")
		return
	}
	ok(c, http.StatusOK, AvailabilityResponse{Available: available})
}
