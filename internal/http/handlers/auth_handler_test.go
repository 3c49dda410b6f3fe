package handlers

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func validSignUpPayload() SignUpRequest {
	return SignUpRequest{
		Email:           "minnie@example.com",
		Password:        "hunter22",
		PasswordConfirm: "hunter22",
		FullName:        "Minnie Park",
		Nickname:        "minnie",
		CountryCode:     "KR",
		PhoneNumber:     "01012345678",
	}
}

func TestSignUp_BadJSON_Validation_Success_Conflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hn := newHarness(t)
	r := gin.New()
	r.POST("/auth/signup", hn.h.SignUp)

	// Bad JSON -> 400
	if w := doJSON(r, http.MethodPost, "/auth/signup", bytes.NewBufferString("{bad")); w.Code != http.StatusBadRequest {
		t.Fatalf("bad json -> %d", w.Code)
	}

	// Password mismatch -> 400
	bad := validSignUpPayload()
	bad.PasswordConfirm = "different"
	if w := doJSON(r, http.MethodPost, "/auth/signup", jsonBody(t, bad)); w.Code != http.StatusBadRequest {
		t.Fatalf("mismatch -> %d", w.Code)
	}

	// Success -> 201 with profile + token
	w := doJSON(r, http.MethodPost, "/auth/signup", jsonBody(t, validSignUpPayload()))
	if w.Code != http.StatusCreated {
		t.Fatalf("signup -> %d body=%s", w.Code, w.Body.String())
	}
	out := decodeBody[SessionResponse](t, w)
	if out.Profile == nil || out.Profile.Nickname != "minnie" || out.Token == "" {
		t.Fatalf("unexpected session: %#v", out)
	}

	// Same nickname again -> 409
	dup := validSignUpPayload()
	dup.Email = "other@example.com"
	dup.PhoneNumber = "01099998888"
	if w := doJSON(r, http.MethodPost, "/auth/signup", jsonBody(t, dup)); w.Code != http.StatusConflict {
		t.Fatalf("dup nickname -> %d", w.Code)
	}
}

func TestLogin_WrongPassword_Then_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hn := newHarness(t)
	r := gin.New()
	r.POST("/auth/signup", hn.h.SignUp)
	r.POST("/auth/login", hn.h.Login)

	if w := doJSON(r, http.MethodPost, "/auth/signup", jsonBody(t, validSignUpPayload())); w.Code != http.StatusCreated {
		t.Fatalf("signup -> %d", w.Code)
	}

	// Unknown email and wrong password both land on 401
	if w := doJSON(r, http.MethodPost, "/auth/login", jsonBody(t, LoginRequest{Email: "ghost@example.com", Password: "hunter22"})); w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown email -> %d", w.Code)
	}
	if w := doJSON(r, http.MethodPost, "/auth/login", jsonBody(t, LoginRequest{Email: "minnie@example.com", Password: "wrong-pass"})); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password -> %d", w.Code)
	}

	// Email lookup is case-insensitive
	w := doJSON(r, http.MethodPost, "/auth/login", jsonBody(t, LoginRequest{Email: "MINNIE@example.com", Password: "hunter22"}))
	if w.Code != http.StatusOK {
		t.Fatalf("login -> %d body=%s", w.Code, w.Body.String())
	}
	if out := decodeBody[SessionResponse](t, w); out.Token == "" {
		t.Fatalf("expected a session token")
	}
}

func TestAvailabilityProbes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hn := newHarness(t)
	r := gin.New()
	r.POST("/auth/signup", hn.h.SignUp)
	r.GET("/auth/nickname-available", hn.h.NicknameAvailable)
	r.GET("/auth/phone-available", hn.h.PhoneAvailable)

	if w := doJSON(r, http.MethodPost, "/auth/signup", jsonBody(t, validSignUpPayload())); w.Code != http.StatusCreated {
		t.Fatalf("signup -> %d", w.Code)
	}

	// Missing nickname param -> 400
	if w := doJSON(r, http.MethodGet, "/auth/nickname-available", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("missing nickname -> %d", w.Code)
	}

	w := doJSON(r, http.MethodGet, "/auth/nickname-available?nickname=minnie", nil)
	if out := decodeBody[AvailabilityResponse](t, w); out.Available {
		t.Fatalf("minnie must be taken")
	}
	w = doJSON(r, http.MethodGet, "/auth/nickname-available?nickname=fresh", nil)
	if out := decodeBody[AvailabilityResponse](t, w); !out.Available {
		t.Fatalf("fresh must be available")
	}

	// Taken phone (normalized with country prefix) vs free one
	w = doJSON(r, http.MethodGet, "/auth/phone-available?country_code=KR&number=01012345678", nil)
	if out := decodeBody[AvailabilityResponse](t, w); out.Available {
		t.Fatalf("registered phone must be taken")
	}
	w = doJSON(r, http.MethodGet, "/auth/phone-available?country_code=KR&number=01000000000", nil)
	if out := decodeBody[AvailabilityResponse](t, w); !out.Available {
		t.Fatalf("free phone must be available")
	}

	// Garbage phone -> 400
	if w := doJSON(r, http.MethodGet, "/auth/phone-available?country_code=KR&number=abc", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("garbage phone -> %d", w.Code)
	}
}
