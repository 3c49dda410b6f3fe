// Package services – AuthService
//
// This file implements account signup and login. Signup validates the same
// rules the original web form enforced client-side (email shape, password
// length and confirmation, nickname/phone availability) before writing, and
// still relies on the database's uniqueness constraints as the final word so
// concurrent signups cannot slip past the probes. Login verifies credentials
// and issues a stateless session token; unknown email and wrong password are
// indistinguishable to the caller.
package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carryonhq/carryon-backend/internal/auth"
	"github.com/carryonhq/carryon-backend/internal/domain"
	"github.com/carryonhq/carryon-backend/internal/repo"
)

// emailRE mirrors the original form's shape check: something@something.tld.
var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// countryPrefixes maps supported country codes to their dialing prefixes.
var countryPrefixes = map[string]string{
	"KR": "+82",
	"GB": "+44",
	"US": "+1",
	"FR": "+33",
}

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 6

// MaxNicknameRunes caps nickname length, matching the signup form limit.
const MaxNicknameRunes = 12

// AuthService implements signup and login.
type AuthService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// TokenSecret signs session JWTs.
	TokenSecret string
	// TokenTTL bounds session lifetime.
	TokenTTL time.Duration
}

// SignUpInput carries the signup form fields.
type SignUpInput struct {
	Email           string
	Password        string
	PasswordConfirm string
	FullName        string
	Nickname        string
	CountryCode     string
	PhoneNumber     string
}

// SignUp validates the input, creates a profile, and returns it with a
// session token.
//
// Validation order matches the original form: password rules first, then
// email shape, then uniqueness probes. Phone numbers are normalized to
// E.164-style +<prefix><national> with a leading national zero dropped.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*domain.Profile, string, error) {
	if in.Password != in.PasswordConfirm {
		return nil, "", ErrPasswordMismatch
	}
	if len(in.Password) < MinPasswordLen {
		return nil, "", ErrPasswordTooShort
	}
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if !emailRE.MatchString(email) {
		return nil, "", ErrInvalidEmail
	}
	nickname := strings.TrimSpace(in.Nickname)
	if nickname == "" || utf8.RuneCountInString(nickname) > MaxNicknameRunes {
		return nil, "", ErrInvalidNickname
	}

	phone, err := FullPhoneNumber(in.CountryCode, in.PhoneNumber)
	if err != nil {
		return nil, "", err
	}

	// Availability probes; the unique indexes remain the source of truth.
	if taken, err := repo.NicknameTaken(ctx, s.DB, nickname); err != nil {
		return nil, "", err
	} else if taken {
		return nil, "", ErrNicknameTaken
	}
	if taken, err := repo.PhoneTaken(ctx, s.DB, phone); err != nil {
		return nil, "", err
	} else if taken {
		return nil, "", ErrPhoneTaken
	}
	if _, err := repo.GetProfileByEmail(ctx, s.DB, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, "", err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	p := &domain.Profile{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Nickname:     nickname,
		FullName:     strings.TrimSpace(in.FullName),
		PhoneNumber:  phone,
		CountryCode:  in.CountryCode,
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.CreateProfile(ctx, s.DB, p); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			// A concurrent signup won one of the unique indexes.
			return nil, "", ErrNicknameTaken
		}
		return nil, "", err
	}

	token, err := auth.GenerateToken(p.ID, p.Nickname, s.TokenSecret, s.TokenTTL)
	if err != nil {
		return nil, "", err
	}
	return p, token, nil
}

// SignIn verifies email+password and returns the profile with a fresh
// session token. Unknown email and wrong password both yield
// ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.Profile, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	p, err := repo.GetProfileByEmail(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !auth.CheckPassword(password, p.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(p.ID, p.Nickname, s.TokenSecret, s.TokenTTL)
	if err != nil {
		return nil, "", err
	}
	return p, token, nil
}

// NicknameAvailable reports whether a nickname is free to register.
func (s *AuthService) NicknameAvailable(ctx context.Context, nickname string) (bool, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return false, nil
	}
	taken, err := repo.NicknameTaken(ctx, s.DB, nickname)
	return !taken, err
}

// PhoneAvailable reports whether a normalized phone number is free.
func (s *AuthService) PhoneAvailable(ctx context.Context, countryCode, number string) (bool, error) {
	phone, err := FullPhoneNumber(countryCode, number)
	if err != nil {
		return false, err
	}
	taken, err := repo.PhoneTaken(ctx, s.DB, phone)
	return !taken, err
}

// FullPhoneNumber joins a country dialing prefix with a national number,
// dropping the national leading zero ("01012345678" + KR → "+821012345678").
func FullPhoneNumber(countryCode, number string) (string, error) {
	prefix, ok := countryPrefixes[strings.ToUpper(strings.TrimSpace(countryCode))]
	if !ok {
		return "", ErrInvalidPhone
	}
	digits := strings.TrimSpace(number)
	if digits == "" {
		return "", ErrInvalidPhone
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", ErrInvalidPhone
		}
	}
	digits = strings.TrimPrefix(digits, "0")
	return prefix + digits, nil
}
