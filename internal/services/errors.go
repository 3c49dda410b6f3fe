// Package services defines the business logic of the marketplace: account
// signup and login, request posting and discovery, itinerary registration,
// applications, and the match lifecycle. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; mapping
// to user-facing messages or HTTP status codes is performed at the handler
// layer.
package services

import "errors"

// Account-related errors.
var (
	// ErrInvalidEmail is returned when an email address fails the shape check.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrPasswordTooShort is returned when a password is under the minimum
	// length (6 characters, matching the original signup form).
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")

	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = errors.New("password confirmation does not match")

	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrNicknameTaken indicates the nickname is already in use. Nicknames
	// are immutable after signup, so this is checked eagerly.
	ErrNicknameTaken = errors.New("nickname already in use")

	// ErrInvalidNickname is returned when a nickname is empty or longer
	// than the 12-character form limit.
	ErrInvalidNickname = errors.New("invalid nickname")

	// ErrPhoneTaken indicates the phone number is already registered.
	ErrPhoneTaken = errors.New("phone number already registered")

	// ErrInvalidPhone is returned when a phone number is empty, contains
	// non-digits, or carries an unsupported country code.
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrInvalidCredentials is returned on login when the email is unknown
	// or the password does not match. The two cases are deliberately not
	// distinguished.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrProfileNotFound indicates the requested profile does not exist.
	ErrProfileNotFound = errors.New("profile not found")
)

// Request and lifecycle errors.
var (
	// ErrRequestNotFound indicates the requested delivery request does not
	// exist or is not accessible to the current user.
	ErrRequestNotFound = errors.New("request not found")

	// ErrNotRequestOwner is returned when a non-owner attempts a buyer-only
	// action (withdraw, confirm, cancel match, list applicants).
	ErrNotRequestOwner = errors.New("request belongs to another buyer")

	// ErrRequestNotOpen is returned when a transition requires an open
	// request (confirm, withdraw) but the status has moved.
	ErrRequestNotOpen = errors.New("request is not open")

	// ErrRequestNotMatched is returned when cancel-match targets a request
	// that is not currently matched.
	ErrRequestNotMatched = errors.New("request is not matched")

	// ErrInvalidCity is returned when a destination label is not one of the
	// supported cities.
	ErrInvalidCity = errors.New("unsupported destination city")

	// ErrInvalidDateWindow is returned when start/end dates are malformed
	// or inverted.
	ErrInvalidDateWindow = errors.New("invalid delivery date window")

	// ErrInvalidReward is returned when a reward cannot be parsed as a
	// non-negative integer amount.
	ErrInvalidReward = errors.New("reward must be a non-negative amount")

	// ErrNoItems is returned when a request is posted without any items.
	ErrNoItems = errors.New("request needs at least one item")

	// ErrInvalidChatLink is returned when the chat link is not a
	// well-formed http(s) URL.
	ErrInvalidChatLink = errors.New("chat link must be a valid URL")
)

// Trip and application errors.
var (
	// ErrInvalidDepartureDate is returned when an itinerary date is not a
	// valid YYYY-MM-DD value.
	ErrInvalidDepartureDate = errors.New("invalid departure date")

	// ErrReservationCodeRequired is returned when an itinerary is
	// registered without its reservation code trust signal.
	ErrReservationCodeRequired = errors.New("reservation code is required")

	// ErrNotEligible is returned when a carrier applies without any
	// registered itinerary matching the request's city and window.
	ErrNotEligible = errors.New("no itinerary matches this request")

	// ErrAlreadyApplied is returned when a carrier applies to the same
	// request twice.
	ErrAlreadyApplied = errors.New("already applied to this request")

	// ErrOwnRequest is returned when a buyer attempts to apply to their
	// own request.
	ErrOwnRequest = errors.New("cannot apply to your own request")

	// ErrApplicantNotFound is returned when a buyer confirms a carrier who
	// never applied to the request.
	ErrApplicantNotFound = errors.New("carrier has not applied to this request")
)
