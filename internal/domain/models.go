// Package domain defines the persistence models for the CarryOn marketplace:
// delivery requests posted by buyers, itineraries announced by carriers,
// applications connecting the two, and user profiles. These types are mapped
// with GORM and form the core data layer of the application.
package domain

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// City is the destination of a delivery request or carrier trip. The set of
// supported destinations is closed; the origin is always Seoul.
type City string

const (
	CityLondon  City = "London"
	CityParis   City = "Paris"
	CityNewYork City = "New York"
)

// Origin is the fixed departure city for every trip and request.
const Origin = "Seoul"

// Cities lists the supported destination cities in display order.
func Cities() []City { return []City{CityLondon, CityParis, CityNewYork} }

// ParseCity resolves a destination label to its canonical City value. Both
// the English names and the Korean labels used by the first-generation web
// client are accepted. The second return value is false for unknown labels.
func ParseCity(s string) (City, bool) {
	switch strings.TrimSpace(s) {
	case "London", "런던":
		return CityLondon, true
	case "Paris", "파리":
		return CityParis, true
	case "New York", "뉴욕":
		return CityNewYork, true
	}
	return "", false
}

// Status tracks a request through its matching lifecycle. A request starts
// open, becomes matched when the buyer confirms a carrier, and may return to
// open if the match is cancelled. Withdrawn is terminal: the row is kept but
// never surfaces in discovery again.
type Status string

const (
	StatusOpen      Status = "open"
	StatusMatched   Status = "matched"
	StatusWithdrawn Status = "withdrawn"
)

// Size is the bulk category of a requested item.
type Size string

const (
	SizeSmall  Size = "small"  // cosmetics, medicine
	SizeMedium Size = "medium" // clothes, shoes, daily goods
	SizeLarge  Size = "large"  // electronics and other bulky goods
)

// ParseSize resolves a size label to its canonical Size value, accepting the
// Korean labels of the original client (소형/중형/대형). Unknown or empty
// labels return false; callers treat those as zero-weight.
func ParseSize(s string) (Size, bool) {
	switch strings.TrimSpace(s) {
	case "small", "소형":
		return SizeSmall, true
	case "medium", "중형":
		return SizeMedium, true
	case "large", "대형":
		return SizeLarge, true
	}
	return "", false
}

// Item is a single requested article within a delivery request. Items are
// stored as a JSON column on the request row rather than a separate table;
// they have no identity of their own.
//
// Price is a display-formatted string like the reward field (the original
// client formats as the user types), so it is kept as text.
type Item struct {
	Name  string `json:"name"`
	URL   string `json:"url,omitempty"`
	Price string `json:"price,omitempty"`
	Size  string `json:"size"`
}

// Request is a delivery task posted by a buyer: a set of items to be carried
// from Seoul to a destination city within a date window, for a reward.
//
// Invariants:
//   - Status is one of open/matched/withdrawn.
//   - MatchedCarrierID and CarrierNickname are both set or both null, and
//     only while Status is matched.
//   - StartDate and EndDate are fixed-width YYYY-MM-DD strings, so window
//     containment can be checked with lexicographic comparison.
//   - Reward is a non-negative integer stored as a display-formatted string
//     ("10,000"); ranking parses it and coerces malformed values to 0.
//
// The auto-increment ID doubles as a monotone creation surrogate: the
// "latest" discovery sort orders by it descending.
type Request struct {
	ID               uint           `json:"id"                 gorm:"primaryKey;autoIncrement"`
	BuyerID          string         `json:"buyer_id"           gorm:"type:char(36);not null;index:idx_buyer_requests"`
	BuyerNickname    string         `json:"buyer_nickname"     gorm:"type:varchar(64);not null"`
	City             City           `json:"city"               gorm:"type:varchar(32);not null;index"`
	StartDate        string         `json:"start_date"         gorm:"type:char(10);not null"`
	EndDate          string         `json:"end_date"           gorm:"type:char(10);not null"`
	Reward           string         `json:"reward"             gorm:"type:varchar(32);not null"`
	Items            []Item         `json:"items"              gorm:"serializer:json"`
	Notes            string         `json:"notes,omitempty"    gorm:"type:text"`
	ChatLink         string         `json:"chat_link,omitempty" gorm:"type:text"`
	Status           Status         `json:"status"             gorm:"type:varchar(16);not null;default:'open';index;check:status IN ('open','matched','withdrawn')"`
	MatchedCarrierID *string        `json:"matched_carrier_id,omitempty" gorm:"type:char(36);index"`
	CarrierNickname  *string        `json:"carrier_nickname,omitempty"   gorm:"type:varchar(64)"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-"                  gorm:"index"`
}

// TableName returns the database table name for Request.
func (Request) TableName() string { return "requests" }

// CarrierTrip is a traveler's announced itinerary: one departure from Seoul
// to a destination city on a single date. The reservation code is a trust
// signal held privately; it is stored but never serialized to JSON.
type CarrierTrip struct {
	ID              uint           `json:"id"              gorm:"primaryKey;autoIncrement"`
	CarrierID       string         `json:"carrier_id"      gorm:"type:char(36);not null;index:idx_carrier_trips"`
	CarrierNickname string         `json:"carrier_nickname" gorm:"type:varchar(64);not null"`
	Origin          string         `json:"origin"          gorm:"type:varchar(32);not null;default:'Seoul'"`
	Destination     City           `json:"destination"     gorm:"type:varchar(32);not null;index"`
	DepartureDate   string         `json:"departure_date"  gorm:"type:char(10);not null"`
	ReservationCode string         `json:"-"               gorm:"type:varchar(64);not null"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-"               gorm:"index"`
}

// TableName returns the database table name for CarrierTrip.
func (CarrierTrip) TableName() string { return "carrier_trips" }

// Application is a carrier's expression of interest in a request. A carrier
// may apply to a given request at most once (enforced by unique index);
// applications survive match cancellation and remain re-confirmable.
type Application struct {
	ID              string         `json:"id"               gorm:"type:char(36);primaryKey"`
	CarrierID       string         `json:"carrier_id"       gorm:"type:char(36);not null;index;uniqueIndex:ux_app_carrier_request"`
	RequestID       uint           `json:"request_id"       gorm:"not null;index;uniqueIndex:ux_app_carrier_request"`
	CarrierNickname string         `json:"carrier_nickname" gorm:"type:varchar(64);not null"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-"                gorm:"index"`

	// Request is the applied-to delivery request. Applications are
	// cascade-deleted if the request row is ever physically removed.
	Request Request `json:"-" gorm:"foreignKey:RequestID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Application.
func (Application) TableName() string { return "carrier_requests" }

// Profile is a user's public identity plus credentials. Nickname and phone
// number are globally unique; the nickname is immutable after signup. The
// password hash is never serialized.
type Profile struct {
	ID           string         `json:"id"           gorm:"type:char(36);primaryKey"`
	Email        string         `json:"email"        gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string         `json:"-"            gorm:"type:varchar(255);not null"`
	Nickname     string         `json:"nickname"     gorm:"type:varchar(64);not null;uniqueIndex"`
	FullName     string         `json:"full_name"    gorm:"type:varchar(128);not null"`
	PhoneNumber  string         `json:"phone_number" gorm:"type:varchar(32);not null;uniqueIndex"`
	CountryCode  string         `json:"country_code" gorm:"type:char(2);not null"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-"            gorm:"index"`
}

// TableName returns the database table name for Profile.
func (Profile) TableName() string { return "profiles" }
