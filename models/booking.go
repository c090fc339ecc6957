package models

import "time"

// Booking statuses
const (
	BookingPending   = "pending"
	BookingApproved  = "approved"
	BookingRejected  = "rejected"
	BookingCancelled = "cancelled"
)

// BookingDetails is the flat tagged-variant payload shared by all five
// booking categories. Exactly one of the listing reference fields is set;
// which one decides the category. Resolution order is fixed: shortletId,
// hotelId, restaurantId, serviceId, eventId — first non-empty wins.
type BookingDetails struct {
	ShortletID   string `json:"shortletId,omitempty" bson:"shortletId,omitempty"`
	HotelID      string `json:"hotelId,omitempty" bson:"hotelId,omitempty"`
	RestaurantID string `json:"restaurantId,omitempty" bson:"restaurantId,omitempty"`
	ServiceID    string `json:"serviceId,omitempty" bson:"serviceId,omitempty"`
	EventID      string `json:"eventId,omitempty" bson:"eventId,omitempty"`

	// Common contact fields, denormalized for notification delivery.
	FirstName      string `json:"firstName" bson:"firstName"`
	LastName       string `json:"lastName" bson:"lastName"`
	Email          string `json:"email" bson:"email"`
	PhoneNumber    string `json:"phoneNumber" bson:"phoneNumber"`
	SpecialRequest string `json:"specialRequest,omitempty" bson:"specialRequest,omitempty"`

	// Restaurant
	Date           string `json:"date,omitempty" bson:"date,omitempty"`
	NumberOfGuests int    `json:"numberOfGuests,omitempty" bson:"numberOfGuests,omitempty"`

	// Services
	ServiceSchedule     string `json:"serviceSchedule,omitempty" bson:"serviceSchedule,omitempty"`
	ServiceLocationType string `json:"serviceLocationType,omitempty" bson:"serviceLocationType,omitempty"`
	StreetAddress       string `json:"streetAddress,omitempty" bson:"streetAddress,omitempty"`
	PostalCode          string `json:"postalCode,omitempty" bson:"postalCode,omitempty"`
	ServiceDescription  string `json:"serviceDescription,omitempty" bson:"serviceDescription,omitempty"`
	ServiceRequirement  string `json:"serviceRequirement,omitempty" bson:"serviceRequirement,omitempty"`

	// Event
	EventName string `json:"eventName,omitempty" bson:"eventName,omitempty"`
	EventDate string `json:"eventDate,omitempty" bson:"eventDate,omitempty"`
	StartTime string `json:"startTime,omitempty" bson:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty" bson:"endTime,omitempty"`
	Country   string `json:"country,omitempty" bson:"country,omitempty"`

	// Shared by services and event
	City  string `json:"city,omitempty" bson:"city,omitempty"`
	State string `json:"state,omitempty" bson:"state,omitempty"`
}

type Booking struct {
	BookingID string         `json:"bookingid" bson:"bookingid"`
	Category  string         `json:"category" bson:"category"`
	Status    string         `json:"status" bson:"status"`
	Message   string         `json:"message,omitempty" bson:"message,omitempty"`
	Details   BookingDetails `json:"details" bson:"details"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// ListingRef returns the referenced listing id using the fixed priority
// order. Category mis-resolution changes which vendor gets notified, so the
// order must not change.
func (d BookingDetails) ListingRef() string {
	switch {
	case d.ShortletID != "":
		return d.ShortletID
	case d.HotelID != "":
		return d.HotelID
	case d.RestaurantID != "":
		return d.RestaurantID
	case d.ServiceID != "":
		return d.ServiceID
	case d.EventID != "":
		return d.EventID
	}
	return ""
}
