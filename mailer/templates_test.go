package mailer

import (
	"strings"
	"testing"

	"kasuwa/models"
)

func sampleBooking(category string) models.Booking {
	return models.Booking{
		BookingID: "100200300400",
		Category:  category,
		Details: models.BookingDetails{
			FirstName:      "Ada",
			LastName:       "Obi",
			Email:          "ada@example.com",
			PhoneNumber:    "+2348012345678",
			Date:           "2026-09-01",
			NumberOfGuests: 4,
			EventName:      "Launch Party",
		},
	}
}

func TestStatusText(t *testing.T) {
	tests := map[string]string{
		"approved":  "Confirmed",
		"rejected":  "Rejected",
		"cancelled": "Cancelled",
		"pending":   "Pending",
		"":          "Pending",
	}
	for status, want := range tests {
		if got := StatusText(status); got != want {
			t.Errorf("StatusText(%q) = %q, want %q", status, got, want)
		}
	}
}

func TestCustomerSubject(t *testing.T) {
	listing := models.Listing{Name: "Eko Hotel"}

	if got := CustomerSubject(listing, "pending"); got != "Booking Received - Eko Hotel" {
		t.Errorf("pending subject = %q", got)
	}
	if got := CustomerSubject(listing, "approved"); got != "Booking Confirmed - Eko Hotel" {
		t.Errorf("approved subject = %q", got)
	}
}

func TestCustomerTemplate(t *testing.T) {
	listing := models.Listing{Name: "Eko Hotel"}
	html := CustomerTemplate(sampleBooking("restaurant"), listing, "approved")

	for _, want := range []string{"Hello Ada", "Eko Hotel", "100200300400", "Number of Guests", "confirmed"} {
		if !strings.Contains(html, want) {
			t.Errorf("customer template missing %q", want)
		}
	}
}

func TestVendorTemplateIncludesContact(t *testing.T) {
	listing := models.Listing{Name: "Eko Hotel"}
	html := VendorTemplate("Bola", sampleBooking("event"), listing, "pending")

	for _, want := range []string{"Hello Bola", "ada@example.com", "+2348012345678", "Launch Party"} {
		if !strings.Contains(html, want) {
			t.Errorf("vendor template missing %q", want)
		}
	}
}

func TestCategoryRowsVaryByVariant(t *testing.T) {
	hotel := categoryRows(sampleBooking("hotel"))
	if strings.Contains(hotel, "Number of Guests") {
		t.Error("hotel booking should not render restaurant rows")
	}

	restaurant := categoryRows(sampleBooking("restaurant"))
	if !strings.Contains(restaurant, "Number of Guests") {
		t.Error("restaurant booking missing guest row")
	}
}
