package bookings

import (
	"testing"

	"kasuwa/models"
)

func baseDetails() models.BookingDetails {
	return models.BookingDetails{
		FirstName:   "Ada",
		LastName:    "Obi",
		Email:       "ada@example.com",
		PhoneNumber: "+2348012345678",
	}
}

func contains(errs []string, want string) bool {
	for _, e := range errs {
		if e == want {
			return true
		}
	}
	return false
}

func TestValidateDetailsCommonFields(t *testing.T) {
	errs := ValidateDetails("hotel", models.BookingDetails{Email: "not-an-email"})

	for _, want := range []string{
		"First name is required",
		"Last name is required",
		"Valid email is required",
		"Phone number is required",
		"Hotel ID is required",
	} {
		if !contains(errs, want) {
			t.Errorf("missing %q in %v", want, errs)
		}
	}
}

func TestValidateDetailsShortlet(t *testing.T) {
	d := baseDetails()
	if errs := ValidateDetails("shortlet", d); !contains(errs, "Shortlet ID is required") {
		t.Fatalf("expected shortlet id error, got %v", errs)
	}

	d.ShortletID = "sl1"
	if errs := ValidateDetails("shortlet", d); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateDetailsRestaurant(t *testing.T) {
	d := baseDetails()
	d.RestaurantID = "r1"

	errs := ValidateDetails("restaurant", d)
	if !contains(errs, "Booking date is required") {
		t.Errorf("expected date error, got %v", errs)
	}
	if !contains(errs, "Number of guests must be at least 1") {
		t.Errorf("expected guests error, got %v", errs)
	}

	d.Date = "2026-09-01"
	d.NumberOfGuests = 4
	if errs := ValidateDetails("restaurant", d); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateDetailsServices(t *testing.T) {
	d := baseDetails()
	d.ServiceID = "svc1"
	d.ServiceSchedule = "2026-09-01T10:00"
	d.ServiceLocationType = "underwater"
	d.StreetAddress = "12 Marina Rd"
	d.City = "Lagos"
	d.State = "Lagos"
	d.ServiceDescription = "Full apartment deep clean"

	errs := ValidateDetails("services", d)
	if !contains(errs, "Service location type must be residential, commercial or industrial") {
		t.Fatalf("expected location type error, got %v", errs)
	}

	d.ServiceLocationType = "residential"
	if errs := ValidateDetails("services", d); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateDetailsEvent(t *testing.T) {
	d := baseDetails()
	d.EventID = "ev1"

	errs := ValidateDetails("event", d)
	for _, want := range []string{
		"Event name is required",
		"Event date is required",
		"Start time is required",
		"End time is required",
		"Country is required",
		"City is required",
		"State is required",
	} {
		if !contains(errs, want) {
			t.Errorf("missing %q in %v", want, errs)
		}
	}
}

func TestValidateDetailsUnknownCategory(t *testing.T) {
	errs := ValidateDetails("spa", baseDetails())
	if !contains(errs, "Invalid booking category") {
		t.Fatalf("expected invalid category error, got %v", errs)
	}
}
