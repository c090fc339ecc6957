// Package bookings implements the tagged-variant booking records: one base
// record specialized per listing category, validated by category and driven
// through the booking status machine with best-effort notifications.
package bookings

import (
	"strings"

	"kasuwa/models"
)

// ValidateDetails runs the category-specific required-field checks plus the
// four fields every booking needs. It is pure and returns every violation,
// not just the first, so callers can render all errors at once.
func ValidateDetails(category string, d models.BookingDetails) []string {
	var errs []string

	if strings.TrimSpace(d.FirstName) == "" {
		errs = append(errs, "First name is required")
	}
	if strings.TrimSpace(d.LastName) == "" {
		errs = append(errs, "Last name is required")
	}
	if d.Email == "" || !strings.Contains(d.Email, "@") {
		errs = append(errs, "Valid email is required")
	}
	if strings.TrimSpace(d.PhoneNumber) == "" {
		errs = append(errs, "Phone number is required")
	}

	switch category {
	case models.CategoryShortlet:
		if d.ShortletID == "" {
			errs = append(errs, "Shortlet ID is required")
		}
	case models.CategoryHotel:
		if d.HotelID == "" {
			errs = append(errs, "Hotel ID is required")
		}
	case models.CategoryRestaurant:
		if d.RestaurantID == "" {
			errs = append(errs, "Restaurant ID is required")
		}
		if d.Date == "" {
			errs = append(errs, "Booking date is required")
		}
		if d.NumberOfGuests < 1 {
			errs = append(errs, "Number of guests must be at least 1")
		}
	case models.CategoryServices:
		if d.ServiceID == "" {
			errs = append(errs, "Service ID is required")
		}
		if d.ServiceSchedule == "" {
			errs = append(errs, "Service schedule is required")
		}
		if d.ServiceLocationType == "" {
			errs = append(errs, "Service location type is required")
		} else if !validServiceLocation(d.ServiceLocationType) {
			errs = append(errs, "Service location type must be residential, commercial or industrial")
		}
		if strings.TrimSpace(d.StreetAddress) == "" {
			errs = append(errs, "Street address is required")
		}
		if strings.TrimSpace(d.City) == "" {
			errs = append(errs, "City is required")
		}
		if strings.TrimSpace(d.State) == "" {
			errs = append(errs, "State is required")
		}
		if strings.TrimSpace(d.ServiceDescription) == "" {
			errs = append(errs, "Service description is required")
		}
	case models.CategoryEvent:
		if d.EventID == "" {
			errs = append(errs, "Event ID is required")
		}
		if strings.TrimSpace(d.EventName) == "" {
			errs = append(errs, "Event name is required")
		}
		if d.EventDate == "" {
			errs = append(errs, "Event date is required")
		}
		if d.StartTime == "" {
			errs = append(errs, "Start time is required")
		}
		if d.EndTime == "" {
			errs = append(errs, "End time is required")
		}
		if strings.TrimSpace(d.Country) == "" {
			errs = append(errs, "Country is required")
		}
		if strings.TrimSpace(d.City) == "" {
			errs = append(errs, "City is required")
		}
		if strings.TrimSpace(d.State) == "" {
			errs = append(errs, "State is required")
		}
	default:
		errs = append(errs, "Invalid booking category")
	}

	return errs
}

func validServiceLocation(s string) bool {
	return s == "residential" || s == "commercial" || s == "industrial"
}
