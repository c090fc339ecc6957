package models

import "testing"

func TestListingRefPriority(t *testing.T) {
	tests := []struct {
		name string
		d    BookingDetails
		want string
	}{
		{"empty", BookingDetails{}, ""},
		{"shortlet only", BookingDetails{ShortletID: "sl1"}, "sl1"},
		{"event only", BookingDetails{EventID: "ev1"}, "ev1"},
		{"shortlet beats hotel", BookingDetails{ShortletID: "sl1", HotelID: "h1"}, "sl1"},
		{"hotel beats restaurant", BookingDetails{HotelID: "h1", RestaurantID: "r1"}, "h1"},
		{"restaurant beats event", BookingDetails{RestaurantID: "r1", EventID: "ev1"}, "r1"},
		{"service beats event", BookingDetails{ServiceID: "svc1", EventID: "ev1"}, "svc1"},
		{"all set", BookingDetails{ShortletID: "sl1", HotelID: "h1", RestaurantID: "r1", ServiceID: "svc1", EventID: "ev1"}, "sl1"},
	}
	for _, tt := range tests {
		if got := tt.d.ListingRef(); got != tt.want {
			t.Errorf("%s: ListingRef() = %q, want %q", tt.name, got, tt.want)
		}
	}
}
