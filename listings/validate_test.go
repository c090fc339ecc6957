package listings

import (
	"testing"

	"kasuwa/models"

	"go.mongodb.org/mongo-driver/bson"
)

func validListing() *models.Listing {
	return &models.Listing{
		VendorID: "v1",
		Category: models.CategoryShortlet,
		Name:     "Lekki Apartment",
		About:    "A lovely shortlet in the heart of Lekki",
		WhatWeDo: "We offer fully serviced short-stay apartments with daily cleaning",
		Location: models.Location{Address: "1 Admiralty Way", Area: "Lekki"},
		Images:   []models.ImageRef{{URL: "https://cdn.example.com/a.jpg"}},
		Details: bson.M{
			"description":     "Two bedroom apartment",
			"numberOfRooms":   2.0,
			"roomTypes":       []any{"standard"},
			"bedType":         "queen",
			"powerSupplyType": "24/7",
			"pricePerNight":   45000.0,
		},
	}
}

func TestValidateAcceptsCompleteListing(t *testing.T) {
	if errs := Validate(validListing()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateEnvelope(t *testing.T) {
	l := validListing()
	l.Name = ""
	l.About = "too short"
	l.VendorID = ""
	l.Images = nil
	l.ContactInformation.Email = "not-an-email"

	errs := Validate(l)
	for _, path := range []string{"name", "about", "vendorId", "images", "contactInformation.email"} {
		if !hasPath(errs, path) {
			t.Errorf("expected error at %s, got %v", path, errs)
		}
	}
}

func TestValidateNilDetails(t *testing.T) {
	l := validListing()
	l.Details = nil

	errs := Validate(l)
	if !hasPath(errs, "details") {
		t.Fatalf("expected details error, got %v", errs)
	}

	// A bad category surfaces alongside the missing details.
	l.Category = "garage"
	errs = Validate(l)
	if !hasPath(errs, "category") || !hasPath(errs, "details") {
		t.Fatalf("expected category and details errors, got %v", errs)
	}
}

func TestSalesPrice(t *testing.T) {
	tests := []struct {
		base, rate float64
		want       int64
	}{
		{10000, 15, 8500},
		{10000, 0, 10000},
		{9999, 33.333, 6666},
		{100, 100, 0},
		{0, 50, 0},
	}
	for _, tt := range tests {
		if got := SalesPrice(tt.base, tt.rate); got != tt.want {
			t.Errorf("SalesPrice(%v, %v) = %d, want %d", tt.base, tt.rate, got, tt.want)
		}
	}
}

func TestRecomputeSalesPricesOverridesClientValue(t *testing.T) {
	room := map[string]any{"basePrice": 10000.0, "discountedRate": 15.0, "salesPrice": 1.0}
	l := &models.Listing{
		Category: models.CategoryHotel,
		Details:  bson.M{"roomTypes": []any{room}},
	}

	RecomputeSalesPrices(l)
	if room["salesPrice"] != int64(8500) {
		t.Fatalf("expected 8500, got %v", room["salesPrice"])
	}

	// applying again changes nothing
	RecomputeSalesPrices(l)
	if room["salesPrice"] != int64(8500) {
		t.Fatalf("recompute is not idempotent: got %v", room["salesPrice"])
	}
}

func TestRecomputeSalesPricesMissingRate(t *testing.T) {
	room := map[string]any{"basePrice": 5000.0}
	l := &models.Listing{
		Category: models.CategoryHotel,
		Details:  bson.M{"roomTypes": []any{room}},
	}

	RecomputeSalesPrices(l)
	if room["salesPrice"] != int64(5000) {
		t.Fatalf("expected base price back, got %v", room["salesPrice"])
	}
}

func TestRecomputeSalesPricesSkipsOtherCategories(t *testing.T) {
	room := map[string]any{"basePrice": 5000.0}
	l := &models.Listing{
		Category: models.CategoryShortlet,
		Details:  bson.M{"roomTypes": []any{room}},
	}

	RecomputeSalesPrices(l)
	if _, ok := room["salesPrice"]; ok {
		t.Fatal("salesPrice should not be derived outside hotels")
	}
}

func TestNormalizeImages(t *testing.T) {
	out := NormalizeImages([]any{
		"https://cdn.example.com/a.jpg",
		map[string]any{"url": "https://cdn.example.com/b.jpg", "storageId": "b123"},
		map[string]any{"url": "https://cdn.example.com/c.jpg", "public_id": "c456"},
		map[string]any{"caption": "no url"},
		"",
	})

	if len(out) != 3 {
		t.Fatalf("expected 3 images, got %d: %v", len(out), out)
	}
	if out[0].URL != "https://cdn.example.com/a.jpg" || out[0].StorageID != "" {
		t.Errorf("bare string not normalized: %v", out[0])
	}
	if out[1].StorageID != "b123" {
		t.Errorf("storageId not carried: %v", out[1])
	}
	if out[2].StorageID != "c456" {
		t.Errorf("legacy public_id not mapped: %v", out[2])
	}
}
