package listings

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func hasPath(errs ValidationErrors, path string) bool {
	for _, fe := range errs {
		if fe.Path == path {
			return true
		}
	}
	return false
}

func validRoom() map[string]any {
	return map[string]any{
		"name":           "Deluxe",
		"bedType":        "king",
		"roomType":       "suite",
		"pricePerNight":  100.0,
		"basePrice":      10000.0,
		"breakfastCost":  15.0,
		"maxOccupancy":   2.0,
		"discountedRate": 15.0,
		"amenities":      []any{"wifi", "tv"},
	}
}

func TestValidateHotelDetails(t *testing.T) {
	var errs ValidationErrors
	validateDetails("hotel", bson.M{"roomTypes": []any{validRoom()}}, &errs)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}

	errs = nil
	validateDetails("hotel", bson.M{}, &errs)
	if !hasPath(errs, "details.roomTypes") {
		t.Fatalf("expected roomTypes error, got %v", errs)
	}
}

func TestValidateHotelRoomFields(t *testing.T) {
	room := validRoom()
	delete(room, "basePrice")
	room["maxOccupancy"] = 0.0
	room["discountedRate"] = 120.0
	room["amenities"] = []any{"wifi"}

	var errs ValidationErrors
	validateDetails("hotel", bson.M{"roomTypes": []any{room}}, &errs)

	for _, path := range []string{
		"details.roomTypes[0].basePrice",
		"details.roomTypes[0].maxOccupancy",
		"details.roomTypes[0].discountedRate",
		"details.roomTypes[0].amenities",
	} {
		if !hasPath(errs, path) {
			t.Errorf("expected error at %s, got %v", path, errs)
		}
	}
}

func TestValidateHotelRoomStatus(t *testing.T) {
	room := validRoom()
	room["status"] = "sold-out"

	var errs ValidationErrors
	validateDetails("hotel", bson.M{"roomTypes": []any{room}}, &errs)
	if !hasPath(errs, "details.roomTypes[0].status") {
		t.Fatalf("expected status error, got %v", errs)
	}
}

func TestValidateShortletDetails(t *testing.T) {
	details := bson.M{
		"description":     "Cosy two-bed apartment",
		"numberOfRooms":   2.0,
		"roomTypes":       []any{"standard"},
		"bedType":         "queen",
		"powerSupplyType": "24/7",
		"pricePerNight":   45000.0,
	}

	var errs ValidationErrors
	validateDetails("shortlet", details, &errs)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}

	errs = nil
	validateDetails("shortlet", bson.M{}, &errs)
	for _, path := range []string{"details.description", "details.numberOfRooms", "details.pricePerNight"} {
		if !hasPath(errs, path) {
			t.Errorf("expected error at %s, got %v", path, errs)
		}
	}
}

func TestValidateRestaurantPriceRange(t *testing.T) {
	var errs ValidationErrors
	validateDetails("restaurant", bson.M{
		"priceRangePerMeal": map[string]any{"priceFrom": 5000.0, "priceTo": 1000.0},
	}, &errs)

	if !hasPath(errs, "details.priceRangePerMeal") {
		t.Fatalf("expected inverted price range error, got %v", errs)
	}
}

func TestValidateServicesDetails(t *testing.T) {
	var errs ValidationErrors
	validateDetails("services", bson.M{
		"serviceCategory":     "cleaning",
		"businessDescription": "Professional cleaners",
		"listOfServices":      []any{"deep clean"},
		"pricingRange":        map[string]any{"priceFrom": 1000.0, "priceTo": 5000.0},
	}, &errs)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}

	errs = nil
	validateDetails("services", bson.M{}, &errs)
	if !hasPath(errs, "details.pricingRange") {
		t.Fatalf("expected pricing range error, got %v", errs)
	}
}

func TestValidateEventDetails(t *testing.T) {
	hall := map[string]any{
		"hallType":         "indoor",
		"minGuestCapacity": 50.0,
		"maxGuestCapacity": 200.0,
		"hallDescription":  "Main banquet hall",
		"priceRange":       map[string]any{"priceFrom": 100000.0, "priceTo": 500000.0},
		"requiredDeposit":  30.0,
	}

	var errs ValidationErrors
	validateDetails("event", bson.M{
		"numberOfHalls":       1.0,
		"supportedEventTypes": []any{"wedding"},
		"eventType":           []any{hall},
	}, &errs)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}

	hall["hallType"] = "rooftop"
	hall["requiredDeposit"] = 150.0
	errs = nil
	validateDetails("event", bson.M{
		"numberOfHalls":       1.0,
		"supportedEventTypes": []any{"wedding"},
		"eventType":           []any{hall},
	}, &errs)
	if !hasPath(errs, "details.eventType[0].hallType") {
		t.Errorf("expected hallType error, got %v", errs)
	}
	if !hasPath(errs, "details.eventType[0].requiredDeposit") {
		t.Errorf("expected requiredDeposit error, got %v", errs)
	}
}

func TestValidateUnknownCategory(t *testing.T) {
	var errs ValidationErrors
	validateDetails("spaceport", bson.M{}, &errs)

	if len(errs) != 1 || errs[0].Path != "category" {
		t.Fatalf("expected single category error, got %v", errs)
	}
	if !strings.Contains(errs[0].Message, "Invalid listing category") {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}
}

func TestCheckPhotoList(t *testing.T) {
	m := bson.M{"roomImages": []any{"https://cdn.example.com/a.jpg", "not a url"}}
	var errs ValidationErrors
	checkPhotoList(m, "details", "roomImages", &errs)
	if !hasPath(errs, "details.roomImages") {
		t.Fatalf("expected URL error, got %v", errs)
	}

	many := make([]any, 11)
	for i := range many {
		many[i] = "https://cdn.example.com/a.jpg"
	}
	errs = nil
	checkPhotoList(bson.M{"roomImages": many}, "details", "roomImages", &errs)
	if !hasPath(errs, "details.roomImages") {
		t.Fatalf("expected max image error, got %v", errs)
	}
}
