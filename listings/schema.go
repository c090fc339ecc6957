// Package listings implements the category-polymorphic catalog: a closed set
// of five listing categories, each with its own details schema, validated
// against the shared listing envelope.
package listings

import (
	"fmt"
	"strings"

	"kasuwa/models"
	"kasuwa/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldError is one violated field, addressed by dotted path
// (details.roomTypes[0].basePrice).
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationErrors aggregates every violation found in one pass; validation
// never stops at the first bad field.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Path + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns just the violated paths.
func (v ValidationErrors) Fields() []string {
	out := make([]string, len(v))
	for i, fe := range v {
		out[i] = fe.Path
	}
	return out
}

func (v *ValidationErrors) add(path, msg string) {
	*v = append(*v, FieldError{Path: path, Message: msg})
}

// validateDetails dispatches on the closed category set. Unknown tags are a
// violation on the category field itself, never a server error.
func validateDetails(category string, details bson.M, errs *ValidationErrors) {
	switch category {
	case models.CategoryHotel:
		validateHotelDetails(details, errs)
	case models.CategoryShortlet:
		validateShortletDetails(details, errs)
	case models.CategoryRestaurant:
		validateRestaurantDetails(details, errs)
	case models.CategoryServices:
		validateServicesDetails(details, errs)
	case models.CategoryEvent:
		validateEventDetails(details, errs)
	default:
		errs.add("category", "Invalid listing category")
	}
}

func validateHotelDetails(d bson.M, errs *ValidationErrors) {
	rooms, ok := asSlice(d["roomTypes"])
	if !ok || len(rooms) == 0 {
		errs.add("details.roomTypes", "At least one room type is required")
		return
	}

	for i, raw := range rooms {
		room, ok := asMap(raw)
		path := fmt.Sprintf("details.roomTypes[%d]", i)
		if !ok {
			errs.add(path, "Room type must be an object")
			continue
		}

		requireString(room, path, "name", errs)
		requireString(room, path, "bedType", errs)
		requireString(room, path, "roomType", errs)
		requireNumber(room, path, "pricePerNight", errs)
		requireNumber(room, path, "basePrice", errs)
		requireNumber(room, path, "breakfastCost", errs)

		if n, ok := getNumber(room, "maxOccupancy"); !ok {
			errs.add(path+".maxOccupancy", "Max occupancy is required")
		} else if n < 1 {
			errs.add(path+".maxOccupancy", "Max occupancy must be at least 1")
		}

		if rate, ok := getNumber(room, "discountedRate"); ok && (rate < 0 || rate > 100) {
			errs.add(path+".discountedRate", "Discounted rate must be between 0 and 100")
		}

		if amenities, ok := getStringSlice(room, "amenities"); ok && len(amenities) > 0 {
			if len(amenities) < 2 {
				errs.add(path+".amenities", "Amenities array must have at least 2 amenities")
			}
			if len(amenities) > 10 {
				errs.add(path+".amenities", "Amenities array can have a maximum of 10 amenities")
			}
		}

		checkPhotoList(room, path, "roomImages", errs)

		if status, ok := getString(room, "status"); ok && status != "available" && status != "unavailable" {
			errs.add(path+".status", "Status must be available or unavailable")
		}
	}
}

func validateShortletDetails(d bson.M, errs *ValidationErrors) {
	requireString(d, "details", "description", errs)
	requireNumber(d, "details", "numberOfRooms", errs)
	requireStringSlice(d, "details", "roomTypes", errs)
	requireString(d, "details", "bedType", errs)
	requireString(d, "details", "powerSupplyType", errs)
	requireNumber(d, "details", "pricePerNight", errs)

	checkPhotoList(d, "details", "propertyPhotos", errs)
	checkPhotoList(d, "details", "roomPhotos", errs)
	checkURLField(d, "details", "googleMapsLink", errs)
}

func validateRestaurantDetails(d bson.M, errs *ValidationErrors) {
	requireNumber(d, "details", "yearsOfOperation", errs)
	requireStringSlice(d, "details", "cuisineType", errs)
	requireNumber(d, "details", "seatingCapacity", errs)
	requireStringSlice(d, "details", "operatingDays", errs)
	requireString(d, "details", "openingTime", errs)
	requireString(d, "details", "closingTime", errs)
	requireString(d, "details", "peakHours", errs)
	requireStringSlice(d, "details", "menuCategories", errs)
	requireStringSlice(d, "details", "specialMeals", errs)
	requireString(d, "details", "powerSupplyType", errs)
	requireString(d, "details", "deliveryCoverageArea", errs)
	requireNumber(d, "details", "averagePreparationTime", errs)
	requireNumber(d, "details", "deliveryTimeEstimate", errs)
	requireString(d, "details", "packagingQualityStandard", errs)
	requireString(d, "details", "deliveryFeePolicy", errs)

	checkPriceRange("details.priceRangePerMeal", d["priceRangePerMeal"], true, errs)
	checkURLField(d, "details", "restaurantLogo", errs)
	checkPhotoList(d, "details", "foodPhotos", errs)
	checkPhotoList(d, "details", "restaurantInteriorPhotos", errs)
}

func validateServicesDetails(d bson.M, errs *ValidationErrors) {
	requireString(d, "details", "serviceCategory", errs)
	requireString(d, "details", "businessDescription", errs)
	requireStringSlice(d, "details", "listOfServices", errs)

	checkPriceRange("details.pricingRange", d["pricingRange"], true, errs)
	checkPhotoList(d, "details", "businessPhotos", errs)
	checkURLField(d, "details", "businessLogo", errs)
}

func validateEventDetails(d bson.M, errs *ValidationErrors) {
	requireNumber(d, "details", "numberOfHalls", errs)
	requireStringSlice(d, "details", "supportedEventTypes", errs)

	if opt, ok := getString(d, "cateringOption"); ok && opt != "in-house" && opt != "external" && opt != "both" {
		errs.add("details.cateringOption", "Catering option must be in-house, external or both")
	}
	checkURLField(d, "details", "googleMapsLink", errs)

	halls, ok := asSlice(d["eventType"])
	if !ok || len(halls) == 0 {
		errs.add("details.eventType", "At least one hall is required")
		return
	}

	for i, raw := range halls {
		hall, ok := asMap(raw)
		path := fmt.Sprintf("details.eventType[%d]", i)
		if !ok {
			errs.add(path, "Hall must be an object")
			continue
		}

		if ht, ok := getString(hall, "hallType"); !ok {
			errs.add(path+".hallType", "Hall type is required")
		} else if ht != "indoor" && ht != "outdoor" && ht != "both" {
			errs.add(path+".hallType", "Hall type must be indoor, outdoor or both")
		}

		requireNumber(hall, path, "minGuestCapacity", errs)
		requireNumber(hall, path, "maxGuestCapacity", errs)
		requireString(hall, path, "hallDescription", errs)
		checkPriceRange(path+".priceRange", hall["priceRange"], true, errs)

		if dep, ok := getNumber(hall, "requiredDeposit"); ok && (dep < 0 || dep > 100) {
			errs.add(path+".requiredDeposit", "Required deposit must be between 0 and 100")
		}

		checkPhotoList(hall, path, "hallPhotos", errs)
		checkPhotoList(hall, path, "eventSetupPhotos", errs)
	}
}

// --- payload accessors ---
// Details payloads arrive as map[string]any from JSON and as primitive.M/.A
// from Mongo; both shapes are handled.

func asMap(v any) (bson.M, bool) {
	switch m := v.(type) {
	case bson.M:
		return m, true
	case map[string]any:
		return bson.M(m), true
	}
	return nil, false
}

func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case primitive.A:
		return []any(s), true
	}
	return nil, false
}

func getString(m bson.M, key string) (string, bool) {
	s, ok := m[key].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return strings.TrimSpace(s), true
}

func getNumber(m bson.M, key string) (float64, bool) {
	switch n := m[key].(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func getStringSlice(m bson.M, key string) ([]string, bool) {
	raw, ok := asSlice(m[key])
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func requireString(m bson.M, prefix, key string, errs *ValidationErrors) {
	if _, ok := getString(m, key); !ok {
		errs.add(prefix+"."+key, "Path `"+key+"` is required")
	}
}

func requireNumber(m bson.M, prefix, key string, errs *ValidationErrors) {
	if _, ok := getNumber(m, key); !ok {
		errs.add(prefix+"."+key, "Path `"+key+"` is required")
	}
}

func requireStringSlice(m bson.M, prefix, key string, errs *ValidationErrors) {
	if list, ok := getStringSlice(m, key); !ok || len(list) == 0 {
		errs.add(prefix+"."+key, "Path `"+key+"` is required")
	}
}

// checkPhotoList enforces the shared media rule: at most 10 entries, every
// entry a URL.
func checkPhotoList(m bson.M, prefix, key string, errs *ValidationErrors) {
	raw, present := m[key]
	if !present {
		return
	}
	list, ok := asSlice(raw)
	if !ok {
		errs.add(prefix+"."+key, "Must be an array of image URLs")
		return
	}
	if len(list) > 10 {
		errs.add(prefix+"."+key, "Can have a maximum of 10 images")
	}
	for _, v := range list {
		s, ok := v.(string)
		if !ok || !utils.IsValidURL(s) {
			errs.add(prefix+"."+key, "All entries must be valid URLs")
			return
		}
	}
}

func checkURLField(m bson.M, prefix, key string, errs *ValidationErrors) {
	if s, ok := getString(m, key); ok && !utils.IsValidURL(s) {
		errs.add(prefix+"."+key, "Please provide a valid URL")
	}
}

// checkPriceRange validates a {priceFrom, priceTo} sub-object.
func checkPriceRange(path string, v any, required bool, errs *ValidationErrors) {
	m, ok := asMap(v)
	if !ok {
		if required {
			errs.add(path, "Price range is required")
		}
		return
	}
	from, okFrom := getNumber(m, "priceFrom")
	to, okTo := getNumber(m, "priceTo")
	if !okFrom {
		errs.add(path+".priceFrom", "Path `priceFrom` is required")
	}
	if !okTo {
		errs.add(path+".priceTo", "Path `priceTo` is required")
	}
	if okFrom && okTo && from > to {
		errs.add(path, "priceFrom cannot exceed priceTo")
	}
}
