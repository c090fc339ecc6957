package listings

import (
	"math"

	"kasuwa/models"
	"kasuwa/utils"
)

// Validate checks the shared envelope and the category-specific details in
// one pass and returns every violation at once. A nil return means the
// listing is acceptable.
func Validate(l *models.Listing) ValidationErrors {
	var errs ValidationErrors

	if l.Name == "" {
		errs.add("name", "Listing name is required")
	}
	switch n := len(l.About); {
	case n == 0:
		errs.add("about", "About section is required")
	case n < 10:
		errs.add("about", "About section must be at least 10 characters")
	case n > 500:
		errs.add("about", "About section must be less than 500 characters")
	}
	switch n := len(l.WhatWeDo); {
	case n == 0:
		errs.add("whatWeDo", "What we do section is required")
	case n < 20:
		errs.add("whatWeDo", "What we do section must be at least 20 characters")
	case n > 1000:
		errs.add("whatWeDo", "What we do section must be less than 1000 characters")
	}

	if l.Location.Address == "" {
		errs.add("location.address", "Address is required")
	}
	if l.Location.Area == "" {
		errs.add("location.area", "Area is required")
	}

	if l.ContactInformation.Email != "" && !utils.IsValidEmail(l.ContactInformation.Email) {
		errs.add("contactInformation.email", "Please provide a valid email")
	}
	if l.ContactInformation.Phone != "" && !utils.IsValidPhone(l.ContactInformation.Phone) {
		errs.add("contactInformation.phone", "Please provide a valid phone number")
	}
	if l.ContactInformation.WhatsApp != "" && !utils.IsValidPhone(l.ContactInformation.WhatsApp) {
		errs.add("contactInformation.whatsapp", "Please provide a valid WhatsApp number")
	}

	if len(l.Images) < 1 {
		errs.add("images", "At least one image is required")
	}
	if len(l.Images) > 10 {
		errs.add("images", "Maximum 10 images are allowed")
	}
	for _, img := range l.Images {
		if img.URL == "" && img.StorageID == "" {
			errs.add("images", "Images must be URL strings or objects with url/storageId")
			break
		}
	}

	if l.VendorID == "" {
		errs.add("vendorId", "Vendor is required")
	}

	if l.Details == nil {
		// A category check still runs so a bad tag and missing details both
		// show up in one response.
		var catErrs ValidationErrors
		validateDetails(l.Category, nil, &catErrs)
		for _, fe := range catErrs {
			if fe.Path == "category" {
				errs = append(errs, fe)
			}
		}
		errs.add("details", "Details are required for this category")
		return errs
	}

	validateDetails(l.Category, l.Details, &errs)
	return errs
}

// NormalizeImages canonicalizes the accepted input shapes — bare URL
// strings, {url, storageId} objects, or legacy {url, public_id} objects —
// into ImageRefs.
func NormalizeImages(raw []any) []models.ImageRef {
	out := make([]models.ImageRef, 0, len(raw))
	for _, v := range raw {
		switch img := v.(type) {
		case string:
			if img != "" {
				out = append(out, models.ImageRef{URL: img})
			}
		default:
			m, ok := asMap(v)
			if !ok {
				continue
			}
			ref := models.ImageRef{}
			if s, ok := m["url"].(string); ok {
				ref.URL = s
			}
			if s, ok := m["storageId"].(string); ok {
				ref.StorageID = s
			} else if s, ok := m["public_id"].(string); ok {
				ref.StorageID = s
			}
			if ref.URL != "" || ref.StorageID != "" {
				out = append(out, ref)
			}
		}
	}
	return out
}

// RecomputeSalesPrices derives each hotel room's salesPrice from basePrice
// and discountedRate, overriding whatever the client sent. Runs on every
// create and update; applying it twice yields the same prices.
func RecomputeSalesPrices(l *models.Listing) {
	if l.Category != models.CategoryHotel || l.Details == nil {
		return
	}
	rooms, ok := asSlice(l.Details["roomTypes"])
	if !ok {
		return
	}
	for _, raw := range rooms {
		room, ok := asMap(raw)
		if !ok {
			continue
		}
		base, ok := getNumber(room, "basePrice")
		if !ok {
			continue
		}
		rate, _ := getNumber(room, "discountedRate")
		room["salesPrice"] = SalesPrice(base, rate)
	}
}

// SalesPrice rounds basePrice - basePrice*discountedRate/100 to the nearest
// whole number and never goes negative.
func SalesPrice(basePrice, discountedRate float64) int64 {
	price := math.Round(basePrice - basePrice*discountedRate/100)
	if price < 0 {
		return 0
	}
	return int64(price)
}
