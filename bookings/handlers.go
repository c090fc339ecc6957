package bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"kasuwa/db"
	"kasuwa/globals"
	"kasuwa/models"
	"kasuwa/mq"
	"kasuwa/notify"
	"kasuwa/utils"
	"kasuwa/workflow"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// API carries the notification dispatcher; every booking creation and
// status change fires it.
type API struct {
	Notify *notify.Dispatcher
}

func NewAPI(d *notify.Dispatcher) *API {
	return &API{Notify: d}
}

type bookingPayload struct {
	Details *models.BookingDetails `json:"details"`
	Message string                 `json:"message"`
}

// findListing resolves a booking's listing through the fixed-priority
// reference order.
func findListing(ctx context.Context, d models.BookingDetails) (*models.Listing, error) {
	ref := d.ListingRef()
	if ref == "" {
		return nil, nil
	}
	var listing models.Listing
	err := db.ListingsCollection.FindOne(ctx, bson.M{"listingid": ref}).Decode(&listing)
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func findVendor(ctx context.Context, vendorID string) *models.User {
	var vendor models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": vendorID}).Decode(&vendor); err != nil {
		return nil
	}
	return &vendor
}

// POST /api/bookings
//
// Note: the referenced listing's approval status is deliberately not
// checked here; bookings against pending or rejected listings go through.
func (a *API) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var p bookingPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Details == nil {
		utils.SendResponse(w, http.StatusBadRequest, nil, "Booking details are required", nil)
		return
	}
	details := *p.Details
	details.Email = strings.ToLower(strings.TrimSpace(details.Email))

	listing, err := findListing(ctx, details)
	if err != nil || listing == nil {
		utils.SendResponse(w, http.StatusBadRequest, nil, "Listing not found", nil)
		return
	}

	// The variant tag must match the referenced listing; listing category
	// drives which required-field set applies.
	if errs := ValidateDetails(listing.Category, details); len(errs) > 0 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"status":  http.StatusBadRequest,
			"message": "Validation failed: " + strings.Join(errs, ", "),
			"errors":  errs,
		})
		return
	}

	now := time.Now()
	booking := models.Booking{
		BookingID: utils.GenerateRandomDigitString(12),
		Category:  listing.Category,
		Status:    models.BookingPending,
		Message:   p.Message,
		Details:   details,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := db.BookingsCollection.InsertOne(ctx, booking); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	a.Notify.BookingChanged(booking, *listing, findVendor(ctx, listing.VendorID), models.BookingPending)
	go mq.Emit(mq.Event{EntityType: "booking", EntityID: booking.BookingID, Action: "created", ListingID: listing.ListingID, Status: booking.Status})

	utils.SendResponse(w, http.StatusCreated, booking, "Booking created successfully", nil)
}

// GET /api/bookings
func (a *API) GetAllBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	role := utils.GetRoleFromRequest(r)
	if role != globals.RoleVendor && !utils.IsModerator(role) {
		utils.SendResponse(w, http.StatusForbidden, nil, "You are not authorized to view all bookings", nil)
		return
	}

	filter, opts := utils.ShapeQuery(r, bson.M{})
	results, err := utils.FindAndDecode[models.Booking](ctx, db.BookingsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}
	total, _ := db.BookingsCollection.CountDocuments(ctx, filter)

	utils.SendList(w, http.StatusOK, results, total, "Bookings retrieved successfully")
}

// GET /api/bookings/booking/:id
func (a *API) GetBookingByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": ps.ByName("id")}).Decode(&booking)
	if err != nil {
		utils.SendResponse(w, http.StatusNotFound, nil, "Booking not found", nil)
		return
	}

	utils.SendResponse(w, http.StatusOK, booking, "Booking retrieved successfully", nil)
}

// PATCH /api/bookings/booking/:id
func (a *API) UpdateBookingStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	role := utils.GetRoleFromRequest(r)

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		utils.SendResponse(w, http.StatusBadRequest, nil, "Invalid status", nil)
		return
	}

	var booking models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": ps.ByName("id")}).Decode(&booking)
	if err != nil {
		utils.SendResponse(w, http.StatusNotFound, nil, "Booking not found", nil)
		return
	}

	if err := workflow.ApplyBookingStatus(&booking, body.Status, role, time.Now()); err != nil {
		utils.SendResponse(w, workflow.HTTPStatus(err), nil, err.Error(), nil)
		return
	}

	_, err = db.BookingsCollection.UpdateOne(ctx,
		bson.M{"bookingid": booking.BookingID},
		bson.M{"$set": bson.M{"status": booking.Status, "updatedAt": booking.UpdatedAt}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update booking")
		return
	}

	// Notification lookup reuses the fixed-priority listing resolution; if
	// the listing has since vanished the transition still stands.
	if listing, err := findListing(ctx, booking.Details); err == nil && listing != nil {
		a.Notify.BookingChanged(booking, *listing, findVendor(ctx, listing.VendorID), booking.Status)
		go mq.Emit(mq.Event{EntityType: "booking", EntityID: booking.BookingID, Action: "status", ListingID: listing.ListingID, Status: booking.Status})
	}

	utils.SendResponse(w, http.StatusOK, booking, "Booking status updated successfully", nil)
}

// DELETE /api/bookings/booking/:id
func (a *API) DeleteBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.BookingsCollection.DeleteOne(ctx, bson.M{"bookingid": ps.ByName("id")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete booking")
		return
	}
	if res.DeletedCount == 0 {
		utils.SendResponse(w, http.StatusNotFound, nil, "Booking not found", nil)
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Booking deleted successfully", nil)
}

// GET /api/bookings/user — bookings matching the caller-supplied email.
func (a *API) GetUserBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("email")))
	if email == "" {
		var body struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			email = strings.ToLower(strings.TrimSpace(body.Email))
		}
	}
	if email == "" {
		utils.SendResponse(w, http.StatusBadRequest, nil, "Email is required", nil)
		return
	}

	filter, opts := utils.ShapeQuery(r, bson.M{"details.email": email})
	results, err := utils.FindAndDecode[models.Booking](ctx, db.BookingsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}
	total, _ := db.BookingsCollection.CountDocuments(ctx, filter)

	utils.SendList(w, http.StatusOK, results, total, "Bookings retrieved successfully")
}

// GET /api/bookings/vendor/:vendorId — bookings across all of the vendor's
// listings, matched through each of the five reference fields.
func (a *API) GetVendorBookings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	vendorID := ps.ByName("vendorId")

	vendorListings, err := utils.FindAndDecode[models.Listing](ctx, db.ListingsCollection, bson.M{"vendorId": vendorID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve listings")
		return
	}

	ids := make([]string, len(vendorListings))
	for i, l := range vendorListings {
		ids[i] = l.ListingID
	}

	base := bson.M{"$or": []bson.M{
		{"details.shortletId": bson.M{"$in": ids}},
		{"details.hotelId": bson.M{"$in": ids}},
		{"details.restaurantId": bson.M{"$in": ids}},
		{"details.serviceId": bson.M{"$in": ids}},
		{"details.eventId": bson.M{"$in": ids}},
	}}

	filter, opts := utils.ShapeQuery(r, base)
	results, err := utils.FindAndDecode[models.Booking](ctx, db.BookingsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}
	total, _ := db.BookingsCollection.CountDocuments(ctx, filter)

	utils.SendList(w, http.StatusOK, results, total, "Bookings retrieved successfully")
}
