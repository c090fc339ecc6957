package listings

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"kasuwa/db"
	"kasuwa/globals"
	"kasuwa/media"
	"kasuwa/models"
	"kasuwa/mq"
	"kasuwa/utils"
	"kasuwa/workflow"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// API carries the handlers' collaborators. The image store is injected so
// delete cascades go through one place.
type API struct {
	Store media.Store
}

func NewAPI(store media.Store) *API {
	return &API{Store: store}
}

type listingPayload struct {
	VendorID           string                    `json:"vendorId"`
	Category           string                    `json:"category"`
	Name               string                    `json:"name"`
	About              string                    `json:"about"`
	WhatWeDo           string                    `json:"whatWeDo"`
	Location           models.Location           `json:"location"`
	ContactInformation models.ContactInformation `json:"contactInformation"`
	Images             []any                     `json:"images"`
	Details            bson.M                    `json:"details"`
	Status             string                    `json:"status"`
}

func findUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func vendorApproved(u *models.User) bool {
	return u.Role == globals.RoleVendor && u.Vendor != nil && u.Vendor.ApprovalStatus == models.StatusApproved
}

// POST /api/listings
func (a *API) CreateListing(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	role := utils.GetRoleFromRequest(r)

	if role != globals.RoleVendor && role != globals.RoleAdmin {
		utils.SendResponse(w, http.StatusForbidden, nil, "You are not registered to create listings", nil)
		return
	}

	var p listingPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	targetVendorID := userID
	if role == globals.RoleAdmin {
		if p.VendorID == "" {
			utils.SendResponse(w, http.StatusBadRequest, nil, "Vendor ID must be specified by admin", nil)
			return
		}
		target, err := findUser(ctx, p.VendorID)
		if err != nil {
			utils.SendResponse(w, http.StatusNotFound, nil, "Specified vendor not found", nil)
			return
		}
		if target.Role != globals.RoleVendor {
			utils.SendResponse(w, http.StatusBadRequest, nil, "Specified user is not a vendor", nil)
			return
		}
		if !vendorApproved(target) {
			utils.SendResponse(w, http.StatusBadRequest, nil, "Specified vendor account is not approved", nil)
			return
		}
		targetVendorID = p.VendorID
	} else {
		self, err := findUser(ctx, userID)
		if err != nil || !vendorApproved(self) {
			utils.SendResponse(w, http.StatusForbidden, nil, "Your vendor account is not approved", nil)
			return
		}
	}

	// Hotel onboarding stays manual for now; only admins may create them.
	if p.Category == models.CategoryHotel && role != globals.RoleAdmin {
		utils.SendResponse(w, http.StatusForbidden, nil, "You cannot create HOTEL listings for now, reach out to admin", nil)
		return
	}

	now := time.Now()
	listing := models.Listing{
		ListingID:          utils.GenerateRandomString(16),
		VendorID:           targetVendorID,
		Category:           p.Category,
		Name:               p.Name,
		About:              p.About,
		WhatWeDo:           p.WhatWeDo,
		Location:           p.Location,
		ContactInformation: p.ContactInformation,
		Images:             NormalizeImages(p.Images),
		Status:             models.StatusPending,
		Details:            p.Details,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if errs := Validate(&listing); len(errs) > 0 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"status":  http.StatusBadRequest,
			"message": errs.Error(),
			"errors":  errs,
		})
		return
	}

	RecomputeSalesPrices(&listing)

	if _, err := db.ListingsCollection.InsertOne(ctx, listing); err != nil {
		if utils.IsDuplicateKey(err) {
			utils.SendResponse(w, http.StatusConflict, nil, "A listing with this name already exists for this vendor", nil)
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create listing")
		return
	}

	go mq.Emit(mq.Event{EntityType: "listing", EntityID: listing.ListingID, Action: "created", ListingID: listing.ListingID, Status: listing.Status})

	utils.SendResponse(w, http.StatusCreated, listing, "Listing created successfully", nil)
}

// GET /api/listings
func (a *API) GetListings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter, opts := utils.ShapeQuery(r, bson.M{})

	results, err := utils.FindAndDecode[models.Listing](ctx, db.ListingsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve listings")
		return
	}
	total, err := db.ListingsCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count listings")
		return
	}

	utils.SendList(w, http.StatusOK, results, total, "Listings retrieved successfully")
}

// GET /api/listings/listing/:id
func (a *API) GetListingByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var listing models.Listing
	err := db.ListingsCollection.FindOne(ctx, bson.M{"listingid": ps.ByName("id")}).Decode(&listing)
	if err != nil {
		utils.SendResponse(w, http.StatusNotFound, nil, "Listing not found", nil)
		return
	}

	utils.SendResponse(w, http.StatusOK, listing, "Listing retrieved successfully", nil)
}

// GET /api/listings/vendor/:vendorId
func (a *API) GetListingsByVendor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter, opts := utils.ShapeQuery(r, bson.M{"vendorId": ps.ByName("vendorId")})

	results, err := utils.FindAndDecode[models.Listing](ctx, db.ListingsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve listings")
		return
	}
	total, _ := db.ListingsCollection.CountDocuments(ctx, filter)

	utils.SendList(w, http.StatusOK, results, total, "Listings retrieved successfully")
}

// PATCH /api/listings/listing/:id
func (a *API) UpdateListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	role := utils.GetRoleFromRequest(r)

	var listing models.Listing
	err := db.ListingsCollection.FindOne(ctx, bson.M{"listingid": ps.ByName("id")}).Decode(&listing)
	if err != nil {
		utils.SendResponse(w, http.StatusNotFound, nil, "Listing not found", nil)
		return
	}

	if !utils.IsModerator(role) && listing.VendorID != userID {
		utils.SendResponse(w, http.StatusForbidden, nil, "You can only update your own listings", nil)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	var raw map[string]json.RawMessage
	var p listingPayload
	if json.Unmarshal(body, &raw) != nil || json.Unmarshal(body, &p) != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	// Category is immutable after creation, for everyone.
	if _, ok := raw["category"]; ok && p.Category != "" && p.Category != listing.Category {
		utils.SendResponse(w, http.StatusBadRequest, nil, "category change is not allowed", nil)
		return
	}

	// Vendor reassignment is admin-only and the new vendor must be approved.
	if _, ok := raw["vendorId"]; ok && p.VendorID != "" && p.VendorID != listing.VendorID {
		if role != globals.RoleAdmin && role != globals.RoleSuperadmin {
			utils.SendResponse(w, http.StatusForbidden, nil, "Only admins can change listing vendor", nil)
			return
		}
		newVendor, err := findUser(ctx, p.VendorID)
		if err != nil {
			utils.SendResponse(w, http.StatusNotFound, nil, "New vendor not found", nil)
			return
		}
		if newVendor.Role != globals.RoleVendor {
			utils.SendResponse(w, http.StatusBadRequest, nil, "Specified user is not a vendor", nil)
			return
		}
		if !vendorApproved(newVendor) {
			utils.SendResponse(w, http.StatusBadRequest, nil, "New vendor account is not approved", nil)
			return
		}
		listing.VendorID = p.VendorID
	}

	if _, ok := raw["approvedAt"]; ok && p.Status != models.StatusApproved {
		utils.SendResponse(w, http.StatusBadRequest, nil, "approvedAt can only be updated when status is set to approved", nil)
		return
	}

	// Status runs through the approval machine; the timestamp follows it.
	if _, ok := raw["status"]; ok && p.Status != "" && p.Status != listing.Status {
		if err := workflow.ApplyListingStatus(&listing, p.Status, role, time.Now()); err != nil {
			utils.SendResponse(w, workflow.HTTPStatus(err), nil, err.Error(), nil)
			return
		}
	}

	if _, ok := raw["name"]; ok {
		listing.Name = p.Name
	}
	if _, ok := raw["about"]; ok {
		listing.About = p.About
	}
	if _, ok := raw["whatWeDo"]; ok {
		listing.WhatWeDo = p.WhatWeDo
	}
	if _, ok := raw["location"]; ok {
		listing.Location = p.Location
	}
	if _, ok := raw["contactInformation"]; ok {
		listing.ContactInformation = p.ContactInformation
	}
	if _, ok := raw["images"]; ok {
		listing.Images = NormalizeImages(p.Images)
	}
	if _, ok := raw["details"]; ok {
		listing.Details = p.Details
	}

	if errs := Validate(&listing); len(errs) > 0 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"status":  http.StatusBadRequest,
			"message": errs.Error(),
			"errors":  errs,
		})
		return
	}

	// Sales prices are derived on every update; client-sent values never
	// survive.
	RecomputeSalesPrices(&listing)
	listing.UpdatedAt = time.Now()

	_, err = db.ListingsCollection.ReplaceOne(ctx, bson.M{"listingid": listing.ListingID}, listing)
	if err != nil {
		if utils.IsDuplicateKey(err) {
			utils.SendResponse(w, http.StatusConflict, nil, "A listing with this name already exists for this vendor", nil)
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update listing")
		return
	}

	go mq.Emit(mq.Event{EntityType: "listing", EntityID: listing.ListingID, Action: "updated", ListingID: listing.ListingID, Status: listing.Status})

	utils.SendResponse(w, http.StatusOK, listing, "Listing updated successfully", nil)
}

// DELETE /api/listings/listing/:id
func (a *API) DeleteListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	role := utils.GetRoleFromRequest(r)

	var listing models.Listing
	err := db.ListingsCollection.FindOne(ctx, bson.M{"listingid": ps.ByName("id")}).Decode(&listing)
	if err != nil {
		utils.SendResponse(w, http.StatusNotFound, nil, "Listing not found", nil)
		return
	}

	if !utils.IsModerator(role) && listing.VendorID != userID {
		utils.SendResponse(w, http.StatusForbidden, nil, "You can only delete your own listings", nil)
		return
	}

	if _, err := db.ListingsCollection.DeleteOne(ctx, bson.M{"listingid": listing.ListingID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete listing")
		return
	}

	// Storage cleanup is best-effort: the listing is already gone and stays
	// gone even if the store is unreachable.
	media.ReleaseImages(a.Store, listing.Images)

	go mq.Emit(mq.Event{EntityType: "listing", EntityID: listing.ListingID, Action: "deleted", ListingID: listing.ListingID})

	utils.SendResponse(w, http.StatusOK, nil, "Listing deleted successfully", nil)
}

