package reviews

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
	"kasuwa/rdx"
	"kasuwa/utils"
	"kasuwa/workflow"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const statsTTL = 5 * time.Minute

func statsKey(listingID string) string {
	return "reviews:stats:" + listingID
}

// ratingStats aggregates average rating and count over visible reviews only
// (approved, not deleted). Read through the cache; writers invalidate.
func ratingStats(ctx context.Context, listingID string) (models.RatingStats, error) {
	return rdx.CachedJSON(ctx, statsKey(listingID), statsTTL, func(ctx context.Context) (models.RatingStats, error) {
		pipeline := []bson.M{
			{"$match": bson.M{"listingId": listingID, "status": models.StatusApproved, "isDeleted": false}},
			{"$group": bson.M{
				"_id":           nil,
				"averageRating": bson.M{"$avg": "$rating"},
				"numReviews":    bson.M{"$sum": 1},
			}},
		}
		cur, err := db.ReviewsCollection.Aggregate(ctx, pipeline)
		if err != nil {
			return models.RatingStats{}, err
		}
		defer cur.Close(ctx)

		var rows []models.RatingStats
		if err := cur.All(ctx, &rows); err != nil {
			return models.RatingStats{}, err
		}
		if len(rows) == 0 {
			return models.RatingStats{}, nil
		}
		return rows[0], nil
	})
}

func invalidateStats(listingID string) {
	// stale entries expire on their own TTL if the delete fails
	_ = rdx.RdxDel(statsKey(listingID))
}

func findReview(ctx context.Context, id string) (*models.Review, error) {
	var rv models.Review
	if err := db.ReviewsCollection.FindOne(ctx, bson.M{"reviewid": id}).Decode(&rv); err != nil {
		return nil, err
	}
	return &rv, nil
}

// POST /api/reviews — customers only; one live review per listing per user.
func CreateReview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if utils.GetRoleFromRequest(r) != globals.RoleUser {
		utils.SendResponse(w, http.StatusForbidden, nil, "Only customers can create reviews", nil)
		return
	}
	userID := utils.GetUserIDFromRequest(r)

	var body struct {
		ListingID string `json:"listingId"`
		BookingID string `json:"bookingId"`
		Rating    int    `json:"rating"`
		Title     string `json:"title"`
		Comment   string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var listing models.Listing
	if err := db.ListingsCollection.FindOne(ctx, bson.M{"listingid": body.ListingID}).Decode(&listing); err != nil {
		utils.SendResponse(w, http.StatusNotFound, nil, "Listing not found", nil)
		return
	}

	if errs := validate(body.Rating, body.Title, body.Comment); len(errs) > 0 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"status":  http.StatusBadRequest,
			"message": "Validation failed: " + strings.Join(errs, ", "),
			"errors":  errs,
		})
		return
	}

	now := time.Now()
	rv := models.Review{
		ReviewID:  uuid.New().String(),
		ListingID: body.ListingID,
		UserID:    userID,
		BookingID: body.BookingID,
		Rating:    body.Rating,
		Title:     body.Title,
		Comment:   body.Comment,
		Status:    models.StatusPending,
		IsDeleted: false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The partial unique index on (listingId, userId) catches duplicates even
	// under concurrent submission.
	if _, err := db.ReviewsCollection.InsertOne(ctx, rv); err != nil {
		if utils.IsDuplicateKey(err) {
			utils.SendResponse(w, http.StatusBadRequest, nil, "You have already reviewed this listing", nil)
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create review")
		return
	}

	go mq.Emit(mq.Event{EntityType: "review", EntityID: rv.ReviewID, Action: "created", ListingID: rv.ListingID, Status: rv.Status})

	utils.SendResponse(w, http.StatusCreated, rv, "Review submitted successfully. It will be visible after admin approval.", nil)
}

// GET /api/reviews/listing/:listingId — public feed. Non-moderators see only
// approved, non-deleted reviews; the base filter wins over any caller filter.
func GetReviewsByListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	listingID := ps.ByName("listingId")

	if err := db.ListingsCollection.FindOne(ctx, bson.M{"listingid": listingID}).Err(); err != nil {
		utils.SendResponse(w, http.StatusNotFound, nil, "Listing not found", nil)
		return
	}

	base := bson.M{"listingId": listingID, "status": models.StatusApproved, "isDeleted": false}
	if utils.IsModerator(utils.GetRoleFromRequest(r)) {
		base = bson.M{"listingId": listingID}
	}

	filter, opts := utils.ShapeQuery(r, base)
	results, err := utils.FindAndDecode[models.Review](ctx, db.ReviewsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}
	total, _ := db.ReviewsCollection.CountDocuments(ctx, filter)

	stats, err := ratingStats(ctx, listingID)
	if err != nil {
		stats = models.RatingStats{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":      http.StatusOK,
		"message":     "Reviews retrieved successfully",
		"results":     total,
		"ratingStats": stats,
		"data":        results,
	})
}

// GET /api/reviews/review/:id
func GetReviewByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	role := utils.GetRoleFromRequest(r)
	userID := utils.GetUserIDFromRequest(r)

	rv, err := findReview(ctx, ps.ByName("id"))
	if err != nil {
		utils.SendResponse(w, http.StatusNotFound, nil, "Review not found", nil)
		return
	}

	// Deleted reviews stay visible to moderators only.
	if rv.IsDeleted && !utils.IsModerator(role) {
		utils.SendResponse(w, http.StatusNotFound, nil, "Review not found", nil)
		return
	}
	if rv.Status != models.StatusApproved && !utils.IsModerator(role) && rv.UserID != userID {
		utils.SendResponse(w, http.StatusForbidden, nil, "You do not have permission to view this review", nil)
		return
	}

	utils.SendResponse(w, http.StatusOK, rv, "Review retrieved successfully", nil)
}

// GET /api/reviews/user/:userId
func GetReviewsByUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	role := utils.GetRoleFromRequest(r)
	callerID := utils.GetUserIDFromRequest(r)
	userID := ps.ByName("userId")

	if !utils.IsModerator(role) && callerID != userID {
		utils.SendResponse(w, http.StatusForbidden, nil, "You can only view your own reviews", nil)
		return
	}

	base := bson.M{"userId": userID}
	if role == globals.RoleUser {
		base["isDeleted"] = false
	}

	filter, opts := utils.ShapeQuery(r, base)
	results, err := utils.FindAndDecode[models.Review](ctx, db.ReviewsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}
	total, _ := db.ReviewsCollection.CountDocuments(ctx, filter)

	utils.SendList(w, http.StatusOK, results, total, "Reviews retrieved successfully")
}

// GET /api/reviews — moderators only (enforced at the route).
func GetAllReviews(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter, opts := utils.ShapeQuery(r, bson.M{})
	results, err := utils.FindAndDecode[models.Review](ctx, db.ReviewsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}
	total, _ := db.ReviewsCollection.CountDocuments(ctx, filter)

	utils.SendList(w, http.StatusOK, results, total, "Reviews retrieved successfully")
}

// GET /api/reviews/pending — the moderation queue.
func GetPendingReviews(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	base := bson.M{"status": models.StatusPending, "isDeleted": false}
	filter, opts := utils.ShapeQuery(r, base)
	results, err := utils.FindAndDecode[models.Review](ctx, db.ReviewsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}
	total, _ := db.ReviewsCollection.CountDocuments(ctx, filter)

	utils.SendList(w, http.StatusOK, results, total, "Pending reviews retrieved successfully")
}

// PATCH /api/reviews/review/:id — author or moderator. Author edits on approved
// reviews are locked; successful author edits reset moderation to pending.
func UpdateReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	role := utils.GetRoleFromRequest(r)
	userID := utils.GetUserIDFromRequest(r)

	rv, err := findReview(ctx, ps.ByName("id"))
	if err != nil || rv.IsDeleted {
		utils.SendResponse(w, http.StatusNotFound, nil, "Review not found", nil)
		return
	}

	if !CanModify(*rv, userID, role) {
		utils.SendResponse(w, http.StatusForbidden, nil, "You can only update your own reviews", nil)
		return
	}
	if !utils.IsModerator(role) && rv.Status == models.StatusApproved {
		utils.SendResponse(w, http.StatusForbidden, nil, "Approved reviews cannot be edited. Please contact support.", nil)
		return
	}

	var p editPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	applyEdit(rv, p, role, time.Now())

	if errs := validate(rv.Rating, rv.Title, rv.Comment); len(errs) > 0 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"status":  http.StatusBadRequest,
			"message": "Validation failed: " + strings.Join(errs, ", "),
			"errors":  errs,
		})
		return
	}

	if _, err := db.ReviewsCollection.ReplaceOne(ctx, bson.M{"reviewid": rv.ReviewID}, rv); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update review")
		return
	}

	invalidateStats(rv.ListingID)

	msg := "Review updated successfully."
	if !utils.IsModerator(role) {
		msg = "Review updated successfully. It will be visible after admin approval."
	}
	utils.SendResponse(w, http.StatusOK, rv, msg, nil)
}

// DELETE /api/reviews/review/:id — soft delete by the author or a moderator.
// Authors cannot delete once the review is approved; moderators always can.
func DeleteReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	role := utils.GetRoleFromRequest(r)
	userID := utils.GetUserIDFromRequest(r)

	rv, err := findReview(ctx, ps.ByName("id"))
	if err != nil {
		utils.SendResponse(w, http.StatusNotFound, nil, "Review not found", nil)
		return
	}
	if rv.IsDeleted {
		utils.SendResponse(w, http.StatusBadRequest, nil, "Review is already deleted", nil)
		return
	}

	if !CanModify(*rv, userID, role) {
		utils.SendResponse(w, http.StatusForbidden, nil, "You can only delete your own reviews", nil)
		return
	}
	if !utils.IsModerator(role) && rv.Status == models.StatusApproved {
		utils.SendResponse(w, http.StatusForbidden, nil, "Approved reviews cannot be deleted. Please contact support.", nil)
		return
	}

	softDelete(rv, userID, time.Now())

	_, err = db.ReviewsCollection.UpdateOne(ctx,
		bson.M{"reviewid": rv.ReviewID},
		bson.M{"$set": bson.M{"isDeleted": true, "deletedAt": rv.DeletedAt, "deletedBy": rv.DeletedBy}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete review")
		return
	}

	invalidateStats(rv.ListingID)
	go mq.Emit(mq.Event{EntityType: "review", EntityID: rv.ReviewID, Action: "deleted", ListingID: rv.ListingID})

	utils.SendResponse(w, http.StatusOK, nil, "Review deleted successfully", nil)
}

// PATCH /api/reviews/review/:id/moderate
func ModerateReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	role := utils.GetRoleFromRequest(r)
	moderatorID := utils.GetUserIDFromRequest(r)

	var body struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.Status != models.StatusApproved && body.Status != models.StatusRejected {
		utils.SendResponse(w, http.StatusBadRequest, nil, "Status must be either 'approved' or 'rejected'", nil)
		return
	}

	rv, err := findReview(ctx, ps.ByName("id"))
	if err != nil {
		utils.SendResponse(w, http.StatusNotFound, nil, "Review not found", nil)
		return
	}

	if err := workflow.ApplyModeration(rv, body.Status, role, moderatorID, body.Reason, time.Now()); err != nil {
		utils.SendResponse(w, workflow.HTTPStatus(err), nil, err.Error(), nil)
		return
	}

	_, err = db.ReviewsCollection.UpdateOne(ctx,
		bson.M{"reviewid": rv.ReviewID},
		bson.M{"$set": bson.M{
			"status":           rv.Status,
			"moderatedBy":      rv.ModeratedBy,
			"moderatedAt":      rv.ModeratedAt,
			"moderationReason": rv.ModerationReason,
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to moderate review")
		return
	}

	invalidateStats(rv.ListingID)
	go mq.Emit(mq.Event{EntityType: "review", EntityID: rv.ReviewID, Action: "moderated", ListingID: rv.ListingID, Status: rv.Status})

	utils.SendResponse(w, http.StatusOK, rv, "Review "+rv.Status+" successfully", nil)
}

// POST /api/reviews/review/:id/response — the listing's vendor or a moderator.
func AddReviewResponse(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	role := utils.GetRoleFromRequest(r)
	userID := utils.GetUserIDFromRequest(r)

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Text) == "" {
		utils.SendResponse(w, http.StatusBadRequest, nil, "Response text is required", nil)
		return
	}

	rv, err := findReview(ctx, ps.ByName("id"))
	if err != nil || rv.IsDeleted {
		utils.SendResponse(w, http.StatusNotFound, nil, "Review not found", nil)
		return
	}

	var listing models.Listing
	if err := db.ListingsCollection.FindOne(ctx, bson.M{"listingid": rv.ListingID}).Decode(&listing); err != nil {
		utils.SendResponse(w, http.StatusNotFound, nil, "Listing not found", nil)
		return
	}

	isVendor := role == globals.RoleVendor && listing.VendorID == userID
	if !isVendor && !utils.IsModerator(role) {
		utils.SendResponse(w, http.StatusForbidden, nil, "You can only respond to reviews on your listings", nil)
		return
	}

	now := time.Now()
	rv.Response = &models.ReviewResponse{Text: body.Text, RespondedBy: userID, RespondedAt: &now}

	_, err = db.ReviewsCollection.UpdateOne(ctx,
		bson.M{"reviewid": rv.ReviewID},
		bson.M{"$set": bson.M{"response": rv.Response}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add response")
		return
	}

	utils.SendResponse(w, http.StatusOK, rv, "Response added successfully", nil)
}

// POST /api/reviews/review/:id/helpful — public; approved reviews only.
func MarkReviewHelpful(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rv, err := findReview(ctx, ps.ByName("id"))
	if err != nil || rv.IsDeleted {
		utils.SendResponse(w, http.StatusNotFound, nil, "Review not found", nil)
		return
	}
	if rv.Status != models.StatusApproved {
		utils.SendResponse(w, http.StatusBadRequest, nil, "Can only mark approved reviews as helpful", nil)
		return
	}

	_, err = db.ReviewsCollection.UpdateOne(ctx,
		bson.M{"reviewid": rv.ReviewID},
		bson.M{"$inc": bson.M{"helpfulCount": 1}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update review")
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"helpfulCount": rv.HelpfulCount + 1}, "Review marked as helpful", nil)
}
