package reviews

import (
	"strings"
	"time"

	"kasuwa/models"
	"kasuwa/utils"
)

// CanModify reports whether a caller may touch a review: moderators always,
// the author otherwise.
func CanModify(rv models.Review, userID, role string) bool {
	if utils.IsModerator(role) {
		return true
	}
	return rv.UserID == userID
}

type editPayload struct {
	Rating  *int    `json:"rating"`
	Title   *string `json:"title"`
	Comment *string `json:"comment"`
}

// validate checks the writable review fields. Used for both create and edit.
func validate(rating int, title, comment string) []string {
	var errs []string
	if rating < 1 || rating > 5 {
		errs = append(errs, "Rating must be between 1 and 5")
	}
	if strings.TrimSpace(comment) == "" {
		errs = append(errs, "Comment is required")
	}
	if len(comment) > 1000 {
		errs = append(errs, "Comment cannot exceed 1000 characters")
	}
	if len(title) > 100 {
		errs = append(errs, "Title cannot exceed 100 characters")
	}
	return errs
}

// applyEdit merges an edit into the review. Author edits reset the
// moderation sub-state to pending and clear the moderation stamp; moderator
// edits leave it alone. The soft-delete sub-state is never touched.
func applyEdit(rv *models.Review, p editPayload, role string, now time.Time) {
	if p.Rating != nil {
		rv.Rating = *p.Rating
	}
	if p.Title != nil {
		rv.Title = *p.Title
	}
	if p.Comment != nil {
		rv.Comment = *p.Comment
	}
	if !utils.IsModerator(role) {
		rv.Status = models.StatusPending
		rv.ModeratedBy = ""
		rv.ModeratedAt = nil
		rv.ModerationReason = ""
	}
	rv.UpdatedAt = now
}

// softDelete marks the review deleted without touching moderation state.
func softDelete(rv *models.Review, by string, now time.Time) {
	rv.IsDeleted = true
	rv.DeletedAt = &now
	rv.DeletedBy = by
}
