package reviews

import (
	"testing"
	"time"

	"kasuwa/models"
)

func TestCanModify(t *testing.T) {
	rv := models.Review{UserID: "u1"}

	if !CanModify(rv, "u1", "user") {
		t.Error("author should be allowed")
	}
	if CanModify(rv, "u2", "user") {
		t.Error("stranger should be denied")
	}
	if !CanModify(rv, "u2", "admin") || !CanModify(rv, "u2", "superadmin") {
		t.Error("moderators should always be allowed")
	}
	if CanModify(rv, "u2", "vendor") {
		t.Error("vendor is not a moderator")
	}
}

func TestApplyEditAuthorResetsModeration(t *testing.T) {
	moderated := time.Now().Add(-time.Hour)
	rv := &models.Review{
		UserID:           "u1",
		Rating:           4,
		Comment:          "original",
		Status:           models.StatusRejected,
		ModeratedBy:      "adm1",
		ModeratedAt:      &moderated,
		ModerationReason: "tone",
	}

	rating := 5
	comment := "revised"
	applyEdit(rv, editPayload{Rating: &rating, Comment: &comment}, "user", time.Now())

	if rv.Rating != 5 || rv.Comment != "revised" {
		t.Fatalf("edit not applied: %+v", rv)
	}
	if rv.Status != models.StatusPending {
		t.Fatalf("author edit must reset status to pending, got %q", rv.Status)
	}
	if rv.ModeratedBy != "" || rv.ModeratedAt != nil || rv.ModerationReason != "" {
		t.Fatalf("moderation stamp not cleared: %+v", rv)
	}
}

func TestApplyEditModeratorKeepsStatus(t *testing.T) {
	rv := &models.Review{UserID: "u1", Rating: 4, Comment: "fine", Status: models.StatusApproved}

	title := "Updated"
	applyEdit(rv, editPayload{Title: &title}, "admin", time.Now())

	if rv.Status != models.StatusApproved {
		t.Fatalf("moderator edit must not reset status, got %q", rv.Status)
	}
	if rv.Title != "Updated" || rv.Rating != 4 {
		t.Fatalf("partial edit wrong: %+v", rv)
	}
}

func TestApplyEditPartialFields(t *testing.T) {
	rv := &models.Review{UserID: "u1", Rating: 3, Title: "Keep", Comment: "keep too", Status: models.StatusPending}

	rating := 4
	applyEdit(rv, editPayload{Rating: &rating}, "user", time.Now())

	if rv.Rating != 4 || rv.Title != "Keep" || rv.Comment != "keep too" {
		t.Fatalf("unset fields must survive: %+v", rv)
	}
}

func TestValidateReview(t *testing.T) {
	if errs := validate(0, "", "good stay"); len(errs) == 0 {
		t.Error("rating 0 should fail")
	}
	if errs := validate(6, "", "good stay"); len(errs) == 0 {
		t.Error("rating 6 should fail")
	}
	if errs := validate(3, "", "   "); len(errs) == 0 {
		t.Error("blank comment should fail")
	}
	if errs := validate(3, "", "good stay"); len(errs) != 0 {
		t.Errorf("expected valid, got %v", errs)
	}
}

func TestSoftDeletePreservesModeration(t *testing.T) {
	now := time.Now()
	rv := &models.Review{UserID: "u1", Status: models.StatusApproved}

	softDelete(rv, "adm1", now)

	if !rv.IsDeleted || rv.DeletedBy != "adm1" || rv.DeletedAt == nil {
		t.Fatalf("soft delete incomplete: %+v", rv)
	}
	if rv.Status != models.StatusApproved {
		t.Fatal("soft delete must not touch moderation state")
	}
}
