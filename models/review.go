package models

import "time"

// Review moderation statuses reuse StatusPending/StatusApproved/StatusRejected.
// Moderation and soft-delete are orthogonal sub-states: a review can be
// approved and deleted at once, and the two never share a field.
type ReviewResponse struct {
	Text        string     `json:"text" bson:"text"`
	RespondedBy string     `json:"respondedBy" bson:"respondedBy"`
	RespondedAt *time.Time `json:"respondedAt" bson:"respondedAt"`
}

type Review struct {
	ReviewID  string `json:"reviewid" bson:"reviewid"`
	ListingID string `json:"listingId" bson:"listingId"`
	UserID    string `json:"userId" bson:"userId"`
	BookingID string `json:"bookingId,omitempty" bson:"bookingId,omitempty"`
	Rating    int    `json:"rating" bson:"rating"`
	Title     string `json:"title,omitempty" bson:"title,omitempty"`
	Comment   string `json:"comment" bson:"comment"`

	// Moderation sub-state
	Status           string     `json:"status" bson:"status"`
	ModeratedBy      string     `json:"moderatedBy,omitempty" bson:"moderatedBy,omitempty"`
	ModeratedAt      *time.Time `json:"moderatedAt,omitempty" bson:"moderatedAt,omitempty"`
	ModerationReason string     `json:"moderationReason,omitempty" bson:"moderationReason,omitempty"`

	// Soft-delete sub-state
	IsDeleted bool       `json:"isDeleted" bson:"isDeleted"`
	DeletedAt *time.Time `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
	DeletedBy string     `json:"deletedBy,omitempty" bson:"deletedBy,omitempty"`

	HelpfulCount int             `json:"helpfulCount" bson:"helpfulCount"`
	Response     *ReviewResponse `json:"response,omitempty" bson:"response,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// RatingStats is the aggregate shape returned alongside listing reviews.
type RatingStats struct {
	AverageRating float64 `json:"averageRating" bson:"averageRating"`
	NumReviews    int     `json:"numReviews" bson:"numReviews"`
}
