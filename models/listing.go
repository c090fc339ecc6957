package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Listing categories. The set is closed; validators switch over it
// exhaustively so an unknown tag is always reported on the category field.
const (
	CategoryHotel      = "hotel"
	CategoryShortlet   = "shortlet"
	CategoryRestaurant = "restaurant"
	CategoryServices   = "services"
	CategoryEvent      = "event"
)

var Categories = []string{
	CategoryHotel,
	CategoryShortlet,
	CategoryRestaurant,
	CategoryServices,
	CategoryEvent,
}

// Listing statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ImageRef is the canonical shape of a listing image: a public URL plus the
// storage object id used to release it on delete. Clients may still submit
// bare URL strings; normalization fills this in.
type ImageRef struct {
	URL       string `json:"url" bson:"url"`
	StorageID string `json:"storageId,omitempty" bson:"storageId,omitempty"`
}

type Geolocation struct {
	Lat *float64 `json:"lat" bson:"lat"`
	Lng *float64 `json:"lng" bson:"lng"`
}

type Location struct {
	Address     string      `json:"address" bson:"address"`
	Area        string      `json:"area" bson:"area"`
	Geolocation Geolocation `json:"geolocation" bson:"geolocation"`
}

type ContactInformation struct {
	Phone    string `json:"phone,omitempty" bson:"phone,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty" bson:"whatsapp,omitempty"`
	Email    string `json:"email,omitempty" bson:"email,omitempty"`
}

// Listing holds the shared envelope for all five categories. Details carries
// the category-specific payload and only ever stores data that passed the
// category's schema.
type Listing struct {
	ListingID          string             `json:"listingid" bson:"listingid"`
	VendorID           string             `json:"vendorId" bson:"vendorId"`
	Category           string             `json:"category" bson:"category"`
	Name               string             `json:"name" bson:"name"`
	About              string             `json:"about" bson:"about"`
	WhatWeDo           string             `json:"whatWeDo" bson:"whatWeDo"`
	Location           Location           `json:"location" bson:"location"`
	ContactInformation ContactInformation `json:"contactInformation" bson:"contactInformation"`
	Images             []ImageRef         `json:"images" bson:"images"`
	Status             string             `json:"status" bson:"status"`
	ApprovedAt         *time.Time         `json:"approvedAt" bson:"approvedAt"`
	Details            bson.M             `json:"details" bson:"details"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt"`
}
