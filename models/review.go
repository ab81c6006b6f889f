package models

import "time"

// Review is one reviewer's rating of one workshop.
type Review struct {
	ID         string    `bson:"id" json:"id"`
	WorkshopID string    `bson:"workshopId" json:"workshopId"`
	UserID     string    `bson:"userId" json:"userId"`
	Rating     int       `bson:"rating" json:"rating"`
	Comment    string    `bson:"comment" json:"comment"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// ReviewView adds the reviewer's name and email.
type ReviewView struct {
	Review
	User *AccountSummary `json:"user,omitempty"`
}

// ReviewInput is the body of POST /reviews.
type ReviewInput struct {
	WorkshopID string `json:"workshopId"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// RatingAggregate is the recomputed average over every review of a workshop.
type RatingAggregate struct {
	Avg   float64 `bson:"avg" json:"avg"`
	Count int     `bson:"count" json:"count"`
}
