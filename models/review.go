package models

import "time"

// AnonymousAuthor is stored when a review arrives without a usable author name.
const AnonymousAuthor = "Anonymous User"

// Review belongs to exactly one listing through the listing's review-reference
// list; the review itself holds no parent reference.
type Review struct {
	ReviewID  string    `json:"reviewid" bson:"reviewid"`
	Comment   string    `json:"comment" bson:"comment"`
	Rating    int       `json:"rating" bson:"rating"`
	Author    string    `json:"author" bson:"author"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
