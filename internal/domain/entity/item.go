package entity

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PricePoint struct {
	Price float64 `json:"price" bson:"price"`
	Date  int64   `json:"date" bson:"date"`
}

// Item is one minted token. Collection holds the hex object id of the
// owning Collection; (Collection, Index) is the composite natural key
// and is unique.
type Item struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Collection  string             `json:"collection" bson:"collection"`
	Index       int64              `json:"index" bson:"index"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	ArtURI      string             `json:"artURI" bson:"artURI"`
	ContentType string             `json:"contentType" bson:"contentType"`
	Owner       string             `json:"owner" bson:"owner"`
	Creator     string             `json:"creator" bson:"creator"`
	Price       float64            `json:"price" bson:"price"`
	Like        int64              `json:"like" bson:"like"`
	Status      string             `json:"status" bson:"status"`

	PriceHistory []PricePoint `json:"priceHistory" bson:"priceHistory"`
}

// ItemRef is the minimal projection embedded in activity listings so
// list views avoid a second round trip.
type ItemRef struct {
	ArtURI      string `json:"artURI" bson:"artURI"`
	Name        string `json:"name" bson:"name"`
	ContentType string `json:"contentType" bson:"contentType"`
}
