package entity

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OfferStatus string

const (
	OfferStatusNone     OfferStatus = "NONE"
	OfferStatusOpen     OfferStatus = "OPEN"
	OfferStatusAccepted OfferStatus = "ACCEPTED"
)

// Collection is a set of items minted under one creator. Volume, the 24h
// fields, floor price and the owner/item counts are derived at read time
// by the enrichment layer; only the base document is persisted.
type Collection struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	URL         string             `json:"url" bson:"url"`
	Description string             `json:"description" bson:"description"`
	Category    string             `json:"category" bson:"category"`
	Contract    string             `json:"contract" bson:"contract"`
	Blockchain  string             `json:"blockchain" bson:"blockchain"`
	Platform    string             `json:"platform" bson:"platform"`
	Tag         string             `json:"tagCollection,omitempty" bson:"tagCollection,omitempty"`

	// Creator is the wallet identity, stored lower-cased.
	Creator        string  `json:"creator" bson:"creator"`
	CreatorEarning float64 `json:"creatorEarning" bson:"creatorEarning"`

	LogoURL     string `json:"logoUrl" bson:"logoUrl"`
	FeaturedURL string `json:"featuredUrl" bson:"featuredUrl"`
	BannerURL   string `json:"bannerUrl" bson:"bannerUrl"`

	Links []string `json:"links" bson:"links"`

	Volume     float64 `json:"volume" bson:"volume"`
	H24        float64 `json:"_24h" bson:"_24h"`
	H24Percent float64 `json:"_24hPercent" bson:"_24hPercent"`

	IsVerified bool `json:"isVerified" bson:"isVerified"`
	IsExplicit bool `json:"isExplicit" bson:"isExplicit"`

	// Properties maps a trait name to its growing list of seen values.
	Properties map[string][]string `json:"properties" bson:"properties"`

	OfferStatus OfferStatus `json:"offerStatus" bson:"offerStatus"`

	// Derived at read time, never persisted.
	FloorPrice      float64   `json:"floorPrice" bson:"-"`
	Owners          int64     `json:"owners" bson:"-"`
	Items           int64     `json:"items" bson:"-"`
	CreatorDetail   *Person   `json:"creatorDetail,omitempty" bson:"-"`
	CollectionOffer *Activity `json:"collectionOffer" bson:"-"`
}
