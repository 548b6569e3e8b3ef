package entity

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ActivityType string

const (
	ActivityTransfer        ActivityType = "Transfer"
	ActivitySale            ActivityType = "Sale"
	ActivityList            ActivityType = "List"
	ActivityOffer           ActivityType = "Offer"
	ActivityOfferCollection ActivityType = "OfferCollection"
	ActivityCancel          ActivityType = "Cancel"
)

// CollectionRef carries the royalty terms a taker needs when acting on
// a listing or offer row.
type CollectionRef struct {
	Creator        string  `json:"creator" bson:"creator"`
	CreatorEarning float64 `json:"creatorEarning" bson:"creatorEarning"`

	// Set only on owner-history rows.
	FloorPrice float64 `json:"floorPrice,omitempty" bson:"-"`
	H24        float64 `json:"_24h,omitempty" bson:"-"`
	H24Percent float64 `json:"_24hPercent,omitempty" bson:"-"`
}

// Activity is an append-only event on a collection or, when NftID is
// set, on one of its items. Rows are never deleted; Active flips false
// when a listing or offer is superseded.
type Activity struct {
	ID         primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Collection string             `json:"collection" bson:"collection"`
	NftID      *int64             `json:"nftId" bson:"nftId"`
	Type       ActivityType       `json:"type" bson:"type"`
	Price      float64            `json:"price" bson:"price"`
	From       string             `json:"from" bson:"from"`
	To         string             `json:"to" bson:"to"`
	Date       int64              `json:"date" bson:"date"`
	Active     bool               `json:"active" bson:"active"`

	// Derived at read time.
	Nft              *ItemRef       `json:"nft,omitempty" bson:"-"`
	CollectionID     string         `json:"collectionId,omitempty" bson:"-"`
	CollectionDetail *CollectionRef `json:"collectionDetail,omitempty" bson:"-"`
	IsCollection     bool           `json:"isCollection,omitempty" bson:"-"`
}
