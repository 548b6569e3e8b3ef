package repository

import (
	"context"

	"arcmarket/internal/domain/entity"
	"arcmarket/internal/query"
)

// ActivityRepository reads and appends the event log. Activities are
// append-only; supersession only flips Active to false.
type ActivityRepository interface {
	ListByCollection(ctx context.Context, collectionID string, plan query.Plan) ([]*entity.Activity, int64, error)
	AllByCollection(ctx context.Context, collectionID string) ([]*entity.Activity, error)
	ListByItem(ctx context.Context, collectionID string, index int64) ([]*entity.Activity, error)

	// ListCollectionOffers pages the active OFFERCOLLECTION rows made by
	// viewer on the collection (rows with no item index).
	ListCollectionOffers(ctx context.Context, collectionID, viewer string, plan query.Plan) ([]*entity.Activity, int64, error)

	// ListByParty pages activities where wallet is the from or to side.
	ListByParty(ctx context.Context, wallet string, plan query.Plan) ([]*entity.Activity, int64, error)
	// ListOpenByParty pages the still-active List/Offer/OfferCollection
	// rows where wallet is either side.
	ListOpenByParty(ctx context.Context, wallet string, plan query.Plan) ([]*entity.Activity, int64, error)

	ActiveCollectionOffer(ctx context.Context, collectionID, viewer string) (*entity.Activity, error)

	// MinActiveListPrice returns the lowest non-null price among active
	// List rows of the collection, 0 when there are none.
	MinActiveListPrice(ctx context.Context, collectionID string) (float64, error)
	// TradesSince returns Transfer and Sale rows of the collection dated
	// after since (epoch seconds).
	TradesSince(ctx context.Context, collectionID string, since int64) ([]*entity.Activity, error)

	Insert(ctx context.Context, activity *entity.Activity) error
}
