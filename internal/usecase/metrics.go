package usecase

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"arcmarket/internal/domain/entity"
	"arcmarket/internal/domain/repository"
	"arcmarket/pkg/errors"
	"arcmarket/pkg/logger"
)

// enrichConcurrency caps the fan-out when a page of records is enriched
// in parallel.
const enrichConcurrency = 8

// MetricsEnricher populates the derived fields of collections, persons
// and activities at read time. A metric that cannot be computed degrades
// to its zero value instead of failing the read.
type MetricsEnricher struct {
	collections repository.CollectionRepository
	items       repository.ItemRepository
	persons     repository.PersonRepository
	activities  repository.ActivityRepository

	// now is injectable so the 24h window is testable.
	now func() time.Time
}

func NewMetricsEnricher(
	collections repository.CollectionRepository,
	items repository.ItemRepository,
	persons repository.PersonRepository,
	activities repository.ActivityRepository,
) *MetricsEnricher {
	return &MetricsEnricher{
		collections: collections,
		items:       items,
		persons:     persons,
		activities:  activities,
		now:         time.Now,
	}
}

// EnrichCollection fills the derived fields of a single collection:
// floor price, item and distinct-owner counts, the 24h volume ratio and
// the creator profile.
func (e *MetricsEnricher) EnrichCollection(ctx context.Context, collection *entity.Collection) {
	id := collection.ID.Hex()

	floor, err := e.activities.MinActiveListPrice(ctx, id)
	if err != nil {
		logger.Warn("floor price unavailable for collection %s: %v", id, err)
		floor = 0
	}
	collection.FloorPrice = floor

	items, err := e.items.CountByCollection(ctx, id)
	if err != nil {
		logger.Warn("item count unavailable for collection %s: %v", id, err)
		items = 0
	}
	collection.Items = items

	owners, err := e.items.CountDistinctOwners(ctx, id)
	if err != nil {
		logger.Warn("owner count unavailable for collection %s: %v", id, err)
		owners = 0
	}
	collection.Owners = owners

	h24, h24Percent := e.tradeVolume24h(ctx, id)
	collection.H24 = h24
	collection.H24Percent = h24Percent

	if collection.Creator != "" {
		creator, err := e.persons.GetByWallet(ctx, collection.Creator)
		if err != nil {
			logger.Warn("creator detail unavailable for collection %s: %v", id, err)
		} else {
			collection.CreatorDetail = creator
		}
	}
}

// EnrichCollectionDetail is EnrichCollection plus the viewer's open
// collection offer, when a viewer identity is known.
func (e *MetricsEnricher) EnrichCollectionDetail(ctx context.Context, collection *entity.Collection, viewer string) {
	e.EnrichCollection(ctx, collection)
	if viewer == "" {
		return
	}
	offer, err := e.activities.ActiveCollectionOffer(ctx, collection.ID.Hex(), viewer)
	if err != nil {
		// Most viewers have no open offer; only real lookup
		// failures are worth a log line.
		if !errors.Is(err, errors.CodeNotFound) {
			logger.Warn("collection offer lookup failed for %s: %v", collection.ID.Hex(), err)
		}
		return
	}
	collection.CollectionOffer = offer
}

// EnrichCollections enriches a page of collections concurrently. All
// fields of one record are settled before the method returns.
func (e *MetricsEnricher) EnrichCollections(ctx context.Context, collections []*entity.Collection) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for _, c := range collections {
		c := c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			e.EnrichCollection(ctx, c)
			return nil
		})
	}
	return g.Wait()
}

// EnrichPerson fills the derived owned-item and created-collection
// counts.
func (e *MetricsEnricher) EnrichPerson(ctx context.Context, person *entity.Person) {
	items, err := e.items.CountByOwner(ctx, person.Wallet)
	if err != nil {
		logger.Warn("owned item count unavailable for %s: %v", person.Wallet, err)
		items = 0
	}
	person.Items = items

	collections, err := e.collections.CountByCreator(ctx, person.Wallet)
	if err != nil {
		logger.Warn("created collection count unavailable for %s: %v", person.Wallet, err)
		collections = 0
	}
	person.Collections = collections
}

func (e *MetricsEnricher) EnrichPersons(ctx context.Context, persons []*entity.Person) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for _, p := range persons {
		p := p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			e.EnrichPerson(ctx, p)
			return nil
		})
	}
	return g.Wait()
}

// AttachItemDetails denormalizes activity rows for list views: the item
// projection for item-level rows, and the collection id plus royalty
// terms for collection-level rows.
func (e *MetricsEnricher) AttachItemDetails(ctx context.Context, activities []*entity.Activity) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for _, a := range activities {
		a := a
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if a.NftID != nil {
				ref, err := e.items.GetRef(ctx, a.Collection, *a.NftID)
				if err != nil {
					logger.Warn("item ref unavailable for %s #%d: %v", a.Collection, *a.NftID, err)
				} else {
					a.Nft = ref
				}
			} else {
				a.IsCollection = true
			}
			a.CollectionID = a.Collection
			collection, err := e.collections.GetByID(ctx, a.Collection)
			if err != nil {
				logger.Warn("collection ref unavailable for %s: %v", a.Collection, err)
				return nil
			}
			a.CollectionDetail = &entity.CollectionRef{
				Creator:        collection.Creator,
				CreatorEarning: collection.CreatorEarning,
			}
			return nil
		})
	}
	return g.Wait()
}

// tradeVolume24h sums Transfer and Sale prices into a today bucket and a
// yesterday bucket, then expresses today as a percentage of yesterday.
// A quiet yesterday yields a 0 percentage rather than a division error.
func (e *MetricsEnricher) tradeVolume24h(ctx context.Context, collectionID string) (h24, h24Percent float64) {
	now := e.now().Unix()
	since := now - 2*86400
	trades, err := e.activities.TradesSince(ctx, collectionID, since)
	if err != nil {
		logger.Warn("24h volume unavailable for %s: %v", collectionID, err)
		return 0, 0
	}

	var today, yesterday float64
	dayAgo := now - 86400
	for _, t := range trades {
		if t.Date > dayAgo {
			today += t.Price
		} else {
			yesterday += t.Price
		}
	}

	h24 = today
	if yesterday != 0 {
		h24Percent = today / yesterday * 100
	}
	return h24, h24Percent
}

// AttachTradeMetrics extends AttachItemDetails for owner history: each
// row's collection detail additionally carries the floor price and the
// 24h volume figures, computed once per distinct collection on the page.
func (e *MetricsEnricher) AttachTradeMetrics(ctx context.Context, activities []*entity.Activity) error {
	if err := e.AttachItemDetails(ctx, activities); err != nil {
		return err
	}

	type tradeMetrics struct {
		floor, h24, h24Percent float64
	}
	byCollection := make(map[string]*tradeMetrics, len(activities))
	for _, a := range activities {
		byCollection[a.Collection] = nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for id := range byCollection {
		id := id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m := &tradeMetrics{}
			floor, err := e.activities.MinActiveListPrice(gctx, id)
			if err != nil {
				logger.Warn("floor price unavailable for %s: %v", id, err)
			} else {
				m.floor = floor
			}
			m.h24, m.h24Percent = e.tradeVolume24h(gctx, id)
			mu.Lock()
			byCollection[id] = m
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, a := range activities {
		m := byCollection[a.Collection]
		if m == nil || a.CollectionDetail == nil {
			continue
		}
		a.CollectionDetail.FloorPrice = m.floor
		a.CollectionDetail.H24 = m.h24
		a.CollectionDetail.H24Percent = m.h24Percent
	}
	return nil
}
