package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"arcmarket/internal/domain/entity"
	"arcmarket/pkg/logger"
)

func newEnricher(collections *fakeCollectionRepo, items *fakeItemRepo, persons *fakePersonRepo, activities *fakeActivityRepo) *MetricsEnricher {
	return NewMetricsEnricher(collections, items, persons, activities)
}

func int64Ptr(v int64) *int64 { return &v }

func TestEnrichCollectionFloorPrice(t *testing.T) {
	collectionID := primitive.NewObjectID()
	id := collectionID.Hex()

	activities := &fakeActivityRepo{rows: []*entity.Activity{
		{Collection: id, Type: entity.ActivityList, Active: true, Price: 5},
		{Collection: id, Type: entity.ActivityList, Active: true, Price: 2},
		{Collection: id, Type: entity.ActivityList, Active: true, Price: 9},
		{Collection: id, Type: entity.ActivityList, Active: false, Price: 1},
		{Collection: id, Type: entity.ActivitySale, Active: true, Price: 0.5},
	}}
	enricher := newEnricher(&fakeCollectionRepo{}, &fakeItemRepo{}, &fakePersonRepo{}, activities)

	collection := &entity.Collection{ID: collectionID}
	enricher.EnrichCollection(context.Background(), collection)

	assert.Equal(t, 2.0, collection.FloorPrice)
}

func TestEnrichCollectionNoListingsMeansZeroFloor(t *testing.T) {
	collection := &entity.Collection{ID: primitive.NewObjectID()}
	enricher := newEnricher(&fakeCollectionRepo{}, &fakeItemRepo{}, &fakePersonRepo{}, &fakeActivityRepo{})

	enricher.EnrichCollection(context.Background(), collection)

	assert.Zero(t, collection.FloorPrice)
	assert.Zero(t, collection.Items)
	assert.Zero(t, collection.Owners)
}

func TestEnrichCollectionItemAndOwnerCounts(t *testing.T) {
	collectionID := primitive.NewObjectID()
	id := collectionID.Hex()

	items := &fakeItemRepo{rows: []*entity.Item{
		{Collection: id, Index: 1, Owner: "0xaaa"},
		{Collection: id, Index: 2, Owner: "0xAAA"},
		{Collection: id, Index: 3, Owner: "0xbbb"},
		{Collection: "other", Index: 1, Owner: "0xccc"},
	}}
	enricher := newEnricher(&fakeCollectionRepo{}, items, &fakePersonRepo{}, &fakeActivityRepo{})

	collection := &entity.Collection{ID: collectionID}
	enricher.EnrichCollection(context.Background(), collection)

	assert.Equal(t, int64(3), collection.Items)
	assert.Equal(t, int64(2), collection.Owners)
}

func TestEnrichCollection24hVolumeRatio(t *testing.T) {
	collectionID := primitive.NewObjectID()
	id := collectionID.Hex()
	now := time.Unix(1_700_000_000, 0)

	activities := &fakeActivityRepo{rows: []*entity.Activity{
		{Collection: id, Type: entity.ActivitySale, Price: 60, Date: now.Unix() - 3600},
		{Collection: id, Type: entity.ActivityTransfer, Price: 40, Date: now.Unix() - 7200},
		{Collection: id, Type: entity.ActivitySale, Price: 50, Date: now.Unix() - 86400 - 3600},
	}}
	enricher := newEnricher(&fakeCollectionRepo{}, &fakeItemRepo{}, &fakePersonRepo{}, activities)
	enricher.now = func() time.Time { return now }

	collection := &entity.Collection{ID: collectionID}
	enricher.EnrichCollection(context.Background(), collection)

	assert.Equal(t, 100.0, collection.H24)
	assert.Equal(t, 200.0, collection.H24Percent)
}

func TestEnrichCollectionQuietYesterdayYieldsZeroPercent(t *testing.T) {
	collectionID := primitive.NewObjectID()
	now := time.Unix(1_700_000_000, 0)

	activities := &fakeActivityRepo{rows: []*entity.Activity{
		{Collection: collectionID.Hex(), Type: entity.ActivitySale, Price: 75, Date: now.Unix() - 60},
	}}
	enricher := newEnricher(&fakeCollectionRepo{}, &fakeItemRepo{}, &fakePersonRepo{}, activities)
	enricher.now = func() time.Time { return now }

	collection := &entity.Collection{ID: collectionID}
	enricher.EnrichCollection(context.Background(), collection)

	assert.Equal(t, 75.0, collection.H24)
	assert.Zero(t, collection.H24Percent)
}

func TestEnrichCollectionDetailAttachesViewerOffer(t *testing.T) {
	collectionID := primitive.NewObjectID()
	id := collectionID.Hex()

	activities := &fakeActivityRepo{rows: []*entity.Activity{
		{Collection: id, Type: entity.ActivityOfferCollection, Active: true, From: "0xviewer", Price: 3},
		{Collection: id, Type: entity.ActivityOfferCollection, Active: true, From: "0xother", Price: 7},
	}}
	enricher := newEnricher(&fakeCollectionRepo{}, &fakeItemRepo{}, &fakePersonRepo{}, activities)

	collection := &entity.Collection{ID: collectionID}
	enricher.EnrichCollectionDetail(context.Background(), collection, "0xVIEWER")

	require.NotNil(t, collection.CollectionOffer)
	assert.Equal(t, 3.0, collection.CollectionOffer.Price)

	anonymous := &entity.Collection{ID: collectionID}
	enricher.EnrichCollectionDetail(context.Background(), anonymous, "")
	assert.Nil(t, anonymous.CollectionOffer)
}

func TestEnrichCollectionDetailQuietWhenViewerHasNoOffer(t *testing.T) {
	core, observed := observer.New(zap.WarnLevel)
	logger.Use(zap.New(core))
	defer logger.Use(zap.NewNop())

	enricher := newEnricher(&fakeCollectionRepo{}, &fakeItemRepo{}, &fakePersonRepo{}, &fakeActivityRepo{})

	collection := &entity.Collection{ID: primitive.NewObjectID()}
	enricher.EnrichCollectionDetail(context.Background(), collection, "0xviewer")

	assert.Nil(t, collection.CollectionOffer)
	assert.Zero(t, observed.Len())
}

func TestEnrichPersonCounts(t *testing.T) {
	items := &fakeItemRepo{rows: []*entity.Item{
		{Collection: "c1", Index: 1, Owner: "0xabc"},
		{Collection: "c1", Index: 2, Owner: "0xABC"},
		{Collection: "c2", Index: 1, Owner: "0xdef"},
	}}
	collections := &fakeCollectionRepo{rows: []*entity.Collection{
		{ID: primitive.NewObjectID(), Name: "a", URL: "a", Creator: "0xabc"},
	}}
	enricher := newEnricher(collections, items, &fakePersonRepo{}, &fakeActivityRepo{})

	person := &entity.Person{Wallet: "0xabc"}
	enricher.EnrichPerson(context.Background(), person)

	assert.Equal(t, int64(2), person.Items)
	assert.Equal(t, int64(1), person.Collections)
}

func TestAttachItemDetails(t *testing.T) {
	collectionID := primitive.NewObjectID()
	id := collectionID.Hex()

	collections := &fakeCollectionRepo{rows: []*entity.Collection{
		{ID: collectionID, Name: "apes", URL: "apes", Creator: "0xcreator", CreatorEarning: 5},
	}}
	items := &fakeItemRepo{rows: []*entity.Item{
		{Collection: id, Index: 7, Name: "ape #7", ArtURI: "ipfs://7", ContentType: "image/png"},
	}}
	enricher := newEnricher(collections, items, &fakePersonRepo{}, &fakeActivityRepo{})

	itemRow := &entity.Activity{Collection: id, NftID: int64Ptr(7), Type: entity.ActivityList}
	collectionRow := &entity.Activity{Collection: id, Type: entity.ActivityOfferCollection}

	err := enricher.AttachItemDetails(context.Background(), []*entity.Activity{itemRow, collectionRow})
	require.NoError(t, err)

	require.NotNil(t, itemRow.Nft)
	assert.Equal(t, "ape #7", itemRow.Nft.Name)
	assert.Equal(t, "ipfs://7", itemRow.Nft.ArtURI)
	assert.False(t, itemRow.IsCollection)

	assert.Nil(t, collectionRow.Nft)
	assert.True(t, collectionRow.IsCollection)
	require.NotNil(t, collectionRow.CollectionDetail)
	assert.Equal(t, "0xcreator", collectionRow.CollectionDetail.Creator)
	assert.Equal(t, 5.0, collectionRow.CollectionDetail.CreatorEarning)
}

func TestAttachTradeMetricsAddsFloorAnd24hToRows(t *testing.T) {
	collectionID := primitive.NewObjectID()
	id := collectionID.Hex()
	now := time.Unix(1_700_000_000, 0)

	collections := &fakeCollectionRepo{rows: []*entity.Collection{
		{ID: collectionID, Name: "apes", URL: "apes", Creator: "0xcreator", CreatorEarning: 5},
	}}
	items := &fakeItemRepo{rows: []*entity.Item{
		{Collection: id, Index: 3, Name: "ape #3", ArtURI: "ipfs://3"},
	}}
	activities := &fakeActivityRepo{rows: []*entity.Activity{
		{Collection: id, Type: entity.ActivityList, Active: true, Price: 4},
		{Collection: id, Type: entity.ActivityList, Active: true, Price: 7},
		{Collection: id, Type: entity.ActivitySale, Price: 80, Date: now.Unix() - 3600},
		{Collection: id, Type: entity.ActivitySale, Price: 40, Date: now.Unix() - 86400 - 3600},
	}}
	enricher := newEnricher(collections, items, &fakePersonRepo{}, activities)
	enricher.now = func() time.Time { return now }

	row := &entity.Activity{Collection: id, NftID: int64Ptr(3), Type: entity.ActivitySale}
	err := enricher.AttachTradeMetrics(context.Background(), []*entity.Activity{row})
	require.NoError(t, err)

	require.NotNil(t, row.Nft)
	require.NotNil(t, row.CollectionDetail)
	assert.Equal(t, 4.0, row.CollectionDetail.FloorPrice)
	assert.Equal(t, 80.0, row.CollectionDetail.H24)
	assert.Equal(t, 200.0, row.CollectionDetail.H24Percent)
}
