package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"arcmarket/internal/domain/entity"
	"arcmarket/internal/domain/repository"
	"arcmarket/internal/query"
	"arcmarket/pkg/errors"
)

const activityTable = "Activity"

type mongoActivityRepository struct {
	coll *mongo.Collection
}

func NewMongoActivityRepository(db *mongo.Database) repository.ActivityRepository {
	return &mongoActivityRepository{
		coll: db.Collection(activityTable),
	}
}

func (r *mongoActivityRepository) ListByCollection(ctx context.Context, collectionID string, plan query.Plan) ([]*entity.Activity, int64, error) {
	var activities []*entity.Activity
	total, err := execute(ctx, r.coll, bson.M{"collection": collectionID}, plan, &activities)
	return activities, total, err
}

func (r *mongoActivityRepository) AllByCollection(ctx context.Context, collectionID string) ([]*entity.Activity, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"collection": collectionID})
	if err != nil {
		return nil, errors.Internal("Failed to query activities", err)
	}
	var activities []*entity.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, errors.Internal("Failed to decode activities", err)
	}
	return activities, nil
}

func (r *mongoActivityRepository) ListByItem(ctx context.Context, collectionID string, index int64) ([]*entity.Activity, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"collection": collectionID, "nftId": index})
	if err != nil {
		return nil, errors.Internal("Failed to query activities", err)
	}
	var activities []*entity.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, errors.Internal("Failed to decode activities", err)
	}
	return activities, nil
}

func (r *mongoActivityRepository) ListCollectionOffers(ctx context.Context, collectionID, viewer string, plan query.Plan) ([]*entity.Activity, int64, error) {
	base := bson.M{
		"collection": collectionID,
		"nftId":      nil,
		"from":       viewer,
		"active":     true,
	}
	var activities []*entity.Activity
	total, err := execute(ctx, r.coll, base, plan, &activities)
	return activities, total, err
}

func (r *mongoActivityRepository) ListByParty(ctx context.Context, wallet string, plan query.Plan) ([]*entity.Activity, int64, error) {
	base := bson.M{"$or": bson.A{
		bson.M{"from": walletPattern(wallet)},
		bson.M{"to": walletPattern(wallet)},
	}}
	var activities []*entity.Activity
	total, err := execute(ctx, r.coll, base, plan, &activities)
	return activities, total, err
}

func (r *mongoActivityRepository) ListOpenByParty(ctx context.Context, wallet string, plan query.Plan) ([]*entity.Activity, int64, error) {
	base := bson.M{
		"active": true,
		"$and": bson.A{
			bson.M{"$or": bson.A{
				bson.M{"from": walletPattern(wallet)},
				bson.M{"to": walletPattern(wallet)},
			}},
			bson.M{"$or": bson.A{
				bson.M{"type": entity.ActivityList},
				bson.M{"type": entity.ActivityOffer},
				bson.M{"type": entity.ActivityOfferCollection},
			}},
		},
	}
	var activities []*entity.Activity
	total, err := execute(ctx, r.coll, base, plan, &activities)
	return activities, total, err
}

func (r *mongoActivityRepository) ActiveCollectionOffer(ctx context.Context, collectionID, viewer string) (*entity.Activity, error) {
	filter := bson.M{
		"collection": collectionID,
		"type":       entity.ActivityOfferCollection,
		"nftId":      nil,
		"active":     true,
		"from":       walletPattern(viewer),
	}
	var activity entity.Activity
	if err := r.coll.FindOne(ctx, filter).Decode(&activity); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NotFound("collection offer", err)
		}
		return nil, errors.Internal("Failed to get collection offer", err)
	}
	return &activity, nil
}

func (r *mongoActivityRepository) MinActiveListPrice(ctx context.Context, collectionID string) (float64, error) {
	filter := bson.M{
		"collection": collectionID,
		"price":      bson.M{"$ne": nil},
		"active":     true,
		"type":       entity.ActivityList,
	}
	opts := options.Find().SetSort(bson.D{{Key: "price", Value: 1}}).SetLimit(1)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return 0, errors.Internal("Failed to query floor price", err)
	}
	var rows []entity.Activity
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, errors.Internal("Failed to decode floor price", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Price, nil
}

func (r *mongoActivityRepository) TradesSince(ctx context.Context, collectionID string, since int64) ([]*entity.Activity, error) {
	filter := bson.M{
		"collection": collectionID,
		"type":       bson.M{"$in": bson.A{entity.ActivityTransfer, entity.ActivitySale}},
		"date":       bson.M{"$gt": since},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, errors.Internal("Failed to query trades", err)
	}
	var activities []*entity.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, errors.Internal("Failed to decode trades", err)
	}
	return activities, nil
}

func (r *mongoActivityRepository) Insert(ctx context.Context, activity *entity.Activity) error {
	if activity.ID.IsZero() {
		activity.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, activity); err != nil {
		return errors.Internal("Failed to create a new activity", err)
	}
	return nil
}
