package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"arcmarket/internal/domain/entity"
	"arcmarket/internal/domain/repository"
	"arcmarket/internal/query"
	"arcmarket/pkg/errors"
)

const itemTable = "NFT"

type mongoItemRepository struct {
	coll *mongo.Collection
}

func NewMongoItemRepository(db *mongo.Database) repository.ItemRepository {
	return &mongoItemRepository{
		coll: db.Collection(itemTable),
	}
}

func itemKey(collectionID string, index int64) bson.M {
	return bson.M{"collection": collectionID, "index": index}
}

func (r *mongoItemRepository) GetByKey(ctx context.Context, collectionID string, index int64) (*entity.Item, error) {
	var item entity.Item
	if err := r.coll.FindOne(ctx, itemKey(collectionID, index)).Decode(&item); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NotFound("nft", err)
		}
		return nil, errors.Internal("Failed to get nft", err)
	}
	return &item, nil
}

func (r *mongoItemRepository) GetRef(ctx context.Context, collectionID string, index int64) (*entity.ItemRef, error) {
	opts := options.FindOne().SetProjection(bson.M{"artURI": 1, "name": 1, "contentType": 1, "_id": 0})
	var ref entity.ItemRef
	if err := r.coll.FindOne(ctx, itemKey(collectionID, index), opts).Decode(&ref); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NotFound("nft", err)
		}
		return nil, errors.Internal("Failed to get nft", err)
	}
	return &ref, nil
}

func (r *mongoItemRepository) ListByCollection(ctx context.Context, collectionID string, plan query.Plan) ([]*entity.Item, int64, error) {
	var items []*entity.Item
	total, err := execute(ctx, r.coll, bson.M{"collection": collectionID}, plan, &items)
	return items, total, err
}

func (r *mongoItemRepository) ListByOwner(ctx context.Context, wallet string, plan query.Plan) ([]*entity.Item, int64, error) {
	base := bson.M{"owner": walletPattern(wallet)}
	var items []*entity.Item
	total, err := execute(ctx, r.coll, base, plan, &items)
	return items, total, err
}

func (r *mongoItemRepository) Search(ctx context.Context, keywords []string, plan query.Plan) ([]*entity.Item, int64, error) {
	base := keywordPredicate([]string{"name", "description", "platform"}, keywords)
	var items []*entity.Item
	total, err := execute(ctx, r.coll, base, plan, &items)
	return items, total, err
}

func (r *mongoItemRepository) CountByCollection(ctx context.Context, collectionID string) (int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{"collection": collectionID})
	if err != nil {
		return 0, errors.Internal("Failed to count items", err)
	}
	return total, nil
}

// CountDistinctOwners groups the collection's items by owner and counts
// the groups, matching the store's aggregation primitive rather than a
// naive row count.
func (r *mongoItemRepository) CountDistinctOwners(ctx context.Context, collectionID string) (int64, error) {
	cursor, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"collection": collectionID}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$owner"}}},
		bson.D{{Key: "$count", Value: "count"}},
	})
	if err != nil {
		return 0, errors.Internal("Failed to count owners", err)
	}
	var rows []struct {
		Count int64 `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, errors.Internal("Failed to count owners", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Count, nil
}

func (r *mongoItemRepository) CountByOwner(ctx context.Context, wallet string) (int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{"owner": wallet})
	if err != nil {
		return 0, errors.Internal("Failed to count items", err)
	}
	return total, nil
}

func (r *mongoItemRepository) OwnerWallets(ctx context.Context, collectionID string) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "owner", bson.M{"collection": collectionID})
	if err != nil {
		return nil, errors.Internal("Failed to list owners", err)
	}
	wallets := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			wallets = append(wallets, s)
		}
	}
	return wallets, nil
}

func (r *mongoItemRepository) HasItems(ctx context.Context, collectionID string) (bool, error) {
	opts := options.Count().SetLimit(1)
	n, err := r.coll.CountDocuments(ctx, bson.M{"collection": collectionID}, opts)
	if err != nil {
		return false, errors.Internal("Failed to count items", err)
	}
	return n > 0, nil
}

func (r *mongoItemRepository) Create(ctx context.Context, item *entity.Item) error {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Conflict("Current nft has been created already")
		}
		return errors.Internal("Failed to create a new nft", err)
	}
	return nil
}

func (r *mongoItemRepository) SetOwner(ctx context.Context, collectionID string, index int64, owner string) error {
	_, err := r.coll.UpdateOne(ctx, itemKey(collectionID, index), bson.M{"$set": bson.M{"owner": owner}})
	if err != nil {
		return errors.Internal("Failed to update nft owner", err)
	}
	return nil
}

// EnsureItemIndexes makes the composite natural key unique at the store
// layer so a create race cannot insert the same item twice.
func EnsureItemIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := db.Collection(itemTable).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "collection", Value: 1}, {Key: "index", Value: 1}},
		Options: uniqueIndex("item_collection_index_unique"),
	})
	return err
}
