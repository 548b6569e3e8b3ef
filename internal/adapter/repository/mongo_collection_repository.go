package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"arcmarket/internal/domain/entity"
	"arcmarket/internal/domain/repository"
	"arcmarket/internal/query"
	"arcmarket/pkg/errors"
)

const collectionTable = "NFTCollection"

type mongoCollectionRepository struct {
	coll *mongo.Collection
}

func NewMongoCollectionRepository(db *mongo.Database) repository.CollectionRepository {
	return &mongoCollectionRepository{
		coll: db.Collection(collectionTable),
	}
}

func (r *mongoCollectionRepository) GetByID(ctx context.Context, id string) (*entity.Collection, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.Validation("Invalid CollectionId", err)
	}

	var collection entity.Collection
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&collection); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NotFound("collection", err)
		}
		return nil, errors.Internal("Failed to get collection", err)
	}
	return &collection, nil
}

func (r *mongoCollectionRepository) GetByURL(ctx context.Context, url string) (*entity.Collection, error) {
	var collection entity.Collection
	if err := r.coll.FindOne(ctx, bson.M{"url": url}).Decode(&collection); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NotFound("collection", err)
		}
		return nil, errors.Internal("Failed to get collection", err)
	}
	return &collection, nil
}

// GetByName matches case-insensitively: "Apes" and "apes" are the same
// name for uniqueness purposes.
func (r *mongoCollectionRepository) GetByName(ctx context.Context, name string) (*entity.Collection, error) {
	filter := bson.M{"name": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"}}
	var collection entity.Collection
	if err := r.coll.FindOne(ctx, filter).Decode(&collection); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NotFound("collection", err)
		}
		return nil, errors.Internal("Failed to get collection", err)
	}
	return &collection, nil
}

func (r *mongoCollectionRepository) List(ctx context.Context, plan query.Plan) ([]*entity.Collection, int64, error) {
	var collections []*entity.Collection
	total, err := execute(ctx, r.coll, nil, plan, &collections)
	return collections, total, err
}

func (r *mongoCollectionRepository) ListByTag(ctx context.Context, tag string, plan query.Plan) ([]*entity.Collection, int64, error) {
	base := bson.M{"tagCollection": primitive.Regex{Pattern: tag, Options: "i"}}
	var collections []*entity.Collection
	total, err := execute(ctx, r.coll, base, plan, &collections)
	return collections, total, err
}

func (r *mongoCollectionRepository) ListByCreator(ctx context.Context, wallet string, plan query.Plan) ([]*entity.Collection, int64, error) {
	base := bson.M{"creator": walletPattern(wallet)}
	var collections []*entity.Collection
	total, err := execute(ctx, r.coll, base, plan, &collections)
	return collections, total, err
}

func (r *mongoCollectionRepository) Search(ctx context.Context, keywords []string, plan query.Plan) ([]*entity.Collection, int64, error) {
	base := keywordPredicate([]string{"name", "description", "category", "platform", "links"}, keywords)
	var collections []*entity.Collection
	total, err := execute(ctx, r.coll, base, plan, &collections)
	return collections, total, err
}

func (r *mongoCollectionRepository) CountByCreator(ctx context.Context, wallet string) (int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{"creator": walletPattern(wallet)})
	if err != nil {
		return 0, errors.Internal("Failed to count collections", err)
	}
	return total, nil
}

func (r *mongoCollectionRepository) Create(ctx context.Context, collection *entity.Collection) error {
	if collection.ID.IsZero() {
		collection.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, collection); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Duplicate("Same collection name or url detected")
		}
		return errors.Internal("Failed to create a new collection", err)
	}
	return nil
}

func (r *mongoCollectionRepository) Replace(ctx context.Context, collection *entity.Collection) error {
	// Whole-document replace, last-writer-wins. There is no optimistic
	// concurrency token; an accepted gap, not an oversight.
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": collection.ID}, collection)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Duplicate("Same collection name or url detected")
		}
		return errors.Internal("Failed to update collection", err)
	}
	return nil
}

func (r *mongoCollectionRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.Validation("Invalid CollectionId", err)
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return errors.Internal("Failed to delete collection", err)
	}
	return nil
}

// EnsureCollectionIndexes creates the unique indexes that close the
// check-then-insert race at the store layer.
func EnsureCollectionIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := db.Collection(collectionTable).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "url", Value: 1}}, Options: uniqueIndex("collection_url_unique")},
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: uniqueIndex("collection_name_unique")},
	})
	return err
}
