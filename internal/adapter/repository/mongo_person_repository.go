package repository

import (
	"context"
	"strings"
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

const personTable = "Person"

type mongoPersonRepository struct {
	coll *mongo.Collection
}

func NewMongoPersonRepository(db *mongo.Database) repository.PersonRepository {
	return &mongoPersonRepository{
		coll: db.Collection(personTable),
	}
}

func (r *mongoPersonRepository) GetByID(ctx context.Context, id string) (*entity.Person, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.Validation("Invalid creatorID", err)
	}
	var person entity.Person
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&person); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NotFound("person", err)
		}
		return nil, errors.Internal("Failed to get person", err)
	}
	return &person, nil
}

// Wallets are stored lower-cased; every wallet-keyed filter lowers the
// input so checksummed forms resolve to the same document.
func (r *mongoPersonRepository) GetByWallet(ctx context.Context, wallet string) (*entity.Person, error) {
	var person entity.Person
	if err := r.coll.FindOne(ctx, bson.M{"wallet": strings.ToLower(wallet)}).Decode(&person); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NotFound("person", err)
		}
		return nil, errors.Internal("Failed to get person", err)
	}
	return &person, nil
}

func (r *mongoPersonRepository) List(ctx context.Context, plan query.Plan) ([]*entity.Person, int64, error) {
	var persons []*entity.Person
	total, err := execute(ctx, r.coll, nil, plan, &persons)
	return persons, total, err
}

func (r *mongoPersonRepository) Create(ctx context.Context, person *entity.Person) error {
	person.Wallet = strings.ToLower(person.Wallet)
	if person.ID.IsZero() {
		person.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, person); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Conflict("Current user has been created")
		}
		return errors.Internal("Failed to create a new owner", err)
	}
	return nil
}

func (r *mongoPersonRepository) Update(ctx context.Context, wallet string, fields map[string]interface{}) error {
	patch := bson.M{}
	for k, v := range fields {
		patch[k] = v
	}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"wallet": strings.ToLower(wallet)}, bson.M{"$set": patch}); err != nil {
		return errors.Internal("Failed to update owner", err)
	}
	return nil
}

func (r *mongoPersonRepository) UsernameTaken(ctx context.Context, username, excludeWallet string) (bool, error) {
	return r.fieldTaken(ctx, "username", username, excludeWallet)
}

func (r *mongoPersonRepository) EmailTaken(ctx context.Context, email, excludeWallet string) (bool, error) {
	return r.fieldTaken(ctx, "email", email, excludeWallet)
}

func (r *mongoPersonRepository) fieldTaken(ctx context.Context, field, value, excludeWallet string) (bool, error) {
	filter := bson.M{
		field:    primitive.Regex{Pattern: value, Options: "i"},
		"wallet": bson.M{"$ne": strings.ToLower(excludeWallet)},
	}
	opts := options.Count().SetLimit(1)
	n, err := r.coll.CountDocuments(ctx, filter, opts)
	if err != nil {
		return false, errors.Internal("Failed to check "+field, err)
	}
	return n > 0, nil
}

func uniqueIndex(name string) *options.IndexOptions {
	return options.Index().SetName(name).SetUnique(true)
}

// EnsurePersonIndexes makes wallet unique at the store layer.
func EnsurePersonIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := db.Collection(personTable).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "wallet", Value: 1}},
		Options: uniqueIndex("person_wallet_unique"),
	})
	return err
}
