package repository

import (
	"context"

	"arcmarket/internal/domain/entity"
	"arcmarket/internal/query"
)

type ItemRepository interface {
	// GetByKey resolves the composite natural key (collection, index).
	GetByKey(ctx context.Context, collectionID string, index int64) (*entity.Item, error)
	// GetRef returns the minimal projection for activity denormalization.
	GetRef(ctx context.Context, collectionID string, index int64) (*entity.ItemRef, error)

	ListByCollection(ctx context.Context, collectionID string, plan query.Plan) ([]*entity.Item, int64, error)
	ListByOwner(ctx context.Context, wallet string, plan query.Plan) ([]*entity.Item, int64, error)
	Search(ctx context.Context, keywords []string, plan query.Plan) ([]*entity.Item, int64, error)

	CountByCollection(ctx context.Context, collectionID string) (int64, error)
	// CountDistinctOwners groups items of the collection by owner and
	// counts the groups.
	CountDistinctOwners(ctx context.Context, collectionID string) (int64, error)
	CountByOwner(ctx context.Context, wallet string) (int64, error)
	// OwnerWallets returns the distinct owner identities of a collection.
	OwnerWallets(ctx context.Context, collectionID string) ([]string, error)
	HasItems(ctx context.Context, collectionID string) (bool, error)

	Create(ctx context.Context, item *entity.Item) error
	SetOwner(ctx context.Context, collectionID string, index int64, owner string) error
}
