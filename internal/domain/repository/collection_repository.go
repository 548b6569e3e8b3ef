package repository

import (
	"context"

	"arcmarket/internal/domain/entity"
	"arcmarket/internal/query"
)

// CollectionRepository is the only code that knows the collection store
// names and id shapes. List methods run a compiled plan against a fixed
// base constraint and return the page plus the total count of matching
// rows with skip/limit ignored.
type CollectionRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Collection, error)
	GetByURL(ctx context.Context, url string) (*entity.Collection, error)
	GetByName(ctx context.Context, name string) (*entity.Collection, error)

	List(ctx context.Context, plan query.Plan) ([]*entity.Collection, int64, error)
	ListByTag(ctx context.Context, tag string, plan query.Plan) ([]*entity.Collection, int64, error)
	ListByCreator(ctx context.Context, wallet string, plan query.Plan) ([]*entity.Collection, int64, error)
	Search(ctx context.Context, keywords []string, plan query.Plan) ([]*entity.Collection, int64, error)

	CountByCreator(ctx context.Context, wallet string) (int64, error)

	Create(ctx context.Context, collection *entity.Collection) error
	Replace(ctx context.Context, collection *entity.Collection) error
	Delete(ctx context.Context, id string) error
}
