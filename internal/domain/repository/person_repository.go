package repository

import (
	"context"

	"arcmarket/internal/domain/entity"
	"arcmarket/internal/query"
)

type PersonRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Person, error)
	GetByWallet(ctx context.Context, wallet string) (*entity.Person, error)

	List(ctx context.Context, plan query.Plan) ([]*entity.Person, int64, error)

	Create(ctx context.Context, person *entity.Person) error
	// Update applies a partial patch to the person with the given wallet.
	// Keys are stored field names.
	Update(ctx context.Context, wallet string, fields map[string]interface{}) error

	// UsernameTaken and EmailTaken check case-insensitively against all
	// persons other than excludeWallet.
	UsernameTaken(ctx context.Context, username, excludeWallet string) (bool, error)
	EmailTaken(ctx context.Context, email, excludeWallet string) (bool, error)
}
