package usecase

import (
	"context"
	"strings"
	"time"

	"arcmarket/internal/domain/entity"
	"arcmarket/internal/domain/repository"
	"arcmarket/pkg/errors"
)

type ItemUsecase struct {
	items       repository.ItemRepository
	collections repository.CollectionRepository
	persons     repository.PersonRepository
	activities  repository.ActivityRepository
	now         func() time.Time
}

func NewItemUsecase(
	items repository.ItemRepository,
	collections repository.CollectionRepository,
	persons repository.PersonRepository,
	activities repository.ActivityRepository,
) *ItemUsecase {
	return &ItemUsecase{
		items:       items,
		collections: collections,
		persons:     persons,
		activities:  activities,
		now:         time.Now,
	}
}

// GetItemDetail resolves one item by its composite key.
func (u *ItemUsecase) GetItemDetail(ctx context.Context, collectionID string, index int64) (*entity.Item, error) {
	return u.items.GetByKey(ctx, collectionID, index)
}

// GetItemHistory returns the activity rows of one item, resolved from
// the event log rather than from a stored array on the item.
func (u *ItemUsecase) GetItemHistory(ctx context.Context, collectionID string, index int64) ([]*entity.Activity, error) {
	if _, err := u.items.GetByKey(ctx, collectionID, index); err != nil {
		return nil, err
	}
	return u.activities.ListByItem(ctx, collectionID, index)
}

// CreateItemInput carries an item mint request. Owner and creator are
// wallet identities that must already have person records.
type CreateItemInput struct {
	Collection  string
	Index       int64
	Name        string
	Description string
	ArtURI      string
	ContentType string
	Price       float64
	Owner       string
	Creator     string
}

// CreateItem inserts a new item. The composite (collection, index) key
// may exist at most once; every check runs before the single insert, so
// a rejected request leaves the store untouched.
func (u *ItemUsecase) CreateItem(ctx context.Context, in CreateItemInput) (*entity.Item, error) {
	if _, err := u.items.GetByKey(ctx, in.Collection, in.Index); err == nil {
		return nil, errors.Conflict("Current nft has been created already")
	} else if !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}
	if _, err := u.collections.GetByID(ctx, in.Collection); err != nil {
		return nil, err
	}
	if _, err := u.persons.GetByWallet(ctx, in.Owner); err != nil {
		return nil, err
	}
	if _, err := u.persons.GetByWallet(ctx, in.Creator); err != nil {
		return nil, err
	}

	item := &entity.Item{
		Collection:  in.Collection,
		Index:       in.Index,
		Name:        in.Name,
		Description: in.Description,
		ArtURI:      in.ArtURI,
		ContentType: in.ContentType,
		Owner:       strings.ToLower(in.Owner),
		Creator:     strings.ToLower(in.Creator),
		Price:       in.Price,
		Status:      "created",
		PriceHistory: []entity.PricePoint{
			{Price: in.Price, Date: u.now().Unix()},
		},
	}
	if err := u.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// TransferItem moves ownership from one wallet to another and records a
// Transfer row in the event log. Owner and history never live on parent
// documents, so the write touches the item and the log only.
func (u *ItemUsecase) TransferItem(ctx context.Context, collectionID string, index int64, from, to string, price float64) (*entity.Activity, error) {
	item, err := u.items.GetByKey(ctx, collectionID, index)
	if err != nil {
		return nil, err
	}
	fromOwner, err := u.persons.GetByWallet(ctx, from)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(item.Owner, fromOwner.Wallet) {
		return nil, errors.Validation("from wallet is not the current owner", nil)
	}
	toOwner, err := u.persons.GetByWallet(ctx, to)
	if err != nil {
		return nil, err
	}

	if err := u.items.SetOwner(ctx, collectionID, index, strings.ToLower(toOwner.Wallet)); err != nil {
		return nil, err
	}
	activity := &entity.Activity{
		Collection: collectionID,
		NftID:      &index,
		Type:       entity.ActivityTransfer,
		Price:      price,
		From:       strings.ToLower(fromOwner.Wallet),
		To:         strings.ToLower(toOwner.Wallet),
		Date:       u.now().Unix(),
		Active:     false,
	}
	if err := u.activities.Insert(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}
