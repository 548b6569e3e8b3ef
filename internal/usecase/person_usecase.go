package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"arcmarket/internal/domain/entity"
	"arcmarket/internal/domain/repository"
	"arcmarket/internal/domain/service"
	"arcmarket/internal/query"
	"arcmarket/pkg/errors"
)

type PersonUsecase struct {
	persons     repository.PersonRepository
	items       repository.ItemRepository
	collections repository.CollectionRepository
	activities  repository.ActivityRepository
	enricher    *MetricsEnricher
	images      service.ImageStore
	now         func() time.Time
}

func NewPersonUsecase(
	persons repository.PersonRepository,
	items repository.ItemRepository,
	collections repository.CollectionRepository,
	activities repository.ActivityRepository,
	enricher *MetricsEnricher,
	images service.ImageStore,
) *PersonUsecase {
	return &PersonUsecase{
		persons:     persons,
		items:       items,
		collections: collections,
		activities:  activities,
		enricher:    enricher,
		images:      images,
		now:         time.Now,
	}
}

// FindAllOwners pages person records with their owned-item and
// created-collection counts attached.
func (u *PersonUsecase) FindAllOwners(ctx context.Context, filters query.Filters) (*PersonList, error) {
	plan := query.Compile(filters)
	if err := checkLimit(plan); err != nil {
		return nil, err
	}
	persons, count, err := u.persons.List(ctx, plan)
	if err != nil {
		return nil, err
	}
	if err := u.enricher.EnrichPersons(ctx, persons); err != nil {
		return nil, err
	}
	return &PersonList{Data: persons, Count: count, Page: plan.Page}, nil
}

// FindPerson resolves a wallet to its person record, creating a blank
// profile with nonce 0 on first sight. Lookups never 404 for a
// syntactically fine wallet.
func (u *PersonUsecase) FindPerson(ctx context.Context, wallet string) (*entity.Person, error) {
	// Lookup and create must key on the same form, otherwise a
	// checksummed wallet misses the stored lower-cased row and the
	// create-race retry never converges.
	wallet = strings.ToLower(wallet)
	person, err := u.persons.GetByWallet(ctx, wallet)
	if err != nil {
		if !errors.Is(err, errors.CodeNotFound) {
			return nil, err
		}
		person = &entity.Person{Wallet: wallet, Nonce: 0}
		if err := u.persons.Create(ctx, person); err != nil {
			// Lost the race to a concurrent first sight; read theirs.
			if errors.Is(err, errors.CodeConflict) {
				return u.FindPerson(ctx, wallet)
			}
			return nil, err
		}
	}
	u.enricher.EnrichPerson(ctx, person)
	return person, nil
}

// CreatePersonInput carries an explicit profile create request.
type CreatePersonInput struct {
	Wallet   string
	Username string
	Bio      string
	Social   string
	Email    string
	PhotoURL string
	OptIn    bool
}

// CreateOwner inserts a new profile. Wallet, username and email must
// not collide with any other person, usernames and emails compared
// case-insensitively.
func (u *PersonUsecase) CreateOwner(ctx context.Context, in CreatePersonInput) (*entity.Person, error) {
	if _, err := u.persons.GetByWallet(ctx, in.Wallet); err == nil {
		return nil, errors.Conflict("Current user has been created")
	} else if !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}
	if in.Username != "" {
		taken, err := u.persons.UsernameTaken(ctx, in.Username, strings.ToLower(in.Wallet))
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errors.Conflict("Username or Nickname already exists")
		}
	}
	if in.Email != "" {
		taken, err := u.persons.EmailTaken(ctx, in.Email, strings.ToLower(in.Wallet))
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errors.Conflict("Email already exists")
		}
	}

	person := &entity.Person{
		Wallet:   strings.ToLower(in.Wallet),
		Username: in.Username,
		Bio:      in.Bio,
		Social:   in.Social,
		Email:    in.Email,
		PhotoURL: in.PhotoURL,
		OptIn:    in.OptIn,
		Nonce:    0,
	}
	if err := u.persons.Create(ctx, person); err != nil {
		return nil, err
	}
	return person, nil
}

// UpdateOwner patches the profile with the given wallet. Username and
// email uniqueness excludes the person being updated, so resubmitting
// your own values is not a conflict.
func (u *PersonUsecase) UpdateOwner(ctx context.Context, wallet string, fields map[string]interface{}) (*entity.Person, error) {
	if username, ok := fields["username"].(string); ok && username != "" {
		taken, err := u.persons.UsernameTaken(ctx, username, wallet)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errors.Conflict("Username or Nickname already exists")
		}
	}
	if email, ok := fields["email"].(string); ok && email != "" {
		taken, err := u.persons.EmailTaken(ctx, email, wallet)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errors.Conflict("Email already exists")
		}
	}
	if err := u.persons.Update(ctx, wallet, fields); err != nil {
		return nil, err
	}
	return u.persons.GetByWallet(ctx, wallet)
}

// UpdateOwnerPhoto stores a new profile image and points the person at
// it.
func (u *PersonUsecase) UpdateOwnerPhoto(ctx context.Context, wallet, data, mimeType string) (*entity.Person, error) {
	if _, err := u.persons.GetByWallet(ctx, wallet); err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, errors.Validation("Current user not exists", nil)
		}
		return nil, err
	}
	name := fmt.Sprintf("%s_%d", wallet, u.now().UnixMilli())
	result, err := u.images.UploadBase64(ctx, data, name, mimeType, "profile")
	if err != nil {
		return nil, errors.Validation("image upload failed", err)
	}
	if err := u.persons.Update(ctx, wallet, map[string]interface{}{"photoUrl": result.Location}); err != nil {
		return nil, err
	}
	return u.FindPerson(ctx, wallet)
}

// GetOwnerItems pages the items owned by the wallet.
func (u *PersonUsecase) GetOwnerItems(ctx context.Context, wallet string, filters query.Filters) (*ItemList, error) {
	plan := query.Compile(filters)
	if err := checkLimit(plan); err != nil {
		return nil, err
	}
	items, count, err := u.items.ListByOwner(ctx, wallet, plan)
	if err != nil {
		return nil, err
	}
	return &ItemList{Data: items, Count: count, Page: plan.Page}, nil
}

// GetOwnerHistory pages the activities where the wallet is either
// party, most recent first unless the client sorts otherwise.
func (u *PersonUsecase) GetOwnerHistory(ctx context.Context, wallet string, filters query.Filters) (*ActivityList, error) {
	plan := query.Compile(filters)
	if err := checkLimit(plan); err != nil {
		return nil, err
	}
	plan = plan.WithSort("date", true)
	activities, count, err := u.activities.ListByParty(ctx, wallet, plan)
	if err != nil {
		return nil, err
	}
	if err := u.enricher.AttachTradeMetrics(ctx, activities); err != nil {
		return nil, err
	}
	return &ActivityList{Data: activities, Count: count, Page: plan.Page}, nil
}

// GetOwnerCollections pages the collections created by the wallet,
// fully enriched.
func (u *PersonUsecase) GetOwnerCollections(ctx context.Context, wallet string, filters query.Filters) (*CollectionList, error) {
	plan := query.Compile(filters)
	if err := checkLimit(plan); err != nil {
		return nil, err
	}
	collections, count, err := u.collections.ListByCreator(ctx, wallet, plan)
	if err != nil {
		return nil, err
	}
	if err := u.enricher.EnrichCollections(ctx, collections); err != nil {
		return nil, err
	}
	return &CollectionList{Data: collections, Count: count, Page: plan.Page}, nil
}

// GetOwnerOffers pages the wallet's open listings and offers, most
// recent first unless the client sorts otherwise.
func (u *PersonUsecase) GetOwnerOffers(ctx context.Context, wallet string, filters query.Filters) (*ActivityList, error) {
	plan := query.Compile(filters)
	if err := checkLimit(plan); err != nil {
		return nil, err
	}
	plan = plan.WithSort("date", true)
	activities, count, err := u.activities.ListOpenByParty(ctx, wallet, plan)
	if err != nil {
		return nil, err
	}
	if err := u.enricher.AttachItemDetails(ctx, activities); err != nil {
		return nil, err
	}
	return &ActivityList{Data: activities, Count: count, Page: plan.Page}, nil
}
