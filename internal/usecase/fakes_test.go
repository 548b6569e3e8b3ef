package usecase

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"arcmarket/internal/domain/entity"
	"arcmarket/internal/domain/service"
	"arcmarket/internal/query"
	"arcmarket/pkg/errors"
)

// The fakes below back the usecase tests with slice-based stores. Every
// method bumps the calls counter so tests can assert that a rejected
// request never touched the store.

func paginate[T any](plan query.Plan, rows []T) ([]T, int64) {
	total := int64(len(rows))
	if plan.Skip >= total {
		return nil, total
	}
	rows = rows[plan.Skip:]
	if plan.Limit > 0 && int64(len(rows)) > plan.Limit {
		rows = rows[:plan.Limit]
	}
	return rows, total
}

func matchesAny(keywords []string, fields ...string) bool {
	for _, keyword := range keywords {
		for _, field := range fields {
			if keyword != "" && strings.Contains(strings.ToLower(field), strings.ToLower(keyword)) {
				return true
			}
		}
	}
	return false
}

type fakeCollectionRepo struct {
	rows  []*entity.Collection
	calls int
}

func (r *fakeCollectionRepo) GetByID(_ context.Context, id string) (*entity.Collection, error) {
	r.calls++
	for _, c := range r.rows {
		if c.ID.Hex() == id {
			return c, nil
		}
	}
	return nil, errors.NotFound("collection", nil)
}

func (r *fakeCollectionRepo) GetByURL(_ context.Context, url string) (*entity.Collection, error) {
	r.calls++
	for _, c := range r.rows {
		if c.URL == url {
			return c, nil
		}
	}
	return nil, errors.NotFound("collection", nil)
}

func (r *fakeCollectionRepo) GetByName(_ context.Context, name string) (*entity.Collection, error) {
	r.calls++
	for _, c := range r.rows {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, errors.NotFound("collection", nil)
}

func (r *fakeCollectionRepo) List(_ context.Context, plan query.Plan) ([]*entity.Collection, int64, error) {
	r.calls++
	rows, total := paginate(plan, r.rows)
	return rows, total, nil
}

func (r *fakeCollectionRepo) ListByTag(_ context.Context, tag string, plan query.Plan) ([]*entity.Collection, int64, error) {
	r.calls++
	var matched []*entity.Collection
	for _, c := range r.rows {
		if c.Tag == tag {
			matched = append(matched, c)
		}
	}
	rows, total := paginate(plan, matched)
	return rows, total, nil
}

func (r *fakeCollectionRepo) ListByCreator(_ context.Context, wallet string, plan query.Plan) ([]*entity.Collection, int64, error) {
	r.calls++
	var matched []*entity.Collection
	for _, c := range r.rows {
		if strings.EqualFold(c.Creator, wallet) {
			matched = append(matched, c)
		}
	}
	rows, total := paginate(plan, matched)
	return rows, total, nil
}

func (r *fakeCollectionRepo) Search(_ context.Context, keywords []string, plan query.Plan) ([]*entity.Collection, int64, error) {
	r.calls++
	var matched []*entity.Collection
	for _, c := range r.rows {
		fields := append([]string{c.Name, c.Description, c.Category, c.Platform}, c.Links...)
		if matchesAny(keywords, fields...) {
			matched = append(matched, c)
		}
	}
	rows, total := paginate(plan, matched)
	return rows, total, nil
}

func (r *fakeCollectionRepo) CountByCreator(_ context.Context, wallet string) (int64, error) {
	r.calls++
	var n int64
	for _, c := range r.rows {
		if strings.EqualFold(c.Creator, wallet) {
			n++
		}
	}
	return n, nil
}

func (r *fakeCollectionRepo) Create(_ context.Context, collection *entity.Collection) error {
	r.calls++
	for _, c := range r.rows {
		if strings.EqualFold(c.Name, collection.Name) || c.URL == collection.URL {
			return errors.Duplicate("collection already exists")
		}
	}
	collection.ID = primitive.NewObjectID()
	r.rows = append(r.rows, collection)
	return nil
}

func (r *fakeCollectionRepo) Replace(_ context.Context, collection *entity.Collection) error {
	r.calls++
	for i, c := range r.rows {
		if c.ID == collection.ID {
			r.rows[i] = collection
			return nil
		}
	}
	return errors.NotFound("collection", nil)
}

func (r *fakeCollectionRepo) Delete(_ context.Context, id string) error {
	r.calls++
	for i, c := range r.rows {
		if c.ID.Hex() == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("collection", nil)
}

type fakeItemRepo struct {
	rows  []*entity.Item
	calls int
}

func (r *fakeItemRepo) GetByKey(_ context.Context, collectionID string, index int64) (*entity.Item, error) {
	r.calls++
	for _, item := range r.rows {
		if item.Collection == collectionID && item.Index == index {
			return item, nil
		}
	}
	return nil, errors.NotFound("nft", nil)
}

func (r *fakeItemRepo) GetRef(ctx context.Context, collectionID string, index int64) (*entity.ItemRef, error) {
	item, err := r.GetByKey(ctx, collectionID, index)
	if err != nil {
		return nil, err
	}
	return &entity.ItemRef{ArtURI: item.ArtURI, Name: item.Name, ContentType: item.ContentType}, nil
}

func (r *fakeItemRepo) ListByCollection(_ context.Context, collectionID string, plan query.Plan) ([]*entity.Item, int64, error) {
	r.calls++
	var matched []*entity.Item
	for _, item := range r.rows {
		if item.Collection == collectionID {
			matched = append(matched, item)
		}
	}
	rows, total := paginate(plan, matched)
	return rows, total, nil
}

func (r *fakeItemRepo) ListByOwner(_ context.Context, wallet string, plan query.Plan) ([]*entity.Item, int64, error) {
	r.calls++
	var matched []*entity.Item
	for _, item := range r.rows {
		if strings.EqualFold(item.Owner, wallet) {
			matched = append(matched, item)
		}
	}
	rows, total := paginate(plan, matched)
	return rows, total, nil
}

func (r *fakeItemRepo) Search(_ context.Context, keywords []string, plan query.Plan) ([]*entity.Item, int64, error) {
	r.calls++
	var matched []*entity.Item
	for _, item := range r.rows {
		if matchesAny(keywords, item.Name, item.Description) {
			matched = append(matched, item)
		}
	}
	rows, total := paginate(plan, matched)
	return rows, total, nil
}

func (r *fakeItemRepo) CountByCollection(_ context.Context, collectionID string) (int64, error) {
	r.calls++
	var n int64
	for _, item := range r.rows {
		if item.Collection == collectionID {
			n++
		}
	}
	return n, nil
}

func (r *fakeItemRepo) CountDistinctOwners(_ context.Context, collectionID string) (int64, error) {
	r.calls++
	owners := map[string]struct{}{}
	for _, item := range r.rows {
		if item.Collection == collectionID {
			owners[strings.ToLower(item.Owner)] = struct{}{}
		}
	}
	return int64(len(owners)), nil
}

func (r *fakeItemRepo) CountByOwner(_ context.Context, wallet string) (int64, error) {
	r.calls++
	var n int64
	for _, item := range r.rows {
		if strings.EqualFold(item.Owner, wallet) {
			n++
		}
	}
	return n, nil
}

func (r *fakeItemRepo) OwnerWallets(_ context.Context, collectionID string) ([]string, error) {
	r.calls++
	seen := map[string]struct{}{}
	var wallets []string
	for _, item := range r.rows {
		if item.Collection != collectionID {
			continue
		}
		if _, ok := seen[item.Owner]; ok {
			continue
		}
		seen[item.Owner] = struct{}{}
		wallets = append(wallets, item.Owner)
	}
	return wallets, nil
}

func (r *fakeItemRepo) HasItems(_ context.Context, collectionID string) (bool, error) {
	r.calls++
	for _, item := range r.rows {
		if item.Collection == collectionID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeItemRepo) Create(_ context.Context, item *entity.Item) error {
	r.calls++
	for _, existing := range r.rows {
		if existing.Collection == item.Collection && existing.Index == item.Index {
			return errors.Conflict("Current nft has been created already")
		}
	}
	item.ID = primitive.NewObjectID()
	r.rows = append(r.rows, item)
	return nil
}

func (r *fakeItemRepo) SetOwner(_ context.Context, collectionID string, index int64, owner string) error {
	r.calls++
	for _, item := range r.rows {
		if item.Collection == collectionID && item.Index == index {
			item.Owner = owner
			return nil
		}
	}
	return errors.NotFound("nft", nil)
}

type fakePersonRepo struct {
	rows  []*entity.Person
	calls int
}

func (r *fakePersonRepo) GetByID(_ context.Context, id string) (*entity.Person, error) {
	r.calls++
	for _, p := range r.rows {
		if p.ID.Hex() == id {
			return p, nil
		}
	}
	return nil, errors.NotFound("person", nil)
}

// Wallet lookups mirror the mongo adapter: the key is lowered, then
// compared byte-exact against the stored lower-cased value.
func (r *fakePersonRepo) GetByWallet(_ context.Context, wallet string) (*entity.Person, error) {
	r.calls++
	wallet = strings.ToLower(wallet)
	for _, p := range r.rows {
		if p.Wallet == wallet {
			return p, nil
		}
	}
	return nil, errors.NotFound("person", nil)
}

func (r *fakePersonRepo) List(_ context.Context, plan query.Plan) ([]*entity.Person, int64, error) {
	r.calls++
	rows, total := paginate(plan, r.rows)
	return rows, total, nil
}

func (r *fakePersonRepo) Create(_ context.Context, person *entity.Person) error {
	r.calls++
	person.Wallet = strings.ToLower(person.Wallet)
	for _, p := range r.rows {
		if p.Wallet == person.Wallet {
			return errors.Conflict("Current user has been created")
		}
	}
	person.ID = primitive.NewObjectID()
	r.rows = append(r.rows, person)
	return nil
}

func (r *fakePersonRepo) Update(_ context.Context, wallet string, fields map[string]interface{}) error {
	r.calls++
	wallet = strings.ToLower(wallet)
	for _, p := range r.rows {
		if p.Wallet != wallet {
			continue
		}
		if v, ok := fields["username"].(string); ok {
			p.Username = v
		}
		if v, ok := fields["bio"].(string); ok {
			p.Bio = v
		}
		if v, ok := fields["social"].(string); ok {
			p.Social = v
		}
		if v, ok := fields["email"].(string); ok {
			p.Email = v
		}
		if v, ok := fields["photoUrl"].(string); ok {
			p.PhotoURL = v
		}
		return nil
	}
	return errors.NotFound("person", nil)
}

func (r *fakePersonRepo) UsernameTaken(_ context.Context, username, excludeWallet string) (bool, error) {
	r.calls++
	for _, p := range r.rows {
		if strings.EqualFold(p.Username, username) && p.Wallet != strings.ToLower(excludeWallet) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePersonRepo) EmailTaken(_ context.Context, email, excludeWallet string) (bool, error) {
	r.calls++
	for _, p := range r.rows {
		if strings.EqualFold(p.Email, email) && p.Wallet != strings.ToLower(excludeWallet) {
			return true, nil
		}
	}
	return false, nil
}

type fakeActivityRepo struct {
	rows  []*entity.Activity
	calls int
}

func (r *fakeActivityRepo) byCollection(collectionID string) []*entity.Activity {
	var matched []*entity.Activity
	for _, a := range r.rows {
		if a.Collection == collectionID {
			matched = append(matched, a)
		}
	}
	return matched
}

func (r *fakeActivityRepo) ListByCollection(_ context.Context, collectionID string, plan query.Plan) ([]*entity.Activity, int64, error) {
	r.calls++
	rows, total := paginate(plan, r.byCollection(collectionID))
	return rows, total, nil
}

func (r *fakeActivityRepo) AllByCollection(_ context.Context, collectionID string) ([]*entity.Activity, error) {
	r.calls++
	return r.byCollection(collectionID), nil
}

func (r *fakeActivityRepo) ListByItem(_ context.Context, collectionID string, index int64) ([]*entity.Activity, error) {
	r.calls++
	var matched []*entity.Activity
	for _, a := range r.rows {
		if a.Collection == collectionID && a.NftID != nil && *a.NftID == index {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

func (r *fakeActivityRepo) ListCollectionOffers(_ context.Context, collectionID, viewer string, plan query.Plan) ([]*entity.Activity, int64, error) {
	r.calls++
	var matched []*entity.Activity
	for _, a := range r.rows {
		if a.Collection == collectionID && a.NftID == nil && a.Active && strings.EqualFold(a.From, viewer) {
			matched = append(matched, a)
		}
	}
	rows, total := paginate(plan, matched)
	return rows, total, nil
}

func (r *fakeActivityRepo) ListByParty(_ context.Context, wallet string, plan query.Plan) ([]*entity.Activity, int64, error) {
	r.calls++
	var matched []*entity.Activity
	for _, a := range r.rows {
		if strings.EqualFold(a.From, wallet) || strings.EqualFold(a.To, wallet) {
			matched = append(matched, a)
		}
	}
	rows, total := paginate(plan, matched)
	return rows, total, nil
}

func (r *fakeActivityRepo) ListOpenByParty(_ context.Context, wallet string, plan query.Plan) ([]*entity.Activity, int64, error) {
	r.calls++
	var matched []*entity.Activity
	for _, a := range r.rows {
		party := strings.EqualFold(a.From, wallet) || strings.EqualFold(a.To, wallet)
		open := a.Type == entity.ActivityList || a.Type == entity.ActivityOffer || a.Type == entity.ActivityOfferCollection
		if a.Active && party && open {
			matched = append(matched, a)
		}
	}
	rows, total := paginate(plan, matched)
	return rows, total, nil
}

func (r *fakeActivityRepo) ActiveCollectionOffer(_ context.Context, collectionID, viewer string) (*entity.Activity, error) {
	r.calls++
	for _, a := range r.rows {
		if a.Collection == collectionID && a.NftID == nil && a.Active &&
			a.Type == entity.ActivityOfferCollection && strings.EqualFold(a.From, viewer) {
			return a, nil
		}
	}
	return nil, errors.NotFound("offer", nil)
}

func (r *fakeActivityRepo) MinActiveListPrice(_ context.Context, collectionID string) (float64, error) {
	r.calls++
	var min float64
	found := false
	for _, a := range r.rows {
		if a.Collection != collectionID || a.Type != entity.ActivityList || !a.Active {
			continue
		}
		if !found || a.Price < min {
			min = a.Price
			found = true
		}
	}
	return min, nil
}

func (r *fakeActivityRepo) TradesSince(_ context.Context, collectionID string, since int64) ([]*entity.Activity, error) {
	r.calls++
	var matched []*entity.Activity
	for _, a := range r.rows {
		trade := a.Type == entity.ActivityTransfer || a.Type == entity.ActivitySale
		if a.Collection == collectionID && trade && a.Date > since {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

func (r *fakeActivityRepo) Insert(_ context.Context, activity *entity.Activity) error {
	r.calls++
	activity.ID = primitive.NewObjectID()
	r.rows = append(r.rows, activity)
	return nil
}

type fakeImageStore struct {
	uploads  []string
	explicit bool
	calls    int
}

func (s *fakeImageStore) UploadBase64(_ context.Context, data, name, mimeType, category string) (*service.UploadResult, error) {
	s.calls++
	key := category + "/" + name
	s.uploads = append(s.uploads, key)
	return &service.UploadResult{
		Location: "https://assets.test/" + key,
		Key:      key,
		Explicit: s.explicit,
	}, nil
}

type fakeModeration struct {
	verdict bool
	calls   int
}

func (m *fakeModeration) Scan(_ context.Context, key string) (bool, error) {
	m.calls++
	return m.verdict, nil
}
