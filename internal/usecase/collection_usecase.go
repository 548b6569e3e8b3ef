package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"arcmarket/internal/domain/entity"
	"arcmarket/internal/domain/repository"
	"arcmarket/internal/domain/service"
	"arcmarket/internal/query"
	"arcmarket/pkg/errors"
	"arcmarket/pkg/utils"
)

// HotTag marks collections surfaced on the hot listing.
const HotTag = "HOT"

// topListingSize is the pinned page size of the top-collections view.
const topListingSize = 10

// ContractAddresses holds the default contracts assigned to new
// collections per token standard.
type ContractAddresses struct {
	ARC721  string
	ARC1155 string
}

type CollectionUsecase struct {
	collections repository.CollectionRepository
	items       repository.ItemRepository
	persons     repository.PersonRepository
	activities  repository.ActivityRepository
	enricher    *MetricsEnricher
	images      service.ImageStore
	moderation  service.ModerationService
	contracts   ContractAddresses
}

func NewCollectionUsecase(
	collections repository.CollectionRepository,
	items repository.ItemRepository,
	persons repository.PersonRepository,
	activities repository.ActivityRepository,
	enricher *MetricsEnricher,
	images service.ImageStore,
	moderation service.ModerationService,
	contracts ContractAddresses,
) *CollectionUsecase {
	return &CollectionUsecase{
		collections: collections,
		items:       items,
		persons:     persons,
		activities:  activities,
		enricher:    enricher,
		images:      images,
		moderation:  moderation,
		contracts:   contracts,
	}
}

// checkLimit fails a request whose resolved page limit breaks the
// ceiling before any store query runs.
func checkLimit(plan query.Plan) error {
	if !plan.WithinLimit() {
		return errors.LimitExceeded()
	}
	return nil
}

// GetCollections pages all collections per the client filters, fully
// enriched.
func (u *CollectionUsecase) GetCollections(ctx context.Context, filters query.Filters) (*CollectionList, error) {
	plan := query.Compile(filters)
	if err := checkLimit(plan); err != nil {
		return nil, err
	}
	collections, count, err := u.collections.List(ctx, plan)
	if err != nil {
		return nil, err
	}
	if err := u.enricher.EnrichCollections(ctx, collections); err != nil {
		return nil, err
	}
	return &CollectionList{Data: collections, Count: count, Page: plan.Page}, nil
}

// GetTopCollections returns the ten highest-volume collections. Client
// paging and sort are ignored.
func (u *CollectionUsecase) GetTopCollections(ctx context.Context, filters query.Filters) (*CollectionList, error) {
	plan := query.Compile(filters)
	plan.Sort = &query.Sort{Field: "volume", Descending: true}
	plan = plan.WithForcedLimit(topListingSize)
	collections, count, err := u.collections.List(ctx, plan)
	if err != nil {
		return nil, err
	}
	if err := u.enricher.EnrichCollections(ctx, collections); err != nil {
		return nil, err
	}
	return &CollectionList{Data: collections, Count: count, Page: plan.Page}, nil
}

// GetHotCollections pages the collections tagged hot.
func (u *CollectionUsecase) GetHotCollections(ctx context.Context, filters query.Filters) (*CollectionList, error) {
	return u.GetTagCollections(ctx, HotTag, filters)
}

// GetTagCollections pages collections carrying the given tag.
func (u *CollectionUsecase) GetTagCollections(ctx context.Context, tag string, filters query.Filters) (*CollectionList, error) {
	plan := query.Compile(filters)
	if err := checkLimit(plan); err != nil {
		return nil, err
	}
	collections, count, err := u.collections.ListByTag(ctx, tag, plan)
	if err != nil {
		return nil, err
	}
	if err := u.enricher.EnrichCollections(ctx, collections); err != nil {
		return nil, err
	}
	return &CollectionList{Data: collections, Count: count, Page: plan.Page}, nil
}

// Search matches collections and items against the keyword. The keyword
// is tokenized on spaces and the whole phrase is kept as one extra
// token; any token matching any searchable field is a hit. Collections
// come back highest volume first and fully enriched; items come back
// raw.
func (u *CollectionUsecase) Search(ctx context.Context, keyword string, filters query.Filters) (*SearchResult, error) {
	plan := query.Compile(filters)
	if err := checkLimit(plan); err != nil {
		return nil, err
	}
	keywords := append(strings.Fields(keyword), keyword)

	collectionPlan := plan
	collectionPlan.Sort = &query.Sort{Field: "volume", Descending: true}
	collections, _, err := u.collections.Search(ctx, keywords, collectionPlan)
	if err != nil {
		return nil, err
	}
	if err := u.enricher.EnrichCollections(ctx, collections); err != nil {
		return nil, err
	}

	items, _, err := u.items.Search(ctx, keywords, plan)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Collections: collections, Items: items}, nil
}

// GetCollectionDetail returns one collection fully enriched. When a
// viewer identity is known its open collection offer is attached.
func (u *CollectionUsecase) GetCollectionDetail(ctx context.Context, collectionID, viewer string) (*entity.Collection, error) {
	collection, err := u.collections.GetByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	u.enricher.EnrichCollectionDetail(ctx, collection, viewer)
	return collection, nil
}

// GetCollectionByURL resolves a collection by its unique url slug.
func (u *CollectionUsecase) GetCollectionByURL(ctx context.Context, url string) (*entity.Collection, error) {
	collection, err := u.collections.GetByURL(ctx, url)
	if err != nil {
		return nil, err
	}
	u.enricher.EnrichCollection(ctx, collection)
	return collection, nil
}

// GetOwners resolves every distinct item owner of the collection to its
// person record. Wallets with no profile yet come back as bare wallet
// stubs rather than being dropped, so the count matches the distinct
// owner count.
func (u *CollectionUsecase) GetOwners(ctx context.Context, collectionID string) (*PersonList, error) {
	if _, err := u.collections.GetByID(ctx, collectionID); err != nil {
		return nil, err
	}
	wallets, err := u.items.OwnerWallets(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	owners := make([]*entity.Person, len(wallets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for i, wallet := range wallets {
		i, wallet := i, wallet
		g.Go(func() error {
			person, err := u.persons.GetByWallet(gctx, wallet)
			if err != nil {
				if errors.Is(err, errors.CodeNotFound) {
					owners[i] = &entity.Person{Wallet: wallet}
					return nil
				}
				return err
			}
			owners[i] = person
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &PersonList{Data: owners, Count: int64(len(owners)), Page: 1}, nil
}

// GetItems pages the items of one collection.
func (u *CollectionUsecase) GetItems(ctx context.Context, collectionID string, filters query.Filters) (*ItemList, error) {
	plan := query.Compile(filters)
	if err := checkLimit(plan); err != nil {
		return nil, err
	}
	if _, err := u.collections.GetByID(ctx, collectionID); err != nil {
		return nil, err
	}
	items, count, err := u.items.ListByCollection(ctx, collectionID, plan)
	if err != nil {
		return nil, err
	}
	return &ItemList{Data: items, Count: count, Page: plan.Page}, nil
}

// GetActivity pages the activity log of one collection, most recent
// first unless the client sorts otherwise, with item and collection
// projections attached.
func (u *CollectionUsecase) GetActivity(ctx context.Context, collectionID string, filters query.Filters) (*ActivityList, error) {
	plan := query.Compile(filters)
	if err := checkLimit(plan); err != nil {
		return nil, err
	}
	plan = plan.WithSort("date", true)
	if _, err := u.collections.GetByID(ctx, collectionID); err != nil {
		return nil, err
	}
	activities, count, err := u.activities.ListByCollection(ctx, collectionID, plan)
	if err != nil {
		return nil, err
	}
	if err := u.enricher.AttachItemDetails(ctx, activities); err != nil {
		return nil, err
	}
	return &ActivityList{Data: activities, Count: count, Page: plan.Page}, nil
}

// GetHistory returns the full activity log of one collection, unpaged,
// with item projections attached.
func (u *CollectionUsecase) GetHistory(ctx context.Context, collectionID string) ([]*entity.Activity, error) {
	if _, err := u.collections.GetByID(ctx, collectionID); err != nil {
		return nil, err
	}
	activities, err := u.activities.AllByCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if err := u.enricher.AttachItemDetails(ctx, activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// GetCollectionOffers pages the viewer's active collection-wide offers
// on the collection, royalty terms attached.
func (u *CollectionUsecase) GetCollectionOffers(ctx context.Context, collectionID, viewer string, filters query.Filters) (*ActivityList, error) {
	plan := query.Compile(filters)
	if err := checkLimit(plan); err != nil {
		return nil, err
	}
	plan = plan.WithSort("date", true)
	collection, err := u.collections.GetByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	offers, count, err := u.activities.ListCollectionOffers(ctx, collectionID, viewer, plan)
	if err != nil {
		return nil, err
	}
	ref := &entity.CollectionRef{Creator: collection.Creator, CreatorEarning: collection.CreatorEarning}
	for _, offer := range offers {
		offer.CollectionID = collectionID
		offer.CollectionDetail = ref
	}
	return &ActivityList{Data: offers, Count: count, Page: plan.Page}, nil
}

// ImageUpload is one base64 asset attached to a create or update
// request.
type ImageUpload struct {
	Data     string
	Name     string
	MimeType string
}

func (i ImageUpload) empty() bool { return i.Data == "" }

// CreateCollectionInput carries every field of a collection create
// request. Link fields are optional; when set they must be well-formed
// urls.
type CreateCollectionInput struct {
	Name           string
	URL            string
	Description    string
	Category       string
	Blockchain     string
	CreatorID      string
	CreatorEarning float64
	IsExplicit     bool
	Properties     []string

	SiteURL      string
	DiscordURL   string
	InstagramURL string
	MediumURL    string
	TwitterURL   string
	TelegramURL  string

	Logo     ImageUpload
	Featured ImageUpload
	Banner   ImageUpload
}

func (in CreateCollectionInput) linkList() []string {
	return []string{in.SiteURL, in.DiscordURL, in.InstagramURL, in.MediumURL, in.TwitterURL, in.TelegramURL}
}

func validateLinks(links []string) error {
	for _, link := range links {
		if link != "" && !utils.IsValidURL(link) {
			return errors.Validation(fmt.Sprintf("%s is not valid url", link), nil)
		}
	}
	return nil
}

func (u *CollectionUsecase) contractFor(blockchain string) string {
	switch blockchain {
	case "ERC721":
		return u.contracts.ARC721
	case "ERC1155":
		return u.contracts.ARC1155
	}
	return ""
}

// uploadImages stores the provided assets and folds their moderation
// verdicts into the explicit flag. Once raised the flag never clears,
// regardless of what later scans say.
func (u *CollectionUsecase) uploadImages(ctx context.Context, explicit bool, uploads ...ImageUpload) ([]string, bool, error) {
	locations := make([]string, len(uploads))
	for i, upload := range uploads {
		if upload.empty() {
			continue
		}
		name := fmt.Sprintf("%s_%d", upload.Name, time.Now().UnixMilli())
		result, err := u.images.UploadBase64(ctx, upload.Data, name, upload.MimeType, "collection")
		if err != nil {
			return nil, explicit, errors.Validation("image upload failed", err)
		}
		locations[i] = result.Location
		if result.Explicit {
			explicit = true
		}
		flagged, err := u.moderation.Scan(ctx, result.Key)
		if err != nil {
			return nil, explicit, errors.Validation("image moderation failed", err)
		}
		if flagged {
			explicit = true
		}
	}
	return locations, explicit, nil
}

func propertyMap(names []string) map[string][]string {
	properties := map[string][]string{}
	for _, name := range names {
		properties[name] = []string{}
	}
	return properties
}

// CreateCollection validates and inserts a new collection owned by the
// logged-in wallet. Images upload only after every cheap check passes,
// so a rejected request stores nothing.
func (u *CollectionUsecase) CreateCollection(ctx context.Context, in CreateCollectionInput, loginWallet string) (*entity.Collection, error) {
	if in.CreatorEarning < 0 || in.CreatorEarning > 10 {
		return nil, errors.Validation("Creator royalty must be between 0 & 10", nil)
	}
	creator, err := u.persons.GetByID(ctx, in.CreatorID)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, errors.Validation("creator address is invalid or missing", nil)
		}
		return nil, err
	}
	if strings.ToLower(creator.Wallet) != loginWallet {
		return nil, errors.Validation("Collection owner should be created by the login user", nil)
	}
	if in.Name == "" {
		return nil, errors.Validation("name is invalid or missing", nil)
	}
	if in.Blockchain == "" {
		return nil, errors.Validation("blockchain is invalid or missing", nil)
	}
	if in.Category == "" {
		return nil, errors.Validation("category is invalid or missing", nil)
	}
	if _, err := u.collections.GetByName(ctx, in.Name); err == nil {
		return nil, errors.Duplicate("Same collection name detected")
	} else if !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}
	if in.URL == "" {
		return nil, errors.Validation("Collection url empty", nil)
	}
	if _, err := u.collections.GetByURL(ctx, in.URL); err == nil {
		return nil, errors.Duplicate("Same collection url detected")
	} else if !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}
	links := in.linkList()
	if err := validateLinks(links); err != nil {
		return nil, err
	}

	locations, explicit, err := u.uploadImages(ctx, in.IsExplicit, in.Logo, in.Featured, in.Banner)
	if err != nil {
		return nil, err
	}

	collection := &entity.Collection{
		Name:           in.Name,
		URL:            in.URL,
		Description:    in.Description,
		Category:       in.Category,
		Contract:       u.contractFor(in.Blockchain),
		Blockchain:     in.Blockchain,
		Platform:       "ARC",
		Creator:        strings.ToLower(creator.Wallet),
		CreatorEarning: in.CreatorEarning,
		LogoURL:        locations[0],
		FeaturedURL:    locations[1],
		BannerURL:      locations[2],
		Links:          links,
		IsExplicit:     explicit,
		Properties:     propertyMap(in.Properties),
		OfferStatus:    entity.OfferStatusNone,
	}
	if err := u.collections.Create(ctx, collection); err != nil {
		return nil, err
	}
	collection.CreatorDetail = creator
	return collection, nil
}

// UpdateCollectionInput carries the optional fields of an update; empty
// fields leave the stored value alone. Links and properties are always
// replaced wholesale.
type UpdateCollectionInput struct {
	Name           string
	URL            string
	Description    string
	Category       string
	CreatorEarning float64
	IsExplicit     bool
	Properties     []string

	SiteURL      string
	DiscordURL   string
	InstagramURL string
	MediumURL    string
	TwitterURL   string
	TelegramURL  string

	Logo     ImageUpload
	Featured ImageUpload
	Banner   ImageUpload
}

func (in UpdateCollectionInput) linkList() []string {
	return []string{in.SiteURL, in.DiscordURL, in.InstagramURL, in.MediumURL, in.TwitterURL, in.TelegramURL}
}

// UpdateCollection applies a partial update. Only the creator wallet may
// update its collection.
func (u *CollectionUsecase) UpdateCollection(ctx context.Context, collectionID string, in UpdateCollectionInput, loginWallet string) (*entity.Collection, error) {
	collection, err := u.collections.GetByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if strings.ToLower(collection.Creator) != loginWallet {
		return nil, errors.Validation("Collection owner should be updated by the login user", nil)
	}
	links := in.linkList()
	if err := validateLinks(links); err != nil {
		return nil, err
	}
	if in.URL != "" && in.URL != collection.URL {
		if _, err := u.collections.GetByURL(ctx, in.URL); err == nil {
			return nil, errors.Duplicate("Same collection url detected")
		} else if !errors.Is(err, errors.CodeNotFound) {
			return nil, err
		}
		collection.URL = in.URL
	}

	locations, explicit, err := u.uploadImages(ctx, in.IsExplicit, in.Logo, in.Featured, in.Banner)
	if err != nil {
		return nil, err
	}
	if !in.Logo.empty() {
		collection.LogoURL = locations[0]
	}
	if !in.Featured.empty() {
		collection.FeaturedURL = locations[1]
	}
	if !in.Banner.empty() {
		collection.BannerURL = locations[2]
	}
	if in.Name != "" {
		collection.Name = in.Name
	}
	if in.Description != "" {
		collection.Description = in.Description
	}
	if in.Category != "" {
		collection.Category = in.Category
	}
	if in.CreatorEarning != 0 {
		if in.CreatorEarning < 0 || in.CreatorEarning > 10 {
			return nil, errors.Validation("Creator royalty must be between 0 & 10", nil)
		}
		collection.CreatorEarning = in.CreatorEarning
	}
	if explicit {
		collection.IsExplicit = true
	}
	collection.Links = links
	collection.Properties = propertyMap(in.Properties)

	if err := u.collections.Replace(ctx, collection); err != nil {
		return nil, err
	}
	return collection, nil
}

// DeleteCollection removes an empty collection. A collection that still
// owns items cannot be deleted.
func (u *CollectionUsecase) DeleteCollection(ctx context.Context, collectionID, loginWallet string) error {
	collection, err := u.collections.GetByID(ctx, collectionID)
	if err != nil {
		return err
	}
	if strings.ToLower(collection.Creator) != loginWallet {
		return errors.Validation("Collection owner should be deleted by the login user", nil)
	}
	hasItems, err := u.items.HasItems(ctx, collectionID)
	if err != nil {
		return err
	}
	if hasItems {
		return errors.Validation("This collection has Items", nil)
	}
	return u.collections.Delete(ctx, collectionID)
}
