package usecase

import (
	"arcmarket/internal/domain/entity"
)

// List results carry the page plus the unpaged total so handlers can
// build the count/currentPage envelope without re-querying.

type CollectionList struct {
	Data  []*entity.Collection
	Count int64
	Page  int64
}

type ItemList struct {
	Data  []*entity.Item
	Count int64
	Page  int64
}

type ActivityList struct {
	Data  []*entity.Activity
	Count int64
	Page  int64
}

type PersonList struct {
	Data  []*entity.Person
	Count int64
	Page  int64
}

// SearchResult pairs the collection and item pages matched by one
// keyword search.
type SearchResult struct {
	Collections []*entity.Collection `json:"collections"`
	Items       []*entity.Item       `json:"items"`
}
