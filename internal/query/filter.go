// Package query normalizes client-supplied filter/sort/pagination
// requests into a store-agnostic plan. Translation into concrete store
// predicates happens in the repository adapters.
package query

// MaxLimit is a hard ceiling, not a clamp: a resolved limit above it
// fails the whole request before any store access, bounding worst-case
// enrichment fan-out.
const MaxLimit = 1000

const DefaultPageSize = 20

// Clause is one field comparison. Clauses of a request are OR-combined
// at the top level. Field names are passed through verbatim: the
// compiler does not validate them against a schema, so a typo silently
// matches zero rows instead of erroring.
type Clause struct {
	Field    string      `json:"fieldName"`
	Operator string      `json:"operator"`
	Value    interface{} `json:"query"`
}

type Sort struct {
	Field      string `json:"orderBy"`
	Descending bool   `json:"descending"`
}

// Filters is the raw request shape as bound from the client.
type Filters struct {
	Clauses  []Clause `json:"filters"`
	Sort     *Sort    `json:"sort"`
	Page     int64    `json:"page"`
	PageSize int64    `json:"pageSize"`
}

// Plan is the normalized query plan: disjunction of clauses (empty
// means match-all), optional sort, and resolved pagination.
type Plan struct {
	Or    []Clause
	Sort  *Sort
	Skip  int64
	Limit int64
	Page  int64
}

// Compile normalizes a filter request. Page defaults to 1 when absent
// or non-positive; an empty clause list yields a match-all plan. The
// limit ceiling is not applied here so callers can fail fast with the
// proper error before touching the store.
func Compile(f Filters) Plan {
	page := f.Page
	if page <= 0 {
		page = 1
	}
	size := f.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	return Plan{
		Or:    f.Clauses,
		Sort:  f.Sort,
		Skip:  (page - 1) * size,
		Limit: size,
		Page:  page,
	}
}

// WithinLimit reports whether the resolved limit respects the ceiling.
func (p Plan) WithinLimit() bool {
	return p.Limit <= MaxLimit
}

// WithSort returns a copy with the given sort applied only when the
// client supplied none. Default sorts belong to callers, not to the
// executor.
func (p Plan) WithSort(field string, descending bool) Plan {
	if p.Sort != nil {
		return p
	}
	p.Sort = &Sort{Field: field, Descending: descending}
	return p
}

// WithForcedLimit returns a copy with sort and limit pinned, for "top"
// style listings that ignore client paging.
func (p Plan) WithForcedLimit(limit int64) Plan {
	p.Limit = limit
	p.Skip = 0
	return p
}
