package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompileDefaults(t *testing.T) {
	plan := Compile(Filters{})

	assert.Equal(t, int64(1), plan.Page)
	assert.Equal(t, int64(0), plan.Skip)
	assert.Equal(t, int64(DefaultPageSize), plan.Limit)
	assert.Empty(t, plan.Or)
	assert.Nil(t, plan.Sort)
}

func TestCompileSkipArithmetic(t *testing.T) {
	plan := Compile(Filters{Page: 3, PageSize: 50})

	assert.Equal(t, int64(100), plan.Skip)
	assert.Equal(t, int64(50), plan.Limit)
	assert.Equal(t, int64(3), plan.Page)
}

func TestCompileNonPositivePage(t *testing.T) {
	plan := Compile(Filters{Page: -2, PageSize: 10})

	assert.Equal(t, int64(1), plan.Page)
	assert.Equal(t, int64(0), plan.Skip)
}

func TestCompilePassesClausesThroughVerbatim(t *testing.T) {
	f := Filters{Clauses: []Clause{
		{Field: "cattegory", Operator: "eq", Value: "art"}, // typo stays
		{Field: "price", Operator: "gt", Value: 5},
	}}
	plan := Compile(f)

	assert.Equal(t, f.Clauses, plan.Or)
}

func TestWithinLimit(t *testing.T) {
	assert.True(t, Compile(Filters{PageSize: 1000}).WithinLimit())
	assert.False(t, Compile(Filters{PageSize: 1001}).WithinLimit())
}

func TestWithSortKeepsClientSort(t *testing.T) {
	plan := Compile(Filters{Sort: &Sort{Field: "price"}})
	plan = plan.WithSort("date", true)

	assert.Equal(t, "price", plan.Sort.Field)
	assert.False(t, plan.Sort.Descending)
}

func TestWithSortAppliesDefault(t *testing.T) {
	plan := Compile(Filters{}).WithSort("date", true)

	assert.Equal(t, "date", plan.Sort.Field)
	assert.True(t, plan.Sort.Descending)
}

func TestWithForcedLimit(t *testing.T) {
	plan := Compile(Filters{Page: 4, PageSize: 100}).WithForcedLimit(10)

	assert.Equal(t, int64(10), plan.Limit)
	assert.Equal(t, int64(0), plan.Skip)
}
