package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arcmarket/pkg/errors"
)

func contextWithQuery(t *testing.T, rawQuery string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindFiltersDefaults(t *testing.T) {
	filters, err := bindFilters(contextWithQuery(t, ""))

	require.NoError(t, err)
	assert.Zero(t, filters.Page)
	assert.Zero(t, filters.PageSize)
	assert.Nil(t, filters.Sort)
	assert.Empty(t, filters.Clauses)
}

func TestBindFiltersPageAndLimit(t *testing.T) {
	filters, err := bindFilters(contextWithQuery(t, "page=3&limit=50"))

	require.NoError(t, err)
	assert.Equal(t, int64(3), filters.Page)
	assert.Equal(t, int64(50), filters.PageSize)
}

func TestBindFiltersSortDirection(t *testing.T) {
	filters, err := bindFilters(contextWithQuery(t, "orderBy=volume&direction=DESC"))

	require.NoError(t, err)
	require.NotNil(t, filters.Sort)
	assert.Equal(t, "volume", filters.Sort.Field)
	assert.True(t, filters.Sort.Descending)

	filters, err = bindFilters(contextWithQuery(t, "orderBy=name&direction=asc"))
	require.NoError(t, err)
	assert.False(t, filters.Sort.Descending)
}

func TestBindFiltersClauseArray(t *testing.T) {
	raw := url.Values{}
	raw.Set("filters", `[{"fieldName":"category","operator":"eq","query":"art"}]`)

	filters, err := bindFilters(contextWithQuery(t, raw.Encode()))

	require.NoError(t, err)
	require.Len(t, filters.Clauses, 1)
	assert.Equal(t, "category", filters.Clauses[0].Field)
	assert.Equal(t, "eq", filters.Clauses[0].Operator)
	assert.Equal(t, "art", filters.Clauses[0].Value)
}

func TestBindFiltersBadInput(t *testing.T) {
	_, err := bindFilters(contextWithQuery(t, "page=abc"))
	assert.True(t, errors.Is(err, errors.CodeValidation))

	_, err = bindFilters(contextWithQuery(t, "filters=not-json"))
	assert.True(t, errors.Is(err, errors.CodeValidation))
}
