package handler

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"arcmarket/internal/query"
	"arcmarket/pkg/errors"
)

// bindFilters reads the common listing query parameters: page, limit,
// orderBy, direction and a JSON-encoded filters array of
// {fieldName, operator, query} clauses.
func bindFilters(c echo.Context) (query.Filters, error) {
	var filters query.Filters

	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filters, errors.Validation("page must be a number", err)
		}
		filters.Page = page
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filters, errors.Validation("limit must be a number", err)
		}
		filters.PageSize = limit
	}
	if orderBy := c.QueryParam("orderBy"); orderBy != "" {
		filters.Sort = &query.Sort{
			Field:      orderBy,
			Descending: strings.EqualFold(c.QueryParam("direction"), "DESC"),
		}
	}
	if raw := c.QueryParam("filters"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &filters.Clauses); err != nil {
			return filters, errors.Validation("filters must be a JSON array", err)
		}
	}
	return filters, nil
}
