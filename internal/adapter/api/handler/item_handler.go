package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"arcmarket/internal/usecase"
	"arcmarket/pkg/errors"
	"arcmarket/pkg/response"
)

type ItemHandler struct {
	itemUsecase *usecase.ItemUsecase
}

func NewItemHandler(itemUsecase *usecase.ItemUsecase) *ItemHandler {
	return &ItemHandler{
		itemUsecase: itemUsecase,
	}
}

type createItemRequest struct {
	Collection  string  `json:"collection" validate:"required"`
	Index       int64   `json:"index"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ArtURI      string  `json:"artURI" validate:"required"`
	ContentType string  `json:"contentType"`
	Price       float64 `json:"price"`
	Owner       string  `json:"owner" validate:"required"`
	Creator     string  `json:"creator" validate:"required"`
}

type transferItemRequest struct {
	From  string  `json:"from" validate:"required"`
	To    string  `json:"to" validate:"required"`
	Price float64 `json:"price"`
}

func itemIndex(c echo.Context) (int64, error) {
	index, err := strconv.ParseInt(c.Param("index"), 10, 64)
	if err != nil {
		return 0, errors.Validation("index must be a number", err)
	}
	return index, nil
}

func (h *ItemHandler) GetItem(c echo.Context) error {
	index, err := itemIndex(c)
	if err != nil {
		return response.Error(c, err)
	}
	item, err := h.itemUsecase.GetItemDetail(c.Request().Context(), c.Param("collection"), index)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Single(c, item)
}

func (h *ItemHandler) GetItemHistory(c echo.Context) error {
	index, err := itemIndex(c)
	if err != nil {
		return response.Error(c, err)
	}
	history, err := h.itemUsecase.GetItemHistory(c.Request().Context(), c.Param("collection"), index)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Respond(c, history)
}

func (h *ItemHandler) CreateItem(c echo.Context) error {
	var req createItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	item, err := h.itemUsecase.CreateItem(c.Request().Context(), usecase.CreateItemInput{
		Collection:  req.Collection,
		Index:       req.Index,
		Name:        req.Name,
		Description: req.Description,
		ArtURI:      req.ArtURI,
		ContentType: req.ContentType,
		Price:       req.Price,
		Owner:       req.Owner,
		Creator:     req.Creator,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Respond(c, item)
}

func (h *ItemHandler) TransferItem(c echo.Context) error {
	index, err := itemIndex(c)
	if err != nil {
		return response.Error(c, err)
	}
	var req transferItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	activity, err := h.itemUsecase.TransferItem(c.Request().Context(), c.Param("collection"), index, req.From, req.To, req.Price)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Respond(c, activity)
}
