package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"arcmarket/internal/adapter/api/middleware"
	"arcmarket/internal/usecase"
	"arcmarket/pkg/response"
)

type CollectionHandler struct {
	collectionUsecase *usecase.CollectionUsecase
}

func NewCollectionHandler(collectionUsecase *usecase.CollectionUsecase) *CollectionHandler {
	return &CollectionHandler{
		collectionUsecase: collectionUsecase,
	}
}

type imageUploadRequest struct {
	Data     string `json:"data"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
}

func (r imageUploadRequest) toInput() usecase.ImageUpload {
	return usecase.ImageUpload{Data: r.Data, Name: r.Name, MimeType: r.MimeType}
}

type createCollectionRequest struct {
	Name           string   `json:"name"`
	URL            string   `json:"url"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Blockchain     string   `json:"blockchain"`
	CreatorID      string   `json:"creatorId"`
	CreatorEarning float64  `json:"creatorEarning"`
	IsExplicit     bool     `json:"isExplicit"`
	Properties     []string `json:"properties"`

	SiteURL      string `json:"siteUrl"`
	DiscordURL   string `json:"discordUrl"`
	InstagramURL string `json:"instagramUrl"`
	MediumURL    string `json:"mediumUrl"`
	TwitterURL   string `json:"twitterUrl"`
	TelegramURL  string `json:"telegramUrl"`

	Logo     imageUploadRequest `json:"logo"`
	Featured imageUploadRequest `json:"featured"`
	Banner   imageUploadRequest `json:"banner"`
}

func (h *CollectionHandler) ListCollections(c echo.Context) error {
	filters, err := bindFilters(c)
	if err != nil {
		return response.Error(c, err)
	}
	result, err := h.collectionUsecase.GetCollections(c.Request().Context(), filters)
	if err != nil {
		return response.Error(c, err)
	}
	return response.List(c, result.Data, result.Count, result.Page)
}

func (h *CollectionHandler) ListTopCollections(c echo.Context) error {
	filters, err := bindFilters(c)
	if err != nil {
		return response.Error(c, err)
	}
	result, err := h.collectionUsecase.GetTopCollections(c.Request().Context(), filters)
	if err != nil {
		return response.Error(c, err)
	}
	return response.List(c, result.Data, result.Count, result.Page)
}

func (h *CollectionHandler) ListHotCollections(c echo.Context) error {
	filters, err := bindFilters(c)
	if err != nil {
		return response.Error(c, err)
	}
	result, err := h.collectionUsecase.GetHotCollections(c.Request().Context(), filters)
	if err != nil {
		return response.Error(c, err)
	}
	return response.List(c, result.Data, result.Count, result.Page)
}

func (h *CollectionHandler) ListTagCollections(c echo.Context) error {
	filters, err := bindFilters(c)
	if err != nil {
		return response.Error(c, err)
	}
	result, err := h.collectionUsecase.GetTagCollections(c.Request().Context(), c.Param("tag"), filters)
	if err != nil {
		return response.Error(c, err)
	}
	return response.List(c, result.Data, result.Count, result.Page)
}

func (h *CollectionHandler) Search(c echo.Context) error {
	filters, err := bindFilters(c)
	if err != nil {
		return response.Error(c, err)
	}
	result, err := h.collectionUsecase.Search(c.Request().Context(), c.QueryParam("keyword"), filters)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Respond(c, result)
}

func (h *CollectionHandler) GetCollection(c echo.Context) error {
	collection, err := h.collectionUsecase.GetCollectionDetail(c.Request().Context(), c.Param("id"), middleware.Wallet(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Single(c, collection)
}

func (h *CollectionHandler) GetCollectionByURL(c echo.Context) error {
	collection, err := h.collectionUsecase.GetCollectionByURL(c.Request().Context(), c.Param("url"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Single(c, collection)
}

func (h *CollectionHandler) ListOwners(c echo.Context) error {
	result, err := h.collectionUsecase.GetOwners(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Respond(c, result.Data)
}

func (h *CollectionHandler) ListItems(c echo.Context) error {
	filters, err := bindFilters(c)
	if err != nil {
		return response.Error(c, err)
	}
	result, err := h.collectionUsecase.GetItems(c.Request().Context(), c.Param("id"), filters)
	if err != nil {
		return response.Error(c, err)
	}
	return response.List(c, result.Data, result.Count, result.Page)
}

func (h *CollectionHandler) ListActivity(c echo.Context) error {
	filters, err := bindFilters(c)
	if err != nil {
		return response.Error(c, err)
	}
	result, err := h.collectionUsecase.GetActivity(c.Request().Context(), c.Param("id"), filters)
	if err != nil {
		return response.Error(c, err)
	}
	return response.List(c, result.Data, result.Count, result.Page)
}

func (h *CollectionHandler) ListHistory(c echo.Context) error {
	activities, err := h.collectionUsecase.GetHistory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Respond(c, activities)
}

func (h *CollectionHandler) ListCollectionOffers(c echo.Context) error {
	filters, err := bindFilters(c)
	if err != nil {
		return response.Error(c, err)
	}
	result, err := h.collectionUsecase.GetCollectionOffers(c.Request().Context(), c.Param("id"), middleware.Wallet(c), filters)
	if err != nil {
		return response.Error(c, err)
	}
	return response.List(c, result.Data, result.Count, result.Page)
}

func (h *CollectionHandler) CreateCollection(c echo.Context) error {
	var req createCollectionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	collection, err := h.collectionUsecase.CreateCollection(
		c.Request().Context(),
		usecase.CreateCollectionInput{
			Name:           req.Name,
			URL:            req.URL,
			Description:    req.Description,
			Category:       req.Category,
			Blockchain:     req.Blockchain,
			CreatorID:      req.CreatorID,
			CreatorEarning: req.CreatorEarning,
			IsExplicit:     req.IsExplicit,
			Properties:     req.Properties,
			SiteURL:        req.SiteURL,
			DiscordURL:     req.DiscordURL,
			InstagramURL:   req.InstagramURL,
			MediumURL:      req.MediumURL,
			TwitterURL:     req.TwitterURL,
			TelegramURL:    req.TelegramURL,
			Logo:           req.Logo.toInput(),
			Featured:       req.Featured.toInput(),
			Banner:         req.Banner.toInput(),
		},
		middleware.Wallet(c),
	)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Respond(c, collection)
}

func (h *CollectionHandler) UpdateCollection(c echo.Context) error {
	var req createCollectionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	collection, err := h.collectionUsecase.UpdateCollection(
		c.Request().Context(),
		c.Param("id"),
		usecase.UpdateCollectionInput{
			Name:           req.Name,
			URL:            req.URL,
			Description:    req.Description,
			Category:       req.Category,
			CreatorEarning: req.CreatorEarning,
			IsExplicit:     req.IsExplicit,
			Properties:     req.Properties,
			SiteURL:        req.SiteURL,
			DiscordURL:     req.DiscordURL,
			InstagramURL:   req.InstagramURL,
			MediumURL:      req.MediumURL,
			TwitterURL:     req.TwitterURL,
			TelegramURL:    req.TelegramURL,
			Logo:           req.Logo.toInput(),
			Featured:       req.Featured.toInput(),
			Banner:         req.Banner.toInput(),
		},
		middleware.Wallet(c),
	)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Respond(c, collection)
}

func (h *CollectionHandler) DeleteCollection(c echo.Context) error {
	id := c.Param("id")
	if err := h.collectionUsecase.DeleteCollection(c.Request().Context(), id, middleware.Wallet(c)); err != nil {
		return response.Error(c, err)
	}
	return response.Respond(c, fmt.Sprintf("Collection %s has been removed", id))
}
