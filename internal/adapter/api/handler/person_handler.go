package handler

import (
	"github.com/labstack/echo/v4"

	"arcmarket/internal/usecase"
	"arcmarket/pkg/response"
)

type PersonHandler struct {
	personUsecase *usecase.PersonUsecase
}

func NewPersonHandler(personUsecase *usecase.PersonUsecase) *PersonHandler {
	return &PersonHandler{
		personUsecase: personUsecase,
	}
}

type createPersonRequest struct {
	Wallet   string `json:"wallet" validate:"required"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Social   string `json:"social"`
	Email    string `json:"email" validate:"omitempty,email"`
	PhotoURL string `json:"photoUrl"`
	OptIn    bool   `json:"optIn"`
}

type updatePersonRequest struct {
	Username *string `json:"username"`
	Bio      *string `json:"bio"`
	Social   *string `json:"social"`
	Email    *string `json:"email"`
	OptIn    *bool   `json:"optIn"`
}

type updatePhotoRequest struct {
	Data     string `json:"data" validate:"required"`
	MimeType string `json:"mimeType" validate:"required"`
}

func (h *PersonHandler) ListOwners(c echo.Context) error {
	filters, err := bindFilters(c)
	if err != nil {
		return response.Error(c, err)
	}
	result, err := h.personUsecase.FindAllOwners(c.Request().Context(), filters)
	if err != nil {
		return response.Error(c, err)
	}
	return response.List(c, result.Data, result.Count, result.Page)
}

func (h *PersonHandler) FindPerson(c echo.Context) error {
	person, err := h.personUsecase.FindPerson(c.Request().Context(), c.Param("wallet"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Single(c, person)
}

func (h *PersonHandler) CreateOwner(c echo.Context) error {
	var req createPersonRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	person, err := h.personUsecase.CreateOwner(c.Request().Context(), usecase.CreatePersonInput{
		Wallet:   req.Wallet,
		Username: req.Username,
		Bio:      req.Bio,
		Social:   req.Social,
		Email:    req.Email,
		PhotoURL: req.PhotoURL,
		OptIn:    req.OptIn,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Respond(c, person)
}

func (h *PersonHandler) UpdateOwner(c echo.Context) error {
	var req updatePersonRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	fields := map[string]interface{}{}
	if req.Username != nil {
		fields["username"] = *req.Username
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.Social != nil {
		fields["social"] = *req.Social
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.OptIn != nil {
		fields["optIn"] = *req.OptIn
	}

	person, err := h.personUsecase.UpdateOwner(c.Request().Context(), c.Param("wallet"), fields)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Respond(c, person)
}

func (h *PersonHandler) UpdateOwnerPhoto(c echo.Context) error {
	var req updatePhotoRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	person, err := h.personUsecase.UpdateOwnerPhoto(c.Request().Context(), c.Param("wallet"), req.Data, req.MimeType)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Respond(c, person)
}

func (h *PersonHandler) ListOwnerItems(c echo.Context) error {
	filters, err := bindFilters(c)
	if err != nil {
		return response.Error(c, err)
	}
	result, err := h.personUsecase.GetOwnerItems(c.Request().Context(), c.Param("wallet"), filters)
	if err != nil {
		return response.Error(c, err)
	}
	return response.List(c, result.Data, result.Count, result.Page)
}

func (h *PersonHandler) ListOwnerHistory(c echo.Context) error {
	filters, err := bindFilters(c)
	if err != nil {
		return response.Error(c, err)
	}
	result, err := h.personUsecase.GetOwnerHistory(c.Request().Context(), c.Param("wallet"), filters)
	if err != nil {
		return response.Error(c, err)
	}
	return response.List(c, result.Data, result.Count, result.Page)
}

func (h *PersonHandler) ListOwnerCollections(c echo.Context) error {
	filters, err := bindFilters(c)
	if err != nil {
		return response.Error(c, err)
	}
	result, err := h.personUsecase.GetOwnerCollections(c.Request().Context(), c.Param("wallet"), filters)
	if err != nil {
		return response.Error(c, err)
	}
	return response.List(c, result.Data, result.Count, result.Page)
}

func (h *PersonHandler) ListOwnerOffers(c echo.Context) error {
	filters, err := bindFilters(c)
	if err != nil {
		return response.Error(c, err)
	}
	result, err := h.personUsecase.GetOwnerOffers(c.Request().Context(), c.Param("wallet"), filters)
	if err != nil {
		return response.Error(c, err)
	}
	return response.List(c, result.Data, result.Count, result.Page)
}
