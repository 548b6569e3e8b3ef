package response

import (
	"errors"
	"net/http"

	apperrors "arcmarket/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ListEnvelope is the standard wrapper for paged listings. Count is the
// total number of matching rows with skip/limit ignored, so callers can
// derive total pages.
type ListEnvelope struct {
	Success     bool        `json:"success"`
	Status      string      `json:"status"`
	Code        int         `json:"code"`
	Count       int64       `json:"count"`
	CurrentPage int64       `json:"currentPage"`
	Data        interface{} `json:"data"`
}

// Envelope is the generic success wrapper used by mutation results and
// non-paged payloads.
type Envelope struct {
	Success bool        `json:"success"`
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
}

type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func List(c echo.Context, data interface{}, count, currentPage int64) error {
	return c.JSON(http.StatusOK, ListEnvelope{
		Success:     true,
		Status:      "ok",
		Code:        http.StatusOK,
		Count:       count,
		CurrentPage: currentPage,
		Data:        data,
	})
}

func Respond(c echo.Context, payload interface{}) error {
	return c.JSON(http.StatusOK, Envelope{
		Success: true,
		Status:  "ok",
		Code:    http.StatusOK,
		Data:    payload,
	})
}

// Single writes a single-resource fetch result with no envelope. Both
// shapes are part of the public contract.
func Single(c echo.Context, payload interface{}) error {
	return c.JSON(http.StatusOK, payload)
}

func Error(c echo.Context, err error) error {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorEnvelope{
			Success: false,
			Status:  "error",
			Code:    http.StatusUnprocessableEntity,
			Message: validationMessage(validationErr),
		})
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return c.JSON(appErr.Status, ErrorEnvelope{
			Success: false,
			Status:  "error",
			Code:    appErr.Status,
			Message: appErr.Message,
		})
	}

	return c.JSON(http.StatusInternalServerError, ErrorEnvelope{
		Success: false,
		Status:  "error",
		Code:    http.StatusInternalServerError,
		Message: "An unexpected error occurred",
	})
}

func validationMessage(errs validator.ValidationErrors) string {
	for _, e := range errs {
		field := e.Field()
		switch e.Tag() {
		case "required":
			return field + " is invalid or missing"
		case "email":
			return field + " must be a valid email address"
		case "url":
			return field + " is not valid url"
		case "oneof":
			return field + " must be one of: " + e.Param()
		default:
			return field + " is invalid"
		}
	}
	return "Invalid input data"
}
