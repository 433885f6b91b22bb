package response

import (
	"errors"
	"net/http"

	"github.com/alimikegami/product-catalog-service/pkg/errs"
	"github.com/labstack/echo/v4"
)

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Errors  interface{} `json:"errors"`
	Data    interface{} `json:"data,omitempty"`
}

func WriteSuccessResponse(c echo.Context, message string, data interface{}) error {
	return writeSuccess(c, http.StatusOK, message, data)
}

func WriteCreatedResponse(c echo.Context, message string, data interface{}) error {
	return writeSuccess(c, http.StatusCreated, message, data)
}

func writeSuccess(c echo.Context, status int, message string, data interface{}) error {
	resp := SuccessResponse{}
	resp.Status = "success"
	resp.Data = data
	resp.Message = message

	return c.JSON(status, resp)
}

// WriteErrorResponse maps err to its status code. Field errors of a
// ValidationError are listed when errors is nil; data echoes the rejected input.
func WriteErrorResponse(c echo.Context, err error, errors interface{}) error {
	return WriteErrorResponseWithData(c, err, errors, nil)
}

func WriteErrorResponseWithData(c echo.Context, err error, fieldErrors interface{}, data interface{}) error {
	statusCode := errs.GetErrorStatusCode(err)
	resp := ErrorResponse{}
	resp.Status = "error"
	resp.Message = err.Error()
	resp.Errors = fieldErrors
	resp.Data = data

	var validationErr *errs.ValidationError
	if fieldErrors == nil && errors.As(err, &validationErr) {
		resp.Errors = validationErr.Fields
	}

	// internal failures other than storage errors never leak their text
	var storageErr *errs.StorageError
	if statusCode == http.StatusInternalServerError && !errors.As(err, &storageErr) {
		resp.Message = genericMessage(err)
	}

	return c.JSON(statusCode, resp)
}

func genericMessage(err error) string {
	if errors.Is(err, errs.ErrIOFault) {
		return errs.ErrIOFault.Error()
	}
	return errs.ErrInternalServer.Error()
}
