package controller

import (
	"github.com/alimikegami/product-catalog-service/internal/service"
	"github.com/alimikegami/product-catalog-service/pkg/response"
	"github.com/labstack/echo/v4"
)

type PresentationController struct {
	service service.PresentationService
}

func CreatePresentationController(e *echo.Group, service service.PresentationService) {
	c := PresentationController{
		service: service,
	}
	e.GET("/presentaciones", c.GetPresentations)
}

func (c *PresentationController) GetPresentations(e echo.Context) error {
	res, err := c.service.GetPresentations(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", res)
}
