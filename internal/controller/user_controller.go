package controller

import (
	"github.com/alimikegami/product-catalog-service/internal/dto"
	"github.com/alimikegami/product-catalog-service/internal/service"
	"github.com/alimikegami/product-catalog-service/pkg/errs"
	"github.com/alimikegami/product-catalog-service/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type UserController struct {
	service service.UserService
}

func CreateUserController(e *echo.Group, service service.UserService) {
	uc := UserController{
		service: service,
	}
	e.POST("/users/register", uc.AddUser)
	e.POST("/users/login", uc.Login)
}

func (c *UserController) AddUser(e echo.Context) error {
	payload := dto.UserRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "AddUser").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	res, err := c.service.AddUser(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "user registered", res)
}

func (c *UserController) Login(e echo.Context) error {
	payload := dto.LoginRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "Login").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	respPayload, err := c.service.Login(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", respPayload)
}
