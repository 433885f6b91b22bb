package middleware

import (
	"errors"
	"strings"

	"github.com/alimikegami/product-catalog-service/pkg/errs"
	"github.com/alimikegami/product-catalog-service/pkg/response"
	"github.com/alimikegami/product-catalog-service/pkg/utils"
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const bearerPrefix = "Bearer "

// IsLoggedIn rejects requests without a valid bearer token signed with
// secret. The parsed token is stored under the "user" key.
func IsLoggedIn(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, bearerPrefix) {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}

			token, err := utils.ParseJWTToken(strings.TrimSpace(header[len(bearerPrefix):]), secret)
			if err != nil || !token.Valid {
				log.Ctx(c.Request().Context()).Warn().Err(err).Str("component", "IsLoggedIn").Msg("")

				var validationErr *jwt.ValidationError
				if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorExpired != 0 {
					return response.WriteErrorResponse(c, errs.ErrTokenExpired, nil)
				}
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}

			c.Set("user", token)

			return next(c)
		}
	}
}
