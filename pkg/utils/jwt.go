package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

const tokenTTL = time.Hour * 24

func CreateJWTToken(userID int64, email string, role string, externalID string, jwtSecretKey string, jwtKid string) (string, error) {
	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["userID"] = userID
	claims["email"] = email
	claims["role"] = role
	claims["externalID"] = externalID
	claims["exp"] = time.Now().Add(tokenTTL).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = jwtKid

	return token.SignedString([]byte(jwtSecretKey))
}

// ParseJWTToken verifies an HS256 token signed with jwtSecretKey.
func ParseJWTToken(tokenString string, jwtSecretKey string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecretKey), nil
	})
}

func ExtractTokenUser(c echo.Context) (int64, string, string) {
	user, ok := c.Get("user").(*jwt.Token)
	if !ok || !user.Valid {
		return 0, "", ""
	}

	claims, ok := user.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ""
	}

	userID, _ := claims["userID"].(float64)
	role, _ := claims["role"].(string)
	externalID, _ := claims["externalID"].(string)

	return int64(userID), role, externalID
}
