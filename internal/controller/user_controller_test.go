package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alimikegami/product-catalog-service/internal/dto"
	"github.com/alimikegami/product-catalog-service/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserService struct {
	err error
}

func (s *stubUserService) AddUser(ctx context.Context, data dto.UserRequest) (dto.UserResponse, error) {
	return dto.UserResponse{ID: 1, Email: data.Email, Role: "USER"}, s.err
}

func (s *stubUserService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	return dto.LoginResponse{Token: "token", UserID: 1}, s.err
}

type stubPresentationService struct{}

func (stubPresentationService) GetPresentations(ctx context.Context) ([]dto.PresentationResponse, error) {
	return []dto.PresentationResponse{{ID: 1, Name: "Unidad"}, {ID: 2, Name: "Docena"}}, nil
}

func newUserServer(svc *stubUserService) *echo.Echo {
	e := echo.New()
	g := e.Group("")
	CreateUserController(g, svc)
	CreatePresentationController(g, stubPresentationService{})
	return e
}

func postJSON(e *echo.Echo, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

func TestRegister(t *testing.T) {
	rec, resp := postJSON(newUserServer(&stubUserService{}), "/users/register", `{"email":"a@example.com","password":"secret"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@example.com", resp["data"].(map[string]interface{})["email"])
}

func TestRegister_Failures(t *testing.T) {
	rec, _ := postJSON(newUserServer(&stubUserService{}), "/users/register", `{"email":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, resp := postJSON(newUserServer(&stubUserService{err: errs.ErrEmailAlreadyUsed}), "/users/register", `{"email":"a@example.com","password":"secret"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email has already been used", resp["message"])
}

func TestLogin(t *testing.T) {
	rec, resp := postJSON(newUserServer(&stubUserService{}), "/users/login", `{"email":"a@example.com","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "token", resp["data"].(map[string]interface{})["token"])

	rec, _ = postJSON(newUserServer(&stubUserService{err: errs.ErrInvalidCredentialsEmail}), "/users/login", `{"email":"a@example.com","password":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = postJSON(newUserServer(&stubUserService{err: errs.ErrAccountNotFound}), "/users/login", `{"email":"b@example.com","password":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPresentations(t *testing.T) {
	rec := httptest.NewRecorder()
	newUserServer(&stubUserService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/presentaciones", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp["data"], 2)
}
