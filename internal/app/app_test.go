package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alimikegami/product-catalog-service/config"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	conf := &config.Config{
		ServicePort: "0",
		MetricsPort: "0",
		JWTConfig:   config.JWTConfig{JWTSecret: "secret"},
		FileStoreConfig: config.FileStoreConfig{
			UploadDir:     t.TempDir(),
			MaxUploadSize: 1 << 20,
		},
	}

	app := &App{DB: sqlx.NewDb(mockDB, "postgres"), Config: conf}
	require.NoError(t, app.Setup(t.Context()))
	t.Cleanup(func() {
		app.StopServer()
		mockDB.Close()
	})

	return app, mock
}

func TestSetup_RegistersRoutes(t *testing.T) {
	app, _ := newTestApp(t)

	rec := httptest.NewRecorder()
	app.Server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
}

func TestSetup_ListsPresentations(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(`SELECT id, name FROM presentations`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Unidad"))

	rec := httptest.NewRecorder()
	app.Server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/presentaciones", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetup_MutationsRequireToken(t *testing.T) {
	app, _ := newTestApp(t)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodPost, "/productos", nil),
		httptest.NewRequest(http.MethodPut, "/productos/1", nil),
		httptest.NewRequest(http.MethodDelete, "/productos/1", nil),
	} {
		rec := httptest.NewRecorder()
		app.Server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, req.Method)
	}
}

func TestRegisterUser(t *testing.T) {
	type TestCase struct {
		Name           string
		Request        string
		Expect         func(mock sqlmock.Sqlmock)
		ExpectedStatus int
	}

	testCases := []TestCase{
		{
			Name:    "Valid request",
			Request: `{"email":"test@gmail.com","password":"123456"}`,
			Expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM users WHERE email = \$1`).
					WithArgs("test@gmail.com").
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
				mock.ExpectPrepare(`INSERT INTO users`).
					ExpectQuery().
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
			},
			ExpectedStatus: http.StatusOK,
		},
		{
			Name:           "Missing email",
			Request:        `{"password":"123456"}`,
			ExpectedStatus: http.StatusBadRequest,
		},
		{
			Name:           "Invalid email",
			Request:        `{"email":"test","password":"123456"}`,
			ExpectedStatus: http.StatusBadRequest,
		},
		{
			Name:           "Short password",
			Request:        `{"email":"test@gmail.com","password":"123"}`,
			ExpectedStatus: http.StatusBadRequest,
		},
		{
			Name:           "Unknown role",
			Request:        `{"email":"test@gmail.com","password":"123456","role":"ROOT"}`,
			ExpectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			app, mock := newTestApp(t)
			if tc.Expect != nil {
				tc.Expect(mock)
			}

			req := httptest.NewRequest(http.MethodPost, "/users/register", strings.NewReader(tc.Request))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			app.Server.ServeHTTP(rec, req)

			assert.Equal(t, tc.ExpectedStatus, rec.Code, rec.Body.String())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
