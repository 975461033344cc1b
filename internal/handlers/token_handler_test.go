package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andessoft/registro-api/internal/dao"
	"github.com/andessoft/registro-api/internal/database"
	"github.com/andessoft/registro-api/internal/models"
	"github.com/andessoft/registro-api/internal/service"
	"github.com/andessoft/registro-api/pkg/utils"
)

func newValidateRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	db := database.New(sqlx.NewDb(mockDB, "mysql"), logger)
	handler := NewTokenHandler(service.NewTokenService(dao.NewTokenDAO(db), logger), logger)

	engine := gin.New()
	engine.GET("/tokens/validar/:token", handler.ValidateToken)
	return engine, mock
}

func tokenRow(tipo string, usado bool, expiraEn int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "token", "tipo", "creado_en", "expira_en", "usado", "usado_en", "creado_por",
	}).AddRow(1, "tok-1", tipo, 100, expiraEn, usado, nil, "admin-1")
}

func TestValidateTokenEndpoint(t *testing.T) {
	now := utils.GetCurrentTimeMillis()

	tests := []struct {
		name           string
		rows           func() *sqlmock.Rows
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "usable token",
			rows:           func() *sqlmock.Rows { return tokenRow(models.TipoEmpleado, false, now+60000) },
			expectedStatus: http.StatusOK,
			expectedBody:   `"valido":true`,
		},
		{
			name:           "unknown token",
			rows:           func() *sqlmock.Rows { return sqlmock.NewRows([]string{"id"}) },
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"motivo":"no_encontrado"`,
		},
		{
			name:           "consumed token",
			rows:           func() *sqlmock.Rows { return tokenRow(models.TipoEmpleado, true, now+60000) },
			expectedStatus: http.StatusGone,
			expectedBody:   `"motivo":"usado"`,
		},
		{
			name:           "expired token",
			rows:           func() *sqlmock.Rows { return tokenRow(models.TipoEmpleado, false, now-60000) },
			expectedStatus: http.StatusGone,
			expectedBody:   `"motivo":"expirado"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, mock := newValidateRouter(t)

			mock.ExpectQuery("SELECT id, token, tipo").
				WithArgs("tok-1").
				WillReturnRows(tt.rows())

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/tokens/validar/tok-1", nil)
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}
