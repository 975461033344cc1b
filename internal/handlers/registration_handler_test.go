package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
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

func newHandlersLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newHandlersDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return database.New(sqlx.NewDb(mockDB, "mysql"), newHandlersLogger()), mock
}

func newSubmitRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock := newHandlersDB(t)
	logger := newHandlersLogger()

	svc := service.NewRegistrationService(
		dao.NewTokenDAO(db),
		dao.NewPendingRecordDAO(db),
		db,
		nil,
		logger,
	)

	engine := gin.New()
	engine.POST("/registro-publico/empleado/:token",
		NewRegistrationHandler(svc, logger).SubmitEmpleado)
	return engine, mock
}

const empleadoBody = `{
	"nombres": "Ana",
	"apellidos": "Pérez",
	"cedula": "1012345678",
	"url_documento_identidad": "https://cdn/doc.pdf",
	"url_certificacion_bancaria": "https://cdn/banco.pdf",
	"url_certificado_eps": "https://cdn/eps.pdf",
	"url_certificado_pension": "https://cdn/pension.pdf",
	"url_hoja_vida": "https://cdn/cv.pdf"
}`

// Token failures on the intake must come back in the validator's wire shape,
// not the generic error envelope, so the form frontend can branch on motivo.
func TestSubmitEndpointTokenFailures(t *testing.T) {
	now := utils.GetCurrentTimeMillis()

	tests := []struct {
		name           string
		rows           func() *sqlmock.Rows
		expectedStatus int
		expectedMotivo string
	}{
		{
			name:           "consumed token",
			rows:           func() *sqlmock.Rows { return tokenRow(models.TipoEmpleado, true, now+60000) },
			expectedStatus: http.StatusGone,
			expectedMotivo: `"motivo":"usado"`,
		},
		{
			name:           "expired token",
			rows:           func() *sqlmock.Rows { return tokenRow(models.TipoEmpleado, false, now-60000) },
			expectedStatus: http.StatusGone,
			expectedMotivo: `"motivo":"expirado"`,
		},
		{
			name:           "unknown token",
			rows:           func() *sqlmock.Rows { return sqlmock.NewRows([]string{"id"}) },
			expectedStatus: http.StatusNotFound,
			expectedMotivo: `"motivo":"no_encontrado"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, mock := newSubmitRouter(t)

			mock.ExpectQuery("SELECT id, token, tipo").
				WithArgs("tok-1", models.TipoEmpleado).
				WillReturnRows(tt.rows())

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost,
				"/registro-publico/empleado/tok-1", strings.NewReader(empleadoBody))
			req.Header.Set("Content-Type", "application/json")
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedMotivo)
			assert.Contains(t, w.Body.String(), `"valido":false`)
		})
	}
}

func TestSubmitEndpointAccepted(t *testing.T) {
	engine, mock := newSubmitRouter(t)
	now := utils.GetCurrentTimeMillis()

	mock.ExpectQuery("SELECT id, token, tipo").
		WithArgs("tok-1", models.TipoEmpleado).
		WillReturnRows(tokenRow(models.TipoEmpleado, false, now+60000))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO registros_pendientes").
		WillReturnResult(sqlmock.NewResult(33, 1))
	mock.ExpectExec("UPDATE tokens_registro SET usado = 1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/registro-publico/empleado/tok-1", strings.NewReader(empleadoBody))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"estado":"pendiente"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
