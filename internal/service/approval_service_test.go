package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andessoft/registro-api/internal/dao"
	"github.com/andessoft/registro-api/internal/database"
	"github.com/andessoft/registro-api/internal/models"
	"github.com/andessoft/registro-api/internal/serviceerror"
)

func newApprovalService(db *database.DB) *ApprovalService {
	return NewApprovalService(
		dao.NewPendingRecordDAO(db),
		dao.NewDestinationDAO(db),
		db,
		nil,
		newTestLogger(),
	)
}

func pendingColumns() []string {
	return []string{
		"id", "tipo", "estado", "datos", "token_id", "creado_por", "creado_en",
		"decidido_por", "decidido_en", "motivo_rechazo", "registro_destino_id",
	}
}

func expectPendingRecord(mock sqlmock.Sqlmock, id int64, tipo, estado, datos string) {
	mock.ExpectQuery("SELECT id, tipo, estado").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(pendingColumns()).
			AddRow(id, tipo, estado, []byte(datos), 1, "admin-1", 100, nil, nil, nil, nil))
}

func TestApproveNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newApprovalService(db)

	mock.ExpectQuery("SELECT id, tipo, estado").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(pendingColumns()))

	destino, svcErr := svc.Approve(context.Background(), 404, nil, "reviewer-1")
	assert.Nil(t, destino)
	require.NotNil(t, svcErr)
	assert.Equal(t, serviceerror.ResourceNotFoundError.Code, svcErr.Code)
}

func TestApproveAlreadyDecided(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newApprovalService(db)

	expectPendingRecord(mock, 5, models.TipoEmpleado, models.EstadoAprobado, `{"cedula":"123"}`)

	destino, svcErr := svc.Approve(context.Background(), 5, nil, "reviewer-1")
	assert.Nil(t, destino)
	require.NotNil(t, svcErr)
	assert.Equal(t, serviceerror.AlreadyProcessedError.Code, svcErr.Code)
}

func TestApproveRequiresBusinessKey(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newApprovalService(db)

	expectPendingRecord(mock, 5, models.TipoEmpleado, models.EstadoPendiente, `{"nombres":"Ana","cedula":""}`)

	destino, svcErr := svc.Approve(context.Background(), 5, nil, "reviewer-1")
	assert.Nil(t, destino)
	require.NotNil(t, svcErr)
	assert.Equal(t, serviceerror.ValidationError.Code, svcErr.Code)
	assert.Contains(t, svcErr.ErrorDescription, "cedula")
}

func TestApproveMergesIntoDestination(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newApprovalService(db)

	expectPendingRecord(mock, 5, models.TipoEmpleado, models.EstadoPendiente,
		`{"nombres":"Ana","apellidos":"Pérez","cedula":"1012345678"}`)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE registros_pendientes").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO empleados").
		WillReturnResult(sqlmock.NewResult(77, 1))
	mock.ExpectExec("UPDATE registros_pendientes SET registro_destino_id").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT \\* FROM empleados").
		WithArgs(int64(77)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombres", "apellidos", "cedula"}).
			AddRow(77, []byte("Ana"), []byte("Pérez"), []byte("1012345678")))

	destino, svcErr := svc.Approve(context.Background(), 5, nil, "reviewer-1")
	require.Nil(t, svcErr)

	assert.Equal(t, "1012345678", destino["cedula"])
	assert.Equal(t, "Ana", destino["nombres"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveAppliesOverrides(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newApprovalService(db)

	expectPendingRecord(mock, 5, models.TipoEmpleado, models.EstadoPendiente,
		`{"nombres":"Ana","apellidos":"Pérez","cedula":""}`)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE registros_pendientes").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO empleados").
		WillReturnResult(sqlmock.NewResult(78, 1))
	mock.ExpectExec("UPDATE registros_pendientes SET registro_destino_id").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT \\* FROM empleados").
		WithArgs(int64(78)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cedula"}).
			AddRow(78, []byte("1099887766")))

	// the reviewer fills in the missing cedula at approval time
	destino, svcErr := svc.Approve(context.Background(), 5,
		map[string]interface{}{"cedula": "1099887766"}, "reviewer-1")
	require.Nil(t, svcErr)
	assert.Equal(t, "1099887766", destino["cedula"])
}

func TestApproveLostRace(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newApprovalService(db)

	expectPendingRecord(mock, 5, models.TipoEmpleado, models.EstadoPendiente, `{"cedula":"123"}`)

	mock.ExpectBegin()
	// a concurrent reviewer decided first
	mock.ExpectExec("UPDATE registros_pendientes").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	destino, svcErr := svc.Approve(context.Background(), 5, nil, "reviewer-2")
	assert.Nil(t, destino)
	require.NotNil(t, svcErr)
	assert.Equal(t, serviceerror.AlreadyProcessedError.Code, svcErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectRequiresMotivo(t *testing.T) {
	svc := newApprovalService(nil)

	record, svcErr := svc.Reject(context.Background(), 5, "   ", "reviewer-1")
	assert.Nil(t, record)
	require.NotNil(t, svcErr)
	assert.Equal(t, serviceerror.ValidationError.Code, svcErr.Code)
}

func TestReject(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newApprovalService(db)

	expectPendingRecord(mock, 5, models.TipoCliente, models.EstadoPendiente, `{"nit":"900"}`)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE registros_pendientes").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	record, svcErr := svc.Reject(context.Background(), 5, "documentos ilegibles", "reviewer-1")
	require.Nil(t, svcErr)

	assert.Equal(t, models.EstadoRechazado, record.Estado)
	require.NotNil(t, record.MotivoRechazo)
	assert.Equal(t, "documentos ilegibles", *record.MotivoRechazo)
	assert.Equal(t, "reviewer-1", *record.DecididoPor)
}

func TestArchive(t *testing.T) {
	t.Run("archives an approved record", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := newApprovalService(db)

		expectPendingRecord(mock, 5, models.TipoCliente, models.EstadoAprobado, `{"nit":"900"}`)
		mock.ExpectExec("UPDATE registros_pendientes SET estado").
			WithArgs(models.EstadoArchivadoAprobado, int64(5), models.EstadoAprobado).
			WillReturnResult(sqlmock.NewResult(0, 1))

		record, svcErr := svc.Archive(context.Background(), 5)
		require.Nil(t, svcErr)
		assert.Equal(t, models.EstadoArchivadoAprobado, record.Estado)
	})

	t.Run("refuses to archive a pendiente record", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := newApprovalService(db)

		expectPendingRecord(mock, 5, models.TipoCliente, models.EstadoPendiente, `{"nit":"900"}`)

		record, svcErr := svc.Archive(context.Background(), 5)
		assert.Nil(t, record)
		require.NotNil(t, svcErr)
		assert.Equal(t, serviceerror.InvalidStateError.Code, svcErr.Code)
	})
}

func TestRestore(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newApprovalService(db)

	expectPendingRecord(mock, 5, models.TipoCliente, models.EstadoArchivadoRechazado, `{"nit":"900"}`)
	mock.ExpectExec("UPDATE registros_pendientes SET estado").
		WithArgs(models.EstadoRechazado, int64(5), models.EstadoArchivadoRechazado).
		WillReturnResult(sqlmock.NewResult(0, 1))

	record, svcErr := svc.Restore(context.Background(), 5)
	require.Nil(t, svcErr)
	assert.Equal(t, models.EstadoRechazado, record.Estado)
}
