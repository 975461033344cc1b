package dao

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/andessoft/registro-api/internal/database"
	"github.com/andessoft/registro-api/internal/models"
)

// PendingRecordDAO handles database operations for pending registration
// records. All workflow transitions are conditional updates keyed on the
// current estado, so a race between two actors resolves at the store and the
// loser sees zero rows affected.
type PendingRecordDAO struct {
	db *database.DB
}

// NewPendingRecordDAO creates a new PendingRecordDAO instance
func NewPendingRecordDAO(db *database.DB) *PendingRecordDAO {
	return &PendingRecordDAO{db: db}
}

// CreateWithTx inserts a new pending record and sets its generated id
func (dao *PendingRecordDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, record *models.PendingRecord) error {
	query := `
		INSERT INTO registros_pendientes (tipo, estado, datos, token_id, creado_por, creado_en)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(
		ctx,
		query,
		record.Tipo,
		record.Estado,
		record.Datos,
		record.TokenID,
		record.CreadoPor,
		record.CreadoEn,
	)
	if err != nil {
		return fmt.Errorf("failed to create pending record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get pending record id: %w", err)
	}
	record.ID = id

	return nil
}

// GetByID retrieves a pending record by id. Returns nil when absent.
func (dao *PendingRecordDAO) GetByID(ctx context.Context, id int64) (*models.PendingRecord, error) {
	query := `
		SELECT id, tipo, estado, datos, token_id, creado_por, creado_en,
		       decidido_por, decidido_en, motivo_rechazo, registro_destino_id
		FROM registros_pendientes
		WHERE id = ?
	`

	var record models.PendingRecord
	err := dao.db.GetContext(ctx, &record, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pending record: %w", err)
	}

	return &record, nil
}

// ListByEstados retrieves records in any of the given states, newest-first
func (dao *PendingRecordDAO) ListByEstados(ctx context.Context, estados ...string) ([]models.PendingRecord, error) {
	placeholders := strings.Repeat("?,", len(estados)-1) + "?"
	query := fmt.Sprintf(`
		SELECT id, tipo, estado, datos, token_id, creado_por, creado_en,
		       decidido_por, decidido_en, motivo_rechazo, registro_destino_id
		FROM registros_pendientes
		WHERE estado IN (%s)
		ORDER BY creado_en DESC
	`, placeholders)

	args := make([]interface{}, 0, len(estados))
	for _, estado := range estados {
		args = append(args, estado)
	}

	var records []models.PendingRecord
	err := dao.db.SelectContext(ctx, &records, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending records: %w", err)
	}

	return records, nil
}

// DecideWithTx performs the compare-and-swap decision transition from
// pendiente to the given estado, stamping the deciding actor, the decision
// time and (for rejections) the motivo. A false return means the record was
// no longer pendiente.
func (dao *PendingRecordDAO) DecideWithTx(ctx context.Context, tx *database.Transaction, id int64, estado, actor string, decididoEn int64, motivo *string) (bool, error) {
	query := `
		UPDATE registros_pendientes
		SET estado = ?, decidido_por = ?, decidido_en = ?, motivo_rechazo = ?
		WHERE id = ? AND estado = ?
	`

	result, err := tx.ExecContext(ctx, query, estado, actor, decididoEn, motivo, id, models.EstadoPendiente)
	if err != nil {
		return false, fmt.Errorf("failed to update pending record status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// SetRegistroDestinoWithTx stamps the destination-row back-reference created
// by an approval
func (dao *PendingRecordDAO) SetRegistroDestinoWithTx(ctx context.Context, tx *database.Transaction, id, destinoID int64) error {
	query := `UPDATE registros_pendientes SET registro_destino_id = ? WHERE id = ?`

	if _, err := tx.ExecContext(ctx, query, destinoID, id); err != nil {
		return fmt.Errorf("failed to set destination reference: %w", err)
	}

	return nil
}

// UpdateEstado performs a conditional state swap used by the archive and
// restore transitions. A false return means the record was not in the
// expected source state.
func (dao *PendingRecordDAO) UpdateEstado(ctx context.Context, id int64, from, to string) (bool, error) {
	query := `UPDATE registros_pendientes SET estado = ? WHERE id = ? AND estado = ?`

	result, err := dao.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return false, fmt.Errorf("failed to update pending record estado: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}
