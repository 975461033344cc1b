package dao

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/andessoft/registro-api/internal/database"
	"github.com/andessoft/registro-api/internal/mapping"
)

// DestinationDAO writes approved registrations into the destination business
// tables (empleados, clientes, proveedores). The column lists come from the
// declarative mapping tables, so this DAO stays schema-agnostic.
type DestinationDAO struct {
	db *database.DB
}

// NewDestinationDAO creates a new DestinationDAO instance
func NewDestinationDAO(db *database.DB) *DestinationDAO {
	return &DestinationDAO{db: db}
}

// UpsertWithTx merges a payload into the destination table keyed on the
// entity's natural business key. On a key collision the mapped columns are
// overwritten. Returns the id of the affected row; the LAST_INSERT_ID(id)
// assignment makes MySQL report the existing row's id on the update path.
func (dao *DestinationDAO) UpsertWithTx(ctx context.Context, tx *database.Transaction, spec *mapping.EntitySpec, payload map[string]interface{}) (int64, error) {
	columns, values := spec.BuildRow(payload)

	placeholders := strings.Repeat("?,", len(columns)-1) + "?"

	updates := make([]string, 0, len(columns)+1)
	updates = append(updates, "id = LAST_INSERT_ID(id)")
	for _, col := range columns {
		if col == spec.BusinessKey {
			continue
		}
		updates = append(updates, fmt.Sprintf("%s = VALUES(%s)", col, col))
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON DUPLICATE KEY UPDATE %s",
		spec.Table,
		strings.Join(columns, ", "),
		placeholders,
		strings.Join(updates, ", "),
	)

	result, err := tx.ExecContext(ctx, query, values...)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert into %s: %w", spec.Table, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get destination row id: %w", err)
	}

	return id, nil
}

// GetByID reads a destination row back as a generic map. Returns nil when
// absent.
func (dao *DestinationDAO) GetByID(ctx context.Context, spec *mapping.EntitySpec, id int64) (map[string]interface{}, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE id = ?", spec.Table)

	row := dao.db.QueryRowxContext(ctx, query, id)

	dest := map[string]interface{}{}
	if err := row.MapScan(dest); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read destination row: %w", err)
	}

	return normalizeRow(dest), nil
}

// normalizeRow converts driver []byte values into strings so the row
// serializes as readable JSON
func normalizeRow(row map[string]interface{}) map[string]interface{} {
	for key, value := range row {
		if b, ok := value.([]byte); ok {
			row[key] = string(b)
		}
	}
	return row
}
