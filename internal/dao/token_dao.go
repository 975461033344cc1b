package dao

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/andessoft/registro-api/internal/database"
	"github.com/andessoft/registro-api/internal/models"
)

// TokenDAO handles database operations for registration tokens
type TokenDAO struct {
	db *database.DB
}

// NewTokenDAO creates a new TokenDAO instance
func NewTokenDAO(db *database.DB) *TokenDAO {
	return &TokenDAO{db: db}
}

// Create inserts a new token and sets its generated id
func (dao *TokenDAO) Create(ctx context.Context, token *models.RegistrationToken) error {
	query := `
		INSERT INTO tokens_registro (token, tipo, creado_en, expira_en, usado, creado_por)
		VALUES (?, ?, ?, ?, 0, ?)
	`

	result, err := dao.db.ExecContext(
		ctx,
		query,
		token.Token,
		token.Tipo,
		token.CreadoEn,
		token.ExpiraEn,
		token.CreadoPor,
	)
	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get token id: %w", err)
	}
	token.ID = id

	return nil
}

// GetByToken retrieves a token by its opaque string. Returns nil when no
// such token exists.
func (dao *TokenDAO) GetByToken(ctx context.Context, tokenStr string) (*models.RegistrationToken, error) {
	query := `
		SELECT id, token, tipo, creado_en, expira_en, usado, usado_en, creado_por
		FROM tokens_registro
		WHERE token = ?
	`

	var token models.RegistrationToken
	err := dao.db.GetContext(ctx, &token, query, tokenStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	return &token, nil
}

// GetByTokenAndTipo retrieves a token filtered by both token string and
// entity type, so a token minted for one entity cannot validate against
// another entity's endpoint. Returns nil when no row matches.
func (dao *TokenDAO) GetByTokenAndTipo(ctx context.Context, tokenStr, tipo string) (*models.RegistrationToken, error) {
	query := `
		SELECT id, token, tipo, creado_en, expira_en, usado, usado_en, creado_por
		FROM tokens_registro
		WHERE token = ? AND tipo = ?
	`

	var token models.RegistrationToken
	err := dao.db.GetContext(ctx, &token, query, tokenStr, tipo)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	return &token, nil
}

// List retrieves all tokens newest-first with the issuer name joined from
// the usuarios table
func (dao *TokenDAO) List(ctx context.Context) ([]models.TokenWithIssuer, error) {
	query := `
		SELECT t.id, t.token, t.tipo, t.creado_en, t.expira_en, t.usado, t.usado_en,
		       t.creado_por, u.nombre AS creado_por_nombre
		FROM tokens_registro t
		LEFT JOIN usuarios u ON u.id = t.creado_por
		ORDER BY t.creado_en DESC
	`

	var tokens []models.TokenWithIssuer
	err := dao.db.SelectContext(ctx, &tokens, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}

	return tokens, nil
}

// Delete removes a token by id. Returns false when no row was deleted.
func (dao *TokenDAO) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM tokens_registro WHERE id = ?`

	result, err := dao.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// ConsumeWithTx flips the consumed flag as a conditional update. A false
// return means the token was already consumed by a concurrent submission,
// in which case the caller must roll back.
func (dao *TokenDAO) ConsumeWithTx(ctx context.Context, tx *database.Transaction, id int64, usadoEn int64) (bool, error) {
	query := `
		UPDATE tokens_registro
		SET usado = 1, usado_en = ?
		WHERE id = ? AND usado = 0
	`

	result, err := tx.ExecContext(ctx, query, usadoEn, id)
	if err != nil {
		return false, fmt.Errorf("failed to consume token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}
