package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/andessoft/registro-api/internal/dao"
	"github.com/andessoft/registro-api/internal/database"
	"github.com/andessoft/registro-api/internal/mapping"
	"github.com/andessoft/registro-api/internal/models"
	"github.com/andessoft/registro-api/internal/notification"
	"github.com/andessoft/registro-api/internal/serviceerror"
	"github.com/andessoft/registro-api/pkg/utils"
)

// errTokenConsumed signals that the conditional token consume lost a race
// against a concurrent submission with the same token
var errTokenConsumed = errors.New("token already consumed")

// RegistrationService handles the public intake: validating the token,
// validating the entity-specific payload and writing the pending record
// while consuming the token in the same transaction.
type RegistrationService struct {
	tokenDAO   *dao.TokenDAO
	pendingDAO *dao.PendingRecordDAO
	db         *database.DB
	notifier   *notification.Mailer
	logger     *logrus.Logger
}

// NewRegistrationService creates a new registration service instance
func NewRegistrationService(
	tokenDAO *dao.TokenDAO,
	pendingDAO *dao.PendingRecordDAO,
	db *database.DB,
	notifier *notification.Mailer,
	logger *logrus.Logger,
) *RegistrationService {
	return &RegistrationService{
		tokenDAO:   tokenDAO,
		pendingDAO: pendingDAO,
		db:         db,
		notifier:   notifier,
		logger:     logger,
	}
}

// Submit accepts a public form payload for the given token and entity type.
// The token lookup is filtered by both the token string and the tipo, so a
// token minted for one entity type never validates on another type's path.
func (s *RegistrationService) Submit(ctx context.Context, tipo, tokenStr string, datos models.JSON) (*models.PendingRecord, *serviceerror.ServiceError) {
	spec, ok := mapping.SpecFor(tipo)
	if !ok {
		return nil, serviceerror.CustomServiceError(serviceerror.ValidationError,
			fmt.Sprintf("tipo de registro no reconocido: %s", tipo))
	}

	token, err := s.tokenDAO.GetByTokenAndTipo(ctx, tokenStr, tipo)
	if err != nil {
		s.logger.WithError(err).Error("Failed to look up registration token")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to look up token")
	}

	// Same three-way check as the validator, re-run at submission time
	switch EvaluateToken(token) {
	case models.MotivoNoEncontrado:
		return nil, serviceerror.CustomServiceError(serviceerror.ResourceNotFoundError, "Enlace de registro no válido")
	case models.MotivoUsado:
		return nil, &serviceerror.TokenUsedError
	case models.MotivoExpirado:
		return nil, &serviceerror.TokenExpiredError
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(datos, &payload); err != nil {
		return nil, serviceerror.CustomServiceError(serviceerror.InvalidRequestError, "el cuerpo de la solicitud no es un objeto JSON válido")
	}

	if missing := spec.MissingRequired(payload); len(missing) > 0 {
		return nil, serviceerror.CustomServiceError(serviceerror.ValidationError,
			fmt.Sprintf("faltan campos obligatorios: %s", strings.Join(missing, ", ")))
	}

	record := &models.PendingRecord{
		Tipo:      tipo,
		Estado:    models.EstadoPendiente,
		Datos:     datos,
		TokenID:   &token.ID,
		CreadoPor: token.CreadoPor,
		CreadoEn:  utils.GetCurrentTimeMillis(),
	}

	// The pending insert and the token consume share one transaction; the
	// conditional consume doubles as the reuse guard under concurrency.
	txErr := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		if err := s.pendingDAO.CreateWithTx(ctx, tx, record); err != nil {
			return err
		}

		consumed, err := s.tokenDAO.ConsumeWithTx(ctx, tx, token.ID, record.CreadoEn)
		if err != nil {
			return err
		}
		if !consumed {
			return errTokenConsumed
		}

		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, errTokenConsumed) {
			return nil, &serviceerror.TokenUsedError
		}
		s.logger.WithError(txErr).WithFields(logrus.Fields{
			"tipo":     tipo,
			"token_id": token.ID,
		}).Error("Failed to persist public registration")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to persist registration")
	}

	s.logger.WithFields(logrus.Fields{
		"record_id": record.ID,
		"tipo":      tipo,
		"token_id":  token.ID,
	}).Info("Public registration received")

	// Best-effort notification, never blocks the submission
	go s.notifier.NotifySubmission(record)

	return record, nil
}
