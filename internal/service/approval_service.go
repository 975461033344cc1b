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

// errAlreadyDecided signals that the compare-and-swap decision update lost a
// race against a concurrent reviewer
var errAlreadyDecided = errors.New("record already decided")

// ApprovalService runs the workflow state machine over pending registration
// records: pendiente to aprobado/rechazado, plus the archive/restore pair.
// Every transition is a conditional update keyed on the current estado.
type ApprovalService struct {
	pendingDAO     *dao.PendingRecordDAO
	destinationDAO *dao.DestinationDAO
	db             *database.DB
	notifier       *notification.Mailer
	logger         *logrus.Logger
}

// NewApprovalService creates a new approval service instance
func NewApprovalService(
	pendingDAO *dao.PendingRecordDAO,
	destinationDAO *dao.DestinationDAO,
	db *database.DB,
	notifier *notification.Mailer,
	logger *logrus.Logger,
) *ApprovalService {
	return &ApprovalService{
		pendingDAO:     pendingDAO,
		destinationDAO: destinationDAO,
		db:             db,
		notifier:       notifier,
		logger:         logger,
	}
}

// Approve transitions a pending record to aprobado and merges its payload
// into the destination table for its entity type, upserting on the natural
// business key. Reviewer overrides win over the stored payload. The state
// swap, the destination upsert and the back-reference stamp run in one
// transaction, so a losing concurrent approval never touches the
// destination table.
func (s *ApprovalService) Approve(ctx context.Context, id int64, overrides map[string]interface{}, actor string) (map[string]interface{}, *serviceerror.ServiceError) {
	record, err := s.pendingDAO.GetByID(ctx, id)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load pending record")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to load pending record")
	}
	if record == nil {
		return nil, serviceerror.CustomServiceError(serviceerror.ResourceNotFoundError, "registro pendiente no encontrado")
	}
	if record.Estado != models.EstadoPendiente {
		return nil, &serviceerror.AlreadyProcessedError
	}

	spec, ok := mapping.SpecFor(record.Tipo)
	if !ok {
		return nil, serviceerror.CustomServiceError(serviceerror.InternalServerError,
			fmt.Sprintf("registro con tipo no reconocido: %s", record.Tipo))
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(record.Datos, &payload); err != nil {
		s.logger.WithError(err).WithField("record_id", id).Error("Stored payload is not valid JSON")
		return nil, serviceerror.CustomServiceError(serviceerror.InternalServerError, "stored payload is corrupt")
	}

	for key, value := range overrides {
		payload[key] = value
	}

	if mapping.NormalizeValue(payload[spec.BusinessKey]) == nil {
		return nil, serviceerror.CustomServiceError(serviceerror.ValidationError,
			fmt.Sprintf("el campo %s es obligatorio para aprobar", spec.BusinessKey))
	}

	decididoEn := utils.GetCurrentTimeMillis()
	var destinoID int64

	txErr := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		swapped, err := s.pendingDAO.DecideWithTx(ctx, tx, id, models.EstadoAprobado, actor, decididoEn, nil)
		if err != nil {
			return err
		}
		if !swapped {
			return errAlreadyDecided
		}

		destinoID, err = s.destinationDAO.UpsertWithTx(ctx, tx, spec, payload)
		if err != nil {
			return err
		}

		return s.pendingDAO.SetRegistroDestinoWithTx(ctx, tx, id, destinoID)
	})

	if txErr != nil {
		if errors.Is(txErr, errAlreadyDecided) {
			return nil, &serviceerror.AlreadyProcessedError
		}
		s.logger.WithError(txErr).WithField("record_id", id).Error("Failed to approve pending record")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to approve record")
	}

	s.logger.WithFields(logrus.Fields{
		"record_id":  id,
		"tipo":       record.Tipo,
		"destino_id": destinoID,
		"actor":      actor,
	}).Info("Pending record approved")

	destino, err := s.destinationDAO.GetByID(ctx, spec, destinoID)
	if err != nil {
		s.logger.WithError(err).WithField("destino_id", destinoID).Error("Failed to read back destination row")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to read destination record")
	}

	go s.notifier.NotifyApproval(record, destinoID)

	return destino, nil
}

// Reject transitions a pending record to rechazado. A non-empty motivo is
// required.
func (s *ApprovalService) Reject(ctx context.Context, id int64, motivo, actor string) (*models.PendingRecord, *serviceerror.ServiceError) {
	motivo = strings.TrimSpace(motivo)
	if motivo == "" {
		return nil, serviceerror.CustomServiceError(serviceerror.ValidationError, "el motivo de rechazo es obligatorio")
	}

	record, err := s.pendingDAO.GetByID(ctx, id)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load pending record")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to load pending record")
	}
	if record == nil {
		return nil, serviceerror.CustomServiceError(serviceerror.ResourceNotFoundError, "registro pendiente no encontrado")
	}
	if record.Estado != models.EstadoPendiente {
		return nil, &serviceerror.AlreadyProcessedError
	}

	decididoEn := utils.GetCurrentTimeMillis()

	txErr := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		swapped, err := s.pendingDAO.DecideWithTx(ctx, tx, id, models.EstadoRechazado, actor, decididoEn, &motivo)
		if err != nil {
			return err
		}
		if !swapped {
			return errAlreadyDecided
		}
		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, errAlreadyDecided) {
			return nil, &serviceerror.AlreadyProcessedError
		}
		s.logger.WithError(txErr).WithField("record_id", id).Error("Failed to reject pending record")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to reject record")
	}

	s.logger.WithFields(logrus.Fields{
		"record_id": id,
		"actor":     actor,
	}).Info("Pending record rejected")

	record.Estado = models.EstadoRechazado
	record.DecididoPor = &actor
	record.DecididoEn = &decididoEn
	record.MotivoRechazo = &motivo

	return record, nil
}

// Archive moves a decided record into its matching archived state
func (s *ApprovalService) Archive(ctx context.Context, id int64) (*models.PendingRecord, *serviceerror.ServiceError) {
	return s.swapEstado(ctx, id, models.ArchivedState,
		"sólo registros aprobados o rechazados pueden archivarse")
}

// Restore moves an archived record back to its pre-archive state
func (s *ApprovalService) Restore(ctx context.Context, id int64) (*models.PendingRecord, *serviceerror.ServiceError) {
	return s.swapEstado(ctx, id, models.RestoredState,
		"sólo registros archivados pueden restaurarse")
}

// swapEstado implements the archive/restore pair: both are a pure
// conditional state swap with no other field mutated.
func (s *ApprovalService) swapEstado(ctx context.Context, id int64, transition func(string) (string, bool), guardMsg string) (*models.PendingRecord, *serviceerror.ServiceError) {
	record, err := s.pendingDAO.GetByID(ctx, id)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load pending record")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to load pending record")
	}
	if record == nil {
		return nil, serviceerror.CustomServiceError(serviceerror.ResourceNotFoundError, "registro no encontrado")
	}

	to, ok := transition(record.Estado)
	if !ok {
		return nil, serviceerror.CustomServiceError(serviceerror.InvalidStateError, guardMsg)
	}

	swapped, err := s.pendingDAO.UpdateEstado(ctx, id, record.Estado, to)
	if err != nil {
		s.logger.WithError(err).WithField("record_id", id).Error("Failed to swap record estado")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to update record")
	}
	if !swapped {
		// Raced with another transition since the read
		return nil, serviceerror.CustomServiceError(serviceerror.InvalidStateError, guardMsg)
	}

	record.Estado = to
	return record, nil
}

// ListPendientes returns undecided records, newest-first
func (s *ApprovalService) ListPendientes(ctx context.Context) ([]models.PendingRecord, *serviceerror.ServiceError) {
	return s.list(ctx, models.EstadoPendiente)
}

// ListHistorial returns decided records, including those already picked up
// by the accounting integration
func (s *ApprovalService) ListHistorial(ctx context.Context) ([]models.PendingRecord, *serviceerror.ServiceError) {
	return s.list(ctx, models.EstadoAprobado, models.EstadoRechazado, models.EstadoCreadoContabilidad)
}

// ListArchivados returns archived records
func (s *ApprovalService) ListArchivados(ctx context.Context) ([]models.PendingRecord, *serviceerror.ServiceError) {
	return s.list(ctx, models.EstadoArchivadoAprobado, models.EstadoArchivadoRechazado)
}

func (s *ApprovalService) list(ctx context.Context, estados ...string) ([]models.PendingRecord, *serviceerror.ServiceError) {
	records, err := s.pendingDAO.ListByEstados(ctx, estados...)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list pending records")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to list records")
	}
	return records, nil
}
