package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/andessoft/registro-api/internal/config"
	"github.com/andessoft/registro-api/internal/dao"
	"github.com/andessoft/registro-api/internal/models"
	"github.com/andessoft/registro-api/internal/serviceerror"
	"github.com/andessoft/registro-api/pkg/utils"
)

// TokenService handles issuance and validation of registration tokens
type TokenService struct {
	tokenDAO *dao.TokenDAO
	logger   *logrus.Logger
}

// NewTokenService creates a new token service instance
func NewTokenService(tokenDAO *dao.TokenDAO, logger *logrus.Logger) *TokenService {
	return &TokenService{
		tokenDAO: tokenDAO,
		logger:   logger,
	}
}

// IssueToken creates a random single-use token for the given entity type,
// valid for the configured number of days, and returns it together with the
// public registration URL.
func (s *TokenService) IssueToken(ctx context.Context, tipo, issuerID string) (*models.TokenResponse, *serviceerror.ServiceError) {
	if !models.IsValidTipo(tipo) {
		return nil, serviceerror.CustomServiceError(serviceerror.ValidationError,
			fmt.Sprintf("tipo must be one of %s, %s, %s", models.TipoEmpleado, models.TipoCliente, models.TipoProveedor))
	}

	tokenStr, err := utils.GenerateRegistrationToken()
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate registration token")
		return nil, serviceerror.CustomServiceError(serviceerror.InternalServerError, "failed to generate token")
	}

	cfg := config.Get()

	token := &models.RegistrationToken{
		Token:     tokenStr,
		Tipo:      tipo,
		CreadoEn:  utils.GetCurrentTimeMillis(),
		ExpiraEn:  utils.DaysFromNow(cfg.Registration.TokenTTLDays),
		CreadoPor: issuerID,
	}

	if err := s.tokenDAO.Create(ctx, token); err != nil {
		s.logger.WithError(err).Error("Failed to persist registration token")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to create token")
	}

	s.logger.WithFields(logrus.Fields{
		"token_id": token.ID,
		"tipo":     tipo,
		"issuer":   issuerID,
	}).Info("Registration token issued")

	return &models.TokenResponse{
		RegistrationToken: *token,
		URLRegistro:       BuildRegistrationURL(cfg.Registration.FrontendBaseURL, tipo, tokenStr),
	}, nil
}

// BuildRegistrationURL constructs the public form URL delivered to the third
// party
func BuildRegistrationURL(frontendBase, tipo, token string) string {
	return fmt.Sprintf("%s/registro/%s?token=%s", strings.TrimRight(frontendBase, "/"), tipo, token)
}

// ValidateToken runs the three-way usability check in fixed order:
// not found, then consumed, then expired. The same check is re-run by the
// intake at submission time; it is never cached.
func (s *TokenService) ValidateToken(ctx context.Context, tokenStr string) (*models.TokenValidation, *serviceerror.ServiceError) {
	token, err := s.tokenDAO.GetByToken(ctx, tokenStr)
	if err != nil {
		s.logger.WithError(err).Error("Failed to look up registration token")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to validate token")
	}

	if motivo := EvaluateToken(token); motivo != "" {
		return &models.TokenValidation{
			Valido:  false,
			Motivo:  motivo,
			Message: motivoMessage(motivo),
		}, nil
	}

	return &models.TokenValidation{
		Valido:  true,
		Tipo:    token.Tipo,
		Message: "Token válido",
	}, nil
}

// EvaluateToken returns the failure motivo for a token, or an empty string
// when the token is usable. The check order (no_encontrado, usado, expirado)
// is part of the contract: a consumed token reports usado even after expiry.
func EvaluateToken(token *models.RegistrationToken) string {
	if token == nil {
		return models.MotivoNoEncontrado
	}
	if token.Usado {
		return models.MotivoUsado
	}
	if utils.IsExpired(token.ExpiraEn) {
		return models.MotivoExpirado
	}
	return ""
}

func motivoMessage(motivo string) string {
	switch motivo {
	case models.MotivoUsado:
		return "Este enlace de registro ya fue utilizado"
	case models.MotivoExpirado:
		return "Este enlace de registro ha expirado"
	default:
		return "Enlace de registro no válido"
	}
}

// ListTokens returns all issued tokens, newest-first, with issuer names
func (s *TokenService) ListTokens(ctx context.Context) ([]models.TokenWithIssuer, *serviceerror.ServiceError) {
	tokens, err := s.tokenDAO.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list registration tokens")
		return nil, serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to list tokens")
	}
	return tokens, nil
}

// DeleteToken removes a token by id
func (s *TokenService) DeleteToken(ctx context.Context, id int64) *serviceerror.ServiceError {
	deleted, err := s.tokenDAO.Delete(ctx, id)
	if err != nil {
		s.logger.WithError(err).Error("Failed to delete registration token")
		return serviceerror.CustomServiceError(serviceerror.DatabaseError, "failed to delete token")
	}
	if !deleted {
		return serviceerror.CustomServiceError(serviceerror.ResourceNotFoundError, "token not found")
	}
	return nil
}
