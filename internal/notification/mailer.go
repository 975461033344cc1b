package notification

import (
	"fmt"

	"github.com/sirupsen/logrus"
	gomail "gopkg.in/gomail.v2"

	"github.com/andessoft/registro-api/internal/config"
	"github.com/andessoft/registro-api/internal/models"
)

// Mailer sends best-effort admin notifications over SMTP. All methods are
// nil-receiver safe and never return an error to the caller; delivery
// failures are logged and dropped.
type Mailer struct {
	cfg    *config.NotificationsConfig
	dialer *gomail.Dialer
	logger *logrus.Logger
}

// NewMailer creates a mailer from the notifications configuration. Returns
// nil when notifications are disabled, which the nil-safe methods tolerate.
func NewMailer(cfg *config.NotificationsConfig, logger *logrus.Logger) *Mailer {
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	return &Mailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		logger: logger,
	}
}

// NotifySubmission tells the entity-type mailbox that a new public
// registration is waiting for review
func (m *Mailer) NotifySubmission(record *models.PendingRecord) {
	if m == nil {
		return
	}
	subject := fmt.Sprintf("Nuevo registro de %s pendiente de revisión", record.Tipo)
	body := fmt.Sprintf(
		"Se recibió un nuevo registro de %s (id %d) a través del formulario público.\n"+
			"Ingrese al panel de administración para aprobarlo o rechazarlo.",
		record.Tipo, record.ID,
	)
	m.send(record.Tipo, subject, body)
}

// NotifyApproval tells the entity-type mailbox that a registration was
// approved and merged into its destination table
func (m *Mailer) NotifyApproval(record *models.PendingRecord, destinoID int64) {
	if m == nil {
		return
	}
	subject := fmt.Sprintf("Registro de %s aprobado", record.Tipo)
	body := fmt.Sprintf(
		"El registro pendiente %d fue aprobado y guardado en la tabla de %ss con id %d.",
		record.ID, record.Tipo, destinoID,
	)
	m.send(record.Tipo, subject, body)
}

func (m *Mailer) send(tipo, subject, body string) {
	to := m.cfg.MailboxFor(tipo)
	if to == "" {
		m.logger.WithField("tipo", tipo).Warn("No notification mailbox configured for tipo")
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.WithError(err).WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Error("Failed to send notification email")
	}
}
