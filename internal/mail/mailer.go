// Package mail sends outbound email over SMTP and records every attempt
// in the email log, success or failure.
package mail

import (
	"context"
	"io"

	"wallettally/internal/domain"
	"wallettally/internal/logger"
	"wallettally/internal/repository"

	"github.com/prometheus/client_golang/prometheus"
	gomail "gopkg.in/gomail.v2"
)

var emailsSent = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "emails_sent_total",
		Help: "Outbound emails by kind and status",
	},
	[]string{"kind", "status"},
)

func init() {
	prometheus.MustRegister(emailsSent)
}

type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logs   *repository.EmailLogRepository
}

// NewMailer builds a mailer. With an empty host the mailer runs in dev
// mode: nothing is dialed, sends are logged and recorded as sent.
func NewMailer(host string, port int, user, pass, from string, logs *repository.EmailLogRepository) *Mailer {
	m := &Mailer{from: from, logs: logs}
	if host != "" {
		m.dialer = gomail.NewDialer(host, port, user, pass)
	}
	return m
}

// Attachment is an in-memory file to attach to a message.
type Attachment struct {
	Filename string
	Data     []byte
}

// Send delivers one email and writes an email_logs row either way.
// The returned error reflects delivery; log-write failures are only logged.
func (m *Mailer) Send(ctx context.Context, userID int64, to, subject, kind, htmlBody string, attachments ...Attachment) error {
	var sendErr error

	if m.dialer == nil {
		logger.Info("mail dev mode, not sending", "to", to, "subject", subject, "kind", kind)
	} else {
		msg := gomail.NewMessage()
		msg.SetHeader("From", m.from)
		msg.SetHeader("To", to)
		msg.SetHeader("Subject", subject)
		msg.SetBody("text/html", htmlBody)
		for _, a := range attachments {
			data := a.Data
			msg.Attach(a.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}))
		}
		sendErr = m.dialer.DialAndSend(msg)
	}

	entry := &domain.EmailLog{
		UserID:    userID,
		Recipient: to,
		Subject:   subject,
		Kind:      kind,
		Status:    domain.EmailSent,
	}
	if sendErr != nil {
		entry.Status = domain.EmailFailed
		entry.Error = sendErr.Error()
		logger.Error("email send failed", "to", to, "kind", kind, "error", sendErr)
	}
	emailsSent.WithLabelValues(kind, string(entry.Status)).Inc()

	if err := m.logs.Create(ctx, entry); err != nil {
		logger.Error("failed to record email log", "error", err, "to", to)
	}

	return sendErr
}
