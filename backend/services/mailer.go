// ABOUTME: Mail dispatch for agreement documents over SMTP
// ABOUTME: Sends the PDF to the requester with the school address in copy

package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"

	"github.com/beyondskool/pricing-wizard/backend/config"
	"github.com/beyondskool/pricing-wizard/backend/models"
)

// Mailer sends agreement documents over SMTP. Credentials come from the
// environment via config; they are never logged.
type Mailer struct {
	cfg *config.Config
}

// NewMailer creates a mailer from the loaded configuration
func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// Configured reports whether SMTP credentials are present. Send refuses to
// run without them, so callers can surface a clear status instead of a
// connection error.
func (m *Mailer) Configured() bool {
	return m.cfg.MailConfigured()
}

// Send mails the agreement PDF for the session. The requester receives the
// mail with the school address in copy unless input overrides either
// recipient. All failures wrap ErrDeliveryFailure; the caller leaves the
// session state untouched so the send can be retried.
func (m *Mailer) Send(ctx context.Context, session *models.PricingSession, input models.SendInput, filename string, pdf []byte) error {
	if !m.Configured() {
		return fmt.Errorf("%w: SMTP is not configured", models.ErrDeliveryFailure)
	}

	to := session.RequesterEmail
	if input.To != "" {
		to = input.To
	}
	cc := session.SchoolEmail
	if input.Cc != "" {
		cc = input.Cc
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("%w: invalid sender address: %v", models.ErrDeliveryFailure, err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("%w: invalid recipient address: %v", models.ErrDeliveryFailure, err)
	}
	if cc != "" {
		if err := msg.Cc(cc); err != nil {
			return fmt.Errorf("%w: invalid cc address: %v", models.ErrDeliveryFailure, err)
		}
	}

	msg.Subject(fmt.Sprintf("BeyondSkool Partnership Agreement - %s", session.SchoolName))
	msg.SetBodyString(mail.TypeTextPlain, mailBody(session))
	if err := msg.AttachReader(filename, bytes.NewReader(pdf)); err != nil {
		return fmt.Errorf("%w: attaching agreement: %v", models.ErrDeliveryFailure, err)
	}

	client, err := mail.NewClient(m.cfg.SMTPHost,
		mail.WithPort(m.cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.SMTPUsername),
		mail.WithPassword(m.cfg.SMTPPassword),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrDeliveryFailure, err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", models.ErrDeliveryFailure, err)
	}

	slog.Info("Agreement dispatched",
		"session_id", session.ID,
		"school", session.SchoolName,
		"attachment", filename,
	)
	return nil
}

func mailBody(session *models.PricingSession) string {
	return fmt.Sprintf(
		"Dear %s team,\n\n"+
			"Please find attached the BeyondSkool partnership agreement covering the "+
			"selected programs for the upcoming academic year.\n\n"+
			"Total annual price: Rs.%d for %d students.\n\n"+
			"We look forward to working with you.\n\n"+
			"Warm regards,\nBeyondSkool\n",
		session.SchoolName,
		session.Summary.DisplayTotalFinalPrice,
		session.Summary.TotalStudents,
	)
}
