// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mailer sends outbound notification email.

It is a send-and-forget collaborator: the registration service invokes it
only after the database transaction has committed, and a delivery failure is
logged, never propagated. A lost confirmation email must not revert a
successful registration.
*/
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/taibuivan/rookery/internal/platform/ctxutil"
)

// SMTPMailer delivers mail through a plain SMTP relay.
type SMTPMailer struct {
	addr string
	from string
}

// NewSMTPMailer creates a mailer pointed at the given relay ("host:port").
func NewSMTPMailer(addr, from string) *SMTPMailer {
	return &SMTPMailer{addr: addr, from: from}
}

// Send delivers a single plain-text message. The error return exists for
// logging at the call site; callers treat delivery as best-effort.
func (mailer *SMTPMailer) Send(ctx context.Context, recipient, subject, body string) error {
	message := strings.Join([]string{
		"From: " + mailer.from,
		"To: " + recipient,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(mailer.addr, nil, mailer.from, []string{recipient}, []byte(message)); err != nil {
		return fmt.Errorf("mailer_send_failed: %w", err)
	}

	ctxutil.GetLogger(ctx).Info("confirmation_email_sent",
		slog.String("recipient", recipient),
	)

	return nil
}
