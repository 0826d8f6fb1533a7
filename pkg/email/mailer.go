package email

import (
	"context"
	"fmt"
	"net/mail"
)

// EmailSender represents an interface for sending emails.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents the parameters for sending an email.
type SendEmailParams struct {
	SendTo   string // Email address of the recipient
	Subject  string // Subject of the email
	BodyHTML string // HTML body of the email
	Tag      string // Optional tag for delivery analytics
}

// Validate checks the minimum fields required for any transport.
func (p SendEmailParams) Validate() error {
	if _, err := mail.ParseAddress(p.SendTo); err != nil {
		return fmt.Errorf("%w: recipient %q: %v", ErrInvalidParams, p.SendTo, err)
	}
	if p.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidParams)
	}
	if p.BodyHTML == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidParams)
	}
	return nil
}
