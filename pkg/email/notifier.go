package email

import (
	"context"
	"fmt"
	"html/template"
	"strings"
)

const brandName = "WatersMet Car Rentals"

var verificationTmpl = template.Must(template.New("verification").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; line-height: 1.6;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 20px; border-radius: 8px 8px 0 0;">
      <h1 style="margin: 0;">` + brandName + `</h1>
    </div>
    <div style="padding: 20px; border: 1px solid #eee; border-top: none; border-radius: 0 0 8px 8px;">
      <p>Hi {{.Name}},</p>
      <p>Use the code below to verify your email address. It expires in 10 minutes.</p>
      <p style="font-size: 32px; font-weight: bold; letter-spacing: 8px; text-align: center;">{{.Code}}</p>
      <p>If you didn't create an account, you can safely ignore this email.</p>
    </div>
  </div>
</body>
</html>`))

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; line-height: 1.6;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 20px; border-radius: 8px 8px 0 0;">
      <h1 style="margin: 0;">Welcome to ` + brandName + `</h1>
    </div>
    <div style="padding: 20px; border: 1px solid #eee; border-top: none; border-radius: 0 0 8px 8px;">
      <p>Hi {{.Name}},</p>
      <p>Your email is verified and your account is ready. Browse our fleet and book your first ride whenever you like.</p>
      <p>See you on the road!</p>
    </div>
  </div>
</body>
</html>`))

// Notifier renders and dispatches the identity-related emails through an
// EmailSender transport.
type Notifier struct {
	sender EmailSender
}

// NewNotifier creates a Notifier on top of the given transport.
func NewNotifier(sender EmailSender) *Notifier {
	return &Notifier{sender: sender}
}

// SendVerificationCode emails a one-time verification code.
func (n *Notifier) SendVerificationCode(ctx context.Context, to, code, name string) error {
	var body strings.Builder
	if err := verificationTmpl.Execute(&body, struct{ Name, Code string }{Name: name, Code: code}); err != nil {
		return fmt.Errorf("render verification email: %w", err)
	}

	return n.sender.SendEmail(ctx, SendEmailParams{
		SendTo:   to,
		Subject:  "Verify Your Email - " + brandName,
		BodyHTML: body.String(),
		Tag:      "email-verification",
	})
}

// SendWelcome emails the post-verification welcome message.
func (n *Notifier) SendWelcome(ctx context.Context, to, name string) error {
	var body strings.Builder
	if err := welcomeTmpl.Execute(&body, struct{ Name string }{Name: name}); err != nil {
		return fmt.Errorf("render welcome email: %w", err)
	}

	return n.sender.SendEmail(ctx, SendEmailParams{
		SendTo:   to,
		Subject:  "Welcome to " + brandName + "!",
		BodyHTML: body.String(),
		Tag:      "welcome",
	})
}
