// Package mail delivers invitation emails through SendGrid dynamic templates.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Invitation carries the template parameters of an invitation email.
type Invitation struct {
	InvitationID  string
	ToEmail       string
	ToName        string
	FromName      string
	Link          string
	Role          string
	Message       string
	ReplyTo       string
	WorkspaceName string
}

// TemplateData is the parameter set the invitation template expects.
func (i Invitation) TemplateData() map[string]any {
	toName := i.ToName
	if toName == "" {
		toName = i.ToEmail
	}

	return map[string]any{
		"to_email":        i.ToEmail,
		"to_name":         toName,
		"from_name":       i.FromName,
		"invitation_link": i.Link,
		"role":            i.Role,
		"message":         i.Message,
		"reply_to":        i.ReplyTo,
	}
}

type SendGridClient struct {
	client     *sendgrid.Client
	fromEmail  string
	fromName   string
	templateID string
}

func NewSendGridClient(apiKey, fromEmail, fromName, templateID string) *SendGridClient {
	return &SendGridClient{
		client:     sendgrid.NewSendClient(apiKey),
		fromEmail:  fromEmail,
		fromName:   fromName,
		templateID: templateID,
	}
}

func (c *SendGridClient) SendInvitation(ctx context.Context, inv Invitation) error {
	if strings.TrimSpace(inv.ToEmail) == "" {
		return fmt.Errorf("to address is empty")
	}

	msg := c.buildMessage(inv)

	resp, err := c.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d body=%s", resp.StatusCode, resp.Body)
	}

	slog.Info("invitation email sent", "to", inv.ToEmail, "status", resp.StatusCode)

	return nil
}

// buildMessage renders inv through the dynamic template when one is
// configured and falls back to a plain text email otherwise.
func (c *SendGridClient) buildMessage(inv Invitation) *sgmail.SGMailV3 {
	from := sgmail.NewEmail(c.fromName, c.fromEmail)
	to := sgmail.NewEmail(inv.ToName, inv.ToEmail)

	if c.templateID == "" {
		subject := fmt.Sprintf("%s invited you to %s", inv.FromName, inv.WorkspaceName)
		msg := sgmail.NewSingleEmail(from, subject, to, plainText(inv), "")

		if inv.ReplyTo != "" {
			msg.SetReplyTo(sgmail.NewEmail(inv.FromName, inv.ReplyTo))
		}

		return msg
	}

	msg := sgmail.NewV3Mail()
	msg.SetFrom(from)
	msg.SetTemplateID(c.templateID)

	p := sgmail.NewPersonalization()
	p.AddTos(to)

	for k, v := range inv.TemplateData() {
		p.SetDynamicTemplateData(k, v)
	}

	msg.AddPersonalizations(p)

	if inv.ReplyTo != "" {
		msg.SetReplyTo(sgmail.NewEmail(inv.FromName, inv.ReplyTo))
	}

	return msg
}

func plainText(inv Invitation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s invited you to join %q as %s.\n\n", inv.FromName, inv.WorkspaceName, inv.Role)

	if inv.Message != "" {
		fmt.Fprintf(&b, "%s\n\n", inv.Message)
	}

	fmt.Fprintf(&b, "Accept the invitation: %s\n", inv.Link)

	return b.String()
}

// LogMailer is used when no SendGrid key is configured. It logs which
// invitation was not delivered; the accept link carries the token and is
// never logged.
type LogMailer struct {
	Logger *slog.Logger
}

func (m LogMailer) SendInvitation(_ context.Context, inv Invitation) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("email delivery disabled, invitation not sent", "invitation_id", inv.InvitationID, "to", inv.ToEmail)

	return nil
}
