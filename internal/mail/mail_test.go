package mail

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvitation_TemplateData(t *testing.T) {
	inv := Invitation{
		ToEmail:  "bob@example.com",
		FromName: "Ana",
		Link:     "https://app.example.com/invitation/accept?token=inv_x",
		Role:     "viewer",
		ReplyTo:  "ana@example.com",
	}

	data := inv.TemplateData()

	assert.Equal(t, "bob@example.com", data["to_email"])
	assert.Equal(t, "bob@example.com", data["to_name"])
	assert.Equal(t, "Ana", data["from_name"])
	assert.Equal(t, inv.Link, data["invitation_link"])
	assert.Equal(t, "viewer", data["role"])
	assert.Equal(t, "", data["message"])
	assert.Equal(t, "ana@example.com", data["reply_to"])
	assert.Len(t, data, 7)
}

func TestSendGridClient_BuildMessage(t *testing.T) {
	inv := Invitation{ToEmail: "bob@example.com", FromName: "Ana", Link: "https://x", Role: "editor", WorkspaceName: "Ana & Rui", ReplyTo: "ana@example.com"}

	t.Run("Template", func(t *testing.T) {
		c := NewSendGridClient("key", "no-reply@example.com", "Planner", "d-123")
		msg := c.buildMessage(inv)

		assert.Equal(t, "d-123", msg.TemplateID)
		assert.Equal(t, "no-reply@example.com", msg.From.Address)
		require.Len(t, msg.Personalizations, 1)
		assert.Equal(t, "bob@example.com", msg.Personalizations[0].To[0].Address)
		assert.Equal(t, "https://x", msg.Personalizations[0].DynamicTemplateData["invitation_link"])
		assert.Equal(t, "ana@example.com", msg.ReplyTo.Address)
	})

	t.Run("PlainText", func(t *testing.T) {
		c := NewSendGridClient("key", "no-reply@example.com", "Planner", "")
		msg := c.buildMessage(inv)

		assert.Empty(t, msg.TemplateID)
		assert.Equal(t, "Ana invited you to Ana & Rui", msg.Subject)
		require.NotEmpty(t, msg.Content)
		assert.Contains(t, msg.Content[0].Value, "https://x")
	})
}

func TestLogMailer_SendInvitation(t *testing.T) {
	var buf bytes.Buffer
	m := LogMailer{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	inv := Invitation{
		InvitationID: "inv1",
		ToEmail:      "bob@example.com",
		Link:         "https://app.example.com/invitation/accept?token=inv_secret&email=bob%40example.com",
	}

	require.NoError(t, m.SendInvitation(context.Background(), inv))

	out := buf.String()
	assert.Contains(t, out, "invitation_id=inv1")
	assert.Contains(t, out, "to=bob@example.com")
	assert.NotContains(t, out, "inv_secret")
	assert.NotContains(t, out, "accept?")
}
