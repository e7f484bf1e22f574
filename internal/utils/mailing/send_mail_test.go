package mailing

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	config := MailConfig{SMTPEmail: "kitchen@example.com", SMTPSender: "Kitchen"}

	msg := NewMessage(config, "chef@example.com", "Plan", "<p>Rice</p>")

	assert.Equal(t, []string{"chef@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Plan"}, msg.GetHeader("Subject"))
	require.Len(t, msg.GetHeader("From"), 1)
	assert.Contains(t, msg.GetHeader("From")[0], "kitchen@example.com")

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<p>Rice</p>")
}

func TestSendRejectsInvalidPort(t *testing.T) {
	err := NewMailer(MailConfig{SMTPPort: "not-a-port"}).Send("a@example.com", "s", "b")
	assert.Error(t, err)
}
