package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
)

// 消息经过队列后 Data 会被反序列化成 map
func roundTrip(t *testing.T, m domain.MailMessage) domain.MailMessage {
	t.Helper()
	body, err := json.Marshal(m)
	require.NoError(t, err)

	var out domain.MailMessage
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestBuildMailRendersEveryType(t *testing.T) {
	for _, tt := range []struct {
		msg  domain.MailMessage
		want []string
	}{
		{
			msg:  domain.MailMessage{Type: domain.MailTypeWelcome, To: "alice@example.com", Data: domain.WelcomeMailData{Name: "alice"}},
			want: []string{"alice"},
		},
		{
			msg: domain.MailMessage{Type: domain.MailTypeResetPassword, To: "alice@example.com", Data: domain.ResetPasswordMailData{
				Name: "alice", OTP: "123456", Expiration: 15,
			}},
			want: []string{"123456", "15 分钟"},
		},
		{
			msg: domain.MailMessage{Type: domain.MailTypeCommentReported, To: "alice@example.com", Data: domain.CommentReportedMailData{
				Name: "alice", CommentContent: "spam", ReportContent: "广告",
			}},
			want: []string{"spam", "广告"},
		},
	} {
		t.Run(tt.msg.Type, func(t *testing.T) {
			received := roundTrip(t, tt.msg)

			m, err := buildMail("newsroom@example.com", received)
			require.NoError(t, err)
			recipients, err := m.GetRecipients()
			require.NoError(t, err)
			assert.Equal(t, []string{"alice@example.com"}, recipients)

			var buf bytes.Buffer
			require.NoError(t, mailTemplates[tt.msg.Type].tmpl.Execute(&buf, received.Data))
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestBuildMailRejectsUnknownType(t *testing.T) {
	_, err := buildMail("newsroom@example.com", domain.MailMessage{Type: "change_email", To: "alice@example.com"})
	assert.Error(t, err)

	_, err = buildMail("newsroom@example.com", domain.MailMessage{Type: domain.MailTypeWelcome, To: "not-an-address"})
	assert.Error(t, err)
}
