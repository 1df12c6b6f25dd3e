package main

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

//go:embed templates/*.html
var templateFS embed.FS

type mailTemplate struct {
	subject string
	tmpl    *template.Template
}

// 邮件类型到模板的映射
var mailTemplates = map[string]mailTemplate{
	domain.MailTypeWelcome: {
		subject: "ECNC 新闻中心 - 注册成功",
		tmpl:    template.Must(template.ParseFS(templateFS, "templates/welcome.html")),
	},
	domain.MailTypeResetPassword: {
		subject: "ECNC 新闻中心 - 重置密码",
		tmpl:    template.Must(template.ParseFS(templateFS, "templates/reset_password.html")),
	},
	domain.MailTypeCommentReported: {
		subject: "ECNC 新闻中心 - 评论被举报",
		tmpl:    template.Must(template.ParseFS(templateFS, "templates/comment_reported.html")),
	},
}

// buildMail 根据邮件类型渲染邮件，不支持的类型返回错误
func buildMail(from string, m domain.MailMessage) (*mail.Msg, error) {
	t, ok := mailTemplates[m.Type]
	if !ok {
		return nil, fmt.Errorf("不支持的邮件类型: %s", m.Type)
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("无法设置邮件发件人: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("无法设置邮件收件人: %w", err)
	}
	if err := msg.SetBodyHTMLTemplate(t.tmpl, m.Data); err != nil {
		return nil, fmt.Errorf("无法设置邮件正文: %w", err)
	}
	msg.Subject(t.subject)

	return msg, nil
}
