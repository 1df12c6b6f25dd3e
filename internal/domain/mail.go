package domain

// MailQueue 是 api 和 mail worker 之间传递邮件的队列
const MailQueue = "email_queue"

const (
	MailTypeWelcome         = "welcome"
	MailTypeResetPassword   = "reset_password"
	MailTypeCommentReported = "comment_reported"
)

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type WelcomeMailData struct {
	Name string `json:"name"`
}

type ResetPasswordMailData struct {
	Name       string `json:"name"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type CommentReportedMailData struct {
	Name           string `json:"name"`
	CommentContent string `json:"commentContent"`
	ReportContent  string `json:"reportContent"`
}
