package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/metrics"
)

type MailPublisher interface {
	Publish(ctx context.Context, msg domain.MailMessage) error
}

type AMQPMailPublisher struct {
	ch      *amqp.Channel
	timeout time.Duration
}

func NewAMQPMailPublisher(ch *amqp.Channel, timeout time.Duration) *AMQPMailPublisher {
	return &AMQPMailPublisher{ch: ch, timeout: timeout}
}

func (p *AMQPMailPublisher) Publish(ctx context.Context, msg domain.MailMessage) error {
	// 序列化邮件
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err = p.ch.PublishWithContext(
		ctx,
		"",
		domain.MailQueue,
		true,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)

	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.MailsPublished.WithLabelValues(msg.Type, result).Inc()

	return err
}

// publishMail 用于邮件只是附带通知的场景，失败时只记录日志
func (h *Handler) publishMail(ctx context.Context, msg domain.MailMessage) {
	if err := h.mailer.Publish(ctx, msg); err != nil {
		slog.Error("发送邮件到消息队列失败", "type", msg.Type, "to", msg.To, "error", err)
	}
}
