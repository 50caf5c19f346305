package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/segmentio/kafka-go"
)

// ReminderPayload is the message delivered for one habit reminder.
type ReminderPayload struct {
	Whatsapp        string    `json:"whatsapp"`
	Email           string    `json:"-"`
	FullName        string    `json:"full_name"`
	HabitName       string    `json:"habit_name"`
	HabitMotivation string    `json:"habit_motivation"`
	ReminderTime    string    `json:"reminder_time"`
	HabitID         string    `json:"habit_id"`
	UserID          string    `json:"user_id"`
	Timestamp       time.Time `json:"timestamp"`
}

type ReminderDeliverer interface {
	// Recipient names the contact the payload goes to on this channel.
	Recipient(p ReminderPayload) string
	Deliver(ctx context.Context, p ReminderPayload) error
}

var ErrNoRecipient = errors.New("no contact for reminder channel")

// WebhookDeliverer POSTs the payload as JSON to an automation webhook.
type WebhookDeliverer struct {
	url    string
	client *http.Client
}

func NewWebhookDeliverer(url string, timeout time.Duration) *WebhookDeliverer {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookDeliverer{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (w *WebhookDeliverer) Recipient(p ReminderPayload) string {
	return p.Whatsapp
}

func (w *WebhookDeliverer) Deliver(ctx context.Context, p ReminderPayload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal reminder: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook failed: %d", resp.StatusCode)
	}
	return nil
}

// EmailDeliverer sends the reminder through the SMTP mail service.
type EmailDeliverer struct {
	mail IMailService
}

func NewEmailDeliverer(mail IMailService) *EmailDeliverer {
	return &EmailDeliverer{mail: mail}
}

func (e *EmailDeliverer) Recipient(p ReminderPayload) string {
	return p.Email
}

func (e *EmailDeliverer) Deliver(ctx context.Context, p ReminderPayload) error {
	if p.Email == "" {
		return ErrNoRecipient
	}
	return e.mail.SendReminderMail(ctx, p.Email, ReminderEmailData{
		FullName:     p.FullName,
		HabitName:    p.HabitName,
		Motivation:   p.HabitMotivation,
		ReminderTime: p.ReminderTime,
	})
}

// MessageWriter is satisfied by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaDeliverer publishes one message per reminder, keyed by habit id so a
// habit's reminders stay on one partition.
type KafkaDeliverer struct {
	writer MessageWriter
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
}

func NewKafkaDeliverer(writer MessageWriter) *KafkaDeliverer {
	return &KafkaDeliverer{writer: writer}
}

func (k *KafkaDeliverer) Recipient(p ReminderPayload) string {
	return p.Whatsapp
}

func (k *KafkaDeliverer) Deliver(ctx context.Context, p ReminderPayload) error {
	value, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal reminder: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(p.HabitID),
		Value: value,
		Time:  p.Timestamp,
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish reminder: %w", err)
	}
	return nil
}

// UnconfiguredDeliverer fails every delivery so runs still report what
// would have been sent.
type UnconfiguredDeliverer struct {
	reason string
}

func NewUnconfiguredDeliverer(reason string) *UnconfiguredDeliverer {
	return &UnconfiguredDeliverer{reason: reason}
}

func (u *UnconfiguredDeliverer) Recipient(p ReminderPayload) string {
	return ""
}

func (u *UnconfiguredDeliverer) Deliver(ctx context.Context, p ReminderPayload) error {
	return errors.New(u.reason)
}
