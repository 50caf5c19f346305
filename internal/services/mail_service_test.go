package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gopkg.in/gomail.v2"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func TestSendReminderMail(t *testing.T) {
	sender := &fakeSender{}
	svc, err := newMailService(SMTPConfig{From: "noreply@menteviva.app", FromName: "Mente Viva", AppBaseURL: "https://menteviva.app/"}, sender)
	if err != nil {
		t.Fatalf("newMailService: %v", err)
	}

	err = svc.SendReminderMail(context.Background(), "ana@example.com", ReminderEmailData{FullName: "Ana", HabitName: "ler"})
	if err != nil {
		t.Fatalf("SendReminderMail: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(sender.sent))
	}
	m := sender.sent[0]
	if to := m.GetHeader("To"); len(to) != 1 || to[0] != "ana@example.com" {
		t.Errorf("To = %v", to)
	}
	if subject := m.GetHeader("Subject"); len(subject) != 1 || subject[0] != "Hora do seu hábito: ler" {
		t.Errorf("Subject = %v", subject)
	}
}

func TestRenderReminderMail(t *testing.T) {
	svc, err := newMailService(SMTPConfig{AppBaseURL: "https://menteviva.app/"}, &fakeSender{})
	if err != nil {
		t.Fatalf("newMailService: %v", err)
	}
	s := svc.(*smtpMailService)

	html, text, err := s.render(ReminderEmailData{
		FullName:   "Ana <script>",
		HabitName:  "ler",
		Motivation: "aprender",
		ButtonURL:  "https://menteviva.app/dashboard",
		AppName:    "Mente Viva",
		Year:       2025,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Error("html template must escape user content")
	}
	for _, want := range []string{"ler", "aprender", "https://menteviva.app/dashboard", "2025"} {
		if !strings.Contains(text, want) {
			t.Errorf("text body missing %q:\n%s", want, text)
		}
	}
}

func TestSendReminderMailErrors(t *testing.T) {
	sender := &fakeSender{err: errors.New("connection reset")}
	svc, _ := newMailService(SMTPConfig{}, sender)

	if err := svc.SendReminderMail(context.Background(), "a@b.c", ReminderEmailData{}); !errors.Is(err, sender.err) {
		t.Errorf("expected wrapped sender error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := svc.SendReminderMail(ctx, "a@b.c", ReminderEmailData{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNewSMTPMailServiceRequiresHost(t *testing.T) {
	if _, err := NewSMTPMailService(SMTPConfig{}); err == nil {
		t.Error("expected an error without a host")
	}
}
