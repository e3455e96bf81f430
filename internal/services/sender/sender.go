// Package sender доставляет уведомления формы обратной связи по почте.
package sender

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/itlearnpro/internal/lib/sl"
	"github.com/magabrotheeeer/itlearnpro/internal/lib/smtp"
	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

// ErrNoRecipient возвращается, если адрес получателя не настроен.
var ErrNoRecipient = errors.New("contact recipient is not configured")

// Transport открывает SMTP сессии.
type Transport interface {
	Connect() (smtp.Client, error)
	GetSMTPUser() string
}

type SenderService struct {
	transport Transport
	recipient string
	log       *slog.Logger
}

// New создает новый экземпляр SenderService.
func New(transport Transport, recipient string, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		recipient: recipient,
		log:       log,
	}
}

// SendContactNotification пересылает сообщение формы обратной связи на адрес поддержки.
func (s *SenderService) SendContactNotification(body []byte) error {
	var message models.ContactMessage
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}
	if s.recipient == "" {
		return ErrNoRecipient
	}

	subject := "[IT Learn Pro] Contact: " + message.Subject
	bodyText := fmt.Sprintf(`Nouveau message de contact

Nom: %s
Email: %s
IP: %s
Date: %s

%s
`, message.Name, message.Email, message.IP,
		message.CreatedAt.Format("02/01/2006 15:04"), message.Message)

	return s.sendEmail([]string{s.recipient}, message.Email, subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, replyTo, subject, bodyText string) error {
	headers := []string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
	}
	if replyTo != "" {
		headers = append(headers, "Reply-To: "+replyTo)
	}
	headers = append(headers,
		"Subject: "+subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	)
	msg := strings.Join(headers, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", s.transport.GetSMTPUser()), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
