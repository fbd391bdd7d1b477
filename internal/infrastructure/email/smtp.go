// Package email mirrors in-app notifications to the recipient's mailbox.
package email

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	appnotification "github.com/trackr-io/trackr/internal/application/notification"
	"github.com/trackr-io/trackr/internal/domain/notification"
	"github.com/trackr-io/trackr/internal/domain/user"
	sharedConfig "github.com/trackr-io/trackr/internal/shared/config"
	"github.com/trackr-io/trackr/internal/shared/services/markdown"
)

// Sender abstracts the SMTP dialer so delivery can be tested.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

var _ appnotification.EmailSink = (*SMTPSink)(nil)

type SMTPSink struct {
	cfg      sharedConfig.EmailConfig
	baseURL  string
	sender   Sender
	users    user.Repository
	renderer markdown.Renderer
}

func NewSMTPSink(cfg sharedConfig.EmailConfig, baseURL string, users user.Repository, renderer markdown.Renderer) *SMTPSink {
	return NewSMTPSinkWithSender(cfg, baseURL, gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword), users, renderer)
}

func NewSMTPSinkWithSender(cfg sharedConfig.EmailConfig, baseURL string, sender Sender, users user.Repository, renderer markdown.Renderer) *SMTPSink {
	return &SMTPSink{
		cfg:      cfg,
		baseURL:  strings.TrimRight(baseURL, "/"),
		sender:   sender,
		users:    users,
		renderer: renderer,
	}
}

func (s *SMTPSink) Deliver(ctx context.Context, n *notification.Notification) error {
	recipient, err := s.users.GetByID(ctx, n.RecipientID())
	if err != nil {
		return fmt.Errorf("failed to load recipient %d: %w", n.RecipientID(), err)
	}
	if recipient == nil {
		return fmt.Errorf("recipient %d not found", n.RecipientID())
	}

	plain := n.Message()
	if link := s.link(n); link != "" {
		plain += "\n\n" + link
	}
	html, err := s.renderer.Render(plain)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.FromAddress, s.cfg.FromName)
	m.SetAddressHeader("To", recipient.Email().String(), recipient.Name())
	m.SetHeader("Subject", n.Title())
	m.SetBody("text/plain", plain)
	m.AddAlternative("text/html", html)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *SMTPSink) link(n *notification.Notification) string {
	if n.Link() == "" {
		return ""
	}
	if strings.HasPrefix(n.Link(), "http://") || strings.HasPrefix(n.Link(), "https://") || s.baseURL == "" {
		return n.Link()
	}
	return s.baseURL + "/" + strings.TrimLeft(n.Link(), "/")
}
