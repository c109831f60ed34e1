package notifier

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdg-garage/conference-registration-api/internal/config"
	"github.com/wneessen/go-mail"
)

const qrImageName = "qrcode.png"

// MailSender is the part of *mail.Client the notifier needs.
type MailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type EmailNotifier struct {
	client        MailSender
	senderName    string
	senderAddress string
	logger        *slog.Logger
}

func NewEmailNotifier(client MailSender, senderName, senderAddress string, logger *slog.Logger) *EmailNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmailNotifier{
		client:        client,
		senderName:    senderName,
		senderAddress: senderAddress,
		logger:        logger,
	}
}

// NewSMTPClient builds the process-wide SMTP client. It is safe to reuse
// across requests; each send dials, delivers and closes.
func NewSMTPClient(cfg *config.Config) (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTimeout(15 * time.Second),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUser),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return client, nil
}

func (n *EmailNotifier) BuildMessage(c Confirmation) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(n.senderName, n.senderAddress); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(c.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(confirmationSubject)

	html, err := renderConfirmation(c, n.senderName, n.senderAddress)
	if err != nil {
		return nil, err
	}
	msg.SetBodyString(mail.TypeTextPlain, renderConfirmationText(c, n.senderName, n.senderAddress))
	msg.AddAlternativeString(mail.TypeTextHTML, html)

	if len(c.QRCode) > 0 {
		if err := msg.EmbedReader(qrImageName, bytes.NewReader(c.QRCode)); err != nil {
			return nil, fmt.Errorf("embed qr code: %w", err)
		}
	}

	return msg, nil
}

func (n *EmailNotifier) SendConfirmation(ctx context.Context, c Confirmation) error {
	msg, err := n.BuildMessage(c)
	if err != nil {
		return err
	}

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		n.logger.ErrorContext(ctx, "failed to send confirmation email", "to", c.To, "error", err)
		return fmt.Errorf("send confirmation email: %w", err)
	}

	n.logger.InfoContext(ctx, "confirmation email sent", "to", c.To)
	return nil
}
