package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"

	"latency-monitor/internal/config"
)

// ErrNotConfigured is returned when the sender account or its secret is missing
var ErrNotConfigured = errors.New("mail sender credentials not set")

// MailNotifier sends alerts over an implicit TLS SMTP session
type MailNotifier struct {
	cfg config.Mail
}

// NewMail creates a MailNotifier. Missing credentials are not an error here,
// Notify reports them on every call instead.
func NewMail(cfg config.Mail) *MailNotifier {
	return &MailNotifier{cfg: cfg}
}

// Configured reports whether both the sender account and secret are set
func (n *MailNotifier) Configured() bool {
	return n.cfg.Username != "" && n.cfg.Password != ""
}

// Notify sends one plain text message to the configured recipient
func (n *MailNotifier) Notify(ctx context.Context, subject, body string) error {
	if !n.Configured() {
		return ErrNotConfigured
	}

	msg, err := n.message(subject, body)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(n.cfg.Host, n.clientOptions()...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail via %s:%d: %w", n.cfg.Host, n.cfg.Port, err)
	}

	logrus.WithField("to", n.cfg.Recipient).Info("Email sent")
	return nil
}

func (n *MailNotifier) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(n.cfg.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.cfg.Username),
		mail.WithPassword(n.cfg.Password),
	}
	if n.cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(n.cfg.Timeout))
	}
	return opts
}

func (n *MailNotifier) message(subject, body string) (*mail.Msg, error) {
	from := n.cfg.Sender
	if from == "" {
		from = n.cfg.Username
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("set sender %q: %w", from, err)
	}
	if err := msg.To(n.cfg.Recipient); err != nil {
		return nil, fmt.Errorf("set recipient %q: %w", n.cfg.Recipient, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}
