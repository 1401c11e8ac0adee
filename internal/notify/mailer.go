package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"strconv"
	"strings"

	mail "github.com/go-mail/mail/v2"

	"github.com/BruksfildServices01/autoimport-crm/internal/config"
	"github.com/BruksfildServices01/autoimport-crm/internal/dto"
)

// Mailer avisa a equipe por e-mail quando chega um lead novo.
type Mailer struct {
	from    string
	to      []string
	deliver func(m *mail.Message) error
}

// NewMailer devolve nil se SMTP_HOST, SMTP_FROM ou NOTIFY_EMAILS faltarem.
func NewMailer(cfg *config.Config) *Mailer {
	if cfg.SMTPHost == "" || cfg.SMTPFrom == "" || len(cfg.NotifyEmails) == 0 {
		return nil
	}

	d := mail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{ServerName: cfg.SMTPHost}

	return &Mailer{
		from:    cfg.SMTPFrom,
		to:      cfg.NotifyEmails,
		deliver: func(m *mail.Message) error { return d.DialAndSend(m) },
	}
}

func (m *Mailer) NotifyNewSubmission(ctx context.Context, row dto.SubmissionRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to...)
	msg.SetHeader("Subject", fmt.Sprintf("New lead #%d: %s", row.ID, row.Name))
	msg.SetBody("text/plain", newSubmissionBody(row))

	return m.deliver(msg)
}

func newSubmissionBody(row dto.SubmissionRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", row.Name)
	fmt.Fprintf(&b, "Phone: %s\n", row.Phone)
	fmt.Fprintf(&b, "Vehicle: %s\n", row.VehicleType)
	fmt.Fprintf(&b, "Budget: %s - %s\n", money(row.BudgetFrom), money(row.BudgetTo))
	if row.Ref != nil {
		fmt.Fprintf(&b, "Referrer: %s\n", *row.Ref)
	}
	fmt.Fprintf(&b, "Received: %s\n", row.CreatedAt.UTC().Format("2006-01-02 15:04 MST"))
	return b.String()
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
