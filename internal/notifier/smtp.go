package notifier

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"prestamos-backend/internal/usecase/reminder"
)

// digestTmpl renders the due-date table mailed to the operator each day.
var digestTmpl = template.Must(template.New("digest").Parse(`<html>
<body>
  <h2>Upcoming due dates (next {{.WindowDays}} days)</h2>
  <table border="1" style="border-collapse: collapse; width: 100%;">
    <tr style="background:#1a1a1a; color:gold;">
      <th>Borrower</th><th>Interest due</th><th>Due date</th><th>Days left</th>
    </tr>
    {{range .Items}}<tr>
      <td>{{.BorrowerName}}</td>
      <td>{{.InterestDue.StringFixed 2}}</td>
      <td>{{.DueDate.Format "02/01/2006"}}</td>
      <td><b>{{.DaysLeft}}</b></td>
    </tr>{{end}}
  </table>
</body>
</html>`))

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	To       string
}

// SMTPSender delivers reminder digests as HTML mail. Implements
// reminder.Sender.
type SMTPSender struct{ cfg SMTPConfig }

func NewSMTPSender(cfg SMTPConfig) *SMTPSender { return &SMTPSender{cfg: cfg} }

func (s *SMTPSender) Send(ctx context.Context, d reminder.Digest) error {
	body, err := RenderDigest(d)
	if err != nil {
		return err
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", s.cfg.User)
	fmt.Fprintf(&msg, "To: %s\r\n", s.cfg.To)
	fmt.Fprintf(&msg, "Subject: Due-date alert: %d loans due within %d days\r\n", len(d.Items), d.WindowDays)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := s.cfg.Host + ":" + s.cfg.Port
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, s.cfg.User, strings.Split(s.cfg.To, ","), msg.Bytes())
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RenderDigest is split out so the HTML can be tested without a mail server.
func RenderDigest(d reminder.Digest) (string, error) {
	var buf bytes.Buffer
	if err := digestTmpl.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}
