package mailer

import (
	"gopkg.in/gomail.v2"
)

// SMTPSender sends through a single SMTP account via gomail.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, user, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

func (s *SMTPSender) Send(msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}
	return s.dialer.DialAndSend(m)
}

// TestConnection dials and closes the SMTP session without sending anything.
func (s *SMTPSender) TestConnection() error {
	closer, err := s.dialer.Dial()
	if err != nil {
		return err
	}
	return closer.Close()
}
