package email

import (
	"fmt"
	"io"

	"github.com/go-gomail/gomail"
)

// Mailer sends transactional mail over SMTP.
type Mailer struct {
	host     string
	port     int
	from     string
	password string
}

func NewMailer(host string, port int, from, password string) *Mailer {
	return &Mailer{host: host, port: port, from: from, password: password}
}

// SendResetLink delivers the password-reset link out-of-band.
func (m *Mailer) SendResetLink(to, resetLink string) error {
	body := fmt.Sprintf(`
	<div>
		<p>Dear user,</p>
		<p>Your password reset link <a href=%s><button>Reset Password</button></a></p>
	</div>`, resetLink)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Reset your password")
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.host, m.port, m.from, m.password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	return nil
}

// SendInvoice mails the booking confirmation with the PDF invoice attached.
func (m *Mailer) SendInvoice(to string, pdf []byte) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Appointment booked")
	msg.SetBody("text/plain", "Your appointment has been booked. The invoice is attached.")

	msg.Attach("invoice.pdf", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(pdf)
		return err
	}))

	d := gomail.NewDialer(m.host, m.port, m.from, m.password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	return nil
}
