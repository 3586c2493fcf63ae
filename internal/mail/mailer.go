package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/Pranavipulluri/break-even/internal/config"
	"gopkg.in/gomail.v2"
)

var welcomeTemplate = template.Must(template.New("welcome").Parse(`
<p>Hi {{.Name}},</p>
<p>Thanks for subscribing to the {{.Business}} newsletter. We'll keep you
posted about new products and promotions.</p>
<p>If this wasn't you, just ignore this email.</p>
`))

type welcomeData struct {
	Name     string
	Business string
}

type Sender struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

func NewSender(cfg *config.Config) *Sender {
	return &Sender{
		host:     cfg.SMTP.Host,
		port:     cfg.SMTP.Port,
		user:     cfg.SMTP.User,
		password: cfg.SMTP.Password,
		from:     cfg.SMTP.From,
	}
}

// Enabled reports whether SMTP is configured. Welcome mail is optional and
// skipped entirely when it is not.
func (s *Sender) Enabled() bool {
	return s != nil && s.host != ""
}

func (s *Sender) SendWelcome(to, name, businessName string) error {
	if name == "" {
		name = "there"
	}
	if businessName == "" {
		businessName = "our"
	}

	var body bytes.Buffer
	if err := welcomeTemplate.Execute(&body, welcomeData{Name: name, Business: businessName}); err != nil {
		return fmt.Errorf("failed to render welcome email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Welcome to the newsletter!")
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.host, s.port, s.user, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}
