package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	OfficeTo string
}

func NewEmailSender(host string, port int, user, password, from, officeTo string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		OfficeTo: officeTo,
	}
}

var callbackTmpl = template.Must(template.New("callback").Parse(`
<p>Nouvelle demande de rappel reçue.</p>
<ul>
  <li>Nom : {{.Name}}</li>
  <li>Téléphone : {{.Phone}}</li>
</ul>
<p>Merci de rappeler dans la journée.</p>
`))

var proposalTmpl = template.Must(template.New("proposal").Parse(`
<p>{{.ClientName}} vient de signer sa proposition de travaux.</p>
<p><a href="{{.PDFURL}}">Télécharger le document signé</a></p>
`))

func (s *EmailSender) SendCallbackAlert(name, phone string) error {
	var body bytes.Buffer
	if err := callbackTmpl.Execute(&body, struct{ Name, Phone string }{name, phone}); err != nil {
		return fmt.Errorf("erreur de template: %w", err)
	}
	return s.send(fmt.Sprintf("Demande de rappel : %s", name), body.String())
}

func (s *EmailSender) SendProposalSigned(clientName, pdfURL string) error {
	var body bytes.Buffer
	if err := proposalTmpl.Execute(&body, struct{ ClientName, PDFURL string }{clientName, pdfURL}); err != nil {
		return fmt.Errorf("erreur de template: %w", err)
	}
	return s.send(fmt.Sprintf("Proposition signée : %s", clientName), body.String())
}

func (s *EmailSender) send(subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.OfficeTo)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("envoi SMTP: %w", err)
	}
	return nil
}
