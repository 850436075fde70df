package mail

import (
	"bytes"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/mapeo-rewards/internal/entity"
	"github.com/xavierca1/mapeo-rewards/internal/infra/queue"
	"gopkg.in/gomail.v2"
)

// Dialer é o que o gomail.Dialer expõe para envio.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// RecipientResolver encontra o nome e o e-mail do apporteur.
type RecipientResolver interface {
	GetProfile(ctx context.Context, agentID string) (*entity.Profile, error)
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		dialer:   gomail.NewDialer(host, port, user, password),
	}
}

// WithDialer troca o transporte SMTP (usado nos testes).
func (s *EmailSender) WithDialer(d Dialer) *EmailSender {
	s.dialer = d
	return s
}

func (s *EmailSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}

// Notifier transforma eventos da fila em e-mails para o apporteur.
type Notifier struct {
	Sender       *EmailSender
	Recipients   RecipientResolver
	DashboardURL string
}

func NewNotifier(sender *EmailSender, recipients RecipientResolver, dashboardURL string) *Notifier {
	return &Notifier{Sender: sender, Recipients: recipients, DashboardURL: dashboardURL}
}

func (n *Notifier) Notify(ctx context.Context, payload queue.EventPayload) error {
	tmpl, ok := templates[payload.Event]
	if !ok {
		logrus.WithField("event", payload.Event).Warn("⚠️ evento sem template de e-mail, ignorando")
		return nil
	}
	// a ida para pending já é avisada pelo e-mail do documento recebido
	if payload.Event == queue.EventVerificationChanged && payload.Status == string(entity.StatusPending) {
		return nil
	}

	profile, err := n.Recipients.GetProfile(ctx, payload.AgentID)
	if err != nil {
		return fmt.Errorf("destinatário %s: %w", payload.AgentID, err)
	}

	subject, body, err := n.render(tmpl, payload, profile)
	if err != nil {
		return err
	}
	return n.Sender.Send(profile.Email, subject, body)
}

func (n *Notifier) render(tmpl emailTemplate, payload queue.EventPayload, profile *entity.Profile) (string, string, error) {
	status := payload.Status
	if payload.Event == queue.EventVerificationChanged {
		status = entity.VerificationStatus(payload.Status).Label()
	}

	data := EmailData{
		Name:         profile.FullName(),
		LeadID:       payload.LeadID,
		Client:       payload.Client,
		Status:       status,
		DashboardURL: n.DashboardURL,
	}

	var body bytes.Buffer
	if err := tmpl.body.ExecuteTemplate(&body, "layout", data); err != nil {
		return "", "", fmt.Errorf("erro ao processar template: %w", err)
	}
	return tmpl.subject, body.String(), nil
}
