package mail

// EmailData alimenta os templates de notificação.
type EmailData struct {
	Name         string
	LeadID       string
	Client       string
	Status       string
	DashboardURL string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	dialer   Dialer
}
