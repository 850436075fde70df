package mail

import (
	"html/template"

	"github.com/xavierca1/mapeo-rewards/internal/infra/queue"
)

type emailTemplate struct {
	subject string
	body    *template.Template
}

const layout = `<div style="font-family:Arial,sans-serif;color:#1f2937;max-width:560px">
<h2 style="color:#2563eb">MapeoRewards</h2>
<p>Bonjour {{.Name}},</p>
{{template "content" .}}
<p><a href="{{.DashboardURL}}" style="color:#2563eb">Accéder à mon tableau de bord</a></p>
<p style="color:#6b7280;font-size:12px">Cet email a été envoyé automatiquement, merci de ne pas y répondre.</p>
</div>`

func mustTemplate(content string) *template.Template {
	t := template.Must(template.New("layout").Parse(layout))
	return template.Must(t.New("content").Parse(content))
}

var templates = map[string]emailTemplate{
	queue.EventLeadSubmitted: {
		subject: "Lead soumis avec succès",
		body:    mustTemplate(`<p>Nous avons bien reçu votre proposition de lead <strong>{{.LeadID}}</strong> pour {{.Client}}.</p>`),
	},
	queue.EventLeadStatusChanged: {
		subject: "Mise à jour de votre lead",
		body:    mustTemplate(`<p>Le lead <strong>{{.LeadID}}</strong> ({{.Client}}) est maintenant : <strong>{{.Status}}</strong>.</p>`),
	},
	queue.EventDocumentUploaded: {
		subject: "Document envoyé avec succès",
		body:    mustTemplate(`<p>Votre document d'identité a été envoyé et est en attente de validation.</p>`),
	},
	queue.EventVerificationChanged: {
		subject: "Vérification de votre compte",
		body:    mustTemplate(`<p>Statut de votre vérification d'identité : <strong>{{.Status}}</strong>.</p>`),
	},
}
