package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/mapeo-rewards/internal/infra/http/middleware"
	"github.com/xavierca1/mapeo-rewards/internal/usecase"
)

type LeadHandler struct {
	Leads      *usecase.LeadsUseCase
	SubmitLead *usecase.SubmitLeadUseCase
}

func NewLeadHandler(leads *usecase.LeadsUseCase, submit *usecase.SubmitLeadUseCase) *LeadHandler {
	return &LeadHandler{Leads: leads, SubmitLead: submit}
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Leads.List(r.Context(), middleware.AgentID(r.Context()))
	if err != nil {
		writeError(w, r, err, "Erreur")
		return
	}
	writeJSON(w, http.StatusOK, Response{Data: newLeadsView(leads)})
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Leads.Get(r.Context(), middleware.AgentID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "Lead non trouvé")
		return
	}
	writeJSON(w, http.StatusOK, Response{Data: LeadDetailView{Lead: lead, Badge: lead.Status.Badge(), Back: Link{Label: "Retour aux leads", Path: "/leads"}}})
}

// Submit grava o lead e devolve o formulário limpo; em erro o formulário do cliente fica intacto.
func (h *LeadHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var form usecase.LeadForm
	if !decodeJSON(w, r, &form) {
		return
	}

	out, err := h.SubmitLead.Execute(r.Context(), middleware.AgentID(r.Context()), form)
	if err != nil {
		writeError(w, r, err, "Erreur")
		return
	}

	middleware.RecordLeadSubmitted()
	writeJSON(w, http.StatusCreated, Response{
		Data:         out,
		Notification: success("Lead soumis avec succès", "Nous avons bien reçu votre proposition de lead."),
		Redirect:     "/leads",
	})
}
