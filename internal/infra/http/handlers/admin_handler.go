package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/mapeo-rewards/internal/usecase"
)

// AdminHandler reúne os controles de back-office: revisão de identidade e avanço de leads.
type AdminHandler struct {
	Review  *usecase.ReviewVerificationUseCase
	Advance *usecase.AdvanceLeadUseCase
}

func NewAdminHandler(review *usecase.ReviewVerificationUseCase, advance *usecase.AdvanceLeadUseCase) *AdminHandler {
	return &AdminHandler{Review: review, Advance: advance}
}

func (h *AdminHandler) ReviewVerification(w http.ResponseWriter, r *http.Request) {
	var input usecase.ReviewVerificationInput
	if !decodeJSON(w, r, &input) {
		return
	}

	status, err := h.Review.Execute(r.Context(), chi.URLParam(r, "agentID"), input)
	if err != nil {
		writeError(w, r, err, "Erreur")
		return
	}
	writeJSON(w, http.StatusOK, Response{Data: usecase.NewVerificationCard(status)})
}

func (h *AdminHandler) AdvanceLead(w http.ResponseWriter, r *http.Request) {
	var input usecase.AdvanceLeadInput
	if !decodeJSON(w, r, &input) {
		return
	}

	lead, err := h.Advance.Execute(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err, "Erreur")
		return
	}
	writeJSON(w, http.StatusOK, Response{Data: lead})
}
