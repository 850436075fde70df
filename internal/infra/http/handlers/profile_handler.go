package handlers

import (
	"net/http"

	"github.com/xavierca1/mapeo-rewards/internal/entity"
	"github.com/xavierca1/mapeo-rewards/internal/infra/http/middleware"
	"github.com/xavierca1/mapeo-rewards/internal/usecase"
)

type EditResponse[T any] struct {
	Editing bool `json:"editing"`
	Record  T    `json:"record"`
}

// formMessages são os textos do toast de sucesso de cada formulário.
type formMessages struct {
	title       string
	description string
}

var (
	profileSaved = formMessages{"Profil mis à jour", "Vos informations ont été mises à jour avec succès."}
	bankSaved    = formMessages{"Informations bancaires mises à jour", "Vos coordonnées bancaires ont été mises à jour avec succès."}
)

type ProfileHandler struct {
	Profile *usecase.ProfileUseCase
}

func NewProfileHandler(profile *usecase.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{Profile: profile}
}

func (h *ProfileHandler) Settings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Profile.Settings(r.Context(), middleware.AgentID(r.Context()))
	if err != nil {
		writeError(w, r, err, "Erreur")
		return
	}
	writeJSON(w, http.StatusOK, Response{Data: settings})
}

func (h *ProfileHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var p entity.Profile
	if !decodeJSON(w, r, &p) {
		return
	}
	if err := h.Profile.SaveProfile(r.Context(), middleware.AgentID(r.Context()), p); err != nil {
		writeError(w, r, err, "Erreur")
		return
	}
	writeJSON(w, http.StatusOK, Response{Data: p, Notification: success(profileSaved.title, profileSaved.description)})
}

func (h *ProfileHandler) SaveBankDetails(w http.ResponseWriter, r *http.Request) {
	var b entity.BankDetails
	if !decodeJSON(w, r, &b) {
		return
	}
	if err := h.Profile.SaveBankDetails(r.Context(), middleware.AgentID(r.Context()), b); err != nil {
		writeError(w, r, err, "Erreur")
		return
	}
	writeJSON(w, http.StatusOK, Response{Data: b, Notification: success(bankSaved.title, bankSaved.description)})
}

func (h *ProfileHandler) ProfileEditor() *EditorHandler[entity.Profile] {
	return &EditorHandler[entity.Profile]{editor: h.Profile.Profile, saved: profileSaved}
}

func (h *ProfileHandler) BankEditor() *EditorHandler[entity.BankDetails] {
	return &EditorHandler[entity.BankDetails]{editor: h.Profile.Bank, saved: bankSaved}
}

// EditorHandler expõe o modo de edição de um formulário: abrir, alterar, confirmar, cancelar.
type EditorHandler[T any] struct {
	editor *usecase.FormEditor[T]
	saved  formMessages
}

func (h *EditorHandler[T]) Begin(w http.ResponseWriter, r *http.Request) {
	agentID := middleware.AgentID(r.Context())
	record, err := h.editor.Begin(r.Context(), agentID)
	if err != nil {
		writeError(w, r, err, "Erreur")
		return
	}
	writeJSON(w, http.StatusOK, Response{Data: EditResponse[T]{Editing: true, Record: record}})
}

func (h *EditorHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	var draft T
	if !decodeJSON(w, r, &draft) {
		return
	}
	record, err := h.editor.Update(middleware.AgentID(r.Context()), draft)
	if err != nil {
		writeError(w, r, err, "Erreur")
		return
	}
	writeJSON(w, http.StatusOK, Response{Data: EditResponse[T]{Editing: true, Record: record}})
}

// Commit grava o rascunho. Em falha o formulário continua em edição com o que foi digitado.
func (h *EditorHandler[T]) Commit(w http.ResponseWriter, r *http.Request) {
	agentID := middleware.AgentID(r.Context())
	record, err := h.editor.Commit(r.Context(), agentID)
	if err != nil {
		writeError(w, r, err, "Erreur")
		return
	}
	writeJSON(w, http.StatusOK, Response{
		Data:         EditResponse[T]{Editing: false, Record: record},
		Notification: success(h.saved.title, h.saved.description),
	})
}

func (h *EditorHandler[T]) Cancel(w http.ResponseWriter, r *http.Request) {
	record, err := h.editor.Cancel(middleware.AgentID(r.Context()))
	if err != nil {
		writeError(w, r, err, "Erreur")
		return
	}
	writeJSON(w, http.StatusOK, Response{Data: EditResponse[T]{Editing: false, Record: record}})
}
