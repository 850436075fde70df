package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/xavierca1/mapeo-rewards/internal/infra/http/middleware"
	"github.com/xavierca1/mapeo-rewards/internal/usecase"
)

const documentField = "document"

type VerificationHandler struct {
	Store          *usecase.VerificationStore
	Upload         *usecase.UploadDocumentUseCase
	MaxUploadBytes int64
}

func NewVerificationHandler(store *usecase.VerificationStore, upload *usecase.UploadDocumentUseCase, maxUploadBytes int64) *VerificationHandler {
	return &VerificationHandler{Store: store, Upload: upload, MaxUploadBytes: maxUploadBytes}
}

func (h *VerificationHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.Store.Status(r.Context(), middleware.AgentID(r.Context()))
	if err != nil {
		writeError(w, r, err, "Erreur")
		return
	}
	writeJSON(w, http.StatusOK, Response{Data: usecase.NewVerificationCard(status)})
}

// UploadDocument recebe o multipart com o campo "document". Sem arquivo, cai no fluxo de "nenhum arquivo".
func (h *VerificationHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	agentID := middleware.AgentID(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)

	doc, err := readDocument(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErrorResponse(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Le fichier est trop volumineux.")
			return
		}
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_UPLOAD", "Envoi invalide.")
		return
	}

	result, err := h.Upload.Execute(r.Context(), agentID, doc)
	if err != nil {
		title := "Erreur lors de l'envoi"
		if errors.Is(err, usecase.ErrNoFileSelected) {
			title = "Aucun fichier sélectionné"
		}
		middleware.RecordDocumentUpload("failed")
		writeError(w, r, err, title)
		return
	}

	middleware.RecordDocumentUpload("uploaded")
	writeJSON(w, http.StatusOK, Response{
		Data:         result,
		Notification: success("Document envoyé avec succès", "Votre document d'identité a été envoyé et est en attente de validation."),
	})
}

// readDocument devolve nil, sem erro, quando o formulário chega sem arquivo.
func readDocument(r *http.Request) (*usecase.IdentityDocument, error) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	file, header, err := r.FormFile(documentField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return nil, nil
	}

	return &usecase.IdentityDocument{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}
