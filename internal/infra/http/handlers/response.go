package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/mapeo-rewards/internal/usecase"
)

const (
	VariantDefault     = "default"
	VariantDestructive = "destructive"
)

// Notification é o toast transitório que o front exibe.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

type ErrorBody struct {
	Code    string               `json:"code"`
	Message string               `json:"message"`
	Fields  []usecase.FieldError `json:"fields,omitempty"`
}

// Response é o envelope de toda resposta da API.
type Response struct {
	Data         any           `json:"data,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
	Error        *ErrorBody    `json:"error,omitempty"`
	Redirect     string        `json:"redirect,omitempty"`
}

func success(title, description string) *Notification {
	return &Notification{Title: title, Description: description, Variant: VariantDefault}
}

func failure(title, description string) *Notification {
	return &Notification{Title: title, Description: description, Variant: VariantDestructive}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("❌ erro ao escrever resposta")
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Response{
		Error:        &ErrorBody{Code: code, Message: message},
		Notification: failure("Erreur", message),
	})
}

// statusFor traduz a categoria do erro em status HTTP. Falhas técnicas são de colaborador externo.
func statusFor(kind usecase.ErrorKind) int {
	switch kind {
	case usecase.KindValidation:
		return http.StatusBadRequest
	case usecase.KindUnauthorized:
		return http.StatusUnauthorized
	case usecase.KindForbidden:
		return http.StatusForbidden
	case usecase.KindNotFound:
		return http.StatusNotFound
	case usecase.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

// errorBody devolve status, corpo e notificação para qualquer erro de caso de uso.
func errorBody(err error, title string) (int, *ErrorBody, *Notification) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		return statusFor(de.Kind), &ErrorBody{Code: de.Code, Message: de.Message, Fields: de.Fields}, failure(title, de.Message)
	}

	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		return http.StatusBadGateway, &ErrorBody{Code: te.Code, Message: te.Message}, failure(title, te.Message)
	}

	const generic = "Une erreur s'est produite. Veuillez réessayer."
	return http.StatusBadGateway, &ErrorBody{Code: "INTERNAL_ERROR", Message: generic}, failure(title, generic)
}

func writeError(w http.ResponseWriter, r *http.Request, err error, title string) {
	status, body, note := errorBody(err, title)

	entry := logrus.WithError(err).WithFields(logrus.Fields{
		"path":   r.URL.Path,
		"status": status,
		"code":   body.Code,
	})
	if status >= http.StatusInternalServerError {
		entry.Error("❌ falha em colaborador externo")
	} else {
		entry.Debug("requisição recusada")
	}

	writeJSON(w, status, Response{Error: body, Notification: note})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON invalide")
		return false
	}
	return true
}
