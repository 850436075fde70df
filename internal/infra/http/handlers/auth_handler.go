package handlers

import (
	"net/http"
	"time"

	"github.com/xavierca1/mapeo-rewards/internal/infra/http/middleware"
	"github.com/xavierca1/mapeo-rewards/internal/usecase"
)

type AuthHandler struct {
	Auth         *usecase.AuthUseCase
	SecureCookie bool
}

func NewAuthHandler(auth *usecase.AuthUseCase, secureCookie bool) *AuthHandler {
	return &AuthHandler{Auth: auth, SecureCookie: secureCookie}
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var input usecase.SignInInput
	if !decodeJSON(w, r, &input) {
		return
	}

	session, err := h.Auth.SignIn(r.Context(), input)
	if err != nil {
		writeError(w, r, err, "Erreur")
		return
	}

	h.setCookie(w, session.Token, session.ExpiresAt)
	writeJSON(w, http.StatusOK, Response{
		Data:         session,
		Notification: success("Connexion réussie", "Vous êtes maintenant connecté."),
		Redirect:     "/dashboard",
	})
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var input usecase.SignUpInput
	if !decodeJSON(w, r, &input) {
		return
	}

	session, err := h.Auth.SignUp(r.Context(), input)
	if err != nil {
		writeError(w, r, err, "Erreur")
		return
	}

	h.setCookie(w, session.Token, session.ExpiresAt)
	writeJSON(w, http.StatusCreated, Response{
		Data:         session,
		Notification: success("Compte créé !", "Votre compte a été créé avec succès."),
		Redirect:     "/dashboard",
	})
}

// SignOut apaga o cookie; o JWT expira sozinho.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.setCookie(w, "", time.Unix(0, 0))
	writeJSON(w, http.StatusOK, Response{Redirect: "/"})
}

func (h *AuthHandler) setCookie(w http.ResponseWriter, token string, expires time.Time) {
	cookie := &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if token == "" {
		cookie.MaxAge = -1
	}
	http.SetCookie(w, cookie)
}

// UnauthorizedAPI é a resposta das rotas /api sem sessão válida.
func UnauthorizedAPI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusUnauthorized, Response{
		Error:        &ErrorBody{Code: "UNAUTHENTICATED", Message: "Veuillez vous connecter pour continuer."},
		Notification: failure("Session expirée", "Veuillez vous connecter pour continuer."),
		Redirect:     "/signin",
	})
}

func ForbiddenAPI(w http.ResponseWriter, r *http.Request) {
	writeErrorResponse(w, http.StatusForbidden, "FORBIDDEN", "Accès refusé.")
}

func TooManyRequests(w http.ResponseWriter, r *http.Request) {
	writeErrorResponse(w, http.StatusTooManyRequests, "RATE_LIMITED", "Trop de tentatives. Veuillez réessayer plus tard.")
}
