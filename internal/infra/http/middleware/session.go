package middleware

import (
	"context"
	"net/http"
	"strings"
)

// SessionCookie é o cookie gravado no sign in.
const SessionCookie = "mapeo_session"

type contextKey string

const agentIDKey contextKey = "agent_id"

// SessionParser valida o token e devolve o id do apporteur.
type SessionParser interface {
	Parse(token string) (string, error)
}

// RequireSession só deixa passar requisições com sessão válida; as outras vão para unauthorized.
func RequireSession(parser SessionParser, unauthorized http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := SessionToken(r)
			if token == "" {
				unauthorized.ServeHTTP(w, r)
				return
			}

			agentID, err := parser.Parse(token)
			if err != nil || agentID == "" {
				unauthorized.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAgentID(r.Context(), agentID)))
		})
	}
}

// SessionToken lê o token do header Authorization ou, na falta dele, do cookie.
func SessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

func WithAgentID(ctx context.Context, agentID string) context.Context {
	return context.WithValue(ctx, agentIDKey, agentID)
}

func AgentID(ctx context.Context) string {
	id, _ := ctx.Value(agentIDKey).(string)
	return id
}
