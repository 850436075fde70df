package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/xavierca1/mapeo-rewards/internal/entity"
)

const (
	Brand            = "MapeoRewards"
	mobileBreakpoint = 768

	LayoutDashboard = "dashboard"
	LayoutPublic    = "public"
)

// Layout descreve o cromo ao redor da página: barra lateral do painel ou navbar pública.
type Layout struct {
	Kind               string                    `json:"kind"`
	Brand              string                    `json:"brand"`
	Sidebar            bool                      `json:"sidebar"`
	Navigation         []entity.NavItem          `json:"navigation"`
	ActivePath         string                    `json:"active_path"`
	VerificationStatus entity.VerificationStatus `json:"verification_status,omitempty"`
	Actions            []entity.NavItem          `json:"actions,omitempty"`
}

// Page é o envelope de uma rota do cliente.
type Page struct {
	Kind         string        `json:"kind"`
	Name         string        `json:"name"`
	Title        string        `json:"title"`
	Layout       Layout        `json:"layout"`
	View         any           `json:"view,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
	Error        *ErrorBody    `json:"error,omitempty"`
	Redirect     string        `json:"redirect,omitempty"`
}

var (
	publicNavigation = []entity.NavItem{
		{Label: "Tableau de bord", Path: "/dashboard", Icon: "layout-dashboard"},
		{Label: "Nouveau Lead", Path: "/leads/new", Icon: "file-text"},
		{Label: "Mon profil", Path: "/profile", Icon: "settings"},
	}
	publicActions = []entity.NavItem{
		{Label: "Connexion", Path: "/signin"},
		{Label: "Inscription", Path: "/signup"},
	}
	signOutAction = entity.NavItem{Label: "Déconnexion", Path: "/api/auth/signout", Icon: "log-out"}
)

// isMobile usa os client hints do navegador; sem eles, assume desktop.
func isMobile(r *http.Request) bool {
	if r.Header.Get("Sec-CH-UA-Mobile") == "?1" {
		return true
	}
	if v := r.Header.Get("Viewport-Width"); v != "" {
		if width, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return width < mobileBreakpoint
		}
	}
	return false
}

func dashboardLayout(r *http.Request, status entity.VerificationStatus) Layout {
	return Layout{
		Kind:               LayoutDashboard,
		Brand:              Brand,
		Sidebar:            !isMobile(r),
		Navigation:         entity.BuildNavigation(status),
		ActivePath:         r.URL.Path,
		VerificationStatus: status,
		Actions:            []entity.NavItem{signOutAction},
	}
}

func publicLayout(r *http.Request) Layout {
	nav := make([]entity.NavItem, len(publicNavigation))
	copy(nav, publicNavigation)
	actions := make([]entity.NavItem, len(publicActions))
	copy(actions, publicActions)

	return Layout{
		Kind:       LayoutPublic,
		Brand:      Brand,
		Navigation: nav,
		ActivePath: r.URL.Path,
		Actions:    actions,
	}
}

func writePage(w http.ResponseWriter, status int, page Page) {
	page.Kind = "page"
	writeJSON(w, status, page)
}
