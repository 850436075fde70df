package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/mapeo-rewards/internal/entity"
	"github.com/xavierca1/mapeo-rewards/internal/infra/http/middleware"
	"github.com/xavierca1/mapeo-rewards/internal/usecase"
)

type Step struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Link struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

type LandingView struct {
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline"`
	Actions     []Link `json:"actions"`
	HowItWorks  []Step `json:"how_it_works"`
	WhyJoin     []Step `json:"why_join"`
	CallToTitle string `json:"call_to_action_title"`
	CallToText  string `json:"call_to_action_text"`
	CallTo      Link   `json:"call_to_action"`
}

type FormView struct {
	Action string   `json:"action"`
	Fields []string `json:"fields"`
	Links  []Link   `json:"links,omitempty"`
}

type LeadsView struct {
	Leads  []*entity.Lead                          `json:"leads"`
	Count  int                                     `json:"count"`
	Badges map[entity.LeadStatus]entity.StatusBadge `json:"badges"`
}

type LeadDetailView struct {
	Lead  *entity.Lead       `json:"lead"`
	Badge entity.StatusBadge `json:"badge"`
	Back  Link               `json:"back"`
}

// newLeadsView junta a lista com os badges dos status presentes nela.
func newLeadsView(leads []*entity.Lead) LeadsView {
	badges := make(map[entity.LeadStatus]entity.StatusBadge)
	for _, l := range leads {
		badges[l.Status] = l.Status.Badge()
	}
	return LeadsView{Leads: leads, Count: len(leads), Badges: badges}
}

type NewLeadView struct {
	Action        string           `json:"action"`
	Form          usecase.LeadForm `json:"form"`
	PropertyTypes []string         `json:"property_types"`
}

type NotFoundView struct {
	Message string `json:"message"`
	Back    Link   `json:"back"`
}

var landing = LandingView{
	Headline:    "Développez votre réseau immobilier avec MapeoRewards",
	Subheadline: "Proposez des opportunités immobilières et soyez récompensé pour chaque transaction réussie.",
	Actions: []Link{
		{Label: "Devenir apporteur", Path: "/signup"},
		{Label: "Se connecter", Path: "/signin"},
	},
	HowItWorks: []Step{
		{Title: "1. Inscrivez-vous", Description: "Créez votre compte en quelques minutes et accédez à votre espace personnel"},
		{Title: "2. Proposez des leads", Description: "Soumettez les informations de contact de personnes intéressées par une vente immobilière"},
		{Title: "3. Recevez vos commissions", Description: "Suivez la progression des dossiers et percevez vos commissions après chaque vente finalisée"},
	},
	WhyJoin: []Step{
		{Title: "Suivi transparent", Description: "Suivez en temps réel l'avancement de vos leads et leur statut"},
		{Title: "Partenaire immobilier fiable", Description: "Travaillez avec une agence reconnue qui valorise votre contribution"},
		{Title: "Commissions attractives", Description: "Recevez des commissions compétitives pour chaque affaire concrétisée"},
	},
	CallToTitle: "Prêt à générer des revenus complémentaires ?",
	CallToText:  "Rejoignez notre réseau d'apporteurs d'affaires et transformez vos contacts en opportunités lucratives.",
	CallTo:      Link{Label: "Créer un compte gratuitement", Path: "/signup"},
}

// PageHandler serve as rotas do cliente como envelopes JSON.
type PageHandler struct {
	Store        *usecase.VerificationStore
	Dashboard    *usecase.DashboardUseCase
	Leads        *usecase.LeadsUseCase
	Profile      *usecase.ProfileUseCase
	Transactions *usecase.TransactionsUseCase
}

func NewPageHandler(
	store *usecase.VerificationStore,
	dashboard *usecase.DashboardUseCase,
	leads *usecase.LeadsUseCase,
	profile *usecase.ProfileUseCase,
	transactions *usecase.TransactionsUseCase,
) *PageHandler {
	return &PageHandler{Store: store, Dashboard: dashboard, Leads: leads, Profile: profile, Transactions: transactions}
}

func (h *PageHandler) Landing(w http.ResponseWriter, r *http.Request) {
	writePage(w, http.StatusOK, Page{Name: "landing", Title: Brand, Layout: publicLayout(r), View: landing})
}

func (h *PageHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	writePage(w, http.StatusOK, Page{
		Name:   "signin",
		Title:  "Connexion",
		Layout: publicLayout(r),
		View: FormView{
			Action: "/api/auth/signin",
			Fields: []string{"email", "password"},
			Links:  []Link{{Label: "Inscription", Path: "/signup"}},
		},
	})
}

func (h *PageHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	writePage(w, http.StatusOK, Page{
		Name:   "signup",
		Title:  "Inscription",
		Layout: publicLayout(r),
		View: FormView{
			Action: "/api/auth/signup",
			Fields: []string{"first_name", "last_name", "email", "phone", "password"},
			Links:  []Link{{Label: "Connexion", Path: "/signin"}},
		},
	})
}

// NotFound cobre qualquer rota desconhecida.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writePage(w, http.StatusNotFound, Page{
		Name:   "not_found",
		Title:  "Page introuvable",
		Layout: publicLayout(r),
		View: NotFoundView{
			Message: "Oops! Page introuvable",
			Back:    Link{Label: "Retour à l'accueil", Path: "/"},
		},
	})
}

// Unauthorized responde às rotas protegidas sem sessão.
func (h *PageHandler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	writePage(w, http.StatusUnauthorized, Page{
		Name:         "unauthorized",
		Title:        "Connexion",
		Layout:       publicLayout(r),
		Notification: failure("Session expirée", "Veuillez vous connecter pour continuer."),
		Redirect:     "/signin",
	})
}

// chrome resolve o status do apporteur e monta o layout do painel.
func (h *PageHandler) chrome(w http.ResponseWriter, r *http.Request) (string, entity.VerificationStatus, Layout, bool) {
	agentID := middleware.AgentID(r.Context())
	status, err := h.Store.Status(r.Context(), agentID)
	if err != nil {
		code, body, note := errorBody(err, "Erreur")
		if code == http.StatusNotFound {
			h.Unauthorized(w, r)
			return "", "", Layout{}, false
		}
		writePage(w, code, Page{Name: "error", Title: "Erreur", Layout: publicLayout(r), Error: body, Notification: note})
		return "", "", Layout{}, false
	}
	return agentID, status, dashboardLayout(r, status), true
}

func (h *PageHandler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	agentID, _, layout, ok := h.chrome(w, r)
	if !ok {
		return
	}

	page := Page{Name: "dashboard", Title: "Tableau de bord", Layout: layout}
	view, err := h.Dashboard.Execute(r.Context(), agentID)
	if err != nil {
		_, page.Error, page.Notification = errorBody(err, "Erreur")
		if view == nil {
			writePage(w, http.StatusBadGateway, page)
			return
		}
	}
	page.View = view
	writePage(w, http.StatusOK, page)
}

// LeadsPage lista os leads; falha no carregamento mostra a lista vazia com o toast de erro.
func (h *PageHandler) LeadsPage(w http.ResponseWriter, r *http.Request) {
	agentID, _, layout, ok := h.chrome(w, r)
	if !ok {
		return
	}

	page := Page{Name: "leads", Title: "Mes Leads", Layout: layout}
	leads, err := h.Leads.List(r.Context(), agentID)
	if err != nil {
		_, page.Error, page.Notification = errorBody(err, "Erreur")
		leads = []*entity.Lead{}
	}
	page.View = newLeadsView(leads)
	writePage(w, http.StatusOK, page)
}

func (h *PageHandler) LeadDetailPage(w http.ResponseWriter, r *http.Request) {
	agentID, _, layout, ok := h.chrome(w, r)
	if !ok {
		return
	}

	back := Link{Label: "Retour aux leads", Path: "/leads"}
	page := Page{Name: "lead_detail", Title: "Détails du lead", Layout: layout}

	lead, err := h.Leads.Get(r.Context(), agentID, chi.URLParam(r, "id"))
	if err != nil {
		var status int
		status, page.Error, page.Notification = errorBody(err, "Lead non trouvé")
		page.View = NotFoundView{Message: "Lead non trouvé", Back: back}
		writePage(w, status, page)
		return
	}

	page.View = LeadDetailView{Lead: lead, Badge: lead.Status.Badge(), Back: back}
	writePage(w, http.StatusOK, page)
}

// NewLeadPage só abre o formulário para contas validadas.
func (h *PageHandler) NewLeadPage(w http.ResponseWriter, r *http.Request) {
	_, status, layout, ok := h.chrome(w, r)
	if !ok {
		return
	}

	page := Page{Name: "new_lead", Title: "Nouveau Lead", Layout: layout}
	if status != entity.StatusValidated {
		var code int
		code, page.Error, page.Notification = errorBody(usecase.ErrVerificationRequired, "Accès refusé")
		page.Redirect = "/dashboard"
		writePage(w, code, page)
		return
	}

	page.View = NewLeadView{
		Action:        "/api/leads",
		Form:          usecase.LeadForm{},
		PropertyTypes: entity.PropertyTypes,
	}
	writePage(w, http.StatusOK, page)
}

func (h *PageHandler) ProfilePage(w http.ResponseWriter, r *http.Request) {
	agentID, _, layout, ok := h.chrome(w, r)
	if !ok {
		return
	}

	page := Page{Name: "profile", Title: "Paramètres", Layout: layout}
	settings, err := h.Profile.Settings(r.Context(), agentID)
	if err != nil {
		var code int
		code, page.Error, page.Notification = errorBody(err, "Erreur")
		writePage(w, code, page)
		return
	}

	txs, err := h.Transactions.List(r.Context(), agentID)
	if err != nil {
		_, page.Error, page.Notification = errorBody(err, "Erreur")
	} else {
		settings.Transactions = txs
	}

	page.View = settings
	writePage(w, http.StatusOK, page)
}
