package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/mapeo-rewards/internal/infra/http/handlers"
	"github.com/xavierca1/mapeo-rewards/internal/infra/http/middleware"
)

type Handlers struct {
	Pages        *handlers.PageHandler
	Auth         *handlers.AuthHandler
	Verification *handlers.VerificationHandler
	Leads        *handlers.LeadHandler
	Profile      *handlers.ProfileHandler
	Transactions *handlers.TransactionHandler
	Admin        *handlers.AdminHandler
	Health       *handlers.HealthHandler
}

type Options struct {
	CORSOrigins []string
	AdminAPIKey string
	Sessions    middleware.SessionParser
	AuthLimiter *middleware.RateLimiter
}

func New(h Handlers, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Viewport-Width", "Sec-CH-UA-Mobile", middleware.AdminKeyHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	// páginas públicas
	r.Get("/", h.Pages.Landing)
	r.Get("/signin", h.Pages.SignIn)
	r.Get("/signup", h.Pages.SignUp)

	// páginas do painel
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(opts.Sessions, http.HandlerFunc(h.Pages.Unauthorized)))
		r.Get("/dashboard", h.Pages.DashboardPage)
		r.Get("/leads", h.Pages.LeadsPage)
		r.Get("/leads/new", h.Pages.NewLeadPage)
		r.Get("/leads/{id}", h.Pages.LeadDetailPage)
		r.Get("/profile", h.Pages.ProfilePage)
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			if opts.AuthLimiter != nil {
				r.Use(opts.AuthLimiter.Limit(http.HandlerFunc(handlers.TooManyRequests)))
			}
			r.Post("/signin", h.Auth.SignIn)
			r.Post("/signup", h.Auth.SignUp)
			r.Post("/signout", h.Auth.SignOut)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(opts.Sessions, http.HandlerFunc(handlers.UnauthorizedAPI)))

			r.Get("/verification", h.Verification.Status)
			r.Post("/verification/document", h.Verification.UploadDocument)

			r.Get("/leads", h.Leads.List)
			r.Post("/leads", h.Leads.Submit)
			r.Get("/leads/{id}", h.Leads.Get)

			r.Get("/profile", h.Profile.Settings)
			r.Put("/profile", h.Profile.SaveProfile)
			r.Put("/bank", h.Profile.SaveBankDetails)
			mountEditor(r, "/profile/edit", h.Profile.ProfileEditor())
			mountEditor(r, "/bank/edit", h.Profile.BankEditor())

			r.Get("/transactions", h.Transactions.List)
			r.Get("/transactions/export", h.Transactions.Export)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdminKey(opts.AdminAPIKey, http.HandlerFunc(handlers.ForbiddenAPI)))
			r.Post("/agents/{agentID}/verification", h.Admin.ReviewVerification)
			r.Post("/leads/{id}/status", h.Admin.AdvanceLead)
		})
	})

	r.NotFound(h.Pages.NotFound)
	return r
}

type editor interface {
	Begin(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Commit(http.ResponseWriter, *http.Request)
	Cancel(http.ResponseWriter, *http.Request)
}

func mountEditor(r chi.Router, path string, e editor) {
	r.Post(path, e.Begin)
	r.Patch(path, e.Update)
	r.Delete(path, e.Cancel)
	r.Post(path+"/commit", e.Commit)
}
