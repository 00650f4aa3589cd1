package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/weddingledger/planner/internal/auth"
	"github.com/weddingledger/planner/internal/http/category"
	"github.com/weddingledger/planner/internal/http/contributor"
	"github.com/weddingledger/planner/internal/http/expense"
	"github.com/weddingledger/planner/internal/http/export"
	"github.com/weddingledger/planner/internal/http/gift"
	"github.com/weddingledger/planner/internal/http/httpx"
	"github.com/weddingledger/planner/internal/http/invitation"
	"github.com/weddingledger/planner/internal/http/ledger"
	"github.com/weddingledger/planner/internal/http/migration"
	"github.com/weddingledger/planner/internal/http/notification"
	"github.com/weddingledger/planner/internal/http/preference"
	"github.com/weddingledger/planner/internal/http/settings"
	"github.com/weddingledger/planner/internal/http/workspace"
)

type Handlers struct {
	Workspaces    *workspace.Handler
	Invitations   *invitation.Handler
	Expenses      *expense.Handler
	Contributors  *contributor.Handler
	Gifts         *gift.Handler
	Categories    *category.Handler
	Settings      *settings.Handler
	Summary       *ledger.Handler
	Export        *export.Handler
	Notifications *notification.Handler
	Preferences   *preference.Handler
	Migration     *migration.Handler
}

type Options struct {
	Verifier       auth.Verifier
	Access         httpx.Authorizer
	AllowedOrigins []string
}

func New(opts Options, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/invitations", func(r chi.Router) {
			h.Invitations.PublicRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(httpx.Authenticate(opts.Verifier))
				r.Use(middleware.AllowContentType("application/json"))
				h.Invitations.Routes(r)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(httpx.Authenticate(opts.Verifier))

			r.Route("/workspaces", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json", "multipart/form-data"))

				h.Workspaces.Routes(r)

				r.Route("/{"+httpx.WorkspaceParam+"}", func(r chi.Router) {
					h.Workspaces.ItemRoutes(r)
					r.Route("/invitations", h.Invitations.WorkspaceRoutes)

					r.Group(func(r chi.Router) {
						r.Use(httpx.WorkspaceAccess(opts.Access))

						r.Route("/expenses", h.Expenses.Routes)
						r.Route("/contributors", h.Contributors.Routes)
						r.Route("/gifts", h.Gifts.Routes)
						r.Route("/categories", h.Categories.Routes)
						r.Route("/settings", h.Settings.Routes)
						r.Route("/summary", h.Summary.Routes)
						h.Export.Routes(r)
					})
				})
			})

			r.Route("/notifications", h.Notifications.Routes)

			r.Route("/preferences", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Preferences.Routes(r)
			})

			r.Route("/migration", h.Migration.Routes)
		})
	})

	return router
}
