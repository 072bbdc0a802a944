package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rajkumarptv/ChitLedger/internal/auth"
	"github.com/rajkumarptv/ChitLedger/internal/middleware"
)

// NewRouter assembles the full HTTP surface: the public login endpoint,
// the authenticated API, operational endpoints, and the receipts dir
// served as static files.
func NewRouter(h *Handler, jwtManager *auth.JWTManager, receiptsDir, receiptsBase string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORS)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics(routePattern))

	r.Get("/healthz", h.healthz)
	r.Handle("/metrics", promhttp.Handler())

	requireAuth := middleware.RequireAuth(jwtManager, func(w http.ResponseWriter, _ *http.Request, err error) {
		writeMappedError(w, err)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Route("/periods/{period}", func(r chi.Router) {
				r.Get("/summary", h.periodSummary)
				r.Put("/auction", h.setAuction)
				r.Get("/payments", h.listPayments)
				r.Post("/payments/{memberID}/{action}", h.transition)
				r.Get("/payment-link", h.paymentLink)
			})

			r.Post("/receipts", h.uploadReceipt)

			r.Route("/members", func(r chi.Router) {
				r.Get("/", h.listMembers)
				r.Post("/", h.createMember)
				r.Put("/{memberID}", h.updateMember)
			})

			r.Get("/config", h.getConfig)
			r.Put("/config", h.updateConfig)
		})
	})

	if receiptsDir != "" {
		fs := http.StripPrefix(receiptsBase+"/", http.FileServer(http.Dir(receiptsDir)))
		r.Handle(receiptsBase+"/*", fs)
	}

	return r
}

// routePattern resolves the chi pattern so metrics labels stay bounded.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		return rc.RoutePattern()
	}
	return ""
}
