package web

import (
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"subscription-storefront/internal/config"
	"subscription-storefront/internal/domain/model"
	"subscription-storefront/internal/infra/redis"
	"subscription-storefront/internal/infra/storage"
	"subscription-storefront/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Server struct {
	orders      *usecase.OrderUseCase
	suggestions *usecase.SuggestionUseCase
	inquiries   *usecase.InquiryUseCase
	catalog     *model.Catalog

	auth    *AuthManager
	csrf    *CSRF
	shots   *storage.ScreenshotStore
	limiter *redis.RateLimiter // nil disables throttling

	admin      config.AdminConfig
	staticDir  string
	rateLimit  int
	rateWin    time.Duration
	trustProxy bool

	log *zerolog.Logger
}

func NewServer(
	orders *usecase.OrderUseCase,
	suggestions *usecase.SuggestionUseCase,
	inquiries *usecase.InquiryUseCase,
	catalog *model.Catalog,
	auth *AuthManager,
	csrf *CSRF,
	shots *storage.ScreenshotStore,
	limiter *redis.RateLimiter,
	cfg *config.Config,
	logger *zerolog.Logger,
) *Server {
	compLog := logger.With().Str("component", "web.Server").Logger()
	return &Server{
		orders:      orders,
		suggestions: suggestions,
		inquiries:   inquiries,
		catalog:     catalog,
		auth:        auth,
		csrf:        csrf,
		shots:       shots,
		limiter:     limiter,
		admin:       cfg.Admin,
		staticDir:   cfg.Server.StaticDir,
		rateLimit:   cfg.Submissions.RateLimit,
		rateWin:     cfg.Submissions.RateWindow,
		trustProxy:  cfg.Server.TrustProxy,
		log:         &compLog,
	}
}

// Router builds the full route tree. On mutating routes the CSRF gate runs
// before the session gate so the rejection order is deterministic.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(TraceID(), RequestLog(s.log), Recover(s.log))

	// pages
	r.Get("/", s.page("index.html", false))
	r.Get("/login.html", s.page("login.html", true))
	r.Get("/dashboard.html", s.requirePage(s.page("dashboard.html", true)))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// public API
	r.Get("/api/csrf-token", s.csrfToken)
	r.Get("/api/plans/{subscriptionID}", s.listPlans)

	r.Group(func(r chi.Router) {
		r.Use(MaxBody(maxOrderBodyBytes), s.requireCSRF)
		r.Use(RateLimit(s.limiter, "submit", s.rateLimit, s.rateWin, s.trustProxy, s.log))
		r.Post("/api/subscription-order", s.submitOrder)
		r.Post("/api/suggestion", s.submitSuggestion)
		r.Post("/api/inquiry", s.submitInquiry)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireCSRF)
		r.Post("/api/admin/login", s.login)
		r.Post("/api/admin/logout", s.logout)
	})

	// admin reads
	r.Group(func(r chi.Router) {
		r.Use(s.requireAPIAuth)
		r.Get("/api/orders", s.listOrders)
		r.Get("/api/suggestions", s.listSuggestions)
		r.Get("/api/inquiries", s.listInquiries)
		r.Get("/api/screenshot/{filename}", s.screenshot)
	})

	// admin mutations: CSRF first, then session
	r.Group(func(r chi.Router) {
		r.Use(s.requireCSRF, s.requireAPIAuth)
		r.Put("/api/orders/{id}", s.updateOrder)
		r.Put("/api/inquiries/{id}", s.updateInquiry)
		r.Delete("/api/suggestions/{id}", s.deleteSuggestion)
		r.Delete("/api/inquiries/{id}", s.deleteInquiry)
	})

	return r
}

// page serves one of the storefront's static pages; withCSRF pages also
// issue a fresh token pair for the forms they host.
func (s *Server) page(file string, withCSRF bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if withCSRF {
			if _, err := s.csrf.Issue(w); err != nil {
				s.handleError(w, r, err)
				return
			}
		}
		http.ServeFile(w, r, filepath.Join(s.staticDir, file))
	}
}

func (s *Server) requirePage(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.auth.ParseFromRequest(r); err != nil {
			s.auth.Clear(w)
			http.Redirect(w, r, "/login.html", http.StatusFound)
			return
		}
		next(w, r)
	}
}

func (s *Server) requireAPIAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.auth.ParseFromRequest(r); err != nil {
			s.auth.Clear(w)
			failJSON(w, http.StatusUnauthorized, "غير مصرح بالوصول")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.csrf.Verify(r); err != nil {
			if errors.Is(err, errCSRF) {
				failJSON(w, http.StatusForbidden, "رمز الحماية غير صالح")
				return
			}
			s.handleError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}
