// Package httptransport wires the console's HTTP surface: middleware stack,
// public auth routes, and the authenticated screen routes.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	operatorhandler "kycdesk/internal/operator/handler"
	operatormiddleware "kycdesk/internal/operator/middleware"
	"kycdesk/internal/platform/health"
	reviewhandler "kycdesk/internal/review/handler"
	suspensionhandler "kycdesk/internal/suspension/handler"
	"kycdesk/pkg/platform/httputil"
	"kycdesk/pkg/platform/middleware/metadata"
	request "kycdesk/pkg/platform/middleware/request"
)

// Deps carries everything the router mounts.
type Deps struct {
	Review        *reviewhandler.Handler
	Suspension    *suspensionhandler.Handler
	Operator      *operatorhandler.Handler
	Authenticator operatormiddleware.Authenticator
	Health        *health.Handler
	CORSOrigins   []string
	Logger        *slog.Logger
}

// NewRouter wires all endpoints with middleware. Screen routes sit behind the
// operator session guard; auth login, health, and metrics are public.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(deps.Logger))
	r.Use(request.RequestID)
	r.Use(metadata.Handler)
	r.Use(request.Logger(deps.Logger))
	r.Use(request.Timeout(30 * time.Second))

	if len(deps.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   deps.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/", handleLanding)
	r.Handle("/metrics", promhttp.Handler())
	deps.Health.Register(r)
	deps.Operator.RegisterPublic(r)

	r.Group(func(r chi.Router) {
		r.Use(operatormiddleware.RequireOperator(deps.Authenticator))
		deps.Operator.RegisterProtected(r)
		deps.Review.Register(r)
		deps.Suspension.Register(r)
	})

	return r
}

// landingResponse lists the console's screens, mirroring the dashboard's
// navigation cards.
type landingResponse struct {
	Service string            `json:"service"`
	Screens map[string]string `json:"screens"`
}

func handleLanding(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, landingResponse{
		Service: "kycdesk",
		Screens: map[string]string{
			"aadhar_verification": "/screens/aadhar/submissions",
			"rera_verification":   "/screens/rera/submissions",
			"suspend_user":        "/screens/suspension/users",
		},
	})
}
