package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cargo-dispatch-service/internal/http/handlers"
)

// Deps carries everything the router mounts.
type Deps struct {
	Base     *handlers.Handlers
	Dispatch *handlers.DispatchHandler
	Driver   *handlers.DriverHandler

	// Events is the websocket endpoint for live delivery events. Optional.
	Events http.Handler

	// Extra middleware applied after the chi base stack (observability,
	// rate limiting).
	Middleware []func(http.Handler) http.Handler
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	for _, mw := range d.Middleware {
		r.Use(mw)
	}

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	// Websocket connections are long lived and must not run under the
	// request timeout.
	if d.Events != nil {
		r.Handle("/ws", d.Events)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))

		r.Get("/ping", d.Base.Ping)
		r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
		r.Handle("/metrics", promhttp.Handler())

		r.Route("/deliveries", func(r chi.Router) {
			r.Post("/", d.Dispatch.Create)
			r.Get("/", d.Dispatch.ListMine)
			r.Post("/estimate", d.Dispatch.Estimate)
			r.Get("/nearby", d.Dispatch.ListNearby)
			r.Get("/assigned", d.Dispatch.ListAssigned)
			r.Get("/{id}", d.Dispatch.Get)
			r.Post("/{id}/accept", d.Dispatch.Accept)
			r.Post("/{id}/verify-pickup", d.Dispatch.VerifyPickup)
			r.Post("/{id}/status", d.Dispatch.Advance)
			r.Post("/{id}/cancel", d.Dispatch.Cancel)
		})

		r.Route("/drivers", func(r chi.Router) {
			r.Post("/", d.Driver.Register)
			r.Put("/", d.Driver.Update)
			r.Get("/{id}", d.Driver.GetByID)
			r.Put("/{id}/location", d.Driver.UpdateLocation)
			r.Put("/{id}/status", d.Driver.UpdateStatus)
		})
	})

	return r
}
