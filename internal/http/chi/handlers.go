package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/webhook-outbox/sender"
	"github.com/marcelsud/webhook-outbox/subscriptions"
)

// Handlers sets up the delivery API routes
func Handlers(ctx context.Context, senderService sender.UseCase, loader *subscriptions.Loader, metricsHandler http.Handler) *chi.Mux {
	logger := httplog.NewLogger("webhook-outbox", httplog.Options{
		JSON: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	// Delivery API routes
	r.Route("/v1", func(r chi.Router) {
		// List configured subscriptions
		r.Get("/subscriptions", getSubscriptions(loader).ServeHTTP)

		// Deliver an event to a subscription
		r.Post("/subscriptions/{subscription_id}/deliveries", postDelivery(senderService, loader).ServeHTTP)
	})

	return r
}
