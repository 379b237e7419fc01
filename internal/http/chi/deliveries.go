package chi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/marcelsud/webhook-outbox/sender"
	"github.com/marcelsud/webhook-outbox/subscriptions"
)

/* HTTP layer DTOs for the delivery API
 * Separate from domain entities to avoid leaking internal structure
 */

// deliveryRequest represents an incoming request to deliver an event
type deliveryRequest struct {
	WebhookID string            `json:"webhook_id"` // Optional: generated when empty
	Event     string            `json:"event"`
	Data      json.RawMessage   `json:"data"`
	Headers   map[string]string `json:"headers"`
}

// deliveryResponse represents the API response for a delivery attempt
type deliveryResponse struct {
	WebhookID      string `json:"webhook_id"`
	SubscriptionID string `json:"subscription_id"`
	Delivered      bool   `json:"delivered"`
}

// subscriptionResponse represents a subscription in the API
type subscriptionResponse struct {
	SubscriptionID string   `json:"subscription_id"`
	TargetURL      string   `json:"target_url"`
	EventTypes     []string `json:"event_types"`
}

// postDelivery handles POST /v1/subscriptions/:subscription_id/deliveries
func postDelivery(senderService sender.UseCase, loader *subscriptions.Loader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subscriptionID, err := uuid.Parse(chi.URLParam(r, "subscription_id"))
		if err != nil {
			http.Error(w, "subscription_id must be a valid UUID", http.StatusBadRequest)
			return
		}

		subscription, err := loader.Get(subscriptionID)
		if err != nil {
			http.Error(w, fmt.Sprintf("subscription not found: %s", subscriptionID), http.StatusNotFound)
			return
		}

		var request deliveryRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		if err := subscriptions.ValidateEventType(request.Event); err != nil {
			http.Error(w, fmt.Sprintf("invalid event: %v", err), http.StatusBadRequest)
			return
		}

		if !subscription.Accepts(request.Event) {
			http.Error(w, fmt.Sprintf("subscription %s does not accept event %s", subscriptionID, request.Event), http.StatusUnprocessableEntity)
			return
		}

		if len(request.Data) == 0 {
			http.Error(w, "data is required", http.StatusBadRequest)
			return
		}

		webhookID := uuid.New()
		if request.WebhookID != "" {
			webhookID, err = uuid.Parse(request.WebhookID)
			if err != nil {
				http.Error(w, "webhook_id must be a valid UUID", http.StatusBadRequest)
				return
			}
		}

		// Static subscription headers first, caller headers overwrite
		headers := make(map[string]string, len(subscription.Headers)+len(request.Headers))
		for key, value := range subscription.Headers {
			headers[key] = value
		}
		for key, value := range request.Headers {
			headers[key] = value
		}

		delivered := senderService.Send(r.Context(), sender.Input{
			WebhookID:      webhookID,
			SubscriptionID: subscription.SubscriptionID,
			TenantID:       subscription.TenantID,
			URI:            subscription.TargetURL,
			Event:          request.Event,
			Data:           string(request.Data),
			Secret:         subscription.Secret,
			Headers:        headers,
		})

		w.Header().Set("Content-Type", "application/json")
		response := deliveryResponse{
			WebhookID:      webhookID.String(),
			SubscriptionID: subscription.SubscriptionID.String(),
			Delivered:      delivered,
		}

		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// getSubscriptions handles GET /v1/subscriptions
func getSubscriptions(loader *subscriptions.Loader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all := loader.List()

		responses := make([]subscriptionResponse, 0, len(all))
		for _, subscription := range all {
			responses = append(responses, subscriptionResponse{
				SubscriptionID: subscription.SubscriptionID.String(),
				TargetURL:      subscription.TargetURL,
				EventTypes:     subscription.EventTypes,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(responses); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
