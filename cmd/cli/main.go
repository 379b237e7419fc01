package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/marcelsud/webhook-outbox/config"
	"github.com/marcelsud/webhook-outbox/sender"
	senderredis "github.com/marcelsud/webhook-outbox/sender/redis"
	"github.com/marcelsud/webhook-outbox/subscriptions"
)

/* cli - one-shot webhook delivery from the command line
 * Usage: go run cmd/cli/main.go -subscription <uuid> -event user.created -data '{"x":1}'
 */

func main() {
	subscriptionID := flag.String("subscription", "", "subscription id to deliver to")
	event := flag.String("event", "", "event type, e.g. user.created")
	data := flag.String("data", "{}", "JSON payload")
	flag.Parse()

	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	ctx := context.Background()

	loader := subscriptions.NewLoader()
	if err := loader.Load(cfg.GetSubscriptionsFile()); err != nil {
		fmt.Println(err)
		return
	}

	id, err := uuid.Parse(*subscriptionID)
	if err != nil {
		fmt.Printf("invalid subscription id: %v\n", err)
		os.Exit(1)
	}
	subscription, err := loader.Get(id)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	tracker, err := senderredis.NewTracker(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer tracker.Close(ctx)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	s := sender.NewService(tracker, cfg.GetWebhookTimeout(), logger)

	delivered := s.Send(ctx, sender.Input{
		WebhookID:      uuid.New(),
		SubscriptionID: subscription.SubscriptionID,
		TenantID:       subscription.TenantID,
		URI:            subscription.TargetURL,
		Event:          *event,
		Data:           *data,
		Secret:         subscription.Secret,
		Headers:        subscription.Headers,
	})

	fmt.Printf("delivered: %v\n", delivered)
	if !delivered {
		os.Exit(1)
	}
}
