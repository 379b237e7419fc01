package main

import (
	"fmt"
	"os"

	"github.com/marcelsud/webhook-outbox/subscriptions"
)

/* validate-subscriptions - Standalone CLI tool to validate subscriptions.yaml
 * Usage: go run cmd/validate-subscriptions/main.go [subscriptions.yaml]
 * Exit codes: 0 = valid, 1 = invalid
 */

func main() {
	// Get subscriptions file path from args or use default
	subscriptionsFile := "subscriptions.yaml"
	if len(os.Args) > 1 {
		subscriptionsFile = os.Args[1]
	}

	fmt.Printf("Validating subscriptions file: %s\n", subscriptionsFile)

	// Create loader and attempt to load subscriptions
	loader := subscriptions.NewLoader()
	if err := loader.Load(subscriptionsFile); err != nil {
		fmt.Fprintf(os.Stderr, "❌ VALIDATION FAILED\n\n")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Success - print loaded subscriptions
	loaded := loader.List()
	fmt.Printf("✓ VALIDATION PASSED\n\n")
	fmt.Printf("Loaded %d subscription(s):\n", len(loaded))

	for i, subscription := range loaded {
		fmt.Printf("\n%d. Subscription: %s\n", i+1, subscription.SubscriptionID)
		fmt.Printf("   Target URL:  %s\n", subscription.TargetURL)
		if subscription.TenantID != nil {
			fmt.Printf("   Tenant:      %s\n", subscription.TenantID)
		}
		if len(subscription.EventTypes) > 0 {
			fmt.Printf("   Event Types: %v\n", subscription.EventTypes)
		}
		if len(subscription.Headers) > 0 {
			fmt.Printf("   Headers:     %d static header(s)\n", len(subscription.Headers))
		}
	}

	fmt.Printf("\n✓ All subscriptions are valid!\n")
	os.Exit(0)
}
