package billing

import (
	"context"
	"time"
)

// Provider abstracts the payment provider behind hosted checkouts and signed
// webhooks. Implementations use the provider's official SDK and keep
// provider-specific quirks out of the service layer.
type Provider interface {
	// CreateCheckoutLink creates a hosted checkout session for a plan price.
	CreateCheckoutLink(ctx context.Context, req CheckoutRequest) (*CheckoutLink, error)

	// ParseWebhook validates the webhook signature and normalizes the event.
	// Spoofed or tampered payloads must be rejected.
	ParseWebhook(ctx context.Context, payload []byte, signature string) (*WebhookEvent, error)
}

// CheckoutRequest carries the data needed to open a checkout session.
type CheckoutRequest struct {
	PriceID    string // Provider's price identifier for the plan.
	CustomerID string // Internal user ID, round-tripped via custom data.
	Email      string // Optional billing email.
	SuccessURL string // Redirect after successful payment.
}

// CheckoutLink is a hosted checkout session.
type CheckoutLink struct {
	URL       string
	SessionID string
	ExpiresAt time.Time
}

// WebhookEvent is a billing event normalized across providers.
type WebhookEvent struct {
	Type           EventType
	ProviderEvent  string // Original provider event name.
	SubscriptionID string
	CustomerID     string // Internal user ID recovered from custom data.
	Status         string
	PriceID        string // The price the customer subscribed to.
}

// EventType is the normalized billing event type.
type EventType string

const (
	EventSubscriptionCreated   EventType = "subscription_created"
	EventSubscriptionUpdated   EventType = "subscription_updated"
	EventSubscriptionCancelled EventType = "subscription_cancelled"
	EventSubscriptionResumed   EventType = "subscription_resumed"
	EventPaymentFailed         EventType = "payment_failed"
	EventIgnored               EventType = "ignored"
)
