package billing

import "errors"

var (
	ErrMissingAPIKey             = errors.New("billing provider API key is required")
	ErrMissingWebhookSecret      = errors.New("billing provider webhook secret is required")
	ErrInvalidEnvironment        = errors.New("invalid billing provider environment")
	ErrFailedToCreateProvider    = errors.New("failed to create billing provider client")
	ErrMissingPriceID            = errors.New("price ID is required")
	ErrMissingCustomerID         = errors.New("customer ID is required")
	ErrNoCheckoutURL             = errors.New("no checkout URL returned from provider")
	ErrFailedToCreateCheckout    = errors.New("failed to create checkout session")
	ErrWebhookVerificationFailed = errors.New("webhook signature verification failed")
	ErrFailedToParseWebhook      = errors.New("failed to parse webhook payload")

	ErrPlanNotFound       = errors.New("plan not found in catalog")
	ErrPlanNotPurchasable = errors.New("plan has no price and cannot be purchased")
	ErrUnknownCustomer    = errors.New("webhook customer does not map to a user")
	ErrUnknownPrice       = errors.New("webhook price does not map to a catalog plan")
	ErrFailedToApplyPlan  = errors.New("failed to apply plan change to user")
)
