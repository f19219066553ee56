package billing

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lumishot/lumishot/pkg/entitlement"
)

// PlanWriter persists a user's plan assignment. Implemented by the user
// repository.
type PlanWriter interface {
	SetPlan(ctx context.Context, userID uuid.UUID, planID string) error
}

// Service turns checkout requests and provider webhooks into plan changes.
type Service struct {
	provider Provider
	catalog  *entitlement.Catalog
	plans    PlanWriter
	log      *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger for webhook processing.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.log = log
	}
}

// NewService creates a billing service over the given provider and catalog.
func NewService(provider Provider, catalog *entitlement.Catalog, plans PlanWriter, opts ...ServiceOption) *Service {
	s := &Service{
		provider: provider,
		catalog:  catalog,
		plans:    plans,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Checkout opens a hosted checkout session for the named plan. Free plans
// have no price and cannot be purchased.
func (s *Service) Checkout(ctx context.Context, userID uuid.UUID, email, planID, successURL string) (*CheckoutLink, error) {
	if !s.catalog.Has(planID) {
		return nil, ErrPlanNotFound
	}

	plan := s.catalog.Resolve(planID)
	if plan.PriceID == "" {
		return nil, ErrPlanNotPurchasable
	}

	return s.provider.CreateCheckoutLink(ctx, CheckoutRequest{
		PriceID:    plan.PriceID,
		CustomerID: userID.String(),
		Email:      email,
		SuccessURL: successURL,
	})
}

// HandleWebhook verifies and applies a provider webhook. Subscription
// activation moves the user onto the purchased plan; cancellation drops them
// to the lowest tier. Events outside the plan-change flow are logged and
// acknowledged.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.provider.ParseWebhook(ctx, payload, signature)
	if err != nil {
		return err
	}

	switch event.Type {
	case EventSubscriptionCreated, EventSubscriptionUpdated, EventSubscriptionResumed:
		return s.applyPurchase(ctx, event)
	case EventSubscriptionCancelled:
		return s.applyCancellation(ctx, event)
	default:
		s.log.DebugContext(ctx, "ignoring billing event",
			slog.String("event", event.ProviderEvent))
		return nil
	}
}

func (s *Service) applyPurchase(ctx context.Context, event *WebhookEvent) error {
	userID, err := uuid.Parse(event.CustomerID)
	if err != nil {
		return errors.Join(ErrUnknownCustomer, err)
	}

	plan, ok := s.catalog.ByPriceID(event.PriceID)
	if !ok {
		s.log.WarnContext(ctx, "webhook price has no catalog plan",
			slog.String("price_id", event.PriceID),
			slog.String("event", event.ProviderEvent))
		return ErrUnknownPrice
	}

	if err := s.plans.SetPlan(ctx, userID, plan.ID); err != nil {
		return errors.Join(ErrFailedToApplyPlan, err)
	}

	s.log.InfoContext(ctx, "plan activated",
		slog.String("user_id", userID.String()),
		slog.String("plan_id", plan.ID),
		slog.String("event", event.ProviderEvent))
	return nil
}

func (s *Service) applyCancellation(ctx context.Context, event *WebhookEvent) error {
	userID, err := uuid.Parse(event.CustomerID)
	if err != nil {
		return errors.Join(ErrUnknownCustomer, err)
	}

	lowest := s.catalog.Lowest()
	if err := s.plans.SetPlan(ctx, userID, lowest.ID); err != nil {
		return errors.Join(ErrFailedToApplyPlan, err)
	}

	s.log.InfoContext(ctx, "plan cancelled, user moved to lowest tier",
		slog.String("user_id", userID.String()),
		slog.String("plan_id", lowest.ID))
	return nil
}
