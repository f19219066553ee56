package httpapi

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/lumishot/lumishot/internal/storage"
	"github.com/lumishot/lumishot/internal/studio"
	"github.com/lumishot/lumishot/pkg/billing"
	"github.com/lumishot/lumishot/pkg/entitlement"
	"github.com/lumishot/lumishot/pkg/genai"
	"github.com/lumishot/lumishot/pkg/usage"
)

// handlers holds the dependencies of all route handlers.
type handlers struct {
	studio  *studio.Service
	gate    *entitlement.Gate
	catalog *entitlement.Catalog
	billing *billing.Service
	nudger  *Nudger
	log     *slog.Logger
}

type shootRequest struct {
	Prompt  string   `json:"prompt"`
	Shape   string   `json:"shape"`
	Images  []string `json:"images,omitempty"` // base64, merge only
	Quality string   `json:"quality,omitempty"`
}

type shootResponse struct {
	ID       uuid.UUID `json:"id"`
	Kind     string    `json:"kind"`
	Prompt   string    `json:"prompt"`
	ImageURL string    `json:"image_url"`
	Shape    string    `json:"shape"`
	Quality  string    `json:"quality"`
}

func toShootResponse(s storage.Shoot) shootResponse {
	return shootResponse{
		ID:       s.ID,
		Kind:     string(s.Kind),
		Prompt:   s.Prompt,
		ImageURL: s.ImageURL,
		Shape:    string(s.Shape),
		Quality:  string(s.Quality),
	}
}

// createShoot handles POST /v1/shoots.
func (h *handlers) createShoot(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing identity", nil)
		return
	}

	var req shootRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "malformed request body", nil)
		return
	}

	plan := h.catalog.Resolve(user.PlanID)
	shoot, err := h.studio.Generate(r.Context(), user.ID, studio.GenerateRequest{
		Prompt:  req.Prompt,
		Shape:   entitlement.Shape(req.Shape),
		Quality: plan.Quality,
	})
	if err != nil {
		h.respondPipelineError(w, r, user, err)
		return
	}

	respondJSON(w, http.StatusCreated, toShootResponse(shoot))
}

// createMerge handles POST /v1/merges.
func (h *handlers) createMerge(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing identity", nil)
		return
	}

	var req shootRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "malformed request body", nil)
		return
	}

	images := make([][]byte, 0, len(req.Images))
	for _, enc := range req.Images {
		img, err := base64.StdEncoding.DecodeString(enc)
		if err != nil {
			respondError(w, http.StatusBadRequest, "bad_request", "images must be base64 encoded", nil)
			return
		}
		images = append(images, img)
	}

	plan := h.catalog.Resolve(user.PlanID)
	shoot, err := h.studio.Merge(r.Context(), user.ID, studio.MergeRequest{
		Prompt:  req.Prompt,
		Images:  images,
		Shape:   entitlement.Shape(req.Shape),
		Quality: plan.Quality,
	})
	if err != nil {
		h.respondPipelineError(w, r, user, err)
		return
	}

	respondJSON(w, http.StatusCreated, toShootResponse(shoot))
}

// getEntitlement handles GET /v1/entitlement for the dashboard.
func (h *handlers) getEntitlement(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing identity", nil)
		return
	}

	status, err := h.gate.Status(r.Context(), user.ID)
	if err != nil {
		h.log.ErrorContext(r.Context(), "entitlement status failed",
			slog.String("user_id", user.ID.String()), slog.Any("error", err))
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "please try again", nil)
		return
	}

	respondJSON(w, http.StatusOK, status)
}

type planResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Generations int64    `json:"generations"`
	Merges      int64    `json:"merges"`
	Shapes      []string `json:"shapes"`
	Quality     string   `json:"quality"`
	PriceCents  int64    `json:"price_cents"`
	Currency    string   `json:"currency,omitempty"`
	Interval    string   `json:"interval,omitempty"`
}

// listPlans handles GET /v1/plans: the public pricing table.
func (h *handlers) listPlans(w http.ResponseWriter, r *http.Request) {
	plans := h.catalog.Public()
	out := make([]planResponse, 0, len(plans))
	for _, p := range plans {
		shapes := make([]string, 0, len(p.Shapes))
		for _, s := range p.Shapes {
			shapes = append(shapes, string(s))
		}
		out = append(out, planResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Generations: p.Ceiling(entitlement.ActionGeneration),
			Merges:      p.Ceiling(entitlement.ActionMerge),
			Shapes:      shapes,
			Quality:     string(p.Quality),
			PriceCents:  p.Price.Amount,
			Currency:    p.Price.Currency,
			Interval:    string(p.Interval),
		})
	}
	respondJSON(w, http.StatusOK, out)
}

// listShoots handles GET /v1/shoots: the user's gallery.
func (h *handlers) listShoots(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing identity", nil)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	shoots, err := h.studio.Gallery(r.Context(), user.ID, limit, offset)
	if err != nil {
		h.log.ErrorContext(r.Context(), "gallery listing failed",
			slog.String("user_id", user.ID.String()), slog.Any("error", err))
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "please try again", nil)
		return
	}

	out := make([]shootResponse, 0, len(shoots))
	for _, s := range shoots {
		out = append(out, toShootResponse(s))
	}
	respondJSON(w, http.StatusOK, out)
}

type checkoutRequest struct {
	PlanID     string `json:"plan_id"`
	SuccessURL string `json:"success_url,omitempty"`
}

// createCheckout handles POST /v1/billing/checkout.
func (h *handlers) createCheckout(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing identity", nil)
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "malformed request body", nil)
		return
	}

	link, err := h.billing.Checkout(r.Context(), user.ID, user.Email, req.PlanID, req.SuccessURL)
	switch {
	case errors.Is(err, billing.ErrPlanNotFound), errors.Is(err, billing.ErrPlanNotPurchasable):
		respondError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
		return
	case err != nil:
		h.log.ErrorContext(r.Context(), "checkout creation failed",
			slog.String("user_id", user.ID.String()), slog.Any("error", err))
		respondError(w, http.StatusBadGateway, "billing_unavailable", "could not start checkout", nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"checkout_url": link.URL})
}

// billingWebhook handles POST /v1/billing/webhook from the payment provider.
func (h *handlers) billingWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := readBody(r, 1<<20)
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "unreadable payload", nil)
		return
	}

	err = h.billing.HandleWebhook(r.Context(), payload, r.Header.Get("Paddle-Signature"))
	switch {
	case errors.Is(err, billing.ErrWebhookVerificationFailed):
		respondError(w, http.StatusUnauthorized, "unauthorized", "signature verification failed", nil)
		return
	case err != nil:
		h.log.ErrorContext(r.Context(), "webhook processing failed", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "internal_error", "webhook processing failed", nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondPipelineError maps pipeline failures onto the denial payloads the
// client renders. Store outages get a generic 503 so internals never leak.
func (h *handlers) respondPipelineError(w http.ResponseWriter, r *http.Request, user storage.User, err error) {
	var quotaErr *entitlement.QuotaExceededError
	var shapeErr *entitlement.ShapeNotAllowedError

	switch {
	case errors.As(err, &quotaErr):
		upgrade := h.upgradeTarget(user.PlanID, quotaErr.Action)
		if h.nudger != nil {
			h.nudger.MaybeSend(r.Context(), user, quotaErr.Action, upgrade)
		}
		respondError(w, http.StatusPaymentRequired, "quota_exceeded",
			"monthly limit reached for "+string(quotaErr.Action), map[string]any{
				"action":          string(quotaErr.Action),
				"ceiling":         quotaErr.Ceiling,
				"used":            quotaErr.Used,
				"upgrade_plan_id": upgrade,
			})

	case errors.As(err, &shapeErr):
		allowed := make([]string, 0, len(shapeErr.Allowed))
		for _, s := range shapeErr.Allowed {
			allowed = append(allowed, string(s))
		}
		respondError(w, http.StatusForbidden, "shape_not_allowed",
			"your plan does not include this aspect ratio", map[string]any{
				"requested":       string(shapeErr.Requested),
				"allowed":         allowed,
				"upgrade_plan_id": h.upgradeTarget(user.PlanID, ""),
			})

	case errors.Is(err, entitlement.ErrUsageUnavailable) || errors.Is(err, usage.ErrFailedToReadUsage):
		h.log.ErrorContext(r.Context(), "usage store unavailable",
			slog.String("user_id", user.ID.String()), slog.Any("error", err))
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "please try again", nil)

	case errors.Is(err, studio.ErrEmptyPrompt) || errors.Is(err, studio.ErrNoSourceImages):
		respondError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)

	case errors.Is(err, genai.ErrContentSafety):
		respondError(w, http.StatusUnprocessableEntity, "content_rejected",
			"the prompt or image was rejected by safety filters", nil)

	default:
		h.log.ErrorContext(r.Context(), "shoot pipeline failed",
			slog.String("user_id", user.ID.String()), slog.Any("error", err))
		respondError(w, http.StatusBadGateway, "generation_failed",
			"image generation failed, you were not charged", nil)
	}
}

// upgradeTarget names the cheapest public plan that lifts the denied
// capability, so every denial carries an actionable call to action.
func (h *handlers) upgradeTarget(currentPlanID string, action entitlement.Action) string {
	current := h.catalog.Resolve(currentPlanID)
	for _, p := range h.catalog.Public() { // sorted by price ascending
		if p.ID == current.ID || p.Price.Amount <= current.Price.Amount {
			continue
		}
		if action == "" {
			return p.ID
		}
		ceiling := p.Ceiling(action)
		if ceiling == entitlement.Unlimited || ceiling > current.Ceiling(action) {
			return p.ID
		}
	}
	return ""
}

func readBody(r *http.Request, limit int64) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, limit))
}
