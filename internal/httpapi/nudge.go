package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lumishot/lumishot/internal/storage"
	"github.com/lumishot/lumishot/pkg/entitlement"
	"github.com/lumishot/lumishot/pkg/mailer"
	"github.com/lumishot/lumishot/pkg/usage"
)

// Nudger sends the "quota reached" upgrade email at most once per user,
// action and billing period. Dedupe lives in Redis with a TTL bound to the
// period end; the gate itself stays stateless.
type Nudger struct {
	redis      redis.UniversalClient
	sender     mailer.Sender
	catalog    *entitlement.Catalog
	loc        *time.Location
	upgradeURL string
	now        func() time.Time
	log        *slog.Logger
}

// NewNudger creates a Nudger. A nil location defaults to UTC.
func NewNudger(rdb redis.UniversalClient, sender mailer.Sender, catalog *entitlement.Catalog, loc *time.Location, upgradeURL string, log *slog.Logger) *Nudger {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Nudger{
		redis:      rdb,
		sender:     sender,
		catalog:    catalog,
		loc:        loc,
		upgradeURL: upgradeURL,
		now:        time.Now,
		log:        log,
	}
}

// MaybeSend fires the nudge unless one already went out this period. Failures
// are logged and swallowed; the denial response must not depend on email
// delivery.
func (n *Nudger) MaybeSend(ctx context.Context, user storage.User, action entitlement.Action, upgradePlanID string) {
	if upgradePlanID == "" || user.Email == "" {
		return
	}

	_, periodEnd := usage.Period(n.now(), n.loc)
	key := fmt.Sprintf("nudge:%s:%s:%d", user.ID, action, periodEnd.Unix())

	set, err := n.redis.SetNX(ctx, key, "1", time.Until(periodEnd)).Result()
	if err != nil {
		n.log.WarnContext(ctx, "nudge dedupe check failed, skipping email",
			slog.String("user_id", user.ID.String()), slog.Any("error", err))
		return
	}
	if !set {
		return
	}

	currentPlan := n.catalog.Resolve(user.PlanID)
	upgradePlan := n.catalog.Resolve(upgradePlanID)

	msg, err := mailer.QuotaNudge(mailer.QuotaNudgeParams{
		To:          user.Email,
		PlanName:    currentPlan.Name,
		ActionLabel: actionLabel(action),
		UpgradePlan: upgradePlan.Name,
		UpgradeURL:  n.upgradeURL,
		PeriodEnd:   periodEnd,
	})
	if err != nil {
		n.log.WarnContext(ctx, "nudge rendering failed",
			slog.String("user_id", user.ID.String()), slog.Any("error", err))
		return
	}

	if err := n.sender.Send(ctx, msg); err != nil {
		n.log.WarnContext(ctx, "nudge delivery failed",
			slog.String("user_id", user.ID.String()), slog.Any("error", err))
	}
}

func actionLabel(action entitlement.Action) string {
	switch action {
	case entitlement.ActionMerge:
		return "photo merges"
	default:
		return "photoshoots"
	}
}
