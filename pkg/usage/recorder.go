package usage

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lumishot/lumishot/pkg/entitlement"
)

// Recorder charges quota after a gated action has externally succeeded.
//
// It is called only after the model and CDN calls returned a result, never
// before and never on failure, so a failed generation never consumes quota.
// When the write itself fails the user keeps the already-produced result and
// the counter undercounts: never double-charge, occasionally under-charge.
type Recorder struct {
	store Store
	now   func() time.Time
	log   *slog.Logger
}

// NewRecorder returns a Recorder over the given store.
func NewRecorder(store Store, log *slog.Logger) *Recorder {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Recorder{store: store, now: time.Now, log: log}
}

// RecordSuccess appends one occurrence of the action at the current instant.
//
// The write runs on a detached context: a client abandoning the request must
// not cancel accounting for a generation that completed server-side. Write
// failures are logged with full context and returned so the caller can warn
// that quota tracking may undercount; they are never retried here.
func (r *Recorder) RecordSuccess(ctx context.Context, userID uuid.UUID, action entitlement.Action) error {
	err := r.store.Record(context.WithoutCancel(ctx), userID, action, r.now())
	if err != nil {
		r.log.WarnContext(ctx, "usage recording failed after successful action, quota may undercount",
			slog.String("user_id", userID.String()),
			slog.String("action", string(action)),
			slog.Any("error", err),
		)
	}
	return err
}
