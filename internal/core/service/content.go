package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inkwell/content-system/internal/core/domain"
	"github.com/inkwell/content-system/internal/core/policy"
	"github.com/inkwell/content-system/internal/core/ports"
	"github.com/inkwell/content-system/pkg/metrics"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Denial labels for metrics.PolicyDenialsTotal.
const (
	opView              = "view"
	opEdit              = "edit"
	opAuthorOwn         = "author_own"
	opAuthorOwnerEntity = "author_owner_entity"
	opAuthorPages       = "author_pages"
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

func denied(op string) {
	metrics.PolicyDenialsTotal.WithLabelValues(op).Inc()
}

func cleanKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, k := range in {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

type noopRecorder struct{}

func (noopRecorder) Record(domain.ContentEvent) {}

// contentSupport bundles the collaborators shared by the blog and page
// services: event log, idempotent replay and logging.
type contentSupport struct {
	kind   domain.ContentKind
	events ports.EventRecorder
	idem   ports.IdempotencyStore
	log    zerolog.Logger
}

func newContentSupport(kind domain.ContentKind, events ports.EventRecorder, idem ports.IdempotencyStore, log zerolog.Logger) contentSupport {
	if events == nil {
		events = noopRecorder{}
	}
	return contentSupport{kind: kind, events: events, idem: idem, log: log}
}

func (c contentSupport) record(actor *policy.Actor, slug string, action domain.ContentAction) {
	c.events.Record(domain.ContentEvent{
		ID:      uuid.NewString(),
		Kind:    c.kind,
		Slug:    slug,
		Action:  action,
		ActorID: actor.ID,
		At:      time.Now().UTC(),
	})
}

// replayedSlug returns the slug produced by an earlier create carrying the
// same key. Store failures degrade to "not seen" so creates keep working
// when redis is down.
func (c contentSupport) replayedSlug(ctx context.Context, actor *policy.Actor, key string) string {
	if key == "" || c.idem == nil {
		return ""
	}
	slug, err := c.idem.Lookup(ctx, string(c.kind), actor.ID, key)
	if err != nil {
		c.log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return ""
	}
	return slug
}

func (c contentSupport) remember(ctx context.Context, actor *policy.Actor, key, slug string) {
	if key == "" || c.idem == nil {
		return
	}
	if err := c.idem.Remember(ctx, string(c.kind), actor.ID, key, slug); err != nil {
		c.log.Warn().Err(err).Str("idempotency_key", key).Msg("failed to store idempotency key")
	}
}
