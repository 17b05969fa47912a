// Package metrics defines and registers the custom Prometheus metrics for
// the content service. Metrics are registered with the default registry on
// package init via promauto; HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inkwell"

// ── Policy ────────────────────────────────────────────────────────────────────

// PolicyDenialsTotal counts requests rejected by the content policy.
// Label:
//   - operation: "view", "edit", "author_own", "author_owner_entity", "author_pages"
var PolicyDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policy_denials_total",
		Help:      "Total number of requests denied by the content policy.",
	},
	[]string{"operation"},
)

// ── Content ───────────────────────────────────────────────────────────────────

// PostsCreatedTotal counts newly created blog posts.
// Label:
//   - attribution: "owner_entity" or "user"
var PostsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of blog posts created, by attribution.",
	},
	[]string{"attribution"},
)

var PagesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pages_created_total",
		Help:      "Total number of pages created.",
	},
)

// ── Content event log ─────────────────────────────────────────────────────────

// ContentEventsTotal counts audit events persisted.
// Labels:
//   - kind: "post" or "page"
//   - action: "created", "updated", "published", "unpublished", "deleted"
var ContentEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_events_total",
		Help:      "Total number of content events persisted.",
	},
	[]string{"kind", "action"},
)

var ContentEventsErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_events_errors_total",
		Help:      "Total number of content events that could not be persisted.",
	},
)

// EventsQueueDepth tracks the number of events waiting in each dispatcher worker.
// Label:
//   - worker_id: numeric worker index
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Newsletter and contact ────────────────────────────────────────────────────

// NewsletterActionsTotal counts newsletter subscription changes.
// Label:
//   - action: "subscribed", "confirmed", "unsubscribed", "consent_updated"
var NewsletterActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "newsletter_actions_total",
		Help:      "Total number of newsletter subscription changes, by action.",
	},
	[]string{"action"},
)

// ContactMessagesTotal counts contact form submissions.
// Label:
//   - outcome: "accepted" or "rejected"
var ContactMessagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contact_messages_total",
		Help:      "Total number of contact form submissions, by outcome.",
	},
	[]string{"outcome"},
)
