// Package policy decides who may see, edit and author content.
//
// Every method is a pure function of the actor, the item and the Config
// the Evaluator was built with. Nothing is cached, logged or fetched, so
// the same inputs always produce the same answer and an Evaluator may be
// shared freely between goroutines.
//
// Callers must treat a false from CanView exactly like a missing item so
// that drafts cannot be discovered by probing.
package policy

import "github.com/inkwell/content-system/internal/core/domain"

// Actor is the slice of a user that authorization needs. A nil *Actor is
// the anonymous visitor.
type Actor struct {
	ID                string
	Role              domain.Role
	BannedFromPosting bool
	PublicProfile     bool
	Handle            string
}

// ActorFromUser builds the Actor view of a stored user. A nil user yields
// the anonymous actor.
func ActorFromUser(u *domain.User) *Actor {
	if u == nil {
		return nil
	}
	return &Actor{
		ID:                u.ID,
		Role:              u.Role,
		BannedFromPosting: u.BannedFromPosting,
		PublicProfile:     u.Public,
		Handle:            u.Handle,
	}
}

// Content is the slice of a post or page that authorization needs.
type Content struct {
	ID        string
	OwnerID   string
	Published bool
	// AsOwnerEntity marks content attributed to the site rather than to
	// OwnerID. Pages never set it.
	AsOwnerEntity bool
}

// PostContent returns the policy view of a blog post.
func PostContent(p *domain.BlogPost) Content {
	return Content{ID: p.ID, OwnerID: p.OwnerID, Published: p.Published, AsOwnerEntity: p.AsOwnerEntity}
}

// PageContent returns the policy view of a page.
func PageContent(p *domain.Page) Content {
	return Content{ID: p.ID, OwnerID: p.OwnerID, Published: p.Published}
}

// Evaluator answers authorization questions against a fixed Config.
type Evaluator struct {
	cfg Config
}

// New returns an Evaluator bound to cfg.
func New(cfg Config) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Config returns the configuration the evaluator was built with.
func (e *Evaluator) Config() Config {
	return e.cfg
}

// CanView reports whether actor may read item. Published content is
// public. Drafts attributed to the site are visible to the owner-entity
// roles only, even to the user who originally wrote them. Other drafts are
// visible to their owner only.
func (e *Evaluator) CanView(actor *Actor, item Content) bool {
	if item.Published {
		return true
	}
	if actor == nil {
		return false
	}
	if item.AsOwnerEntity {
		return e.cfg.OwnerEntityAuthors.Contains(actor.Role)
	}
	return owns(actor, item)
}

// CanEdit reports whether actor may modify item. Unlike CanView the
// published flag plays no part, and a ban revokes edit rights on
// everything, including the actor's own content.
func (e *Evaluator) CanEdit(actor *Actor, item Content) bool {
	if actor == nil || actor.BannedFromPosting {
		return false
	}
	if item.AsOwnerEntity {
		return e.cfg.OwnerEntityAuthors.Contains(actor.Role)
	}
	return owns(actor, item)
}

// CanAuthorOwn reports whether actor may publish content under their own
// name. Authors must be discoverable: a public profile with a handle.
func (e *Evaluator) CanAuthorOwn(actor *Actor) bool {
	if actor == nil || actor.BannedFromPosting {
		return false
	}
	if !actor.PublicProfile || actor.Handle == "" {
		return false
	}
	return e.cfg.Authors.Contains(actor.Role)
}

// CanAuthorAsOwnerEntity reports whether actor may publish content
// attributed to the site.
func (e *Evaluator) CanAuthorAsOwnerEntity(actor *Actor) bool {
	if actor == nil || actor.BannedFromPosting {
		return false
	}
	return e.cfg.OwnerEntityAuthors.Contains(actor.Role)
}

// CanAuthorPages reports whether actor may create and manage pages.
func (e *Evaluator) CanAuthorPages(actor *Actor) bool {
	if actor == nil || actor.BannedFromPosting {
		return false
	}
	return e.cfg.PageAuthors.Contains(actor.Role)
}

// CanAuthorAny reports whether actor has any way to write a blog post.
// Navigation uses it to decide whether to offer a "new post" link.
func (e *Evaluator) CanAuthorAny(actor *Actor) bool {
	return e.CanAuthorOwn(actor) || e.CanAuthorAsOwnerEntity(actor)
}

// owns requires a non-empty id so that a half-built actor can never match
// a half-built item.
func owns(actor *Actor, item Content) bool {
	return actor.ID != "" && actor.ID == item.OwnerID
}
