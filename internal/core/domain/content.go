package domain

import "time"

// BlogPost is an article written either by an individual user or, when
// AsOwnerEntity is set, on behalf of the site itself.
type BlogPost struct {
	ID            string    `json:"id" bson:"_id"`
	Slug          string    `json:"slug" bson:"slug"`
	Title         string    `json:"title" bson:"title"`
	Content       string    `json:"content" bson:"content"`
	Keywords      []string  `json:"keywords" bson:"keywords"`
	Published     bool      `json:"published" bson:"published"`
	AsOwnerEntity bool      `json:"as_owner_entity" bson:"as_owner_entity"`
	OwnerID       string    `json:"owner_id" bson:"owner_id"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

// Page is a static CMS page. Pages have no owner-entity attribution.
type Page struct {
	ID        string    `json:"id" bson:"_id"`
	Slug      string    `json:"slug" bson:"slug"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	Keywords  []string  `json:"keywords" bson:"keywords"`
	Published bool      `json:"published" bson:"published"`
	OwnerID   string    `json:"owner_id" bson:"owner_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// ContentKind distinguishes the two content collections in the event log.
type ContentKind string

const (
	KindPost ContentKind = "post"
	KindPage ContentKind = "page"
)

// ContentAction is the mutation recorded by a ContentEvent.
type ContentAction string

const (
	ActionCreated     ContentAction = "created"
	ActionUpdated     ContentAction = "updated"
	ActionPublished   ContentAction = "published"
	ActionUnpublished ContentAction = "unpublished"
	ActionDeleted     ContentAction = "deleted"
)

// PublishAction returns the action matching a new published state.
func PublishAction(published bool) ContentAction {
	if published {
		return ActionPublished
	}
	return ActionUnpublished
}

// ContentEvent is an audit record of a single content mutation.
type ContentEvent struct {
	ID      string        `bson:"_id"`
	Kind    ContentKind   `bson:"kind"`
	Slug    string        `bson:"slug"`
	Action  ContentAction `bson:"action"`
	ActorID string        `bson:"actor_id"`
	At      time.Time     `bson:"at"`
}
