package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inkwell/content-system/internal/core/domain"
	"github.com/inkwell/content-system/internal/core/policy"
	"github.com/inkwell/content-system/internal/core/ports"
	"github.com/inkwell/content-system/pkg/metrics"
)

// BlogService implements ports.BlogService.
type BlogService struct {
	posts  ports.PostRepository
	users  ports.UserRepository
	policy *policy.Evaluator
	contentSupport
}

func NewBlogService(
	posts ports.PostRepository,
	users ports.UserRepository,
	eval *policy.Evaluator,
	events ports.EventRecorder,
	idem ports.IdempotencyStore,
	log zerolog.Logger,
) *BlogService {
	return &BlogService{
		posts:          posts,
		users:          users,
		policy:         eval,
		contentSupport: newContentSupport(domain.KindPost, events, idem, log),
	}
}

func (s *BlogService) ListPublished(ctx context.Context, limit int) ([]*domain.BlogPost, error) {
	return s.posts.List(ctx, ports.ListFilter{PublishedOnly: true, Limit: clampLimit(limit)})
}

// ListByHandle lists the published personal posts of a discoverable user.
// Site-attributed posts are not shown on a personal page.
func (s *BlogService) ListByHandle(ctx context.Context, handle string, limit int) ([]*domain.BlogPost, error) {
	user, err := s.users.FindByHandle(ctx, strings.ToLower(strings.TrimSpace(handle)))
	if err != nil {
		return nil, err
	}
	if !user.Discoverable() {
		return nil, domain.ErrUserNotFound
	}
	return s.posts.List(ctx, ports.ListFilter{
		OwnerID:            user.ID,
		PublishedOnly:      true,
		ExcludeOwnerEntity: true,
		Limit:              clampLimit(limit),
	})
}

// ListMine lists every post the actor created that they can still see.
// Site-attributed drafts drop out once the actor loses the owner-entity role.
func (s *BlogService) ListMine(ctx context.Context, actor *policy.Actor) ([]*domain.BlogPost, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	posts, err := s.posts.List(ctx, ports.ListFilter{OwnerID: actor.ID, Limit: maxListLimit})
	if err != nil {
		return nil, err
	}
	visible := posts[:0]
	for _, p := range posts {
		if s.policy.CanView(actor, policy.PostContent(p)) {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

// Get returns the post at slug. A post the actor may not see is reported
// as missing.
func (s *BlogService) Get(ctx context.Context, actor *policy.Actor, slug string) (*domain.BlogPost, error) {
	post, err := s.posts.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanView(actor, policy.PostContent(post)) {
		denied(opView)
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

func (s *BlogService) Create(ctx context.Context, actor *policy.Actor, in ports.CreateContentInput) (*ports.CreateResult[*domain.BlogPost], error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if in.AsOwnerEntity {
		if !s.policy.CanAuthorAsOwnerEntity(actor) {
			denied(opAuthorOwnerEntity)
			return nil, domain.ErrForbidden
		}
	} else if !s.policy.CanAuthorOwn(actor) {
		denied(opAuthorOwn)
		return nil, domain.ErrForbidden
	}

	if slug := s.replayedSlug(ctx, actor, in.IdempotencyKey); slug != "" {
		existing, err := s.posts.FindBySlug(ctx, slug)
		if err == nil && existing.OwnerID == actor.ID {
			s.log.Info().Str("idempotency_key", in.IdempotencyKey).Str("slug", slug).Msg("idempotent replay")
			return &ports.CreateResult[*domain.BlogPost]{Item: existing, AlreadyExisted: true}, nil
		}
	}

	slug := domain.Slugify(in.Title)
	if slug == "" {
		return nil, domain.ErrInvalidSlug
	}

	now := time.Now().UTC()
	post := &domain.BlogPost{
		ID:            uuid.NewString(),
		Slug:          slug,
		Title:         strings.TrimSpace(in.Title),
		Content:       in.Content,
		Keywords:      cleanKeywords(in.Keywords),
		AsOwnerEntity: in.AsOwnerEntity,
		OwnerID:       actor.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		if !errors.Is(err, domain.ErrSlugTaken) {
			s.log.Error().Err(err).Str("slug", slug).Msg("failed to create post")
		}
		return nil, err
	}
	s.remember(ctx, actor, in.IdempotencyKey, slug)

	attribution := "user"
	if post.AsOwnerEntity {
		attribution = "owner_entity"
	}
	metrics.PostsCreatedTotal.WithLabelValues(attribution).Inc()
	s.record(actor, slug, domain.ActionCreated)
	s.log.Info().Str("slug", slug).Str("owner_id", actor.ID).Bool("as_owner_entity", post.AsOwnerEntity).Msg("post created")

	return &ports.CreateResult[*domain.BlogPost]{Item: post}, nil
}

func (s *BlogService) Update(ctx context.Context, actor *policy.Actor, in ports.UpdateContentInput) (*domain.BlogPost, error) {
	post, err := s.editable(ctx, actor, in.Slug)
	if err != nil {
		return nil, err
	}

	wasPublished := post.Published
	post.Title = strings.TrimSpace(in.Title)
	post.Content = in.Content
	post.Keywords = cleanKeywords(in.Keywords)
	post.Published = in.Published
	post.UpdatedAt = time.Now().UTC()

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	s.record(actor, post.Slug, domain.ActionUpdated)
	if wasPublished != post.Published {
		s.record(actor, post.Slug, domain.PublishAction(post.Published))
	}
	return post, nil
}

func (s *BlogService) TogglePublished(ctx context.Context, actor *policy.Actor, slug string) (*domain.BlogPost, error) {
	post, err := s.editable(ctx, actor, slug)
	if err != nil {
		return nil, err
	}

	post.Published = !post.Published
	post.UpdatedAt = time.Now().UTC()
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("toggle post: %w", err)
	}
	s.record(actor, slug, domain.PublishAction(post.Published))
	return post, nil
}

func (s *BlogService) Delete(ctx context.Context, actor *policy.Actor, slug string) error {
	if _, err := s.editable(ctx, actor, slug); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, slug); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	s.record(actor, slug, domain.ActionDeleted)
	s.log.Info().Str("slug", slug).Str("actor_id", actor.ID).Msg("post deleted")
	return nil
}

// editable loads a post for mutation. Posts the actor cannot see are
// reported missing; visible posts the actor cannot edit are forbidden.
func (s *BlogService) editable(ctx context.Context, actor *policy.Actor, slug string) (*domain.BlogPost, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	post, err := s.Get(ctx, actor, slug)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanEdit(actor, policy.PostContent(post)) {
		denied(opEdit)
		return nil, domain.ErrForbidden
	}
	return post, nil
}
