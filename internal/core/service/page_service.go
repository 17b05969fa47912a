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

// PageService implements ports.PageService. Mutations need both the page
// author role and edit rights on the specific page.
type PageService struct {
	pages  ports.PageRepository
	policy *policy.Evaluator
	contentSupport
}

func NewPageService(
	pages ports.PageRepository,
	eval *policy.Evaluator,
	events ports.EventRecorder,
	idem ports.IdempotencyStore,
	log zerolog.Logger,
) *PageService {
	return &PageService{
		pages:          pages,
		policy:         eval,
		contentSupport: newContentSupport(domain.KindPage, events, idem, log),
	}
}

func (s *PageService) ListPublished(ctx context.Context, limit int) ([]*domain.Page, error) {
	return s.pages.List(ctx, ports.ListFilter{PublishedOnly: true, Limit: clampLimit(limit)})
}

func (s *PageService) Get(ctx context.Context, actor *policy.Actor, slug string) (*domain.Page, error) {
	page, err := s.pages.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanView(actor, policy.PageContent(page)) {
		denied(opView)
		return nil, domain.ErrPageNotFound
	}
	return page, nil
}

func (s *PageService) Create(ctx context.Context, actor *policy.Actor, in ports.CreateContentInput) (*ports.CreateResult[*domain.Page], error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !s.policy.CanAuthorPages(actor) {
		denied(opAuthorPages)
		return nil, domain.ErrForbidden
	}

	if slug := s.replayedSlug(ctx, actor, in.IdempotencyKey); slug != "" {
		existing, err := s.pages.FindBySlug(ctx, slug)
		if err == nil && existing.OwnerID == actor.ID {
			s.log.Info().Str("idempotency_key", in.IdempotencyKey).Str("slug", slug).Msg("idempotent replay")
			return &ports.CreateResult[*domain.Page]{Item: existing, AlreadyExisted: true}, nil
		}
	}

	slug := domain.Slugify(in.Title)
	if slug == "" {
		return nil, domain.ErrInvalidSlug
	}

	now := time.Now().UTC()
	page := &domain.Page{
		ID:        uuid.NewString(),
		Slug:      slug,
		Title:     strings.TrimSpace(in.Title),
		Content:   in.Content,
		Keywords:  cleanKeywords(in.Keywords),
		OwnerID:   actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.pages.Create(ctx, page); err != nil {
		if !errors.Is(err, domain.ErrSlugTaken) {
			s.log.Error().Err(err).Str("slug", slug).Msg("failed to create page")
		}
		return nil, err
	}
	s.remember(ctx, actor, in.IdempotencyKey, slug)

	metrics.PagesCreatedTotal.Inc()
	s.record(actor, slug, domain.ActionCreated)
	s.log.Info().Str("slug", slug).Str("owner_id", actor.ID).Msg("page created")

	return &ports.CreateResult[*domain.Page]{Item: page}, nil
}

func (s *PageService) Update(ctx context.Context, actor *policy.Actor, in ports.UpdateContentInput) (*domain.Page, error) {
	page, err := s.editable(ctx, actor, in.Slug)
	if err != nil {
		return nil, err
	}

	wasPublished := page.Published
	page.Title = strings.TrimSpace(in.Title)
	page.Content = in.Content
	page.Keywords = cleanKeywords(in.Keywords)
	page.Published = in.Published
	page.UpdatedAt = time.Now().UTC()

	if err := s.pages.Update(ctx, page); err != nil {
		return nil, fmt.Errorf("update page: %w", err)
	}
	s.record(actor, page.Slug, domain.ActionUpdated)
	if wasPublished != page.Published {
		s.record(actor, page.Slug, domain.PublishAction(page.Published))
	}
	return page, nil
}

func (s *PageService) TogglePublished(ctx context.Context, actor *policy.Actor, slug string) (*domain.Page, error) {
	page, err := s.editable(ctx, actor, slug)
	if err != nil {
		return nil, err
	}

	page.Published = !page.Published
	page.UpdatedAt = time.Now().UTC()
	if err := s.pages.Update(ctx, page); err != nil {
		return nil, fmt.Errorf("toggle page: %w", err)
	}
	s.record(actor, slug, domain.PublishAction(page.Published))
	return page, nil
}

func (s *PageService) Delete(ctx context.Context, actor *policy.Actor, slug string) error {
	if _, err := s.editable(ctx, actor, slug); err != nil {
		return err
	}
	if err := s.pages.Delete(ctx, slug); err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	s.record(actor, slug, domain.ActionDeleted)
	s.log.Info().Str("slug", slug).Str("actor_id", actor.ID).Msg("page deleted")
	return nil
}

func (s *PageService) editable(ctx context.Context, actor *policy.Actor, slug string) (*domain.Page, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	page, err := s.Get(ctx, actor, slug)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanAuthorPages(actor) {
		denied(opAuthorPages)
		return nil, domain.ErrForbidden
	}
	if !s.policy.CanEdit(actor, policy.PageContent(page)) {
		denied(opEdit)
		return nil, domain.ErrForbidden
	}
	return page, nil
}
