package service

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/inkwell/content-system/internal/core/domain"
	"github.com/inkwell/content-system/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID map[string]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{byID: make(map[string]*domain.User)}
	for _, u := range users {
		clone := *u
		r.byID[u.ID] = &clone
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.byID {
		if u.Email == user.Email {
			return domain.ErrUserExists
		}
	}
	clone := *user
	r.byID[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByHandle(_ context.Context, handle string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Handle != "" && u.Handle == handle {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.byID[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for id, u := range r.byID {
		if id != user.ID && user.Handle != "" && u.Handle == user.Handle {
			return domain.ErrHandleTaken
		}
	}
	clone := *user
	r.byID[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) ListDiscoverable(_ context.Context, limit int) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.byID {
		if u.Discoverable() {
			clone := *u
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Posts and pages
// ---------------------------------------------------------------------------

type stubPostRepo struct {
	bySlug    map[string]*domain.BlogPost
	order     []string
	updateErr error
}

func newStubPostRepo(posts ...*domain.BlogPost) *stubPostRepo {
	r := &stubPostRepo{bySlug: make(map[string]*domain.BlogPost)}
	for _, p := range posts {
		_ = r.Create(context.Background(), p)
	}
	return r
}

func (r *stubPostRepo) Create(_ context.Context, p *domain.BlogPost) error {
	if _, ok := r.bySlug[p.Slug]; ok {
		return domain.ErrSlugTaken
	}
	clone := *p
	r.bySlug[p.Slug] = &clone
	r.order = append(r.order, p.Slug)
	return nil
}

func (r *stubPostRepo) FindBySlug(_ context.Context, slug string) (*domain.BlogPost, error) {
	p, ok := r.bySlug[slug]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPostRepo) Update(_ context.Context, p *domain.BlogPost) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.bySlug[p.Slug]; !ok {
		return domain.ErrPostNotFound
	}
	clone := *p
	r.bySlug[p.Slug] = &clone
	return nil
}

func (r *stubPostRepo) Delete(_ context.Context, slug string) error {
	if _, ok := r.bySlug[slug]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.bySlug, slug)
	return nil
}

// List returns newest first, mirroring the created_at sort of the real repo.
func (r *stubPostRepo) List(_ context.Context, f ports.ListFilter) ([]*domain.BlogPost, error) {
	var out []*domain.BlogPost
	for i := len(r.order) - 1; i >= 0; i-- {
		p, ok := r.bySlug[r.order[i]]
		if !ok {
			continue
		}
		if f.OwnerID != "" && p.OwnerID != f.OwnerID {
			continue
		}
		if f.PublishedOnly && !p.Published {
			continue
		}
		if f.ExcludeOwnerEntity && p.AsOwnerEntity {
			continue
		}
		clone := *p
		out = append(out, &clone)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

type stubPageRepo struct {
	bySlug map[string]*domain.Page
	order  []string
}

func newStubPageRepo(pages ...*domain.Page) *stubPageRepo {
	r := &stubPageRepo{bySlug: make(map[string]*domain.Page)}
	for _, p := range pages {
		_ = r.Create(context.Background(), p)
	}
	return r
}

func (r *stubPageRepo) Create(_ context.Context, p *domain.Page) error {
	if _, ok := r.bySlug[p.Slug]; ok {
		return domain.ErrSlugTaken
	}
	clone := *p
	r.bySlug[p.Slug] = &clone
	r.order = append(r.order, p.Slug)
	return nil
}

func (r *stubPageRepo) FindBySlug(_ context.Context, slug string) (*domain.Page, error) {
	p, ok := r.bySlug[slug]
	if !ok {
		return nil, domain.ErrPageNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPageRepo) Update(_ context.Context, p *domain.Page) error {
	if _, ok := r.bySlug[p.Slug]; !ok {
		return domain.ErrPageNotFound
	}
	clone := *p
	r.bySlug[p.Slug] = &clone
	return nil
}

func (r *stubPageRepo) Delete(_ context.Context, slug string) error {
	if _, ok := r.bySlug[slug]; !ok {
		return domain.ErrPageNotFound
	}
	delete(r.bySlug, slug)
	return nil
}

func (r *stubPageRepo) List(_ context.Context, f ports.ListFilter) ([]*domain.Page, error) {
	var out []*domain.Page
	for i := len(r.order) - 1; i >= 0; i-- {
		p, ok := r.bySlug[r.order[i]]
		if !ok {
			continue
		}
		if f.PublishedOnly && !p.Published {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Events and idempotency
// ---------------------------------------------------------------------------

type stubRecorder struct {
	mu     sync.Mutex
	events []domain.ContentEvent
}

func (r *stubRecorder) Record(e domain.ContentEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *stubRecorder) actions() []domain.ContentAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ContentAction, len(r.events))
	for i, e := range r.events {
		out[i] = e.Action
	}
	return out
}

type stubIdempotency struct {
	keys      map[string]string
	lookupErr error
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]string)}
}

func (s *stubIdempotency) Lookup(_ context.Context, scope, actorID, key string) (string, error) {
	if s.lookupErr != nil {
		return "", s.lookupErr
	}
	return s.keys[scope+":"+actorID+":"+key], nil
}

func (s *stubIdempotency) Remember(_ context.Context, scope, actorID, key, slug string) error {
	s.keys[scope+":"+actorID+":"+key] = slug
	return nil
}

// ---------------------------------------------------------------------------
// Newsletter and contact
// ---------------------------------------------------------------------------

type stubNewsletterRepo struct {
	byEmail map[string]*domain.NewsletterSubscription
	err     error
	saves   int
}

func newStubNewsletterRepo(subs ...*domain.NewsletterSubscription) *stubNewsletterRepo {
	r := &stubNewsletterRepo{byEmail: make(map[string]*domain.NewsletterSubscription)}
	for _, s := range subs {
		clone := *s
		r.byEmail[s.Email] = &clone
	}
	return r
}

func (r *stubNewsletterRepo) FindByEmail(_ context.Context, email string) (*domain.NewsletterSubscription, error) {
	if r.err != nil {
		return nil, r.err
	}
	s, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrSubscriptionNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubNewsletterRepo) Save(_ context.Context, sub *domain.NewsletterSubscription) error {
	if r.err != nil {
		return r.err
	}
	clone := *sub
	r.byEmail[sub.Email] = &clone
	r.saves++
	return nil
}

type stubSpamChecker struct {
	ok  bool
	err error

	gotToken, gotIP string
}

func (s *stubSpamChecker) Verify(_ context.Context, token, remoteIP string) (bool, error) {
	s.gotToken, s.gotIP = token, remoteIP
	return s.ok, s.err
}

type stubContactRepo struct {
	messages []*domain.ContactMessage
}

func (r *stubContactRepo) InsertMessage(_ context.Context, msg *domain.ContactMessage) error {
	r.messages = append(r.messages, msg)
	return nil
}
