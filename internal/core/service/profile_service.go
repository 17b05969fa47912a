package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/content-system/internal/core/domain"
	"github.com/inkwell/content-system/internal/core/ports"
	"github.com/inkwell/content-system/internal/core/policy"
)

// ProfileService implements ports.ProfileService and ports.AdminService.
type ProfileService struct {
	users   ports.UserRepository
	policy  *policy.Evaluator
	consent ports.MarketingConsent
	log     zerolog.Logger
}

// NewProfileService wires the profile use cases. consent may be nil, in
// which case marketing preferences are ignored.
func NewProfileService(users ports.UserRepository, eval *policy.Evaluator, consent ports.MarketingConsent, log zerolog.Logger) *ProfileService {
	return &ProfileService{users: users, policy: eval, consent: consent, log: log}
}

func (s *ProfileService) Me(ctx context.Context, actor *policy.Actor) (*domain.User, ports.Capabilities, error) {
	if actor == nil {
		return nil, ports.Capabilities{}, domain.ErrUnauthenticated
	}
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, ports.Capabilities{}, err
	}
	return user, s.capabilities(actor), nil
}

func (s *ProfileService) capabilities(actor *policy.Actor) ports.Capabilities {
	return ports.Capabilities{
		CanAuthorPosts:         s.policy.CanAuthorOwn(actor),
		CanAuthorAsOwnerEntity: s.policy.CanAuthorAsOwnerEntity(actor),
		CanAuthorPages:         s.policy.CanAuthorPages(actor),
	}
}

func (s *ProfileService) UpdateProfile(ctx context.Context, actor *policy.Actor, in ports.UpdateProfileInput) (*domain.User, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	handle := strings.ToLower(strings.TrimSpace(in.Handle))
	if handle != "" && !domain.ValidHandle(handle) {
		return nil, domain.ErrInvalidHandle
	}

	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	user.Name = strings.TrimSpace(in.Name)
	user.Handle = handle
	user.Bio = strings.TrimSpace(in.Bio)
	user.Location = strings.TrimSpace(in.Location)
	user.Website = strings.TrimSpace(in.Website)
	user.Public = in.Public
	user.Social = in.Social.Trimmed()
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	// The profile is saved even when the newsletter store is unavailable.
	if in.AcceptedMarketing != nil && s.consent != nil {
		if err := s.consent.SetMarketingConsent(ctx, user.Email, *in.AcceptedMarketing); err != nil {
			s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to update marketing consent")
		}
	}
	return user, nil
}

func (s *ProfileService) AcceptsMarketing(ctx context.Context, actor *policy.Actor) bool {
	if actor == nil || s.consent == nil {
		return false
	}
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return false
	}
	ok, err := s.consent.AcceptsMarketing(ctx, user.Email)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("marketing consent lookup failed")
		return false
	}
	return ok
}

func (s *ProfileService) Directory(ctx context.Context, limit int) ([]*domain.User, error) {
	return s.users.ListDiscoverable(ctx, clampLimit(limit))
}

func (s *ProfileService) PublicProfile(ctx context.Context, handle string) (*domain.User, error) {
	user, err := s.users.FindByHandle(ctx, strings.ToLower(strings.TrimSpace(handle)))
	if err != nil {
		return nil, err
	}
	if !user.Discoverable() {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// SetRole changes a user's role. A demoted owner-entity author loses
// access to site-attributed drafts on their next request.
func (s *ProfileService) SetRole(ctx context.Context, actor *policy.Actor, userID string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	previous := user.Role
	user.Role = role
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info().
		Str("actor_id", actorID(actor)).
		Str("user_id", userID).
		Str("from", string(previous)).
		Str("to", string(role)).
		Msg("role changed")
	return user, nil
}

func (s *ProfileService) SetBanned(ctx context.Context, actor *policy.Actor, userID string, banned bool) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.BannedFromPosting = banned
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info().Str("actor_id", actorID(actor)).Str("user_id", userID).Bool("banned", banned).Msg("posting ban updated")
	return user, nil
}

func actorID(actor *policy.Actor) string {
	if actor == nil {
		return ""
	}
	return actor.ID
}
