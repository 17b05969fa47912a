package handler

import (
	"github.com/inkwell/content-system/internal/core/domain"
	"github.com/inkwell/content-system/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createContentRequest, idempotencyKey string) ports.CreateContentInput {
	return ports.CreateContentInput{
		Title:          req.Title,
		Content:        req.Content,
		Keywords:       req.Keywords,
		AsOwnerEntity:  req.AsOwnerEntity,
		IdempotencyKey: idempotencyKey,
	}
}

func toUpdateInput(slug string, req updateContentRequest) ports.UpdateContentInput {
	return ports.UpdateContentInput{
		Slug:      slug,
		Title:     req.Title,
		Content:   req.Content,
		Keywords:  req.Keywords,
		Published: req.Published,
	}
}

func toProfileInput(req updateProfileRequest) ports.UpdateProfileInput {
	return ports.UpdateProfileInput{
		Name:     req.Name,
		Handle:   req.Handle,
		Bio:      req.Bio,
		Location: req.Location,
		Website:  req.Website,
		Public:   req.Public,
		Social:   domain.SocialLinks(req.Social),

		AcceptedMarketing: req.AcceptedMarketing,
	}
}

func toContactInput(req contactRequest, remoteIP string) ports.ContactInput {
	return ports.ContactInput{
		Name:         req.Name,
		Email:        req.Email,
		Subject:      req.Subject,
		Message:      req.Message,
		CaptchaToken: req.RecaptchaToken,
		RemoteIP:     remoteIP,
	}
}

// --- Domain → Response ---

func toCapabilitiesResponse(c ports.Capabilities) capabilitiesResponse {
	return capabilitiesResponse{
		CanAuthorPosts:         c.CanAuthorPosts,
		CanAuthorAsOwnerEntity: c.CanAuthorAsOwnerEntity,
		CanAuthorPages:         c.CanAuthorPages,
	}
}

func toPublicProfile(u *domain.User) publicProfileResponse {
	return publicProfileResponse{
		Handle:   u.Handle,
		Name:     u.Name,
		Bio:      u.Bio,
		Location: u.Location,
		Website:  u.Website,
		Social:   u.Social,
	}
}
