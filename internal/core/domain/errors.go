package domain

import "errors"

var (
	ErrPostNotFound = errors.New("post not found")
	ErrPageNotFound = errors.New("page not found")
	ErrUserNotFound = errors.New("user not found")

	// ErrForbidden is only returned for items the actor is allowed to see.
	// Anything invisible to the actor is reported as not found instead.
	ErrForbidden = errors.New("access forbidden")

	ErrInvalidSlug        = errors.New("title does not produce a usable slug")
	ErrInvalidHandle      = errors.New("invalid handle")
	ErrSlugTaken          = errors.New("slug already in use")
	ErrHandleTaken        = errors.New("handle already in use")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUnauthenticated    = errors.New("authentication required")

	ErrInvalidEmail         = errors.New("invalid email address")
	ErrSubscriptionNotFound = errors.New("newsletter subscription not found")
	ErrSpamRejected         = errors.New("captcha verification failed")
)
