package handler

import "github.com/inkwell/content-system/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name"     validate:"required,max=100"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// --- Posts and pages ---

type createContentRequest struct {
	Title    string   `json:"title"           validate:"required,min=3,max=200"`
	Content  string   `json:"content"         validate:"required,min=10"`
	Keywords []string `json:"keywords"        validate:"max=20,dive,max=50"`
	// AsOwnerEntity attributes a post to the site. Ignored for pages.
	AsOwnerEntity bool `json:"as_owner_entity"`
}

type updateContentRequest struct {
	Title     string   `json:"title"     validate:"required,min=3,max=200"`
	Content   string   `json:"content"   validate:"required,min=10"`
	Keywords  []string `json:"keywords"  validate:"max=20,dive,max=50"`
	Published bool     `json:"published"`
}

type postListResponse struct {
	Items []*domain.BlogPost `json:"items"`
	Count int                `json:"count"`
}

type pageListResponse struct {
	Items []*domain.Page `json:"items"`
	Count int            `json:"count"`
}

// --- Profiles ---

type updateProfileRequest struct {
	Name     string             `json:"name"     validate:"max=100"`
	Handle   string             `json:"handle"   validate:"omitempty,handle"`
	Bio      string             `json:"bio"      validate:"max=500"`
	Location string             `json:"location" validate:"max=100"`
	Website  string             `json:"website"  validate:"omitempty,url,max=200"`
	Public   bool               `json:"public"`
	Social   socialLinksRequest `json:"social"`
	// AcceptedMarketing is left unchanged when omitted.
	AcceptedMarketing *bool `json:"accepted_marketing"`
}

type socialLinksRequest struct {
	Twitter   string `json:"twitter"   validate:"max=100"`
	Instagram string `json:"instagram" validate:"max=100"`
	Facebook  string `json:"facebook"  validate:"max=100"`
	LinkedIn  string `json:"linkedin"  validate:"max=100"`
	YouTube   string `json:"youtube"   validate:"max=100"`
	TikTok    string `json:"tiktok"    validate:"max=100"`
	GitHub    string `json:"github"    validate:"max=100"`
	Discord   string `json:"discord"   validate:"max=100"`
	Twitch    string `json:"twitch"    validate:"max=100"`
}

type capabilitiesResponse struct {
	CanAuthorPosts         bool `json:"can_author_posts"`
	CanAuthorAsOwnerEntity bool `json:"can_author_as_owner_entity"`
	CanAuthorPages         bool `json:"can_author_pages"`
}

type meResponse struct {
	User              *domain.User         `json:"user"`
	Capabilities      capabilitiesResponse `json:"capabilities"`
	AcceptedMarketing bool                 `json:"accepted_marketing"`
}

// publicProfileResponse omits account fields (email, role, ban state) from
// what other visitors can see.
type publicProfileResponse struct {
	Handle   string             `json:"handle"`
	Name     string             `json:"name"`
	Bio      string             `json:"bio,omitempty"`
	Location string             `json:"location,omitempty"`
	Website  string             `json:"website,omitempty"`
	Social   domain.SocialLinks `json:"social"`
}

type directoryResponse struct {
	Items []publicProfileResponse `json:"items"`
	Count int                     `json:"count"`
}

// --- Newsletter ---

type newsletterSignupRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

// newsletterTokenRequest carries the id and address from a confirmation
// or unsubscribe link.
type newsletterTokenRequest struct {
	ID    string `json:"id"    validate:"required,uuid"`
	Email string `json:"email" validate:"required,email,max=254"`
}

type newsletterResponse struct {
	Email     string `json:"email"`
	Confirmed bool   `json:"confirmed"`
	Message   string `json:"message,omitempty"`
}

// --- Contact ---

type contactRequest struct {
	Name           string `json:"name"            validate:"required,min=3,max=100"`
	Email          string `json:"email"           validate:"required,email,max=254"`
	Subject        string `json:"subject"         validate:"required,min=3,max=200"`
	Message        string `json:"message"         validate:"required,min=10,max=5000"`
	RecaptchaToken string `json:"recaptcha_token" validate:"required"`
}

type contactResponse struct {
	ID string `json:"id"`
}

// --- Admin ---

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin user"`
}

type setBanRequest struct {
	Banned *bool `json:"banned" validate:"required"`
}
